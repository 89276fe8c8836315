package repositories

import (
	"context"
	"errors"

	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/database"
	"github.com/ywyher/survey/internal/logger"
	. "github.com/ywyher/survey/internal/models"
	"github.com/ywyher/survey/internal/services"
	"gorm.io/gorm"
)

var ErrResponseNotFound = errors.New("response not found")

type ResponseRepository interface {
	Create(ctx context.Context, response *Response) error
	CreateBatch(ctx context.Context, responses []*Response, batchSize int) error
	GetAll(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type responseRepository struct {
	db  database.DB
	log logger.Logger
}

func NewResponse(db database.DB) ResponseRepository {
	return &responseRepository{
		db:  db,
		log: logger.New("responseRepository"),
	}
}

func (r *responseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *responseRepository) Create(ctx context.Context, response *Response) error {
	log := r.log.Function("Create")

	if response.AffectedJoints == nil {
		response.AffectedJoints = Joints{}
	}

	if err := r.getDB(ctx).Create(response).Error; err != nil {
		return log.Err("failed to create response", err, "id", response.ID)
	}

	return nil
}

func (r *responseRepository) CreateBatch(
	ctx context.Context,
	responses []*Response,
	batchSize int,
) error {
	log := r.log.Function("CreateBatch")

	if len(responses) == 0 {
		return log.Error("empty response batch provided")
	}

	if batchSize <= 0 {
		batchSize = 100
	}

	for _, response := range responses {
		if response.AffectedJoints == nil {
			response.AffectedJoints = Joints{}
		}
	}

	if err := r.getDB(ctx).CreateInBatches(responses, batchSize).Error; err != nil {
		return log.Err("failed to create response batch", err,
			"totalRecords", len(responses),
			"batchSize", batchSize)
	}

	log.Info("inserted response batch", "totalRecords", len(responses), "batchSize", batchSize)
	return nil
}

// GetAll returns every response, newest first. The list is served from the
// cache when one is configured. Reads that race a write cache under the
// generation they started with, so they cannot shadow the newer list.
func (r *responseRepository) GetAll(ctx context.Context) ([]Response, error) {
	log := r.log.Function("GetAll")

	cache := r.db.Cache.Responses
	generation, err := services.ResponseListGeneration(ctx, r.db)
	if err != nil {
		log.Warn("failed to read response list generation, bypassing cache", "error", err)
		cache = nil
	}
	key := services.ResponseListCacheKey(generation)

	var responses []Response
	found, err := database.NewCacheBuilder(cache, key).
		WithContext(ctx).
		Get(&responses)
	if err != nil {
		log.Warn("failed to read response list from cache", "key", key, "error", err)
	}
	if found {
		log.Debug("Found response list in cache", "key", key, "count", len(responses))
		return responses, nil
	}

	responses = []Response{}
	if err := r.getDB(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&responses).Error; err != nil {
		return nil, log.Err("failed to get all responses", err)
	}

	ttl := r.db.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	if err := database.NewCacheBuilder(cache, key).
		WithStruct(responses).
		WithTTL(ttl).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to add response list to cache", "key", key, "error", err)
	}

	return responses, nil
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*Response, error) {
	log := r.log.Function("GetByID")

	var response Response
	err := r.getDB(ctx).First(&response, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, log.Err("failed to get response by id", err, "id", id)
	}

	return &response, nil
}

func (r *responseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&Response{}).Count(&count).Error; err != nil {
		return 0, r.log.Function("Count").Err("failed to count responses", err)
	}
	return count, nil
}

// Delete removes the row with id. Deleting an id that does not exist is not
// an error.
func (r *responseRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Response{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete response", result.Error, "id", id)
	}

	log.Info("deleted response", "id", id, "rowsAffected", result.RowsAffected)
	return nil
}
