package responseController

import (
	"context"
	"io"

	"github.com/ywyher/survey/internal/logger"
	. "github.com/ywyher/survey/internal/models"
	"github.com/ywyher/survey/internal/repositories"
	"github.com/ywyher/survey/internal/services"
	"github.com/ywyher/survey/internal/utils"
)

const (
	SubmitSuccessMessage = "Data inserted successfuly"

	submitFallbackError = "Failed to insert data!"
	deleteFallbackError = "Failed to delete."
)

// SubmitResult carries either a success message or an error message, never both.
type SubmitResult struct {
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

type DeleteResult struct {
	Error *string `json:"error"`
}

type ResponseController struct {
	responseRepo             repositories.ResponseRepository
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
}

func New(
	responseRepo repositories.ResponseRepository,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
) *ResponseController {
	return &ResponseController{
		responseRepo:             responseRepo,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("ResponseController"),
	}
}

// Submit stores one validated response. Storage failures come back in the
// result instead of as an error.
func (rc *ResponseController) Submit(ctx context.Context, response Response) SubmitResult {
	log := rc.log.Function("Submit")

	// id and timestamps belong to the storage layer
	response.BaseUUIDModel = BaseUUIDModel{}

	if err := rc.responseRepo.Create(ctx, &response); err != nil {
		log.Er("failed to submit response", err)
		return SubmitResult{Error: errorMessage(err, submitFallbackError)}
	}

	rc.invalidateList(ctx)

	log.Info("Response submitted", "id", response.ID)
	message := SubmitSuccessMessage
	return SubmitResult{Message: &message}
}

func (rc *ResponseController) List(ctx context.Context) ([]Response, error) {
	responses, err := rc.responseRepo.GetAll(ctx)
	if err != nil {
		return nil, rc.log.Function("List").Err("failed to list responses", err)
	}
	return responses, nil
}

func (rc *ResponseController) Get(ctx context.Context, id string) (*Response, error) {
	log := rc.log.Function("Get")

	if id == "" {
		return nil, log.Error("invalid response ID", "id", id)
	}

	response, err := rc.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get response", err, "id", id)
	}
	return response, nil
}

// Delete removes the response with id. An id that matches nothing still
// reports success.
func (rc *ResponseController) Delete(ctx context.Context, id string) DeleteResult {
	log := rc.log.Function("Delete")

	if err := rc.responseRepo.Delete(ctx, id); err != nil {
		log.Er("failed to delete response", err, "id", id)
		return DeleteResult{Error: errorMessage(err, deleteFallbackError)}
	}

	rc.invalidateList(ctx)
	return DeleteResult{}
}

func (rc *ResponseController) ExportCSV(ctx context.Context, w io.Writer) error {
	log := rc.log.Function("ExportCSV")

	responses, err := rc.responseRepo.GetAll(ctx)
	if err != nil {
		return log.Err("failed to load responses for export", err)
	}

	if err := utils.WriteResponsesCSV(w, responses); err != nil {
		return log.Err("failed to write responses csv", err, "count", len(responses))
	}

	log.Info("Exported responses", "count", len(responses))
	return nil
}

// Seed inserts count generated responses in a single transaction.
func (rc *ResponseController) Seed(ctx context.Context, count int, seed int64) (int, error) {
	log := rc.log.Function("Seed")

	if count <= 0 {
		return 0, log.Error("seed count must be positive", "count", count)
	}

	responses := utils.NewResponseGenerator(seed).Generate(count)

	err := rc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return rc.responseRepo.CreateBatch(txCtx, responses, 100)
	})
	if err != nil {
		return 0, log.Err("failed to seed responses", err, "count", count)
	}

	rc.invalidateList(ctx)
	return len(responses), nil
}

func (rc *ResponseController) invalidateList(ctx context.Context) {
	if err := rc.cacheInvalidationService.InvalidateResponseList(ctx); err != nil {
		rc.log.Function("invalidateList").Warn("failed to invalidate response list", "error", err)
	}
}

func errorMessage(err error, fallback string) *string {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return &msg
}
