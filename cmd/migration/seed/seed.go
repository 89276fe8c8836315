package seed

import (
	"context"

	responseController "github.com/ywyher/survey/internal/controllers/response"
	"github.com/ywyher/survey/internal/logger"
)

// Seed inserts count generated demo responses. A zero seed picks a random one.
func Seed(
	ctx context.Context,
	controller *responseController.ResponseController,
	count int,
	seed int64,
	log logger.Logger,
) (int, error) {
	log = log.Function("Seed")
	log.Info("Seeding demo responses", "count", count)

	inserted, err := controller.Seed(ctx, count, seed)
	if err != nil {
		return 0, log.Err("failed to seed responses", err, "count", count)
	}

	log.Info("Seeding complete", "inserted", inserted)
	return inserted, nil
}
