package retrier

import (
	"context"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

// WaitReady повторяет ping через r, пока зависимость не ответит или не
// кончится бюджет ретраев. Каждая попытка логируется.
func WaitReady(ctx context.Context, log logger.Logger, r Retrier, dependency string, ping func(ctx context.Context) error) error {
	var attempt uint64
	err := r.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting " + dependency + " connection")

		return ping(ctx)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error(dependency + " connection failed after retries")
		return fmt.Errorf("failed to reach %s: %w", dependency, err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info(dependency + " connection established")
	return nil
}
