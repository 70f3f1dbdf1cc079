package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

const defaultBatchSize = 100

type Config struct {
	// Grace keeps the sweep away from transfers that are still being
	// dispatched inline right after their action committed.
	Grace     time.Duration
	BatchSize uint64
}

// Service hands pending transfers to the ledger. A transfer stays in the
// outbox until it is published, so a failed publish is retried by the sweep.
type Service struct {
	log        serviceLogger
	repository Repository
	publisher  Publisher
	clock      Clock
	config     Config
}

func New(log serviceLogger, repository Repository, publisher Publisher, clock Clock, config Config) *Service {
	if config.BatchSize == 0 {
		config.BatchSize = defaultBatchSize
	}
	return &Service{
		log:        log,
		repository: repository,
		publisher:  publisher,
		clock:      clock,
		config:     config,
	}
}

// Dispatch publishes freshly committed transfers. Failures are only logged.
func (s *Service) Dispatch(ctx context.Context, transfers ...entities.PendingTransfer) {
	for _, transfer := range transfers {
		if err := s.publish(ctx, transfer); err != nil {
			s.log.With(
				logger.NewField("transfer_id", transfer.ID.String()),
				logger.NewField("contract_id", transfer.ContractID.String()),
				logger.NewField("tag", transfer.Tag.String()),
			).Warn("transfer dispatch deferred", logger.NewField("error", err))
		}
	}
}

// DispatchPending publishes the transfers left undispatched for longer than
// the grace period and returns how many went out.
func (s *Service) DispatchPending(ctx context.Context) (int64, error) {
	createdBefore := s.clock.Now().Add(-s.config.Grace)

	transfers, err := s.repository.ListUndispatched(ctx, createdBefore, s.config.BatchSize)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("list undispatched transfers timed out: %w", err)
		}
		return 0, fmt.Errorf("list undispatched transfers: %w", err)
	}

	var (
		dispatched int64
		errs       []error
	)
	for _, transfer := range transfers {
		if err := s.publish(ctx, transfer); err != nil {
			errs = append(errs, fmt.Errorf("transfer %s: %w", transfer.ID, err))
			continue
		}
		dispatched++
	}

	return dispatched, errors.Join(errs...)
}

func (s *Service) publish(ctx context.Context, transfer entities.PendingTransfer) error {
	if err := s.publisher.Publish(ctx, transfer.Request()); err != nil {
		TransfersDispatchedTotal.WithLabelValues(transfer.Tag.String(), "error").Inc()
		return fmt.Errorf("publish transfer request: %w", err)
	}
	TransfersDispatchedTotal.WithLabelValues(transfer.Tag.String(), "ok").Inc()

	if err := s.repository.MarkDispatched(ctx, transfer.ID, s.clock.Now()); err != nil {
		return fmt.Errorf("mark transfer dispatched: %w", err)
	}
	return nil
}
