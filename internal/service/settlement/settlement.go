package settlement

import (
	"context"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type Service struct {
	transfers      TransferRepository
	handlerFactory HandlerFactory
	txManager      TxManager
	dispatcher     Dispatcher
}

func New(transfers TransferRepository, handlerFactory HandlerFactory, txManager TxManager, dispatcher Dispatcher) *Service {
	return &Service{
		transfers:      transfers,
		handlerFactory: handlerFactory,
		txManager:      txManager,
		dispatcher:     dispatcher,
	}
}

// ProcessTransferResult applies the effect a confirmed transfer was waiting
// for. The pending transfer is consumed in the same transaction, so a
// confirmation delivered twice fails with ErrPendingTransferNotFound.
// Transfers requested by the effect are dispatched after commit.
//
// A rejected transfer only consumes the pending row so the action can be
// requested again. The consumed transfer is returned along with
// ErrTransferFailed.
func (s *Service) ProcessTransferResult(ctx context.Context, result entities.TransferResult) (*entities.PendingTransfer, error) {
	if result.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}
	if !result.Success {
		return s.discard(ctx, result)
	}

	var (
		transfer *entities.PendingTransfer
		requests []entities.PendingTransfer
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		transfer, err = s.transfers.Take(ctx, result.TransferID)
		if err != nil {
			return fmt.Errorf("take pending transfer %s: %w", result.TransferID, err)
		}

		executeFn, err := s.handlerFactory.GetHandler(transfer.Tag)
		if err != nil {
			return err
		}

		requests, err = executeFn(ctx, *transfer)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(requests) > 0 {
		s.dispatcher.Dispatch(ctx, requests...)
	}
	return transfer, nil
}

func (s *Service) discard(ctx context.Context, result entities.TransferResult) (*entities.PendingTransfer, error) {
	var transfer *entities.PendingTransfer
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		transfer, err = s.transfers.Take(ctx, result.TransferID)
		if err != nil {
			return fmt.Errorf("take failed transfer %s: %w", result.TransferID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transfer, fmt.Errorf("%w: transfer %s: %s", ErrTransferFailed, result.TransferID, result.Error)
}
