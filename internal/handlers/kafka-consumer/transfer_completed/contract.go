//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transfer_completed_test
package transfer_completed

import (
	"context"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/google/uuid"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ProcessTransferResult(ctx context.Context, result entities.TransferResult) (*entities.PendingTransfer, error)
}

type Deduplicator interface {
	Acquire(ctx context.Context, transferID uuid.UUID) (bool, error)
	Release(ctx context.Context, transferID uuid.UUID) error
}
