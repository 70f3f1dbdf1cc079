//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transfer_test
package transfer

import (
	"context"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/google/uuid"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Repository interface {
	ListUndispatched(ctx context.Context, createdBefore time.Time, limit uint64) ([]entities.PendingTransfer, error)
	MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, request entities.TransferRequest) error
}

type Clock interface {
	Now() time.Time
}
