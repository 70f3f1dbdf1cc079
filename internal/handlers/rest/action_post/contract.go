//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=action_post_test
package action_post

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
	Pay(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error)
	AcceptCourier(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error)
	DepositCourierCollateral(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error)
	MarkParcelIssued(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error)
}
