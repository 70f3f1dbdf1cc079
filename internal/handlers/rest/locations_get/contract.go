//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=locations_get_test
package locations_get

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
	GetLocations(ctx context.Context, contractID uuid.UUID) (*entities.Locations, error)
}
