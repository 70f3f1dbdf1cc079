//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=contract_post_test
package contract_post

import (
	"context"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Instantiate(ctx context.Context, draft entities.ContractDraft) (*entities.Contract, error)
}
