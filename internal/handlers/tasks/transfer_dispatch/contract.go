//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transfer_dispatch_test
package transfer_dispatch

import (
	"context"

	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	DispatchPending(ctx context.Context) (int64, error)
}
