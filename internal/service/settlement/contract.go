//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=settlement_test
package settlement

import (
	"context"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type TransferRepository interface {
	Take(ctx context.Context, id uuid.UUID) (*entities.PendingTransfer, error)
}

type EscrowService interface {
	ConfirmPaymentReceived(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error)
	ConfirmDepositReceived(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error)
	ConfirmCourierPaid(ctx context.Context, contractID uuid.UUID) error
	ConfirmRefund(ctx context.Context, contractID uuid.UUID) error
}

type (
	// ExecuteFn applies the effect of a confirmed transfer and returns the
	// transfers it requested in turn.
	ExecuteFn      func(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error)
	HandlerFactory interface {
		GetHandler(tag entities.TransferTag) (ExecuteFn, error)
	}
)

type Dispatcher interface {
	Dispatch(ctx context.Context, transfers ...entities.PendingTransfer)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
