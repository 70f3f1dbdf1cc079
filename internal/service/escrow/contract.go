//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=escrow_test
package escrow

import (
	"context"
	"math/big"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, contract entities.Contract) (*entities.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	Update(ctx context.Context, contractModify entities.ContractModify) (*entities.Contract, error)
	NextAddressIndex(ctx context.Context) (uint32, error)
}

type TransferRepository interface {
	Create(ctx context.Context, transfer entities.PendingTransfer) (*entities.PendingTransfer, error)
	ExistsByContractAndTag(ctx context.Context, contractID uuid.UUID, tag entities.TransferTag) (bool, error)
	InFlight(ctx context.Context, contractID uuid.UUID) (*entities.InFlight, error)
}

type Ledger interface {
	Balance(ctx context.Context, token, address string) (*big.Int, error)
	TokenInfo(ctx context.Context, token string) (*entities.TokenInfo, error)
}

type TransferDispatcher interface {
	Dispatch(ctx context.Context, transfers ...entities.PendingTransfer)
}

type SignatureVerifier interface {
	Verify(message []byte, signatureHex, publicKeyHex string) error
	ValidatePublicKey(publicKeyHex string) error
}

type AddressDeriver interface {
	Derive(index uint32) (string, error)
	Validate(address string) error
}

type WindowFactory interface {
	Open(cfg entities.ExpirationConfig, status entities.ContractStatus, baseTime time.Time) *entities.ExpirationWindow
}

type Clock interface {
	Now() time.Time
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
