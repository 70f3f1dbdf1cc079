package entities

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

type Direction struct {
	From string
	To   string
}

type TokenInfo struct {
	Name        string
	Symbol      string
	Decimals    uint32
	TotalSupply *big.Int
}

type Contract struct {
	ID               uuid.UUID
	Address          string
	AddressIndex     uint32
	Owner            string
	Courier          *string
	Status           ContractStatus
	Token            string
	TokenInfo        TokenInfo
	ConfirmPublicKey string
	PaymentAmount    *big.Int
	DepositAmount    *big.Int
	Rough            Direction
	ExactFrom        *string
	ExactTo          *string
	Comment          *string
	Window           *ExpirationWindow
	Expiration       ExpirationConfig
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCourier reports whether address is the recorded courier.
func (c *Contract) IsCourier(address string) bool {
	return c.Courier != nil && *c.Courier == address
}

func (c *Contract) Funds() Funds {
	return Funds{
		Deposit: new(big.Int).Set(c.DepositAmount),
		Payment: new(big.Int).Set(c.PaymentAmount),
	}
}

// Locations projects the exact and rough routes, absent values become "".
func (c *Contract) Locations() Locations {
	return Locations{
		Exact: Direction{
			From: stringOrEmpty(c.ExactFrom),
			To:   stringOrEmpty(c.ExactTo),
		},
		Rough:   c.Rough,
		Comment: stringOrEmpty(c.Comment),
	}
}

// ContractDraft is what an owner supplies to open a new contract.
type ContractDraft struct {
	Owner            string
	Token            string
	ConfirmPublicKey string
	PaymentAmount    *big.Int
	DepositAmount    *big.Int
	Rough            Direction
	Expiration       ExpirationConfig
}

type DeliveryDetails struct {
	From    string
	To      string
	Comment string
}

// Outcome is the status after an action and the transfers it requested
// that still wait for ledger confirmation.
type Outcome struct {
	Status    ContractStatus
	Transfers []PendingTransfer
}

// ContractModify is a partial update. Nil fields are left as they are,
// Clear* flags reset the corresponding slots to absent.
type ContractModify struct {
	ID        *uuid.UUID
	Status    *ContractStatus
	Courier   *string
	ExactFrom *string
	ExactTo   *string
	Comment   *string
	Window    *ExpirationWindow

	ClearCourier bool
	ClearDetails bool
	ClearWindow  bool
}

type Funds struct {
	Deposit *big.Int
	Payment *big.Int
}

type Locations struct {
	Exact   Direction
	Rough   Direction
	Comment string
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
