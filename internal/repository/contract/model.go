package contract

import (
	"time"

	"github.com/google/uuid"
)

// ContractDB mirrors a contracts row. Amounts travel as decimal text because
// NUMERIC(78,0) does not fit any Go integer type.
type ContractDB struct {
	ID               uuid.UUID
	Address          string
	AddressIndex     int64
	Owner            string
	Courier          *string
	Status           string
	Token            string
	TokenName        string
	TokenSymbol      string
	TokenDecimals    int32
	TokenTotalSupply string
	ConfirmPublicKey string
	PaymentAmount    string
	DepositAmount    string
	RoughFrom        string
	RoughTo          string
	ExactFrom        *string
	ExactTo          *string
	Comment          *string
	WindowFixedAt    *time.Time
	WindowDurationMs *int64

	ExpirationDepositMs      int64
	ExpirationDetailsMs      int64
	ExpirationInDepartmentMs int64
	ExpirationDeliveryMs     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContractModifyDB struct {
	ID               *uuid.UUID
	Status           *string
	Courier          *string
	ExactFrom        *string
	ExactTo          *string
	Comment          *string
	WindowFixedAt    *time.Time
	WindowDurationMs *int64

	ClearCourier bool
	ClearDetails bool
	ClearWindow  bool
}
