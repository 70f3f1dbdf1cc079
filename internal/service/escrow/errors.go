package escrow

import (
	"errors"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/signature"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidContractID     = errors.New("invalid contract id")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidExpiration     = errors.New("invalid expiration")
	ErrContractNotFound      = errors.New("contract not found")

	ErrUnauthorized           = errors.New("unauthorized")
	ErrOwnerExpected          = errors.New("owner expected")
	ErrCourierExpected        = errors.New("courier expected")
	ErrOwnerOrCourierExpected = errors.New("owner or courier expected")
	ErrOwnerCannotBeACourier  = errors.New("owner cannot be a courier")
	ErrCourierNotApplyYet     = errors.New("courier has not applied yet")
	ErrAlreadyPaid            = errors.New("transfer already requested")
	ErrTransferInFlight       = errors.New("transfer awaiting ledger confirmation")

	ErrInvalidPublicKey = signature.ErrInvalidPublicKey
	ErrInvalidSignature = signature.ErrInvalidSignature

	ErrUnexpectedStatus = errors.New("unexpected status")
)

type UnexpectedStatusError struct {
	Current  entities.ContractStatus
	Expected entities.ContractStatus
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %s, expected %s", e.Current, e.Expected)
}

func (e *UnexpectedStatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
