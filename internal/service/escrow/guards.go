package escrow

import (
	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
)

func ensureStatus(contract *entities.Contract, expected entities.ContractStatus) error {
	if contract.Status != expected {
		return &UnexpectedStatusError{Current: contract.Status, Expected: expected}
	}
	return nil
}

func ensureOwner(contract *entities.Contract, caller string) error {
	if contract.Owner != caller {
		return ErrOwnerExpected
	}
	return nil
}

func ensureCourier(contract *entities.Contract, caller string) error {
	if contract.Courier == nil {
		return ErrCourierNotApplyYet
	}
	if *contract.Courier != caller {
		return ErrCourierExpected
	}
	return nil
}

// callerRole resolves who is cancelling. The owner is recognised even
// before any courier applied.
func callerRole(contract *entities.Contract, caller string) (entities.Role, error) {
	switch {
	case contract.Owner == caller:
		return entities.RoleOwner, nil
	case contract.IsCourier(caller):
		return entities.RoleCourier, nil
	default:
		return "", ErrOwnerOrCourierExpected
	}
}
