package escrow

import (
	"fmt"
	"strings"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

func isValidContractID(id uuid.UUID) bool {
	return id != uuid.Nil
}

func isValidCaller(caller string) bool {
	return strings.TrimSpace(caller) != ""
}

func (s *Service) validateDraft(draft entities.ContractDraft) error {
	if draft.Owner == "" || draft.Token == "" || draft.ConfirmPublicKey == "" ||
		strings.TrimSpace(draft.Rough.From) == "" || strings.TrimSpace(draft.Rough.To) == "" {
		return ErrMissingRequiredFields
	}

	if err := s.addresses.Validate(draft.Owner); err != nil {
		return fmt.Errorf("%w: owner: %v", ErrInvalidAddress, err)
	}
	if err := s.addresses.Validate(draft.Token); err != nil {
		return fmt.Errorf("%w: token: %v", ErrInvalidAddress, err)
	}

	if draft.PaymentAmount == nil || draft.PaymentAmount.Sign() <= 0 {
		return fmt.Errorf("%w: payment must be positive", ErrInvalidAmount)
	}
	if draft.DepositAmount == nil || draft.DepositAmount.Sign() < 0 {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidAmount)
	}

	exp := draft.Expiration
	if exp.Deposit < 0 || exp.Details < 0 || exp.InDepartment < 0 || exp.Delivery < 0 {
		return ErrInvalidExpiration
	}

	return s.verifier.ValidatePublicKey(draft.ConfirmPublicKey)
}

func validateDetails(details entities.DeliveryDetails) error {
	if strings.TrimSpace(details.From) == "" || strings.TrimSpace(details.To) == "" {
		return ErrMissingRequiredFields
	}
	return nil
}
