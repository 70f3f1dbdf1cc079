package transfer

import (
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
)

func ToDomain(t *PendingTransferDB) (*entities.PendingTransfer, error) {
	if t == nil {
		return nil, nil
	}

	amount, err := entities.ParseAmount(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("transfer amount %q: %w", t.Amount, err)
	}

	return &entities.PendingTransfer{
		ID:           t.ID,
		ContractID:   t.ContractID,
		Tag:          entities.TransferTag(t.Tag),
		Kind:         entities.TransferKind(t.Kind),
		Token:        t.Token,
		From:         t.FromAddress,
		To:           t.ToAddress,
		Amount:       amount,
		CreatedAt:    t.CreatedAt,
		DispatchedAt: t.DispatchedAt,
	}, nil
}

func FromDomain(t *entities.PendingTransfer) *PendingTransferDB {
	if t == nil {
		return nil
	}
	return &PendingTransferDB{
		ID:           t.ID,
		ContractID:   t.ContractID,
		Tag:          int16(t.Tag), //nolint:gosec // tags are 1..5
		Kind:         string(t.Kind),
		Token:        t.Token,
		FromAddress:  t.From,
		ToAddress:    t.To,
		Amount:       entities.FormatAmount(t.Amount),
		CreatedAt:    t.CreatedAt,
		DispatchedAt: t.DispatchedAt,
	}
}
