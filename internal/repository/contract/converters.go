package contract

import (
	"fmt"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
)

func ToDomain(c *ContractDB) (*entities.Contract, error) {
	if c == nil {
		return nil, nil
	}

	payment, err := entities.ParseAmount(c.PaymentAmount)
	if err != nil {
		return nil, fmt.Errorf("payment amount %q: %w", c.PaymentAmount, err)
	}
	deposit, err := entities.ParseAmount(c.DepositAmount)
	if err != nil {
		return nil, fmt.Errorf("deposit amount %q: %w", c.DepositAmount, err)
	}
	totalSupply, err := entities.ParseAmount(c.TokenTotalSupply)
	if err != nil {
		return nil, fmt.Errorf("token total supply %q: %w", c.TokenTotalSupply, err)
	}

	contract := &entities.Contract{
		ID:           c.ID,
		Address:      c.Address,
		AddressIndex: uint32(c.AddressIndex), //nolint:gosec // sequence is capped at 2^31-1
		Owner:        c.Owner,
		Courier:      c.Courier,
		Status:       entities.ContractStatus(c.Status),
		Token:        c.Token,
		TokenInfo: entities.TokenInfo{
			Name:        c.TokenName,
			Symbol:      c.TokenSymbol,
			Decimals:    uint32(c.TokenDecimals), //nolint:gosec // non-negative by construction
			TotalSupply: totalSupply,
		},
		ConfirmPublicKey: c.ConfirmPublicKey,
		PaymentAmount:    payment,
		DepositAmount:    deposit,
		Rough:            entities.Direction{From: c.RoughFrom, To: c.RoughTo},
		ExactFrom:        c.ExactFrom,
		ExactTo:          c.ExactTo,
		Comment:          c.Comment,
		Expiration: entities.ExpirationConfig{
			Deposit:      fromMillis(c.ExpirationDepositMs),
			Details:      fromMillis(c.ExpirationDetailsMs),
			InDepartment: fromMillis(c.ExpirationInDepartmentMs),
			Delivery:     fromMillis(c.ExpirationDeliveryMs),
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.WindowFixedAt != nil && c.WindowDurationMs != nil {
		contract.Window = &entities.ExpirationWindow{
			FixedAt:  c.WindowFixedAt.UTC(),
			Duration: fromMillis(*c.WindowDurationMs),
		}
	}

	return contract, nil
}

func FromDomain(c *entities.Contract) *ContractDB {
	if c == nil {
		return nil
	}

	contractDB := &ContractDB{
		ID:                       c.ID,
		Address:                  c.Address,
		AddressIndex:             int64(c.AddressIndex),
		Owner:                    c.Owner,
		Courier:                  c.Courier,
		Status:                   c.Status.String(),
		Token:                    c.Token,
		TokenName:                c.TokenInfo.Name,
		TokenSymbol:              c.TokenInfo.Symbol,
		TokenDecimals:            int32(c.TokenInfo.Decimals), //nolint:gosec // token decimals are small
		TokenTotalSupply:         entities.FormatAmount(c.TokenInfo.TotalSupply),
		ConfirmPublicKey:         c.ConfirmPublicKey,
		PaymentAmount:            entities.FormatAmount(c.PaymentAmount),
		DepositAmount:            entities.FormatAmount(c.DepositAmount),
		RoughFrom:                c.Rough.From,
		RoughTo:                  c.Rough.To,
		ExactFrom:                c.ExactFrom,
		ExactTo:                  c.ExactTo,
		Comment:                  c.Comment,
		ExpirationDepositMs:      c.Expiration.Deposit.Milliseconds(),
		ExpirationDetailsMs:      c.Expiration.Details.Milliseconds(),
		ExpirationInDepartmentMs: c.Expiration.InDepartment.Milliseconds(),
		ExpirationDeliveryMs:     c.Expiration.Delivery.Milliseconds(),
	}

	if c.Window != nil {
		fixedAt := c.Window.FixedAt
		durationMs := c.Window.Duration.Milliseconds()
		contractDB.WindowFixedAt = &fixedAt
		contractDB.WindowDurationMs = &durationMs
	}

	return contractDB
}

func FromDomainModify(c *entities.ContractModify) *ContractModifyDB {
	if c == nil {
		return nil
	}
	modifyDB := &ContractModifyDB{
		ID:           c.ID,
		Courier:      c.Courier,
		ExactFrom:    c.ExactFrom,
		ExactTo:      c.ExactTo,
		Comment:      c.Comment,
		ClearCourier: c.ClearCourier,
		ClearDetails: c.ClearDetails,
		ClearWindow:  c.ClearWindow,
	}

	if c.Status != nil {
		status := c.Status.String()
		modifyDB.Status = &status
	}
	if c.Window != nil {
		fixedAt := c.Window.FixedAt
		durationMs := c.Window.Duration.Milliseconds()
		modifyDB.WindowFixedAt = &fixedAt
		modifyDB.WindowDurationMs = &durationMs
	}

	return modifyDB
}

func fromMillis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
