package dto

import (
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
)

func (e *ExpirationSeconds) ToDomain() entities.ExpirationConfig {
	if e == nil {
		return entities.ExpirationConfig{}
	}
	return entities.ExpirationConfig{
		Deposit:      time.Duration(e.Deposit) * time.Second,
		Details:      time.Duration(e.Details) * time.Second,
		InDepartment: time.Duration(e.InDepartment) * time.Second,
		Delivery:     time.Duration(e.Delivery) * time.Second,
	}
}

func FromOutcome(outcome *entities.Outcome) ActionResponse {
	ids := make([]string, 0, len(outcome.Transfers))
	for _, transfer := range outcome.Transfers {
		ids = append(ids, transfer.ID.String())
	}
	return ActionResponse{
		OK:               true,
		Status:           outcome.Status.String(),
		PendingTransfers: ids,
	}
}

func FromFunds(funds *entities.Funds) FundsResponse {
	return FundsResponse{
		Deposit: entities.FormatAmount(funds.Deposit),
		Payment: entities.FormatAmount(funds.Payment),
	}
}

func FromLocations(locations *entities.Locations) LocationsResponse {
	return LocationsResponse{
		Exact:   Direction(locations.Exact),
		Rough:   Direction(locations.Rough),
		Comment: locations.Comment,
	}
}

func FromTokenInfo(address string, info *entities.TokenInfo) TokenResponse {
	return TokenResponse{
		Address:     address,
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    info.Decimals,
		TotalSupply: entities.FormatAmount(info.TotalSupply),
	}
}
