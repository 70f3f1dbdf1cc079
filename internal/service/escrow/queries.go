package escrow

import (
	"context"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

func (s *Service) GetContract(ctx context.Context, contractID uuid.UUID) (*entities.Contract, error) {
	if !isValidContractID(contractID) {
		return nil, ErrInvalidContractID
	}

	contract, err := s.repository.GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return contract, nil
}

func (s *Service) GetStatus(ctx context.Context, contractID uuid.UUID) (entities.ContractStatus, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return "", err
	}
	return contract.Status, nil
}

// GetCourier returns "" while no courier has been accepted.
func (s *Service) GetCourier(ctx context.Context, contractID uuid.UUID) (string, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return "", err
	}
	if contract.Courier == nil {
		return "", nil
	}
	return *contract.Courier, nil
}

func (s *Service) GetFunds(ctx context.Context, contractID uuid.UUID) (*entities.Funds, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	funds := contract.Funds()
	return &funds, nil
}

func (s *Service) GetLocations(ctx context.Context, contractID uuid.UUID) (*entities.Locations, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	locations := contract.Locations()
	return &locations, nil
}

func (s *Service) GetTokenInfo(ctx context.Context, contractID uuid.UUID) (string, *entities.TokenInfo, error) {
	contract, err := s.GetContract(ctx, contractID)
	if err != nil {
		return "", nil, err
	}
	info := contract.TokenInfo
	return contract.Token, &info, nil
}
