package ledger

import (
	"fmt"
	"math"
	"math/big"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldToken       = "token"
	fieldAddress     = "address"
	fieldAmount      = "amount"
	fieldName        = "name"
	fieldSymbol      = "symbol"
	fieldDecimals    = "decimals"
	fieldTotalSupply = "total_supply"
)

func balanceRequest(token, address string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldToken:   structpb.NewStringValue(token),
		fieldAddress: structpb.NewStringValue(address),
	}}
}

func tokenInfoRequest(token string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldToken: structpb.NewStringValue(token),
	}}
}

func toBalance(resp *structpb.Struct) (*big.Int, error) {
	if resp == nil {
		return nil, ErrMalformedResponse
	}

	amount, err := entities.ParseAmount(resp.GetFields()[fieldAmount].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("%w: balance: %w", ErrMalformedResponse, err)
	}
	return amount, nil
}

func toTokenInfo(resp *structpb.Struct) (*entities.TokenInfo, error) {
	if resp == nil {
		return nil, ErrMalformedResponse
	}
	fields := resp.GetFields()

	decimals := fields[fieldDecimals].GetNumberValue()
	if decimals < 0 || decimals > math.MaxUint8 || decimals != math.Trunc(decimals) {
		return nil, fmt.Errorf("%w: decimals %v", ErrMalformedResponse, decimals)
	}

	totalSupply, err := entities.ParseAmount(fields[fieldTotalSupply].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("%w: total supply: %w", ErrMalformedResponse, err)
	}

	return &entities.TokenInfo{
		Name:        fields[fieldName].GetStringValue(),
		Symbol:      fields[fieldSymbol].GetStringValue(),
		Decimals:    uint32(decimals),
		TotalSupply: totalSupply,
	}, nil
}
