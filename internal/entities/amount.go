package entities

import (
	"errors"
	"math/big"
)

var ErrMalformedAmount = errors.New("malformed amount")

// ParseAmount parses a non-negative base-10 integer amount.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, ErrMalformedAmount
	}
	return v, nil
}

func FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
