package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalFromBigInt scales a raw on-chain integer amount by the asset's
// decimal places. Example: amount=1234500000000000000, decimals=18 => 1.2345.
func DecimalFromBigInt(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}

// DecimalFromUint64 scales a raw integer amount by the asset's decimal
// places.
func DecimalFromUint64(amount uint64, decimals int32) decimal.Decimal {
	return DecimalFromBigInt(new(big.Int).SetUint64(amount), decimals)
}

// DecimalFromRawString parses a base-10 raw integer amount (as chains like
// NEAR and Sui report it) and scales it by decimals.
func DecimalFromRawString(raw string, decimals int32) (decimal.Decimal, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid raw amount %q", raw)
	}
	return DecimalFromBigInt(v, decimals), nil
}

// DecimalFromHex parses a 0x-prefixed hex amount and scales it by decimals.
func DecimalFromHex(hexStr string, decimals int32) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hexStr), "0x")
	if s == "" {
		return decimal.Zero, nil
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid hex amount %q", hexStr)
	}
	return DecimalFromBigInt(v, decimals), nil
}
