package common

import (
	"fmt"
	"math/big"
	"strings"
)

// BigToFloat converts a big int to float according to its number of decimal digits
// Example:
// - BigToFloat(1100, 3) = 1.1
// - BigToFloat(1100, 2) = 11
// - BigToFloat(1100, 5) = 0.011
func BigToFloat(b *big.Int, decimal uint64) float64 {
	f := new(big.Float).SetInt(b)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	result, _ := res.Float64()
	return result
}

// BigToFloatString renders b scaled down by decimal digits without going
// through float64, so very large balances keep full precision.
// Trailing zeros and a trailing dot are trimmed: 1100 with 3 decimals is
// "1.1", 1000 with 3 decimals is "1".
func BigToFloatString(value *big.Int, decimal uint64) string {
	if decimal == 0 {
		return value.String()
	}
	f := new(big.Float).SetPrec(256).SetInt(value)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	s := strings.TrimRight(res.Text('f', int(decimal)), "0")
	return strings.TrimSuffix(s, ".")
}

func StringToBigInt(str string) (*big.Int, error) {
	result, success := big.NewInt(0).SetString(str, 10)
	if !success {
		return nil, fmt.Errorf("parsed %s to big int failed", str)
	}
	return result, nil
}
