package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// The ABI strings in abis.go are static and known-good, hence the ignored
// errors in the getters below.

func GetERC20ABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(erc20abi))
	return &result
}

func GetMultiCallABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(multicall3abi))
	return &result
}

func GetENSRegistryABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(ensregistryabi))
	return &result
}

func GetENSResolverABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(ensresolverabi))
	return &result
}

func PackERC20Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC20ABI().Pack(function, params...)
}

// HexToAddress forgives surrounding whitespace so values copied out of
// spreadsheets or chat messages parse the same as clean input.
func HexToAddress(hex string) common.Address {
	return common.HexToAddress(strings.TrimSpace(hex))
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, HexToAddress(h))
	}
	return result
}

func HexToHash(hex string) common.Hash {
	return common.HexToHash(hex)
}

// IsAddress reports whether str parses as a 20-byte hex address after
// trimming whitespace. Both 0x-prefixed and bare forms are accepted.
func IsAddress(str string) bool {
	return common.IsHexAddress(strings.TrimSpace(str))
}
