package networks

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetNativeTokenName() string
	GetNativeTokenDecimal() uint64
	// GetNativeTokenSynonym returns a chain specific ERC-20-looking alias for
	// the native coin (eg. Polygon's 0x...1010 precompile), zero address when
	// the chain has none.
	GetNativeTokenSynonym() common.Address
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// MultiCallContract returns the Multicall3 deployment used for batched
	// reads, zero address when the chain has none.
	MultiCallContract() common.Address
	// GetENSRegistryContract returns the ENS registry when the chain hosts
	// one natively, zero address otherwise.
	GetENSRegistryContract() common.Address
}
