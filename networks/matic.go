package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var Matic Network = NewMatic()

type matic struct {
	*GenericNetwork
}

func NewMatic() *matic {
	return &matic{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "matic",
			AlternativeNames:   []string{"polygon"},
			ChainID:            137,
			NativeTokenSymbol:  "MATIC",
			NativeTokenName:    "Matic",
			NativeTokenDecimal: 18,
			// Polygon also exposes the native coin through the MRC-20
			// precompile, callers use it interchangeably with the sentinel.
			NativeTokenSynonym: common.HexToAddress("0x0000000000000000000000000000000000001010"),
			BlockTime:          2,
			NodeVariableName:   "ETHFETCH_MATIC_NODE",
			DefaultNodes: map[string]string{
				"matic-official":   "https://polygon-rpc.com",
				"matic-publicnode": "https://polygon-bor-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
