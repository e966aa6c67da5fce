package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var Avalanche Network = NewAvalanche()

type avalanche struct {
	*GenericNetwork
}

func NewAvalanche() *avalanche {
	return &avalanche{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "avalanche",
			AlternativeNames:   []string{"avax"},
			ChainID:            43114,
			NativeTokenSymbol:  "AVAX",
			NativeTokenName:    "Avalanche",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "ETHFETCH_AVALANCHE_NODE",
			DefaultNodes: map[string]string{
				"avalanche-official":   "https://api.avax.network/ext/bc/C/rpc",
				"avalanche-publicnode": "https://avalanche-c-chain-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
