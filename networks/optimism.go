package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var OptimismMainnet Network = NewOptimismMainnet()

type optimismMainnet struct {
	*GenericNetwork
}

func NewOptimismMainnet() *optimismMainnet {
	return &optimismMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "optimism",
			AlternativeNames:   []string{"op"},
			ChainID:            10,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "ETHFETCH_OPTIMISM_NODE",
			DefaultNodes: map[string]string{
				"optimism-official":   "https://mainnet.optimism.io",
				"optimism-publicnode": "https://optimism-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
