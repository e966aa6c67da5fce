package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var BaseMainnet Network = NewBaseMainnet()

type baseMainnet struct {
	*GenericNetwork
}

func NewBaseMainnet() *baseMainnet {
	return &baseMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "base",
			AlternativeNames:   []string{},
			ChainID:            8453,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "ETHFETCH_BASE_NODE",
			DefaultNodes: map[string]string{
				"base-official":   "https://mainnet.base.org",
				"base-publicnode": "https://base-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
