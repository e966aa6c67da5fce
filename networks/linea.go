package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var LineaMainnet Network = NewLineaMainnet()

type lineaMainnet struct {
	*GenericNetwork
}

func NewLineaMainnet() *lineaMainnet {
	return &lineaMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "linea",
			AlternativeNames:   []string{},
			ChainID:            59144,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          2,
			NodeVariableName:   "ETHFETCH_LINEA_NODE",
			DefaultNodes: map[string]string{
				"linea-official":   "https://rpc.linea.build",
				"linea-publicnode": "https://linea-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
