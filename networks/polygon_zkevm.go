package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var PolygonZkevmMainnet Network = NewPolygonZkevmMainnet()

type polygonZkevmMainnet struct {
	*GenericNetwork
}

func NewPolygonZkevmMainnet() *polygonZkevmMainnet {
	return &polygonZkevmMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "polygon-zkevm",
			AlternativeNames:   []string{"zkevm"},
			ChainID:            1101,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          3,
			NodeVariableName:   "ETHFETCH_POLYGON_ZKEVM_NODE",
			DefaultNodes: map[string]string{
				"zkevm-official": "https://zkevm-rpc.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
