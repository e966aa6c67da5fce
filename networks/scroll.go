package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var ScrollMainnet Network = NewScrollMainnet()

type scrollMainnet struct {
	*GenericNetwork
}

func NewScrollMainnet() *scrollMainnet {
	return &scrollMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "scroll",
			AlternativeNames:   []string{},
			ChainID:            534352,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          3,
			NodeVariableName:   "ETHFETCH_SCROLL_NODE",
			DefaultNodes: map[string]string{
				"scroll-official":   "https://rpc.scroll.io",
				"scroll-publicnode": "https://scroll-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
