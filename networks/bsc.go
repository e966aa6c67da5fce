package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var BSCMainnet Network = NewBSCMainnet()

type bscMainnet struct {
	*GenericNetwork
}

func NewBSCMainnet() *bscMainnet {
	return &bscMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "bsc",
			AlternativeNames:   []string{"binance", "bnb"},
			ChainID:            56,
			NativeTokenSymbol:  "BNB",
			NativeTokenName:    "BNB",
			NativeTokenDecimal: 18,
			BlockTime:          3,
			NodeVariableName:   "ETHFETCH_BSC_NODE",
			DefaultNodes: map[string]string{
				"bsc-dataseed":   "https://bsc-dataseed.bnbchain.org",
				"bsc-publicnode": "https://bsc-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
