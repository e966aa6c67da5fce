package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var Fantom Network = NewFantom()

type fantom struct {
	*GenericNetwork
}

func NewFantom() *fantom {
	return &fantom{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "fantom",
			AlternativeNames:   []string{"ftm"},
			ChainID:            250,
			NativeTokenSymbol:  "FTM",
			NativeTokenName:    "Fantom",
			NativeTokenDecimal: 18,
			BlockTime:          1,
			NodeVariableName:   "ETHFETCH_FANTOM_NODE",
			DefaultNodes: map[string]string{
				"fantom-official":   "https://rpc.ftm.tools",
				"fantom-publicnode": "https://fantom-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		}),
	}
}
