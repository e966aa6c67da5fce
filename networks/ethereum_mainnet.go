package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var EthereumMainnet Network = NewEthereumMainnet()

type ethereumMainnet struct {
	*GenericNetwork
}

func NewEthereumMainnet() *ethereumMainnet {
	return &ethereumMainnet{
		GenericNetwork: NewGenericNetwork(GenericNetworkConfig{
			Name:               "mainnet",
			AlternativeNames:   []string{"ethereum", "eth"},
			ChainID:            1,
			NativeTokenSymbol:  "ETH",
			NativeTokenName:    "Ether",
			NativeTokenDecimal: 18,
			BlockTime:          12,
			NodeVariableName:   "ETHFETCH_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"mainnet-llama":      "https://eth.llamarpc.com",
				"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
			},
			MultiCallContractAddress: common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
			ENSRegistryAddress:       common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
		}),
	}
}
