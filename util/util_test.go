package util_test

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/barsava/ethfetch/networks"
	"github.com/barsava/ethfetch/util"
)

func testNetwork(registry ethcommon.Address) networks.Network {
	return networks.NewGenericNetwork(networks.GenericNetworkConfig{
		Name:               "buildernet",
		ChainID:            616161,
		NativeTokenSymbol:  "BLD",
		NativeTokenName:    "Builder Coin",
		NativeTokenDecimal: 18,
		NativeTokenSynonym: ethcommon.HexToAddress("0x0000000000000000000000000000000000001010"),
		NodeVariableName:   "ETHFETCH_BUILDERNET_NODE",
		DefaultNodes: map[string]string{
			"builder-b": "https://b.example.org",
			"builder-a": "https://a.example.org",
		},
		MultiCallContractAddress: ethcommon.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		ENSRegistryAddress:       registry,
	})
}

func TestNodesOfSortsDefaultsByName(t *testing.T) {
	t.Setenv("ETHFETCH_BUILDERNET_NODE", "")
	got := util.NodesOf(testNetwork(ethcommon.Address{}))
	want := []string{"https://a.example.org", "https://b.example.org"}
	if len(got) != len(want) {
		t.Fatalf("urls: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("urls[%d]: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNodesOfPutsEnvNodesFirst(t *testing.T) {
	t.Setenv("ETHFETCH_BUILDERNET_NODE", " https://mine1.example.org, https://mine2.example.org ")
	got := util.NodesOf(testNetwork(ethcommon.Address{}))
	want := []string{
		"https://mine1.example.org",
		"https://mine2.example.org",
		"https://a.example.org",
		"https://b.example.org",
	}
	if len(got) != len(want) {
		t.Fatalf("urls: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("urls[%d]: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFetcherConfigForBindsChainDetails(t *testing.T) {
	registry := ethcommon.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
	network := testNetwork(registry)

	config := util.FetcherConfigFor(network, nil, nil)
	if config.NativeSymbol != "BLD" || config.NativeName != "Builder Coin" || config.NativeDecimals != 18 {
		t.Errorf("native metadata not carried over: %q %q %d",
			config.NativeSymbol, config.NativeName, config.NativeDecimals)
	}
	if len(config.NativeSynonyms) != 1 ||
		config.NativeSynonyms[0] != ethcommon.HexToAddress("0x0000000000000000000000000000000000001010") {
		t.Errorf("native synonym not carried over: %v", config.NativeSynonyms)
	}
	if config.MultiCallContract != network.MultiCallContract() {
		t.Errorf("multicall contract not carried over: %s", config.MultiCallContract.Hex())
	}
	if config.ENSRegistry != registry {
		t.Errorf("ENS registry not carried over: %s", config.ENSRegistry.Hex())
	}
	if config.ENSMultiCallContract != network.MultiCallContract() {
		t.Errorf("ENS multicall not bound to the same chain: %s", config.ENSMultiCallContract.Hex())
	}
}

func TestFetcherConfigForWithoutENSOrSynonym(t *testing.T) {
	config := util.FetcherConfigFor(testNetworkBare(), nil, nil)
	if config.ENSRegistry != (ethcommon.Address{}) {
		t.Errorf("want no ENS registry, got %s", config.ENSRegistry.Hex())
	}
	if len(config.NativeSynonyms) != 0 {
		t.Errorf("want no native synonyms, got %v", config.NativeSynonyms)
	}
}

func testNetworkBare() networks.Network {
	return networks.NewGenericNetwork(networks.GenericNetworkConfig{
		Name:    "barebuildernet",
		ChainID: 626262,
	})
}
