package util

import (
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/barsava/ethfetch/networks"
	"github.com/barsava/ethfetch/reader"
)

// NodesOf returns a network's endpoint urls in rotation order. URLs from
// the network's node env variable come first so operators can pin their
// own nodes ahead of the public defaults, the defaults follow sorted by
// node name. The env variable takes one url or several separated by
// commas or whitespace.
func NodesOf(network networks.Network) []string {
	urls := []string{}
	if v := strings.TrimSpace(os.Getenv(network.GetNodeVariableName())); v != "" {
		for _, u := range tokenSplitRe.Split(v, -1) {
			if u != "" {
				urls = append(urls, u)
			}
		}
	}
	defaults := network.GetDefaultNodes()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		urls = append(urls, defaults[name])
	}
	return urls
}

// BuildReader builds a reader over the network's rotating endpoint pool.
// Limiter and logger may be nil.
func BuildReader(network networks.Network, limiter *rate.Limiter, logger *zap.Logger) (*reader.EthReader, error) {
	node, err := reader.NewRotatingNodeReaderFromConfig(reader.RotatingNodeReaderConfig{
		Name:    network.GetName(),
		URLs:    NodesOf(network),
		Limiter: limiter,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return reader.NewEthReader(node), nil
}

// EthReaderFor resolves a network by name and builds its default reader.
func EthReaderFor(networkName string) (*reader.EthReader, error) {
	network, err := networks.GetNetwork(networkName)
	if err != nil {
		return nil, err
	}
	return BuildReader(network, nil, nil)
}

// FetcherConfigFor assembles a fetcher config from a network definition.
// Name resolution is bound to the same chain when the network carries an
// ENS registry, callers wanting resolution on a different chain overwrite
// the ENS fields before NewFetcher.
func FetcherConfigFor(network networks.Network, r *reader.EthReader, logger *zap.Logger) reader.FetcherConfig {
	config := reader.FetcherConfig{
		Reader:            r,
		MultiCallContract: network.MultiCallContract(),
		NativeSymbol:      network.GetNativeTokenSymbol(),
		NativeName:        network.GetNativeTokenName(),
		NativeDecimals:    network.GetNativeTokenDecimal(),
		Logger:            logger,
	}
	if syn := network.GetNativeTokenSynonym(); syn != (common.Address{}) {
		config.NativeSynonyms = []common.Address{syn}
	}
	if registry := network.GetENSRegistryContract(); registry != (common.Address{}) {
		config.ENSRegistry = registry
		config.ENSMultiCallContract = network.MultiCallContract()
	}
	return config
}

// FetcherFor resolves a network by name and builds a fetcher with default
// settings.
func FetcherFor(networkName string) (*reader.Fetcher, error) {
	network, err := networks.GetNetwork(networkName)
	if err != nil {
		return nil, err
	}
	r, err := BuildReader(network, nil, nil)
	if err != nil {
		return nil, err
	}
	return reader.NewFetcher(FetcherConfigFor(network, r, nil))
}
