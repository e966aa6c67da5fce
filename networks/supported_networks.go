package networks

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Matic,
	OptimismMainnet,
	BaseMainnet,
	ArbitrumMainnet,
	LineaMainnet,
	BSCMainnet,
	Avalanche,
	Fantom,
	ScrollMainnet,
	PolygonZkevmMainnet,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	res := []string{}
	for _, nw := range n.networks {
		res = append(res, nw.GetName())
		res = append(res, nw.GetAlternativeNames()...)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return res, nil
}

// suggest returns up to 3 registered names close to the queried one, used to
// build a "did you mean" hint when a lookup misses.
func (n *networks) suggest(name string) []string {
	names := n.getSupportedNetworkNames()
	matches := fuzzy.Find(name, names)
	res := []string{}
	for i := 0; i < 3 && i < len(matches); i++ {
		res = append(res, matches[i].Str)
	}
	return res
}

func (n *networks) getNetwork(name string) (Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	res, found := n.networks[name]
	if !found {
		if suggestions := n.suggest(name); len(suggestions) > 0 {
			return nil, fmt.Errorf(
				"network name '%s' (did you mean: %s?): %w",
				name, strings.Join(suggestions, ", "), ErrNetworkNotFound,
			)
		}
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func newSupportedNetworks() *networks {
	result := networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(
				fmt.Errorf(
					"network with name or alternative name of '%s' already exists",
					n.GetName(),
				),
			)
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
		for _, an := range n.GetAlternativeNames() {
			if _, found := result.networks[an]; found {
				panic(
					fmt.Errorf("network with name or alternative name of '%s' already exists", an),
				)
			}
			result.networks[an] = n
		}
	}

	// load custom networks from ~/.ethfetch/networks/
	customNetworks, err := loadCustomNetworks()
	if err != nil {
		fmt.Printf("WARNING: Failed to load custom networks: %s. Ignore and continue with built-in networks.\n", err)
		return &result
	}

	for _, n := range customNetworks {
		_, nameFound := result.networks[n.GetName()]
		if nameFound {
			fmt.Printf("Network with name '%s' already exists. Using custom network.\n", n.GetName())
		}
		_, idFound := result.networksByID[n.GetChainID()]
		if idFound {
			fmt.Printf("Network with id '%d' already exists. Using custom network.\n", n.GetChainID())
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
	}
	return &result
}

// CustomNetworksDir returns the directory custom network definitions are
// read from, ~/.ethfetch/networks.
func CustomNetworksDir() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".ethfetch", "networks"), nil
}

func loadCustomNetworks() ([]Network, error) {
	dir, err := CustomNetworksDir()
	if err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		network, err := NewNetworkFromJSON(content)
		if err != nil {
			fmt.Printf("failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}

		networks = append(networks, network)
	}

	return networks, nil
}

func GetSupportedNetworks() []Network {
	res := []Network{}
	seen := map[uint64]bool{}
	for _, n := range globalSupportedNetworks.networks {
		if seen[n.GetChainID()] {
			continue
		}
		seen[n.GetChainID()] = true
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// AddNetwork registers a network for the lifetime of the process. Persisting
// a custom network to ~/.ethfetch/networks is the caller's concern.
func AddNetwork(network Network) error {
	if network.GetName() == "" {
		return fmt.Errorf("network has no name")
	}
	globalSupportedNetworks.networks[network.GetName()] = network
	globalSupportedNetworks.networksByID[network.GetChainID()] = network

	for _, an := range network.GetAlternativeNames() {
		if _, found := globalSupportedNetworks.networks[an]; found {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", an)
		}
		globalSupportedNetworks.networks[an] = network
	}
	return nil
}
