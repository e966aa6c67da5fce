package reader

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/text/unicode/norm"

	ethfetchcommon "github.com/barsava/ethfetch/common"
)

// ENSReader resolves names through an ENS registry. It runs each direction
// as two batched rounds: ask the registry for every node's resolver, then
// group nodes by resolver and query each resolver once. The reader is
// bound to its own batch executor so name resolution can live on a
// different chain than the balances being fetched.
type ENSReader struct {
	mc       *MultiCallReader
	registry common.Address
}

func NewENSReader(mc *MultiCallReader, registry common.Address) *ENSReader {
	return &ENSReader{
		mc:       mc,
		registry: registry,
	}
}

// NormalizeName brings a name into the form ENS nodes are derived from.
// Full UTS-46 processing is out of scope, trimming, lowercasing and NFC
// cover the names seen in practice.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// Namehash derives the ENS node of a name, keccak folded over the labels
// in reverse order. The empty name is the zero node.
func Namehash(name string) common.Hash {
	node := common.Hash{}
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), labelHash)
	}
	return node
}

// ReverseNode derives the node of the reverse record of an address,
// "<hex-address>.addr.reverse" with the hex lowercased and unprefixed.
func ReverseNode(addr common.Address) common.Hash {
	hex := strings.ToLower(addr.Hex()[2:])
	return Namehash(hex + ".addr.reverse")
}

// ResolveNames forward-resolves names to addresses. The returned map is
// keyed by normalized name and only contains names that resolved, a name
// with no resolver or a zero address record is simply absent.
func (er *ENSReader) ResolveNames(names []string) (map[string]common.Address, error) {
	out := map[string]common.Address{}
	if len(names) == 0 {
		return out, nil
	}

	normalized := []string{}
	seen := map[string]bool{}
	for _, name := range names {
		n := NormalizeName(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}

	nodes := make([]common.Hash, len(normalized))
	for i, n := range normalized {
		nodes[i] = Namehash(n)
	}

	resolvers, err := er.resolverOf(nodes)
	if err != nil {
		return nil, err
	}

	groups := groupByResolver(normalized, nodes, resolvers)
	err = er.queryResolverGroups(groups, "addr")
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		for i, res := range g.results {
			if !res.Success {
				continue
			}
			addr, ok := DecodeAddress(res.ReturnData)
			if !ok || addr == (common.Address{}) {
				continue
			}
			out[g.keys[i]] = addr
		}
	}
	return out, nil
}

// LookupNames reverse-resolves addresses to names. The returned map only
// contains addresses carrying a reverse record with a non-empty name.
func (er *ENSReader) LookupNames(addrs []common.Address) (map[common.Address]string, error) {
	out := map[common.Address]string{}
	if len(addrs) == 0 {
		return out, nil
	}

	wallets := []common.Address{}
	seen := map[common.Address]bool{}
	for _, a := range addrs {
		if seen[a] {
			continue
		}
		seen[a] = true
		wallets = append(wallets, a)
	}

	keys := make([]string, len(wallets))
	nodes := make([]common.Hash, len(wallets))
	for i, a := range wallets {
		keys[i] = a.Hex()
		nodes[i] = ReverseNode(a)
	}

	resolvers, err := er.resolverOf(nodes)
	if err != nil {
		return nil, err
	}

	groups := groupByResolver(keys, nodes, resolvers)
	err = er.queryResolverGroups(groups, "name")
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		for i, res := range g.results {
			if !res.Success {
				continue
			}
			name, ok := DecodeString(res.ReturnData)
			if !ok {
				continue
			}
			out[ethfetchcommon.HexToAddress(g.keys[i])] = name
		}
	}
	return out, nil
}

// resolverOf asks the registry for every node's resolver in one batch. A
// failed lookup yields the zero address, meaning unresolved.
func (er *ENSReader) resolverOf(nodes []common.Hash) ([]common.Address, error) {
	registryABI := ethfetchcommon.GetENSRegistryABI()
	calls := make([]Call, len(nodes))
	for i, node := range nodes {
		data, err := registryABI.Pack("resolver", node)
		if err != nil {
			return nil, err
		}
		calls[i] = Call{Target: er.registry, Data: data, Kind: ReturnAddress}
	}
	results, err := er.mc.Aggregate(calls, true)
	if err != nil {
		return nil, err
	}
	resolvers := make([]common.Address, len(nodes))
	for i, res := range results {
		if !res.Success {
			continue
		}
		if addr, ok := DecodeAddress(res.ReturnData); ok {
			resolvers[i] = addr
		}
	}
	return resolvers, nil
}

// resolverGroup collects the nodes registered with one resolver so they
// can be queried as a single batch in the second round.
type resolverGroup struct {
	resolver common.Address
	keys     []string
	nodes    []common.Hash
	results  []CallResult
}

func groupByResolver(keys []string, nodes []common.Hash, resolvers []common.Address) []*resolverGroup {
	order := []*resolverGroup{}
	byResolver := map[common.Address]*resolverGroup{}
	for i, r := range resolvers {
		if r == (common.Address{}) {
			continue
		}
		g, ok := byResolver[r]
		if !ok {
			g = &resolverGroup{resolver: r}
			byResolver[r] = g
			order = append(order, g)
		}
		g.keys = append(g.keys, keys[i])
		g.nodes = append(g.nodes, nodes[i])
	}
	return order
}

// queryResolverGroups runs the second round, one batch per resolver, all
// resolvers in parallel. Each group keeps its own result slice so the
// merge after the join needs no locking.
func (er *ENSReader) queryResolverGroups(groups []*resolverGroup, method string) error {
	resolverABI := ethfetchcommon.GetENSResolverABI()
	kind := ReturnAddress
	if method == "name" {
		kind = ReturnString
	}

	funcs := []func() error{}
	for _, g := range groups {
		g := g
		funcs = append(funcs, func() error {
			calls := make([]Call, len(g.nodes))
			for i, node := range g.nodes {
				data, err := resolverABI.Pack(method, node)
				if err != nil {
					return err
				}
				calls[i] = Call{Target: g.resolver, Data: data, Kind: kind}
			}
			results, err := er.mc.Aggregate(calls, true)
			if err != nil {
				return err
			}
			g.results = results
			return nil
		})
	}
	err, _ := ethfetchcommon.RunParallel(funcs...)
	return err
}
