package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/barsava/ethfetch/config"
	"github.com/barsava/ethfetch/networks"
	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/util"
)

// requestLimiter turns the --rps flag into a limiter shared by every node
// in the pool. nil means uncapped.
func requestLimiter() *rate.Limiter {
	if config.RPS <= 0 {
		return nil
	}
	burst := int(config.RPS)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(config.RPS), burst)
}

// buildFetcher assembles the fetch engine for the selected network,
// rebinding ENS resolution to --ens-network when one is given. The reader
// is returned alongside for direct queries like the current block number.
func buildFetcher() (*reader.Fetcher, networks.Network, *reader.EthReader, error) {
	network, err := networks.GetNetwork(config.Network)
	if err != nil {
		return nil, nil, nil, err
	}

	limiter := requestLimiter()
	r, err := util.BuildReader(network, limiter, appLogger)
	if err != nil {
		return nil, nil, nil, err
	}

	fc := util.FetcherConfigFor(network, r, appLogger)
	if config.ENSNetwork != "" {
		ensNet, err := networks.GetNetwork(config.ENSNetwork)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("--ens-network: %w", err)
		}
		registry := ensNet.GetENSRegistryContract()
		if registry == (common.Address{}) {
			return nil, nil, nil, fmt.Errorf("network %s hosts no ENS registry", ensNet.GetName())
		}
		ensReader, err := util.BuildReader(ensNet, limiter, appLogger)
		if err != nil {
			return nil, nil, nil, err
		}
		fc.ENSReader = ensReader
		fc.ENSRegistry = registry
		fc.ENSMultiCallContract = ensNet.MultiCallContract()
	}

	fetcher, err := reader.NewFetcher(fc)
	if err != nil {
		return nil, nil, nil, err
	}
	return fetcher, network, r, nil
}

// gatherWallets collects wallet addresses and ENS names from command
// arguments plus --wallet-file, warning about anything unparseable.
func gatherWallets(args []string) ([]common.Address, []string, error) {
	addrs, names, junk := util.ParseWalletsBlob(strings.Join(args, " "))
	if config.WalletFile != "" {
		fileAddrs, fileNames, fileJunk, err := util.LoadWalletsFile(config.WalletFile)
		if err != nil {
			return nil, nil, err
		}
		addrs = append(addrs, fileAddrs...)
		names = append(names, fileNames...)
		junk = append(junk, fileJunk...)
	}
	for _, j := range junk {
		appUI.Warn("Ignoring %q: neither an address nor an ENS name", j)
	}
	return addrs, names, nil
}

// gatherTokens collects token addresses from --token flags plus
// --token-file. The merged list is deduplicated so a token listed in both
// places gets one column, not two.
func gatherTokens(tokenArgs []string) ([]common.Address, error) {
	addrs, junk := util.ParseAddressesBlob(strings.Join(tokenArgs, " "))
	if config.TokenFile != "" {
		fileAddrs, fileJunk, err := util.LoadAddressesFile(config.TokenFile)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, fileAddrs...)
		junk = append(junk, fileJunk...)
	}
	for _, j := range junk {
		appUI.Warn("Ignoring token %q: not an address", j)
	}
	seen := map[common.Address]bool{}
	tokens := make([]common.Address, 0, len(addrs))
	for _, a := range addrs {
		if seen[a] {
			continue
		}
		seen[a] = true
		tokens = append(tokens, a)
	}
	return tokens, nil
}

// printJSON writes v to stdout as indented JSON. StyledText fields
// serialize as plain strings, no ANSI codes leak into the output.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// currentBlockOrZero fetches the block number for report headers; display
// is best effort so a failure only logs.
func currentBlockOrZero(r *reader.EthReader) uint64 {
	block, err := r.CurrentBlock()
	if err != nil {
		appLogger.Warn("couldn't read current block for the report header", zap.Error(err))
		return 0
	}
	return block
}
