package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barsava/ethfetch/config"
	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/util"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve [names and addresses...]",
	Aliases: []string{"ens"},
	Short:   "Resolve ENS names to addresses and addresses to primary names",
	Long: `Resolves every argument in the right direction: ENS names forward to
addresses, addresses in reverse to their primary name. Lookups are batched
through the multicall contract, so resolving hundreds of entries costs only
a few RPC calls.

An entry that does not resolve prints "?", distinguishing "asked, got
nothing" from an entry that never parsed. Use --ens-network to resolve
against another chain's registry, e.g. when reading an L2 whose names live
on mainnet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, names, err := gatherWallets(args)
		if err != nil {
			return err
		}
		if len(wallets)+len(names) == 0 {
			return fmt.Errorf("nothing to resolve, pass ENS names or addresses as arguments")
		}

		fetcher, network, _, err := buildFetcher()
		if err != nil {
			return err
		}

		opts := reader.FetchOptions{
			WantENS:         len(wallets) > 0,
			Names:           names,
			DisableBatching: config.NoBatch,
			ChunkSize:       int(config.ChunkSize),
			Concurrency:     int(config.Concurrency),
		}

		stop := appUI.Spinner(fmt.Sprintf(
			"Resolving %d entries on %s", len(wallets)+len(names), network.GetName(),
		))
		result, err := fetcher.Fetch(wallets, nil, opts)
		stop()
		if err != nil {
			return err
		}

		report := util.BuildResolveReport(network.GetName(), names, wallets, result)
		if config.JSONOutput {
			return printJSON(report)
		}
		util.PrintResolveReport(appUI, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
