package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	ethfetchcommon "github.com/barsava/ethfetch/common"
	"github.com/barsava/ethfetch/config"
	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/util"
)

var balanceTokens []string

var balancesCmd = &cobra.Command{
	Use:     "balances [wallets and ENS names...]",
	Aliases: []string{"balance", "b"},
	Short:   "Read token balances and metadata for a set of wallets",
	Long: `Reads balances of any number of tokens for any number of wallets in a
handful of RPC calls. Wallets may be plain addresses or ENS names, mixed
freely; commas, semicolons and newlines all work as separators.

Tokens are given with repeated --token flags or a --token-file; without
any, only the native coin balance is read. Use the 0xEeee...EEeE pseudo
address to include the native coin next to ERC20s.

With --spender, an allowance grid for that spender is fetched in the same
batch and printed as a second table.

Examples:

  ethfetch balances vitalik.eth 0xAb58...34Fd -t 0xA0b8...eB48
  ethfetch balances --wallet-file ops.txt --token-file treasury-tokens.txt
  ethfetch balances -k base vitalik.eth -t 0x8335...2913 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, names, err := gatherWallets(args)
		if err != nil {
			return err
		}
		if len(wallets)+len(names) == 0 {
			return fmt.Errorf("no wallets given, pass addresses or ENS names as arguments or via --wallet-file")
		}

		tokens, err := gatherTokens(balanceTokens)
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			tokens = []common.Address{reader.NativeTokenSentinel}
			appUI.Info("No tokens given, reading native coin balances only.")
		}

		fetcher, network, r, err := buildFetcher()
		if err != nil {
			return err
		}

		opts := reader.FetchOptions{
			WantBalances:    true,
			WantDecimals:    true,
			WantNames:       true,
			WantSymbols:     true,
			WantENS:         !config.NoENS,
			Names:           names,
			DisableBatching: config.NoBatch,
			ChunkSize:       int(config.ChunkSize),
			Concurrency:     int(config.Concurrency),
		}
		var spender common.Address
		if config.Spender != "" {
			if !ethfetchcommon.IsAddress(config.Spender) {
				return fmt.Errorf("--spender %q is not an address", config.Spender)
			}
			spender = ethfetchcommon.HexToAddress(config.Spender)
			opts.WantAllowance = true
			opts.Spender = spender
		}

		stop := appUI.Spinner(fmt.Sprintf(
			"Fetching %d token(s) for %d wallet(s) on %s",
			len(tokens), len(wallets)+len(names), network.GetName(),
		))
		result, err := fetcher.Fetch(wallets, tokens, opts)
		stop()
		if err != nil {
			return err
		}

		block := currentBlockOrZero(r)
		balanceReport := util.BuildBalanceReport(
			network.GetName(), block, result.ResolvedWallets, tokens, result, config.DefaultDecimals,
		)
		var allowanceReport *util.BalanceReport
		if opts.WantAllowance {
			allowanceReport = util.BuildAllowanceReport(
				network.GetName(), block, spender, result.ResolvedWallets, tokens, result, config.DefaultDecimals,
			)
		}

		if config.JSONOutput {
			if allowanceReport != nil {
				return printJSON(struct {
					Balances   *util.BalanceReport `json:"balances"`
					Allowances *util.BalanceReport `json:"allowances"`
				}{balanceReport, allowanceReport})
			}
			return printJSON(balanceReport)
		}

		util.PrintBalanceReport(appUI, balanceReport)
		if allowanceReport != nil {
			util.PrintBalanceReport(appUI, allowanceReport)
		}
		return nil
	},
}

func init() {
	balancesCmd.Flags().
		StringArrayVarP(&balanceTokens, "token", "t", nil, "Token address to read. Repeatable; each value may also hold several comma separated addresses.")
	balancesCmd.Flags().
		StringVar(&config.TokenFile, "token-file", "", "File with token addresses, one per line. # comments are allowed.")
	balancesCmd.Flags().
		StringVarP(&config.WalletFile, "wallet-file", "w", "", "File with wallet addresses or ENS names, one per line. # comments are allowed.")
	balancesCmd.Flags().
		StringVar(&config.Spender, "spender", "", "Also fetch each wallet's token allowance granted to this address.")
	balancesCmd.Flags().
		Uint64Var(&config.DefaultDecimals, "decimals", 18, "Decimals assumed for tokens whose decimals() call fails.")

	rootCmd.AddCommand(balancesCmd)
}
