package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/barsava/ethfetch/config"
	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/ui"
)

// appUI and appLogger are shared by every command. The logger starts as a
// nop so helpers are safe to call before the root pre-run replaces it.
var (
	appUI     ui.UI = ui.NewTerminalUI()
	appLogger       = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ethfetch",
	Short: "Fetch balances, token metadata and ENS names for many wallets at once",
	Long: `ethfetch reads token balances, allowances, token metadata and ENS names
for any number of wallets in as few RPC calls as possible. Lookups are
batched through the chain's Multicall3 contract and every network is backed
by a pool of public RPC endpoints that rotates away from dead or rate
limited nodes on its own.

Wallets can be given as addresses or ENS names, mixed freely, inline or via
files. The native coin is addressed with the conventional
0xEeee...EEeE pseudo address (or the chain's own alias, e.g. POL's 0x...1010).

Each network reads its RPC endpoints from its node variable (see
"ethfetch network list" for the variable names), letting you pin your own
nodes without touching any config. Defaults for flags can be kept in
~/.ethfetch/config.yaml; custom chains live in ~/.ethfetch/networks/.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().
		StringVarP(&config.Network, "network", "k", "mainnet", "Network to read from. See \"ethfetch network list\" for supported names.")
	rootCmd.PersistentFlags().
		BoolVarP(&config.Verbose, "verbose", "v", false, "Log every RPC round trip and batch decision to stderr.")
	rootCmd.PersistentFlags().
		BoolVar(&config.JSONOutput, "json", false, "Print results as JSON instead of tables.")
	rootCmd.PersistentFlags().
		StringVar(&config.MetricsListen, "metrics-listen", "", "Serve prometheus metrics on this address (e.g. :9435) for the lifetime of the command.")
	rootCmd.PersistentFlags().
		Float64Var(&config.RPS, "rps", 0, "Cap outgoing RPC requests per second. 0 means no cap.")
	rootCmd.PersistentFlags().
		Uint64Var(&config.ChunkSize, "chunk-size", 500, "Maximum calls per multicall batch.")
	rootCmd.PersistentFlags().
		Uint64Var(&config.Concurrency, "concurrency", 4, "Concurrent multicall batches in flight.")
	rootCmd.PersistentFlags().
		BoolVar(&config.NoBatch, "no-batch", false, "Skip the multicall contract and issue one eth_call per lookup.")
	rootCmd.PersistentFlags().
		StringVar(&config.ENSNetwork, "ens-network", "", "Resolve ENS names on this network instead of the one balances are read from.")
	rootCmd.PersistentFlags().
		BoolVar(&config.NoENS, "no-ens", false, "Skip reverse ENS lookups for wallet display names.")

	rootCmd.PersistentPreRunE = preRun

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func preRun(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	fileCfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	applyFileConfig(cmd, fileCfg)

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("couldn't set up logging: %w", err)
	}
	appLogger = logger

	if config.MetricsListen != "" {
		serveMetrics(config.MetricsListen, appLogger)
	}
	return nil
}

// applyFileConfig fills flag values from ~/.ethfetch/config.yaml without
// overriding anything the user passed explicitly, so precedence stays
// flag > file > built-in default.
func applyFileConfig(cmd *cobra.Command, fileCfg *config.FileConfig) {
	flags := cmd.Flags()
	if fileCfg.Network != "" && !flags.Changed("network") {
		config.Network = fileCfg.Network
	}
	if fileCfg.RPS > 0 && !flags.Changed("rps") {
		config.RPS = fileCfg.RPS
	}
	if fileCfg.ChunkSize > 0 && !flags.Changed("chunk-size") {
		config.ChunkSize = fileCfg.ChunkSize
	}
	if fileCfg.Concurrency > 0 && !flags.Changed("concurrency") {
		config.Concurrency = fileCfg.Concurrency
	}
	if fileCfg.DefaultDecimals > 0 && !flags.Changed("decimals") {
		config.DefaultDecimals = fileCfg.DefaultDecimals
	}
	if fileCfg.Spender != "" && !flags.Changed("spender") {
		config.Spender = fileCfg.Spender
	}
	if fileCfg.ENSNetwork != "" && !flags.Changed("ens-network") {
		config.ENSNetwork = fileCfg.ENSNetwork
	}
	if fileCfg.MetricsListen != "" && !flags.Changed("metrics-listen") {
		config.MetricsListen = fileCfg.MetricsListen
	}

	// Throttle markers are additive, the built-in lists stay.
	for _, token := range fileCfg.RateLimitTokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			reader.RateLimitTokens = append(reader.RateLimitTokens, token)
		}
	}
	reader.RateLimitCodes = append(reader.RateLimitCodes, fileCfg.RateLimitCodes...)
}

// buildLogger keeps stdout clean for results: logs always go to stderr,
// and without --verbose only warnings and errors surface.
func buildLogger() (*zap.Logger, error) {
	if config.Verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func serveMetrics(listen string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(listen, mux); err != nil {
			logger.Warn("metrics endpoint stopped", zap.Error(err))
		}
	}()
}
