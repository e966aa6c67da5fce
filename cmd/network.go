package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/barsava/ethfetch/networks"
	"github.com/barsava/ethfetch/util"
)

var (
	networkConfigFlag string
	networkForceFlag  bool
)

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--config takes a network config json filepath OR an inline json string in
the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1", "alternative_name_2"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_name": "Ether",
		"native_token_decimal": 18,
		"block_time": 12,
		"node_variable_name": "ETHFETCH_MYCHAIN_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1",
			"node_name_2": "node_url_2"
		},
		"multi_call_contract_address": "0xcA11bde05977b3631167028862bE2a173976CA11",
		"ens_registry_address": "0x0000000000000000000000000000000000000000"
	}

The network is saved to ~/.ethfetch/networks/ and picked up by every later
run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := strings.TrimSpace(networkConfigFlag)
		if cfg == "" {
			return fmt.Errorf("--config is required, pass a json file path or an inline json string")
		}

		var content []byte
		if strings.HasPrefix(cfg, "{") && strings.HasSuffix(cfg, "}") {
			content = []byte(cfg)
		} else {
			var err error
			content, err = os.ReadFile(cfg)
			if err != nil {
				return fmt.Errorf("couldn't read the provided json file: %w", err)
			}
		}

		newNetwork, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return fmt.Errorf("the provided json is not a valid network config: %w", err)
		}

		allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range allNames {
			if _, err := networks.GetNetwork(name); err == nil && !networkForceFlag {
				return fmt.Errorf(
					"network with name %s already exists, use --force to replace it", name,
				)
			}
		}

		if err := networks.AddNetwork(newNetwork); err != nil {
			return fmt.Errorf("failed to add the new network: %w", err)
		}

		dir, err := networks.CustomNetworksDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("couldn't create %s: %w", dir, err)
		}
		persisted, err := json.MarshalIndent(newNetwork, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(dir, newNetwork.GetName()+".json")
		if err := os.WriteFile(path, persisted, 0o644); err != nil {
			return fmt.Errorf("couldn't save the network config: %w", err)
		}

		appUI.Success(
			"Network %s with chain ID %d added and saved to %s.",
			newNetwork.GetName(), newNetwork.GetChainID(), path,
		)
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all supported networks and their RPC endpoints",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		for i, n := range networks.GetSupportedNetworks() {
			appUI.Info("%d. %s (chain id %d)", i+1, n.GetName(), n.GetChainID())
			sub := appUI.Indent()
			if alts := n.GetAlternativeNames(); len(alts) > 0 {
				sub.Info("also known as: %s", strings.Join(alts, ", "))
			}
			sub.Info("native coin: %s (%d decimals)", n.GetNativeTokenSymbol(), n.GetNativeTokenDecimal())
			if n.MultiCallContract() == (common.Address{}) {
				sub.Warn("no multicall contract, lookups fall back to one call each")
			}
			if n.GetENSRegistryContract() != (common.Address{}) {
				sub.Info("ENS registry: %s", n.GetENSRegistryContract().Hex())
			}
			sub.Info("node override variable: %s", n.GetNodeVariableName())
			for _, url := range util.NodesOf(n) {
				sub.Info("- %s", url)
			}
		}

		appUI.Info("")
		appUI.Info("To add a network: ethfetch network add --config <json file>")
		appUI.Info("To remove one, delete its json file in ~/.ethfetch/networks/.")
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks ethfetch can read from",
	Long:  ``,
}

func init() {
	addNetworkCmd.PersistentFlags().
		StringVarP(&networkConfigFlag, "config", "c", "", "Path to the network config json file, or an inline json string")
	addNetworkCmd.PersistentFlags().
		BoolVarP(&networkForceFlag, "force", "f", false, "Replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
