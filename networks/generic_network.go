package networks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type GenericNetworkConfig struct {
	Name                     string            `json:"name"`
	AlternativeNames         []string          `json:"alternative_names"`
	ChainID                  uint64            `json:"chain_id"`
	NativeTokenSymbol        string            `json:"native_token_symbol"`
	NativeTokenName          string            `json:"native_token_name"`
	NativeTokenDecimal       uint64            `json:"native_token_decimal"`
	NativeTokenSynonym       common.Address    `json:"native_token_synonym"`
	BlockTime                uint64            `json:"block_time"`
	NodeVariableName         string            `json:"node_variable_name"`
	DefaultNodes             map[string]string `json:"default_nodes"`
	MultiCallContractAddress common.Address    `json:"multi_call_contract_address"`
	ENSRegistryAddress       common.Address    `json:"ens_registry_address"`
}

// GenericNetwork implements Network purely from a config struct. All built-in
// networks are thin wrappers around it and custom networks are unmarshaled
// into it directly.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

// GetNativeTokenSymbol falls back to the upper cased network name so a
// custom chain config may omit the symbol.
func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	if gn.config.NativeTokenSymbol != "" {
		return gn.config.NativeTokenSymbol
	}
	if gn.config.Name != "" {
		return strings.ToUpper(gn.config.Name)
	}
	return "NATIVE"
}

// GetNativeTokenName falls back to "<SYMBOL> (native)" when the config
// carries no explicit native token name.
func (gn *GenericNetwork) GetNativeTokenName() string {
	if gn.config.NativeTokenName != "" {
		return gn.config.NativeTokenName
	}
	return fmt.Sprintf("%s (native)", gn.GetNativeTokenSymbol())
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetNativeTokenSynonym() common.Address {
	return gn.config.NativeTokenSynonym
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) MultiCallContract() common.Address {
	return gn.config.MultiCallContractAddress
}

func (gn *GenericNetwork) GetENSRegistryContract() common.Address {
	return gn.config.ENSRegistryAddress
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.Marshal(gn.config)
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	err := json.Unmarshal(content, &networkConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config is missing a name")
	}
	if networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config for '%s' is missing a chain id", networkConfig.Name)
	}
	return NewGenericNetwork(networkConfig), nil
}
