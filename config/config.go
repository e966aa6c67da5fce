package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Network is the chain every command operates on, settable with --network.
var Network string

// Command settings bound to cobra flags in cmd. Commands read these instead
// of threading a dozen parameters through every call.
var (
	Verbose       bool
	JSONOutput    bool
	MetricsListen string

	ChunkSize   uint64
	Concurrency uint64
	NoBatch     bool
	RPS         float64

	DefaultDecimals uint64

	Spender    string
	ENSNetwork string
	NoENS      bool

	WalletFile string
	TokenFile  string
)

// FileConfig mirrors ~/.ethfetch/config.yaml. Every field is optional, the
// file only fills in flags the user did not pass on the command line.
type FileConfig struct {
	Network         string  `yaml:"network"`
	RPS             float64 `yaml:"rps"`
	ChunkSize       uint64  `yaml:"chunk_size"`
	Concurrency     uint64  `yaml:"concurrency"`
	DefaultDecimals uint64  `yaml:"default_decimals"`
	Spender         string  `yaml:"spender"`
	ENSNetwork      string  `yaml:"ens_network"`
	MetricsListen   string  `yaml:"metrics_listen"`

	// Extra throttle markers appended to the built-in detection lists, for
	// providers that report rate limiting in their own dialect.
	RateLimitTokens []string `yaml:"rate_limit_tokens"`
	RateLimitCodes  []int    `yaml:"rate_limit_codes"`
}

// Path returns ~/.ethfetch/config.yaml.
func Path() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".ethfetch", "config.yaml"), nil
}

// LoadFile reads the optional config file. A missing file yields an empty
// config so first runs work without any setup.
func LoadFile() (*FileConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read config file %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("couldn't parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
