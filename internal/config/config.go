// Package config loads the runtime configuration a DKG participant needs:
// which ledger to talk to, where to persist state, and how aggressively to
// poll it. CLI parsing itself is an external collaborator (spec.md §1); this
// package is what a CLI, a test harness, or a long-running driver binds its
// flags/env vars into.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NetworkDefaults holds the DKG contract address and tuning deployed on a
// given named network, mirroring the teacher's per-network address table.
type NetworkDefaults struct {
	ContractAddress string
	PollInterval    time.Duration
}

// DefaultNetworks contains the known deployments a participant can select
// by name instead of specifying raw endpoints.
var DefaultNetworks = map[string]NetworkDefaults{
	"sep": {
		ContractAddress: "0x0000000000000000000000000000000000000000",
		PollInterval:    3 * time.Second,
	},
}

// Config is the full set of values a participant process needs to run the
// core against a concrete ledger.
type Config struct {
	// Web3RPC is the JSON-RPC endpoint of the ledger node.
	Web3RPC string
	// ContractAddress is the deployed DKG contract address.
	ContractAddress string
	// PersistPath is where sk/s/decrypted shares are saved between restarts.
	PersistPath string
	// PollInterval is how often the participant polls the ledger for the
	// current block height and for new phase events.
	PollInterval time.Duration
	// LogLevel and LogOutput configure internal/log.
	LogLevel  string
	LogOutput string
}

// BindFlags registers the config's flags on fs, so a CLI collaborator can
// call this before parsing os.Args.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("web3-rpc", "", "JSON-RPC endpoint of the ledger node")
	fs.String("contract-address", "", "deployed DKG contract address")
	fs.String("persist-path", "ethdkg-state.cbor", "path to the persisted participant state")
	fs.Duration("poll-interval", 3*time.Second, "ledger polling interval")
	fs.String("log-level", "info", "log level: debug|info|warn|error")
	fs.String("log-output", "stderr", "log output: stdout|stderr|<file path>")
	fs.String("network", "", "named network to load defaults from (overridden by explicit flags)")
}

// Load reads the configuration from v, which the caller has already
// populated from flags, env vars, and/or a config file via viper's usual
// precedence rules.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Web3RPC:         v.GetString("web3-rpc"),
		ContractAddress: v.GetString("contract-address"),
		PersistPath:     v.GetString("persist-path"),
		PollInterval:    v.GetDuration("poll-interval"),
		LogLevel:        v.GetString("log-level"),
		LogOutput:       v.GetString("log-output"),
	}

	if network := v.GetString("network"); network != "" {
		defaults, ok := DefaultNetworks[network]
		if !ok {
			return nil, fmt.Errorf("unknown network %q", network)
		}
		if cfg.ContractAddress == "" {
			cfg.ContractAddress = defaults.ContractAddress
		}
		if !v.IsSet("poll-interval") {
			cfg.PollInterval = defaults.PollInterval
		}
	}

	if cfg.Web3RPC == "" {
		return nil, fmt.Errorf("web3-rpc is required")
	}
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("contract-address is required (set it explicitly or via --network)")
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll-interval must be positive")
	}
	return cfg, nil
}
