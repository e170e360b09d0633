// Command ethdkg-participant drives one participant's Core through the
// phase loop of spec.md §4.3 against a live ledger.Ledger adapter. The
// CLI surface itself (flags, subcommands, dashboards) is a thin wrapper
// the way davinci-sequencer/main.go is a thin wrapper around
// service.SequencerService: config load, signal-handled context, then a
// loop that polls the ledger and advances the state machine one phase at
// a time. This binary is ambient wiring, not the core itself (spec.md
// §1 lists CLI front-ends as out of scope).
package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PhilippSchindler/ethdkg-go/internal/config"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	ethledger "github.com/PhilippSchindler/ethdkg-go/ledger/ethereum"
	"github.com/PhilippSchindler/ethdkg-go/participant"
	"github.com/PhilippSchindler/ethdkg-go/persist"
)

func main() {
	fs := pflag.NewFlagSet("ethdkg-participant", pflag.ExitOnError)
	config.BindFlags(fs)
	fs.String("private-key", "", "hex-encoded secp256k1 signing key for the ledger account")
	fs.Uint64("chain-id", 0, "EVM chain id of the ledger")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "parsing flags: %v\n", err)
		os.Exit(1)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		fmt.Fprintf(os.Stderr, "binding flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel, cfg.LogOutput)

	signerKey, err := ethcrypto.HexToECDSA(v.GetString("private-key"))
	if err != nil {
		log.Fatal(fmt.Sprintf("invalid --private-key: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infow("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, cfg, signerKey, v.GetUint64("chain-id")); err != nil {
		log.Fatal(fmt.Sprintf("run failed: %v", err))
	}
}

func run(ctx context.Context, cfg *config.Config, signerKey *ecdsa.PrivateKey, chainID uint64) error {
	adapter, err := ethledger.Dial(ctx, cfg.Web3RPC, common.HexToAddress(cfg.ContractAddress), chainID, signerKey)
	if err != nil {
		return fmt.Errorf("dialing ledger: %w", err)
	}

	self := ledger.Address(ethcrypto.PubkeyToAddress(signerKey.PublicKey))
	store := persist.Open(cfg.PersistPath)

	core, err := loadOrCreateCore(adapter, self, store)
	if err != nil {
		return fmt.Errorf("initializing participant core: %w", err)
	}

	driver := &phaseDriver{core: core, ledger: adapter, store: store, pollInterval: cfg.PollInterval}
	return driver.run(ctx)
}

// loadOrCreateCore resumes a persisted run if one exists for this ledger
// account, or starts a fresh one, mirroring the reload note SPEC_FULL.md
// §5 draws from client/node.py's restart behavior.
func loadOrCreateCore(l ledger.Ledger, self ledger.Address, store *persist.Store) (*participant.Core, error) {
	if !store.Exists() {
		return participant.NewCore(l, self), nil
	}
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading persisted state: %w", err)
	}
	core, err := participant.RestoreCore(l, snap)
	if err != nil {
		return nil, fmt.Errorf("restoring participant core: %w", err)
	}
	log.Infow("resumed participant run from persisted state", "phase", core.Phase().String())
	return core, nil
}
