package main

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	"github.com/PhilippSchindler/ethdkg-go/participant"
	"github.com/PhilippSchindler/ethdkg-go/persist"
)

// phaseDriver advances one participant's Core through the linear phase
// progression of spec.md §4.3, polling the ledger at pollInterval and
// persisting a snapshot after every phase transition so a crash loses at
// most the in-flight phase.
type phaseDriver struct {
	core         *participant.Core
	ledger       ledger.Ledger
	store        *persist.Store
	pollInterval time.Duration
}

func (d *phaseDriver) run(ctx context.Context) error {
	deadlines, err := d.ledger.Deadlines(ctx)
	if err != nil {
		return fmt.Errorf("reading deadlines: %w", err)
	}

	steps := []struct {
		phase participant.Phase
		until uint64
		run   func(context.Context) error
	}{
		{participant.PhaseNew, deadlines.RegistrationEnd, d.core.Register},
		{participant.PhaseRegistered, addDeadline(deadlines.RegistrationEnd, deadlines.DeltaConfirm), d.core.Setup},
		{participant.PhaseRegistered, deadlines.ShareDistributionEnd, d.core.DistributeShares},
		{participant.PhaseSharesDistributed, addDeadline(deadlines.ShareDistributionEnd, deadlines.DeltaConfirm), d.loadShares},
		{participant.PhaseSharesLoaded, deadlines.DisputeEnd, d.core.SubmitDisputes},
		{participant.PhaseDisputesSubmitted, addDeadline(deadlines.DisputeEnd, deadlines.DeltaConfirm), d.loadDisputes},
		{participant.PhaseDisputesLoaded, deadlines.KeyShareSubmissionEnd, d.core.SubmitKeyShare},
		{participant.PhaseKeyShareSubmitted, addDeadline(deadlines.KeyShareSubmissionEnd, deadlines.DeltaConfirm), d.loadKeyShares},
		{participant.PhaseKeyShareLoaded, addDeadline(addDeadline(deadlines.KeyShareSubmissionEnd, deadlines.DeltaConfirm), deadlines.DeltaInclude), d.core.SubmitRecoveryShares},
	}

	for _, step := range steps {
		if d.core.Phase() != step.phase {
			continue // already past this step, e.g. resumed from a snapshot
		}
		if err := d.ledger.WaitForBlock(ctx, step.until); err != nil {
			return fmt.Errorf("waiting for block %d: %w", step.until, err)
		}
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("phase %s: %w", step.phase, err)
		}
		log.PhaseTransition(0, d.core.Phase().String(), step.until)
		if err := d.store.Save(d.core.Snapshot()); err != nil {
			log.Errorw(err, "failed to persist state after phase transition", "phase", d.core.Phase().String())
		}
	}

	if d.core.Phase() == participant.PhaseKeyShareLoaded {
		if err := d.waitForRecovery(ctx); err != nil {
			return fmt.Errorf("key-share recovery: %w", err)
		}
	}

	if d.core.Phase() == participant.PhaseRecoveryDone {
		if _, err := d.core.DeriveKeys(); err != nil {
			return fmt.Errorf("deriving keys: %w", err)
		}
		if err := d.store.Save(d.core.Snapshot()); err != nil {
			log.Errorw(err, "failed to persist state after key derivation")
		}
	}

	if d.core.Phase() != participant.PhaseKeysDerived {
		return fmt.Errorf("run ended in unexpected phase %s", d.core.Phase())
	}

	derived := d.core.Derived()
	if err := d.ledger.SubmitMasterPublicKey(ctx, derived.MPK); err != nil {
		return fmt.Errorf("submitting master public key: %w", err)
	}
	log.Infow("dkg run complete", "phase", d.core.Phase().String())
	return nil
}

// addDeadline sums a ledger deadline with a delta using the fixed-width
// uint256 arithmetic the go-ethereum/EVM ecosystem uses for on-chain block
// and gas quantities, catching an overflowing deadline from a misconfigured
// ledger instead of silently wrapping a plain uint64 add.
func addDeadline(base, delta uint64) uint64 {
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(base), uint256.NewInt(delta))
	if overflow || !sum.IsUint64() {
		log.Fatal(fmt.Sprintf("deadline arithmetic overflowed: %d + %d", base, delta))
	}
	return sum.Uint64()
}

func (d *phaseDriver) loadShares(ctx context.Context) error {
	block, err := d.ledger.CurrentBlock(ctx)
	if err != nil {
		return err
	}
	return d.core.LoadShares(ctx, block)
}

func (d *phaseDriver) loadDisputes(ctx context.Context) error {
	block, err := d.ledger.CurrentBlock(ctx)
	if err != nil {
		return err
	}
	return d.core.LoadDisputes(ctx, block)
}

func (d *phaseDriver) loadKeyShares(ctx context.Context) error {
	block, err := d.ledger.CurrentBlock(ctx)
	if err != nil {
		return err
	}
	return d.core.LoadKeyShares(ctx, block)
}

// waitForRecovery polls LoadRecoveryShares until the qualified set has
// reconstructed every missing key share. A RecoveryStall is expected while
// fewer than t+1 recovery shares have landed on-ledger for some absent
// participant; any other error is fatal (spec.md §4.3 "Key-share
// recovery").
func (d *phaseDriver) waitForRecovery(ctx context.Context) error {
	for {
		block, err := d.ledger.CurrentBlock(ctx)
		if err != nil {
			return err
		}
		err = d.core.LoadRecoveryShares(ctx, block)
		if d.core.Phase() == participant.PhaseRecoveryDone {
			return nil
		}
		if err != nil && !dkgerrors.Is(err, dkgerrors.KindRecoveryStall) {
			return err
		}
		log.Infow("waiting for key-share recovery to complete", "block", block)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.pollInterval):
		}
	}
}
