package participant

import (
	"context"
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
)

// SubmitKeyShare publishes this participant's key share (h1, h2) with a
// DLEQ proof tying h1 to its own C_0 (spec.md §4.3 "Key-share submission").
// It requires the qualified set to already meet the threshold.
func (c *Core) SubmitKeyShare(ctx context.Context) error {
	if err := c.requirePhase(PhaseDisputesLoaded); err != nil {
		return err
	}
	if len(c.Qualified()) < c.t+1 {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindInsufficientQualified,
			fmt.Errorf("|Q|=%d < t+1=%d", len(c.Qualified()), c.t+1)))
	}

	h1 := new(curve.G1).ScalarMult(curve.H1(), c.s)
	h2 := new(curve.G2).ScalarMult(curve.H2(), c.s)
	c0 := new(curve.G1).ScalarBaseMult(c.s)

	proof, err := curve.ProveDLEQ(c.s, curve.H1(), h1, curve.G1Generator(), c0)
	if err != nil {
		return fmt.Errorf("proving key share: %w", err)
	}

	if err := c.ledger.SubmitKeyShare(ctx, c.self, h1, proof, h2); err != nil {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindLedgerRejected, err))
	}

	c.keyShares[c.self] = KeyShare{H1: h1, H2: h2}
	c.submittedKeys[c.self] = true
	c.transition(PhaseKeyShareSubmitted)
	return nil
}

// LoadKeyShares reads every KeyShareSubmission event from a qualified
// issuer, verifies its DLEQ proof and cross-group pairing consistency, and
// stores the resulting (h1, h2) pair (spec.md §4.3 "Key-share loading").
func (c *Core) LoadKeyShares(ctx context.Context, upToBlock uint64) error {
	if err := c.requirePhase(PhaseKeyShareSubmitted); err != nil {
		return err
	}

	events, err := c.ledger.KeyShareSubmissionEvents(ctx, upToBlock)
	if err != nil {
		return fmt.Errorf("loading key share events: %w", err)
	}

	for _, ev := range events {
		if !c.qualified[ev.Issuer] || c.submittedKeys[ev.Issuer] {
			continue
		}
		c0, ok := c.commitments[ev.Issuer]
		if !ok || len(c0) == 0 {
			continue
		}
		if !ev.H1.OnCurve() || !ev.H2.OnCurve() {
			continue
		}
		if !curve.VerifyDLEQ(ev.Proof, curve.H1(), ev.H1, curve.G1Generator(), c0[0]) {
			continue
		}
		ok, err := curve.VerifyKeyShareConsistency(ev.H1, ev.H2)
		if err != nil || !ok {
			continue
		}

		c.keyShares[ev.Issuer] = KeyShare{H1: ev.H1, H2: ev.H2}
		c.submittedKeys[ev.Issuer] = true
	}

	c.transition(PhaseKeyShareLoaded)
	return nil
}

// MissingKeyShares returns the qualified participants for whom no valid
// key share has yet been loaded, i.e. the recovery targets.
func (c *Core) MissingKeyShares() []ID {
	var missing []ID
	for _, id := range c.ids {
		if c.qualified[id.Address()] && !c.submittedKeys[id.Address()] {
			missing = append(missing, id)
		}
	}
	return missing
}
