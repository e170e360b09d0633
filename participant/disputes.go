package participant

import (
	"context"
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	"github.com/PhilippSchindler/ethdkg-go/vss"
)

// SubmitDisputes submits one accusation per issuer marked invalid during
// LoadShares. The proof is only of the shared key's correctness; anyone
// can then re-derive and check the would-be share (spec.md §4.3 "Dispute
// submission").
func (c *Core) SubmitDisputes(ctx context.Context) error {
	if err := c.requirePhase(PhaseSharesLoaded); err != nil {
		return err
	}

	deadlines, err := c.ledger.Deadlines(ctx)
	if err != nil {
		return fmt.Errorf("reading deadlines: %w", err)
	}
	block, err := c.ledger.CurrentBlock(ctx)
	if err != nil {
		return fmt.Errorf("reading current block: %w", err)
	}

	for issuer := range c.disputeCandidates {
		if block > deadlines.DisputeEnd {
			log.Warnw("skipping dispute past deadline", "issuer", fmt.Sprintf("%x", issuer))
			continue
		}

		sharedKey := c.sharedKeys[issuer]
		proof, err := curve.ProveDLEQ(c.sk, curve.G1Generator(), c.pk, c.pkOf[issuer], sharedKey)
		if err != nil {
			return fmt.Errorf("proving dispute against %x: %w", issuer, err)
		}

		if err := c.ledger.SubmitDispute(ctx, issuer, sharedKey, proof); err != nil {
			return c.abort(ctx, dkgerrors.New(dkgerrors.KindLedgerRejected, err))
		}
	}

	c.transition(PhaseDisputesSubmitted)
	return nil
}

// LoadDisputes reads every Dispute event, verifies each accusation, and
// grows D with every accusation that holds (spec.md §4.3 "Dispute
// verification"). A false accusation against an honest issuer is
// discarded without side effects; the ledger is expected to penalize the
// disputer directly.
func (c *Core) LoadDisputes(ctx context.Context, upToBlock uint64) error {
	if err := c.requirePhase(PhaseDisputesSubmitted); err != nil {
		return err
	}

	events, err := c.ledger.DisputeEvents(ctx, upToBlock)
	if err != nil {
		return fmt.Errorf("loading dispute events: %w", err)
	}

	for _, ev := range events {
		if !c.verifyDispute(ev) {
			continue
		}
		log.Accusation(idToLogField(ev.Disputer), idToLogField(ev.Issuer), true)
		c.disputed[ev.Issuer] = true
	}

	c.computeQualifiedSet()
	c.transition(PhaseDisputesLoaded)

	if len(c.Qualified()) < c.t+1 {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindInsufficientQualified,
			fmt.Errorf("|Q|=%d < t+1=%d", len(c.Qualified()), c.t+1)))
	}
	return nil
}

// verifyDispute runs the three-step check of spec.md §4.3 "Dispute
// verification" and reports whether ev.Issuer should be added to D.
func (c *Core) verifyDispute(ev ledger.DisputeEvent) bool {
	pkDisputer, ok := c.pkOf[ev.Disputer]
	if !ok {
		return false
	}
	pkIssuer, ok := c.pkOf[ev.Issuer]
	if !ok {
		return false
	}
	if !ev.SharedKey.OnCurve() {
		return false
	}
	if !curve.VerifyDLEQ(ev.Proof, curve.G1Generator(), pkDisputer, pkIssuer, ev.SharedKey) {
		return false
	}

	commitments, ok := c.commitments[ev.Issuer]
	if !ok {
		// Issuer never published anything; it is already excluded from Q
		// as absent, so no dispute bookkeeping is needed here.
		return false
	}

	disputerID, found := idByAddress(c.ids, ev.Disputer)
	if !found {
		return false
	}
	encShare, found := encryptedShareFor(c, ev.Issuer, ev.Disputer)
	if !found {
		// The issuer's own submission was never observed; the accusation
		// cannot be replayed, so leave D's growth to those who did see it.
		return false
	}
	share := vss.Share{Index: disputerID.Scalar(), Value: vss.DecryptShare(
		encShare, ev.SharedKey, disputerID.Scalar())}

	// If the share verifies after all, the accusation is itself invalid.
	return !vss.Verify(share, commitments)
}

func idByAddress(ids []ID, addr ledger.Address) (ID, bool) {
	for _, id := range ids {
		if id.Address() == addr {
			return id, true
		}
	}
	return ID{}, false
}

// encryptedShareFor looks up the archived encrypted share issuer sent to
// receiver, needed to replay a dispute's or a recovery's decryption.
func encryptedShareFor(c *Core, issuer, receiver ledger.Address) ([32]byte, bool) {
	all, ok := c.archivedShares[issuer]
	if !ok {
		return [32]byte{}, false
	}
	pos := addressIndex(c.otherIDsOf(issuer), receiver)
	if pos < 0 || pos >= len(all) {
		return [32]byte{}, false
	}
	return all[pos], true
}

func (c *Core) computeQualifiedSet() {
	for addr := range c.distributed {
		if !c.disputed[addr] {
			c.qualified[addr] = true
		}
	}
}
