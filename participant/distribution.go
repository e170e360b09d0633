package participant

import (
	"context"
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/vss"
)

// DistributeShares draws s, splits it into Shamir shares and Feldman
// commitments, encrypts each other participant's share with its pairwise
// key, and submits them (spec.md §4.3 "Share distribution").
func (c *Core) DistributeShares(ctx context.Context) error {
	if err := c.requirePhase(PhaseRegistered); err != nil {
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
	if block > deadlines.ShareDistributionEnd {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindLatePhase,
			fmt.Errorf("share distribution closed at block %d, now %d", deadlines.ShareDistributionEnd, block)))
	}

	s, err := curve.RandomScalar()
	if err != nil {
		return fmt.Errorf("sampling secret: %w", err)
	}
	c.s = s

	evalIDs := make([]*curve.Scalar, len(c.ids))
	for i, id := range c.ids {
		evalIDs[i] = id.Scalar()
	}

	shares, commitments, err := vss.Split(s, evalIDs, c.t)
	if err != nil {
		return fmt.Errorf("splitting secret: %w", err)
	}

	// Stash own share and commitments for later phases before publishing.
	c.ownShare = shares[c.index].Value
	c.commitments[c.self] = commitments
	c.distributed[c.self] = true

	others := c.otherIDs()
	encrypted := make([][32]byte, len(others))
	for i, id := range others {
		share := shares[indexOf(c.ids, id)].Value
		k := c.sharedKeys[id.Address()]
		encrypted[i] = [32]byte(vss.EncryptShare(share, k, id.Scalar()))
	}

	if err := c.ledger.DistributeShares(ctx, encrypted, commitments); err != nil {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindLedgerRejected, err))
	}
	c.archivedShares[c.self] = encrypted

	c.transition(PhaseSharesDistributed)
	return nil
}

func indexOf(ids []ID, target ID) int {
	for i, id := range ids {
		if id.Equal(target) {
			return i
		}
	}
	return -1
}

// LoadShares reads every ShareDistribution event after the distribution
// phase has closed, decrypts and verifies the share this participant
// received from each issuer, and records issuers whose share is invalid as
// dispute candidates (spec.md §4.3 "Share loading"). Issuers with no event
// are not marked as distributed, so they stay out of Q without an
// accusation.
func (c *Core) LoadShares(ctx context.Context, upToBlock uint64) error {
	if err := c.requirePhase(PhaseSharesDistributed); err != nil {
		return err
	}

	events, err := c.ledger.ShareDistributionEvents(ctx, upToBlock)
	if err != nil {
		return fmt.Errorf("loading share distribution events: %w", err)
	}

	selfScalar := c.selfID().Scalar()

	for _, ev := range events {
		if ev.Issuer == c.self {
			continue
		}
		issuer := ev.Issuer
		c.distributed[issuer] = true
		c.archivedShares[issuer] = ev.EncryptedShares

		others := c.otherIDsOf(issuer)
		pos := addressIndex(others, c.self)
		if pos < 0 || pos >= len(ev.EncryptedShares) {
			c.markInvalid(issuer, fmt.Errorf("malformed share distribution from %x", issuer))
			continue
		}

		if !commitmentsOnCurve(ev.Commitments) {
			c.markInvalid(issuer, fmt.Errorf("issuer %x published an off-curve commitment", issuer))
			continue
		}
		c.commitments[issuer] = ev.Commitments

		k := c.sharedKeys[issuer]
		decrypted := vss.DecryptShare(ev.EncryptedShares[pos], k, selfScalar)

		share := vss.Share{Index: selfScalar, Value: decrypted}
		if !vss.Verify(share, ev.Commitments) {
			c.markInvalid(issuer, fmt.Errorf("share from %x failed verification", issuer))
			continue
		}

		c.decryptedShares[issuer] = decrypted
	}

	c.transition(PhaseSharesLoaded)
	return nil
}

// markInvalid records issuer's share as the INVALID_SHARE sentinel (a nil
// map entry) and flags it as accusable.
func (c *Core) markInvalid(issuer [20]byte, err error) {
	log.Warnw("invalid share recorded", "issuer", fmt.Sprintf("%x", issuer), "reason", err.Error())
	c.decryptedShares[issuer] = nil
	c.disputeCandidates[issuer] = true
}

func addressIndex(ids []ID, addr [20]byte) int {
	for i, id := range ids {
		if id.Address() == addr {
			return i
		}
	}
	return -1
}

func commitmentsOnCurve(cs vss.Commitments) bool {
	for _, c := range cs {
		if !c.OnCurve() {
			return false
		}
	}
	return true
}
