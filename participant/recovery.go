package participant

import (
	"container/list"
	"context"
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	"github.com/PhilippSchindler/ethdkg-go/vss"
)

// recoveryBucket accumulates verified recovery shares for one recovered
// participant, keyed by the recoverer that contributed each share.
type recoveryBucket struct {
	recovered ledger.Address
	shares    map[ledger.Address]*curve.Scalar
}

// recoveryState is the ordered map of spec.md §9 "Recovery loop": keyed by
// recovered id in first-seen order, each value a mapping from recoverer id
// to its verified share. Built on container/list since nothing in the
// dependency pack offers an ordered map (SPEC_FULL.md §4).
type recoveryState struct {
	order         *list.List
	byID          map[ledger.Address]*list.Element
	reconstructed map[ledger.Address]bool
}

func newRecoveryState() *recoveryState {
	return &recoveryState{
		order:         list.New(),
		byID:          make(map[ledger.Address]*list.Element),
		reconstructed: make(map[ledger.Address]bool),
	}
}

func (r *recoveryState) bucketFor(id ledger.Address) *recoveryBucket {
	if el, ok := r.byID[id]; ok {
		return el.Value.(*recoveryBucket)
	}
	b := &recoveryBucket{recovered: id, shares: make(map[ledger.Address]*curve.Scalar)}
	r.byID[id] = r.order.PushBack(b)
	return b
}

// SubmitRecoveryShares publishes, for every qualified participant missing a
// key share, this participant's pairwise key k_ij = sk_j * pk_i with a
// DLEQ proof against (G1, pk_self, pk_i) (spec.md §4.3 "Key-share
// recovery"). If nothing is missing it submits nothing and moves straight
// to PhaseRecoveryDone.
func (c *Core) SubmitRecoveryShares(ctx context.Context) error {
	if err := c.requirePhase(PhaseKeyShareLoaded); err != nil {
		return err
	}

	missing := c.MissingKeyShares()
	if len(missing) == 0 {
		c.transition(PhaseRecoveryDone)
		return nil
	}

	var recoveredAddrs []ledger.Address
	var sharedKeys []*curve.G1
	var proofs []*curve.DLEQProof

	for _, target := range missing {
		if target.Address() == c.self {
			continue // cannot recover one's own share this way
		}
		k := c.sharedKeys[target.Address()]
		proof, err := curve.ProveDLEQ(c.sk, curve.G1Generator(), c.pk, c.pkOf[target.Address()], k)
		if err != nil {
			return fmt.Errorf("proving recovery share for %x: %w", target.Address(), err)
		}
		recoveredAddrs = append(recoveredAddrs, target.Address())
		sharedKeys = append(sharedKeys, k)
		proofs = append(proofs, proof)
	}
	if len(recoveredAddrs) == 0 {
		return nil
	}

	if err := c.ledger.RecoverKeyShares(ctx, recoveredAddrs, sharedKeys, proofs); err != nil {
		return dkgerrors.New(dkgerrors.KindLedgerRejected, err)
	}
	return nil
}

// LoadRecoveryShares reads every KeyShareRecovery event up to upToBlock,
// verifies each shared key, decrypts and re-verifies the corresponding
// archived share, and accumulates it into the recovery bucket for that
// recovered id. Once any bucket reaches t+1 verified shares and has not
// yet been reconstructed, it reconstructs s_i and publishes its key share
// on i's behalf (spec.md §4.3 "Key-share recovery").
//
// It returns an error of kind dkgerrors.KindRecoveryStall if, after processing every available
// event, some qualified participant is still missing a key share and
// fewer than t+1 verified recovery shares have been collected for it.
func (c *Core) LoadRecoveryShares(ctx context.Context, upToBlock uint64) error {
	events, err := c.ledger.KeyShareRecoveryEvents(ctx, upToBlock)
	if err != nil {
		return fmt.Errorf("loading recovery events: %w", err)
	}

	for _, ev := range events {
		for i, recovered := range ev.RecoveredAddr {
			if !c.qualified[recovered] || c.submittedKeys[recovered] {
				continue
			}
			if i >= len(ev.SharedKeys) || i >= len(ev.Proofs) {
				continue
			}
			c.verifyAndStoreRecoveryShare(recovered, ev.Recoverer, ev.SharedKeys[i], ev.Proofs[i])
		}
	}

	for el := c.recovery.order.Front(); el != nil; el = el.Next() {
		bucket := el.Value.(*recoveryBucket)
		if c.recovery.reconstructed[bucket.recovered] || c.submittedKeys[bucket.recovered] {
			continue
		}
		if len(bucket.shares) < c.t+1 {
			continue
		}
		if err := c.reconstructAndPublish(ctx, bucket); err != nil {
			return err
		}
	}

	missing := c.MissingKeyShares()
	if len(missing) == 0 {
		c.transition(PhaseRecoveryDone)
		return nil
	}
	for _, m := range missing {
		have := len(c.recovery.bucketFor(m.Address()).shares)
		if have < c.t+1 {
			return dkgerrors.For(dkgerrors.KindRecoveryStall, idToLogField(m.Address()),
				fmt.Errorf("only %d/%d recovery shares collected", have, c.t+1))
		}
	}
	return nil
}

func (c *Core) verifyAndStoreRecoveryShare(recovered, recoverer ledger.Address, sharedKey *curve.G1, proof *curve.DLEQProof) {
	pkRecoverer, ok := c.pkOf[recoverer]
	if !ok || !sharedKey.OnCurve() {
		return
	}
	pkRecovered, ok := c.pkOf[recovered]
	if !ok {
		return
	}
	if !curve.VerifyDLEQ(proof, curve.G1Generator(), pkRecoverer, pkRecovered, sharedKey) {
		return
	}

	commitments, ok := c.commitments[recovered]
	if !ok {
		return
	}
	encShare, ok := encryptedShareFor(c, recovered, recoverer)
	if !ok {
		return
	}
	recovererID, ok := idByAddress(c.ids, recoverer)
	if !ok {
		return
	}
	decrypted := vss.DecryptShare(encShare, sharedKey, recovererID.Scalar())
	share := vss.Share{Index: recovererID.Scalar(), Value: decrypted}
	if !vss.Verify(share, commitments) {
		return
	}

	c.recovery.bucketFor(recovered).shares[recoverer] = decrypted
}

func (c *Core) reconstructAndPublish(ctx context.Context, bucket *recoveryBucket) error {
	shares := make([]vss.Share, 0, len(bucket.shares))
	for recoverer, value := range bucket.shares {
		id, ok := idByAddress(c.ids, recoverer)
		if !ok {
			continue
		}
		shares = append(shares, vss.Share{Index: id.Scalar(), Value: value})
	}

	s := vss.ReconstructScalar(shares)
	h1 := new(curve.G1).ScalarMult(curve.H1(), s)
	h2 := new(curve.G2).ScalarMult(curve.H2(), s)
	c0 := new(curve.G1).ScalarBaseMult(s)

	proof, err := curve.ProveDLEQ(s, curve.H1(), h1, curve.G1Generator(), c0)
	if err != nil {
		return fmt.Errorf("proving recovered key share for %x: %w", bucket.recovered, err)
	}

	if err := c.ledger.SubmitKeyShare(ctx, bucket.recovered, h1, proof, h2); err != nil {
		// Only the first submission counts on-ledger (spec.md §4.3); a
		// late race with another observer is not an error.
		log.Warnw("recovery submission rejected, likely raced another recoverer",
			"recovered", fmt.Sprintf("%x", bucket.recovered), "err", err.Error())
		return nil
	}

	c.recovery.reconstructed[bucket.recovered] = true
	c.keyShares[bucket.recovered] = KeyShare{H1: h1, H2: h2}
	c.submittedKeys[bucket.recovered] = true
	return nil
}
