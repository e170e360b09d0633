package participant

import (
	"context"
	"fmt"
	"sort"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

// fakeLedger is an in-process, single-threaded stand-in for a real ledger
// adapter, sufficient to drive the participant state machine through a
// full DKG run in tests. It enforces the subset of on-ledger rules the
// spec assumes the contract enforces: on-curve commitments, one
// distribution/key-share submission per issuer, and "first recovery
// submission wins".
type fakeLedger struct {
	deadlines ledger.Deadlines
	block     uint64

	addrs []ledger.Address
	pk    map[ledger.Address]*curve.G1

	shareDist  []ledger.ShareDistributionEvent
	disputes   []ledger.DisputeEvent
	keyShares  []ledger.KeyShareSubmissionEvent
	recoveries []ledger.KeyShareRecoveryEvent

	distributedIssuers map[ledger.Address]bool
	keyShareIssuers    map[ledger.Address]bool
}

func newFakeLedger(addrs []ledger.Address) *fakeLedger {
	sorted := append([]ledger.Address(nil), addrs...)
	sort.Slice(sorted, func(i, j int) bool {
		return fmt.Sprintf("%x", sorted[i]) < fmt.Sprintf("%x", sorted[j])
	})
	return &fakeLedger{
		deadlines: ledger.Deadlines{
			RegistrationEnd:       1000,
			ShareDistributionEnd:  2000,
			DisputeEnd:            3000,
			KeyShareSubmissionEnd: 4000,
		},
		addrs:              sorted,
		pk:                 make(map[ledger.Address]*curve.G1),
		distributedIssuers: make(map[ledger.Address]bool),
		keyShareIssuers:    make(map[ledger.Address]bool),
	}
}

// view binds a fakeLedger to a single participant's address, the way a
// real adapter instance is bound to one signing account.
func (f *fakeLedger) view(self ledger.Address) ledger.Ledger {
	return &fakeLedgerView{base: f, self: self}
}

type fakeLedgerView struct {
	base *fakeLedger
	self ledger.Address
}

func (v *fakeLedgerView) Deadlines(context.Context) (ledger.Deadlines, error) {
	return v.base.deadlines, nil
}

func (v *fakeLedgerView) CurrentBlock(context.Context) (uint64, error) {
	return v.base.block, nil
}

func (v *fakeLedgerView) WaitForBlock(_ context.Context, block uint64) error {
	if v.base.block < block {
		v.base.block = block
	}
	return nil
}

func (v *fakeLedgerView) NumNodes(context.Context) (uint64, error) {
	return uint64(len(v.base.addrs)), nil
}

func (v *fakeLedgerView) Addresses(context.Context) ([]ledger.Address, error) {
	return v.base.addrs, nil
}

func (v *fakeLedgerView) PublicKey(_ context.Context, addr ledger.Address) (*curve.G1, error) {
	pk, ok := v.base.pk[addr]
	if !ok {
		return nil, fmt.Errorf("no public key registered for %x", addr)
	}
	return pk, nil
}

func (v *fakeLedgerView) Register(_ context.Context, pk *curve.G1, proof *curve.SchnorrProof) error {
	if !pk.OnCurve() {
		return fmt.Errorf("public key not on curve")
	}
	addrCopy := v.self
	if !curve.VerifySchnorr(proof, pk, (*[20]byte)(&addrCopy)) {
		return fmt.Errorf("invalid schnorr proof")
	}
	v.base.pk[v.self] = pk
	return nil
}

func (v *fakeLedgerView) DistributeShares(_ context.Context, encryptedShares [][32]byte, commitments []*curve.G1) error {
	if v.base.distributedIssuers[v.self] {
		return fmt.Errorf("duplicate distribution from %x", v.self)
	}
	for _, c := range commitments {
		if !c.OnCurve() {
			return fmt.Errorf("commitment not on curve")
		}
	}
	v.base.distributedIssuers[v.self] = true
	v.base.shareDist = append(v.base.shareDist, ledger.ShareDistributionEvent{
		Issuer: v.self, EncryptedShares: encryptedShares, Commitments: commitments,
	})
	return nil
}

func (v *fakeLedgerView) SubmitDispute(_ context.Context, issuer ledger.Address, sharedKey *curve.G1, proof *curve.DLEQProof) error {
	v.base.disputes = append(v.base.disputes, ledger.DisputeEvent{
		Issuer: issuer, Disputer: v.self, SharedKey: sharedKey, Proof: proof,
	})
	return nil
}

func (v *fakeLedgerView) SubmitKeyShare(_ context.Context, issuer ledger.Address, h1 *curve.G1, proof *curve.DLEQProof, h2 *curve.G2) error {
	// Only the first submission per issuer counts; redundant submissions
	// (a recovery race) are accepted but have no effect (spec.md §4.3
	// "Key-share recovery").
	if v.base.keyShareIssuers[issuer] {
		return nil
	}
	v.base.keyShareIssuers[issuer] = true
	v.base.keyShares = append(v.base.keyShares, ledger.KeyShareSubmissionEvent{
		Issuer: issuer, H1: h1, Proof: proof, H2: h2,
	})
	return nil
}

func (v *fakeLedgerView) RecoverKeyShares(_ context.Context, recovered []ledger.Address, sharedKeys []*curve.G1, proofs []*curve.DLEQProof) error {
	v.base.recoveries = append(v.base.recoveries, ledger.KeyShareRecoveryEvent{
		Recoverer: v.self, RecoveredAddr: recovered, SharedKeys: sharedKeys, Proofs: proofs,
	})
	return nil
}

func (v *fakeLedgerView) SubmitMasterPublicKey(context.Context, *curve.G2) error { return nil }

func (v *fakeLedgerView) RegistrationEvents(context.Context, uint64) ([]ledger.RegistrationEvent, error) {
	return nil, nil
}

func (v *fakeLedgerView) ShareDistributionEvents(context.Context, uint64) ([]ledger.ShareDistributionEvent, error) {
	return v.base.shareDist, nil
}

func (v *fakeLedgerView) DisputeEvents(context.Context, uint64) ([]ledger.DisputeEvent, error) {
	return v.base.disputes, nil
}

func (v *fakeLedgerView) KeyShareSubmissionEvents(context.Context, uint64) ([]ledger.KeyShareSubmissionEvent, error) {
	return v.base.keyShares, nil
}

func (v *fakeLedgerView) KeyShareRecoveryEvents(context.Context, uint64) ([]ledger.KeyShareRecoveryEvent, error) {
	return v.base.recoveries, nil
}

func addrFromByte(b byte) ledger.Address {
	var a ledger.Address
	a[19] = b
	return a
}
