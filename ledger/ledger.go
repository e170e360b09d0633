// Package ledger declares the abstract capability the participant state
// machine is specified against (spec.md §6, §9 "Ledger coupling"). Any
// implementation faithful to this interface suffices; ledger/ethereum
// provides the concrete go-ethereum-backed adapter.
package ledger

import (
	"context"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

// Address is a 20-byte ledger account identifier.
type Address [20]byte

// Deadlines holds the block-number constants and deltas governing phase
// transitions (spec.md §6).
type Deadlines struct {
	RegistrationEnd        uint64
	ShareDistributionEnd   uint64
	DisputeEnd             uint64
	KeyShareSubmissionEnd  uint64
	DeltaConfirm           uint64
	DeltaInclude           uint64
}

// RegistrationEvent mirrors the ledger's Registration event.
type RegistrationEvent struct {
	Address Address
	PK      *curve.G1
	Proof   *curve.SchnorrProof
}

// ShareDistributionEvent mirrors ShareDistribution(issuer, encrypted_shares[], commitments[]).
type ShareDistributionEvent struct {
	Issuer          Address
	EncryptedShares [][32]byte
	Commitments     []*curve.G1
}

// DisputeEvent mirrors Dispute(issuer, disputer, shared_key, proof).
type DisputeEvent struct {
	Issuer    Address
	Disputer  Address
	SharedKey *curve.G1
	Proof     *curve.DLEQProof
}

// KeyShareSubmissionEvent mirrors KeyShareSubmission(issuer, h1, h1_proof, h2).
type KeyShareSubmissionEvent struct {
	Issuer Address
	H1     *curve.G1
	Proof  *curve.DLEQProof
	H2     *curve.G2
}

// KeyShareRecoveryEvent mirrors KeyShareRecovery(recoverer, recovered_addrs[], shared_keys[], proofs[]).
type KeyShareRecoveryEvent struct {
	Recoverer     Address
	RecoveredAddr []Address
	SharedKeys    []*curve.G1
	Proofs        []*curve.DLEQProof
}

// Ledger is the narrow capability the participant core depends on
// (spec.md §6). Submission methods block until the ledger has accepted or
// rejected the transaction; event methods return everything observed at or
// before the given block, in ledger-total order.
type Ledger interface {
	// Deadlines returns the phase-boundary block numbers for this run.
	Deadlines(ctx context.Context) (Deadlines, error)

	// CurrentBlock returns the most recently observed block height.
	CurrentBlock(ctx context.Context) (uint64, error)

	// WaitForBlock blocks until the ledger's current height is at least
	// block. The polling interval is chosen by the implementation, not by
	// the caller; ledger/ethereum polls once per second.
	WaitForBlock(ctx context.Context, block uint64) error

	// NumNodes returns n, the number of registered participants.
	NumNodes(ctx context.Context) (uint64, error)

	// Addresses returns the sorted list of registered addresses.
	Addresses(ctx context.Context) ([]Address, error)

	// PublicKey returns the registered long-term public key for addr.
	PublicKey(ctx context.Context, addr Address) (*curve.G1, error)

	// Register submits (pk, schnorr_proof).
	Register(ctx context.Context, pk *curve.G1, proof *curve.SchnorrProof) error

	// DistributeShares submits the ordered encrypted shares and commitments.
	DistributeShares(ctx context.Context, encryptedShares [][32]byte, commitments []*curve.G1) error

	// SubmitDispute submits an accusation against issuer.
	SubmitDispute(ctx context.Context, issuer Address, sharedKey *curve.G1, proof *curve.DLEQProof) error

	// SubmitKeyShare submits a key share on behalf of issuer: either the
	// caller's own (issuer == the caller's address) or, during recovery,
	// one reconstructed for an absent qualified participant.
	SubmitKeyShare(ctx context.Context, issuer Address, h1 *curve.G1, proof *curve.DLEQProof, h2 *curve.G2) error

	// RecoverKeyShares submits recovered key shares on behalf of other
	// participants (spec.md §4.3 "Key-share recovery").
	RecoverKeyShares(ctx context.Context, recovered []Address, sharedKeys []*curve.G1, proofs []*curve.DLEQProof) error

	// SubmitMasterPublicKey publishes the locally derived MPK.
	SubmitMasterPublicKey(ctx context.Context, mpk *curve.G2) error

	// RegistrationEvents, ShareDistributionEvents, DisputeEvents,
	// KeyShareSubmissionEvents, and KeyShareRecoveryEvents return every
	// event of that kind observed up to and including upToBlock, in
	// ledger-total order.
	RegistrationEvents(ctx context.Context, upToBlock uint64) ([]RegistrationEvent, error)
	ShareDistributionEvents(ctx context.Context, upToBlock uint64) ([]ShareDistributionEvent, error)
	DisputeEvents(ctx context.Context, upToBlock uint64) ([]DisputeEvent, error)
	KeyShareSubmissionEvents(ctx context.Context, upToBlock uint64) ([]KeyShareSubmissionEvent, error)
	KeyShareRecoveryEvents(ctx context.Context, upToBlock uint64) ([]KeyShareRecoveryEvent, error)
}
