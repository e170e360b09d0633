// Package persist implements the correctness-critical participant store
// spec.md §6/§9 calls for: sk, the chosen secret-sharing polynomial s,
// this participant's own share of s, every decrypted received share, and
// the participant's own published commitments, encoded to a single file
// with fxamacker/cbor the way
// storage/encode.go encodes artifacts for the teacher's prover cache.
// Losing sk after registration turns the participant into an unavoidable
// recovery target, so every write goes through an atomic rename rather
// than an in-place write that a crash could leave half-written.
package persist

import (
	"github.com/fxamacker/cbor/v2"
)

// Share is one decrypted, Feldman-verified share received from issuer,
// keyed by the issuer's 20-byte address (hex-encoded since CBOR map keys
// need to round-trip through map[string]... cleanly).
type Share struct {
	Issuer string `cbor:"issuer"`
	Value  []byte `cbor:"value"` // 32-byte big-endian scalar
}

// Commitment is one published Feldman commitment vector, keyed by the
// issuing participant's address.
type Commitment struct {
	Issuer string   `cbor:"issuer"`
	Points [][]byte `cbor:"points"` // each 64-byte big-endian (x,y)
}

// State is the on-disk record for one participant's in-progress or
// completed DKG run.
type State struct {
	RunID string `cbor:"run_id"`
	Self  string `cbor:"self"`  // hex-encoded 20-byte address
	Phase int    `cbor:"phase"` // participant.Phase, persisted as its int value

	SK []byte `cbor:"sk"` // 32-byte big-endian scalar, never published
	S  []byte `cbor:"s"`  // this participant's chosen polynomial constant term

	OwnShare        []byte       `cbor:"own_share"` // this participant's own Feldman-verified share of s
	DecryptedShares []Share      `cbor:"decrypted_shares"`
	OwnCommitments  []Commitment `cbor:"own_commitments"`
}

// Marshal encodes a State deterministically, mirroring
// storage.EncodeArtifactCBOR's use of cbor.CoreDetEncOptions so repeated
// saves of unchanged state produce byte-identical files.
func Marshal(s State) ([]byte, error) {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(s)
}

// Unmarshal decodes a State previously produced by Marshal.
func Unmarshal(data []byte) (State, error) {
	var s State
	err := cbor.Unmarshal(data, &s)
	return s, err
}
