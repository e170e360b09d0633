// Package participant implements the per-participant DKG state machine:
// registration, share distribution, dispute, key-share submission, key-share
// recovery, and master-key derivation (spec.md §4.3).
package participant

import (
	"math/big"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

// ID is a ParticipantId: a stable, non-zero evaluation point, either a
// small integer 1..n or the integer reading of a ledger address (spec.md
// §3). It doubles as the Shamir/Feldman index used throughout vss/.
type ID struct {
	addr  ledger.Address
	value *curve.Scalar
}

// IDFromAddress builds the ParticipantId that is the unsigned integer
// reading of addr, per spec.md §4.3 "Setup".
func IDFromAddress(addr ledger.Address) ID {
	v := new(big.Int).SetBytes(addr[:])
	return ID{addr: addr, value: curve.NewScalar(v)}
}

// Address returns the underlying ledger address.
func (id ID) Address() ledger.Address { return id.addr }

// Scalar returns the evaluation point used by vss.Split/Verify/Reconstruct.
func (id ID) Scalar() *curve.Scalar { return id.value }

func (id ID) Equal(o ID) bool { return id.addr == o.addr }

// ThresholdETHDKG is the threshold formula this implementation locks in:
// t = ceil(n/2) - 1 (spec.md §9 Open Question 3, DESIGN.md resolution 3).
func ThresholdETHDKG(n int) int {
	return (n+1)/2 - 1
}

// ThresholdFC19 is the competing FC19-variant formula t = floor(n/2) + 1,
// kept unused except for cross-checking test vectors against
// original_source/fc19 (spec.md §9 Open Question 3).
func ThresholdFC19(n int) int {
	return n/2 + 1
}
