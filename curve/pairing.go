package curve

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// PairingCheck reports whether e(a1,b1) * e(a2,b2) == 1, i.e. whether
// e(a1,b1) == e(a2,-b2). This is the single on-chain-verifiable predicate
// every DLEQ-over-pairing and cross-group consistency check in this
// protocol reduces to (spec.md §3 invariant 4: e(H2, gpk^H1) == e(gpk^H2, H1)).
//
// Note on sign convention (spec.md §9 Open Question 2): this function never
// negates its G2 arguments on the caller's behalf. A BLS signing layer
// built on top of this core's output may choose to negate G2 as a
// convenience for an on-chain pairing precompile; that convention is
// entirely private to that layer and must not leak into the key-share
// verification below, which always uses positive H2/G2.
func PairingCheck(a1 *G1, b1 *G2, a2 *G1, b2 *G2) (bool, error) {
	P := []bn254.G1Affine{a1.inner, a2.inner}
	Q := []bn254.G2Affine{b1.inner, b2.inner}
	return bn254.PairingCheck(P, Q)
}

// VerifyKeyShareConsistency checks e(H2, h1) == e(h2, H1), spec.md §3
// invariant 4 and §4.3 "Key-share loading" step 2. Written with arguments
// typed consistently for e: G1 x G2 -> GT, the check is
// e(h1, H2) == e(H1, h2), i.e. e(h1,H2) * e(-H1,h2) == 1.
func VerifyKeyShareConsistency(h1 *G1, h2 *G2) (bool, error) {
	negH1 := new(G1).Neg(H1())
	return PairingCheck(h1, H2(), negH1, h2)
}
