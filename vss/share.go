// Package vss implements Feldman/Pedersen-style verifiable secret sharing
// over the curve layer: Shamir share generation, share verification,
// Lagrange reconstruction, and pairwise share encryption (spec.md §4.2).
package vss

import (
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

// Share is a single Shamir share (j, f(j)) evaluated at index j.
type Share struct {
	Index *curve.Scalar
	Value *curve.Scalar
}

// Commitments are the Feldman commitments C_0..C_t to a polynomial's
// coefficients, with C_0 committing to the secret itself.
type Commitments []*curve.G1

// Split draws t fresh random coefficients c_1..c_t, builds
// f(x) = s + sum_{k=1..t} c_k x^k, and evaluates it at every index in ids.
// Returns one share per id (in the order ids is given) and the t+1
// Feldman commitments C_0..C_t, spec.md §4.2 "Share".
func Split(s *curve.Scalar, ids []*curve.Scalar, t int) ([]Share, Commitments, error) {
	coeffs := make([]*curve.Scalar, t+1)
	coeffs[0] = s
	for k := 1; k <= t; k++ {
		c, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, fmt.Errorf("sampling coefficient %d: %w", k, err)
		}
		coeffs[k] = c
	}
	return evaluateAndCommit(coeffs, ids), commit(coeffs), nil
}

// SplitSeeded is the deterministic "seeded coefficients" variant of Split,
// used to produce reproducible test vectors (spec.md §4.2): coefficient k
// is H_s("vss:coefficient:s:k") rather than drawn from the CSPRNG. It must
// never be used for a production run's secret.
func SplitSeeded(s *curve.Scalar, ids []*curve.Scalar, t int, seed string) ([]Share, Commitments) {
	coeffs := make([]*curve.Scalar, t+1)
	coeffs[0] = s
	for k := 1; k <= t; k++ {
		coeffs[k] = curve.HashToScalar([]byte(fmt.Sprintf("vss:coefficient:%s:%d", seed, k)))
	}
	return evaluateAndCommit(coeffs, ids), commit(coeffs)
}

func evaluateAndCommit(coeffs []*curve.Scalar, ids []*curve.Scalar) []Share {
	shares := make([]Share, len(ids))
	for i, id := range ids {
		shares[i] = Share{Index: id, Value: evalPoly(coeffs, id)}
	}
	return shares
}

func commit(coeffs []*curve.Scalar) Commitments {
	out := make(Commitments, len(coeffs))
	for k, c := range coeffs {
		out[k] = new(curve.G1).ScalarBaseMult(c)
	}
	return out
}

// evalPoly computes f(x) = sum_k coeffs[k] * x^k mod r via Horner's method.
func evalPoly(coeffs []*curve.Scalar, x *curve.Scalar) *curve.Scalar {
	acc := new(curve.Scalar)
	for k := len(coeffs) - 1; k >= 0; k-- {
		acc.Mul(acc, x)
		acc.Add(acc, coeffs[k])
	}
	return acc
}

// evaluateCommitment computes sum_k x^k * C_k in G1, the commitment-side
// evaluation of the polynomial at x (spec.md §4.2 "Verify").
func evaluateCommitment(x *curve.Scalar, cs Commitments) *curve.G1 {
	acc := curve.NewG1Identity()
	xk := curve.ScalarFromUint64(1)
	for _, c := range cs {
		term := new(curve.G1).ScalarMult(c, xk)
		acc.Add(acc, term)
		xk = new(curve.Scalar).Mul(xk, x)
	}
	return acc
}

// Verify reports whether share is consistent with cs: s_j*G1 == sum_k j^k*C_k.
// It also requires every commitment to be on-curve, since an external
// commitment list must be rejected outright otherwise (spec.md §4.1).
func Verify(share Share, cs Commitments) bool {
	for _, c := range cs {
		if !c.OnCurve() {
			return false
		}
	}
	lhs := new(curve.G1).ScalarBaseMult(share.Value)
	rhs := evaluateCommitment(share.Index, cs)
	return lhs.Equal(rhs)
}
