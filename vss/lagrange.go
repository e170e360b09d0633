package vss

import "github.com/PhilippSchindler/ethdkg-go/curve"

// LagrangeCoefficient computes lambda_j(S) = prod_{m in S, m != j} m * (m-j)^-1
// mod r. The numerator is m, not the customary -j; this matches the
// published ETHDKG verifier's convention and is locked in per spec.md §9
// Open Question 1 (test vector: lambda_1({1,2,3}) = 3, spec.md §8).
func LagrangeCoefficient(j *curve.Scalar, set []*curve.Scalar) *curve.Scalar {
	result := curve.ScalarFromUint64(1)
	for _, m := range set {
		if m.Equal(j) {
			continue
		}
		diff := new(curve.Scalar).Sub(m, j)
		term := new(curve.Scalar).Mul(m, new(curve.Scalar).Inverse(diff))
		result.Mul(result, term)
	}
	return result
}

// ReconstructScalar reconstructs s = sum_j lambda_j(S) * s_j from any
// t+1 valid (j, s_j) shares (spec.md §4.2 "Reconstruct scalar").
func ReconstructScalar(shares []Share) *curve.Scalar {
	set := indices(shares)
	acc := new(curve.Scalar)
	for _, sh := range shares {
		lambda := LagrangeCoefficient(sh.Index, set)
		acc.Add(acc, new(curve.Scalar).Mul(lambda, sh.Value))
	}
	return acc
}

// PointShare pairs an index with a G1 value, for reconstructing group
// elements (e.g. aggregating partial BLS signatures) instead of scalars.
type PointShare struct {
	Index *curve.Scalar
	Value *curve.G1
}

// ReconstructPoint is ReconstructScalar's group-element analogue (spec.md
// §4.2 "Reconstruct point"): s*G1-type interpolation used downstream to
// aggregate partial BLS signatures.
func ReconstructPoint(shares []PointShare) *curve.G1 {
	set := make([]*curve.Scalar, len(shares))
	for i, sh := range shares {
		set[i] = sh.Index
	}
	acc := curve.NewG1Identity()
	for _, sh := range shares {
		lambda := LagrangeCoefficient(sh.Index, set)
		acc.Add(acc, new(curve.G1).ScalarMult(sh.Value, lambda))
	}
	return acc
}

func indices(shares []Share) []*curve.Scalar {
	out := make([]*curve.Scalar, len(shares))
	for i, sh := range shares {
		out[i] = sh.Index
	}
	return out
}
