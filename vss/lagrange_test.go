package vss

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

// TestLagrangeCoefficientGoldenVector pins spec.md §8's literal vector:
// lambda_1({1,2,3}) = 3, using the m-numerator convention (spec.md §9 Open
// Question 1).
func TestLagrangeCoefficientGoldenVector(t *testing.T) {
	c := qt.New(t)

	lambda := LagrangeCoefficient(curve.ScalarFromUint64(1), ids(1, 2, 3))
	c.Assert(lambda.BigInt(), qt.DeepEquals, big.NewInt(3))
}

func TestReconstructScalarRoundTrip(t *testing.T) {
	c := qt.New(t)

	s := curve.MustRandomScalar()
	participants := ids(1, 2, 3, 4, 5)
	shares, _, err := Split(s, participants, 2)
	c.Assert(err, qt.IsNil)

	// Any threshold-sized (t+1=3) subset must reconstruct the same secret.
	subset := shares[:3]
	c.Assert(ReconstructScalar(subset).Equal(s), qt.IsTrue)

	otherSubset := []Share{shares[1], shares[2], shares[4]}
	c.Assert(ReconstructScalar(otherSubset).Equal(s), qt.IsTrue)
}

func TestReconstructPointRoundTrip(t *testing.T) {
	c := qt.New(t)

	s := curve.MustRandomScalar()
	participants := ids(1, 2, 3)
	shares, _, err := Split(s, participants, 1)
	c.Assert(err, qt.IsNil)

	pointShares := make([]PointShare, len(shares))
	for i, sh := range shares {
		pointShares[i] = PointShare{Index: sh.Index, Value: new(curve.G1).ScalarBaseMult(sh.Value)}
	}

	expected := new(curve.G1).ScalarBaseMult(s)
	c.Assert(ReconstructPoint(pointShares).Equal(expected), qt.IsTrue)
}
