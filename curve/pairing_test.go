package curve

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestPairingCheckGeneratorSelfConsistent(t *testing.T) {
	c := qt.New(t)

	// e(a*G1, G2) == e(G1, a*G2) for any scalar a, i.e.
	// e(a*G1,G2) * e(-G1,a*G2) == 1.
	a := MustRandomScalar()
	aG1 := new(G1).ScalarBaseMult(a)
	aG2 := new(G2).ScalarBaseMult(a)
	negG1 := new(G1).Neg(G1Generator())

	ok, err := PairingCheck(aG1, G2Generator(), negG1, aG2)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
}

func TestPairingCheckRejectsMismatchedExponent(t *testing.T) {
	c := qt.New(t)

	a := MustRandomScalar()
	b := MustRandomScalar()
	c.Assert(a.Equal(b), qt.IsFalse)

	aG1 := new(G1).ScalarBaseMult(a)
	bG2 := new(G2).ScalarBaseMult(b)
	negG1 := new(G1).Neg(G1Generator())

	ok, err := PairingCheck(aG1, G2Generator(), negG1, bG2)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestVerifyKeyShareConsistencyHoldsForMatchingExponent(t *testing.T) {
	c := qt.New(t)

	s := MustRandomScalar()
	h1 := new(G1).ScalarMult(H1(), s)
	h2 := new(G2).ScalarMult(H2(), s)

	ok, err := VerifyKeyShareConsistency(h1, h2)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
}

func TestVerifyKeyShareConsistencyRejectsMismatchedExponent(t *testing.T) {
	c := qt.New(t)

	s1 := MustRandomScalar()
	s2 := MustRandomScalar()
	c.Assert(s1.Equal(s2), qt.IsFalse)

	h1 := new(G1).ScalarMult(H1(), s1)
	h2 := new(G2).ScalarMult(H2(), s2)

	ok, err := VerifyKeyShareConsistency(h1, h2)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}
