package curve

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDLEQProveVerifyRoundTrip(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	X1 := G1Generator()
	X2 := H1()
	Y1 := new(G1).ScalarMult(X1, alpha)
	Y2 := new(G1).ScalarMult(X2, alpha)

	proof, err := ProveDLEQ(alpha, X1, Y1, X2, Y2)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyDLEQ(proof, X1, Y1, X2, Y2), qt.IsTrue)
}

func TestDLEQRejectsInconsistentImages(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	beta := MustRandomScalar()
	c.Assert(alpha.Equal(beta), qt.IsFalse)

	X1 := G1Generator()
	X2 := H1()
	Y1 := new(G1).ScalarMult(X1, alpha)
	// Y2 computed with a different exponent than alpha: the images are no
	// longer consistent with a single discrete log.
	Y2 := new(G1).ScalarMult(X2, beta)

	proof, err := ProveDLEQ(alpha, X1, Y1, X2, Y2)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyDLEQ(proof, X1, Y1, X2, Y2), qt.IsFalse)
}

func TestDLEQRejectsTamperedChallenge(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	X1 := G1Generator()
	X2 := H1()
	Y1 := new(G1).ScalarMult(X1, alpha)
	Y2 := new(G1).ScalarMult(X2, alpha)

	proof, err := ProveDLEQ(alpha, X1, Y1, X2, Y2)
	c.Assert(err, qt.IsNil)

	tampered := &DLEQProof{C: new(Scalar).Add(proof.C, ScalarFromUint64(1)), R: proof.R}
	c.Assert(VerifyDLEQ(tampered, X1, Y1, X2, Y2), qt.IsFalse)
}
