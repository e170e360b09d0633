package curve

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSchnorrProveVerifyRoundTrip(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	pk := new(G1).ScalarBaseMult(alpha)

	proof, err := ProveSchnorr(alpha, pk, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifySchnorr(proof, pk, nil), qt.IsTrue)
}

func TestSchnorrBindsAddress(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	pk := new(G1).ScalarBaseMult(alpha)
	addr := [20]byte{0x01, 0x02, 0x03}

	proof, err := ProveSchnorr(alpha, pk, &addr)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifySchnorr(proof, pk, &addr), qt.IsTrue)

	otherAddr := [20]byte{0xff}
	c.Assert(VerifySchnorr(proof, pk, &otherAddr), qt.IsFalse)
	c.Assert(VerifySchnorr(proof, pk, nil), qt.IsFalse)
}

func TestSchnorrRejectsWrongKey(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	pk := new(G1).ScalarBaseMult(alpha)
	proof, err := ProveSchnorr(alpha, pk, nil)
	c.Assert(err, qt.IsNil)

	wrongPk := new(G1).ScalarBaseMult(MustRandomScalar())
	c.Assert(VerifySchnorr(proof, wrongPk, nil), qt.IsFalse)
}

func TestSchnorrRejectsTamperedResponse(t *testing.T) {
	c := qt.New(t)

	alpha := MustRandomScalar()
	pk := new(G1).ScalarBaseMult(alpha)
	proof, err := ProveSchnorr(alpha, pk, nil)
	c.Assert(err, qt.IsNil)

	tampered := &SchnorrProof{C: proof.C, R: new(Scalar).Add(proof.R, ScalarFromUint64(1))}
	c.Assert(VerifySchnorr(tampered, pk, nil), qt.IsFalse)
}
