package vss

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

func TestPairwiseKeyAgreesBothDirections(t *testing.T) {
	c := qt.New(t)

	skI := curve.MustRandomScalar()
	skJ := curve.MustRandomScalar()
	pkI := new(curve.G1).ScalarBaseMult(skI)
	pkJ := new(curve.G1).ScalarBaseMult(skJ)

	kIJ := PairwiseKey(skI, pkJ)
	kJI := PairwiseKey(skJ, pkI)
	c.Assert(kIJ.Equal(kJI), qt.IsTrue)
}

func TestEncryptDecryptIsInvolution(t *testing.T) {
	c := qt.New(t)

	share := curve.MustRandomScalar()
	k := new(curve.G1).ScalarBaseMult(curve.MustRandomScalar())
	receiver := curve.ScalarFromUint64(7)

	enc := EncryptShare(share, k, receiver)
	dec := DecryptShare(enc, k, receiver)
	c.Assert(dec.Equal(share), qt.IsTrue)
}

func TestEncryptMasksDifferByReceiver(t *testing.T) {
	c := qt.New(t)

	share := curve.MustRandomScalar()
	k := new(curve.G1).ScalarBaseMult(curve.MustRandomScalar())

	encJ := EncryptShare(share, k, curve.ScalarFromUint64(2))
	encI := EncryptShare(share, k, curve.ScalarFromUint64(3))
	c.Assert(encJ, qt.Not(qt.DeepEquals), encI)
}
