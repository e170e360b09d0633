package participant

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestThresholdETHDKG(t *testing.T) {
	c := qt.New(t)
	c.Assert(ThresholdETHDKG(5), qt.Equals, 2)
	c.Assert(ThresholdETHDKG(4), qt.Equals, 1)
	c.Assert(ThresholdETHDKG(6), qt.Equals, 2)
	c.Assert(ThresholdETHDKG(7), qt.Equals, 3)
}

func TestThresholdFC19(t *testing.T) {
	c := qt.New(t)
	c.Assert(ThresholdFC19(5), qt.Equals, 3)
	c.Assert(ThresholdFC19(4), qt.Equals, 3)
}

func TestIDFromAddressDistinctAndNonZero(t *testing.T) {
	c := qt.New(t)
	a := addrFromByte(1)
	b := addrFromByte(2)

	idA, idB := IDFromAddress(a), IDFromAddress(b)
	c.Assert(idA.Scalar().IsZero(), qt.IsFalse)
	c.Assert(idA.Equal(idB), qt.IsFalse)
	c.Assert(idA.Equal(IDFromAddress(a)), qt.IsTrue)
}
