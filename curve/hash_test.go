package curve

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHashToScalarDeterministic(t *testing.T) {
	c := qt.New(t)
	a := HashToScalar([]byte("ethdkg"))
	b := HashToScalar([]byte("ethdkg"))
	c.Assert(a.Equal(b), qt.IsTrue)

	other := HashToScalar([]byte("not-ethdkg"))
	c.Assert(a.Equal(other), qt.IsFalse)
}

func TestHashToG1ProducesOnCurvePoint(t *testing.T) {
	c := qt.New(t)
	for _, in := range [][]byte{
		make([]byte, 32),
		[]byte("participant-1"),
		{0x01, 0x02, 0x03},
	} {
		p := HashToG1(in)
		c.Assert(p.OnCurve(), qt.IsTrue)
	}
}

func TestHashToG1Deterministic(t *testing.T) {
	c := qt.New(t)
	in := []byte("deterministic-input")
	a := HashToG1(in)
	b := HashToG1(in)
	c.Assert(a.Equal(b), qt.IsTrue)
}

func TestHashToG1DistinctInputsDiffer(t *testing.T) {
	c := qt.New(t)
	a := HashToG1([]byte("alpha"))
	b := HashToG1([]byte("beta"))
	c.Assert(a.Equal(b), qt.IsFalse)
}

func TestTranscriptChallengeDependsOnOrder(t *testing.T) {
	c := qt.New(t)
	g := G1Generator()
	h := H1()

	c1 := NewTranscript().AppendG1(g).AppendG1(h).Challenge()
	c2 := NewTranscript().AppendG1(h).AppendG1(g).Challenge()
	c.Assert(c1.Equal(c2), qt.IsFalse)
}
