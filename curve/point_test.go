package curve

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestG1GeneratorOnCurve(t *testing.T) {
	c := qt.New(t)
	c.Assert(G1Generator().OnCurve(), qt.IsTrue)
	c.Assert(NewG1Identity().IsIdentity(), qt.IsTrue)
}

func TestG1ScalarMultAndAdd(t *testing.T) {
	c := qt.New(t)
	two := ScalarFromUint64(2)

	g := G1Generator()
	doubled := new(G1).ScalarBaseMult(two)
	sum := new(G1).Add(g, g)
	c.Assert(doubled.Equal(sum), qt.IsTrue)
}

func TestG1NegCancels(t *testing.T) {
	c := qt.New(t)
	g := G1Generator()
	negG := new(G1).Neg(g)
	sum := new(G1).Add(g, negG)
	c.Assert(sum.IsIdentity(), qt.IsTrue)
}

func TestG1Bytes64RoundTrip(t *testing.T) {
	c := qt.New(t)
	g := new(G1).ScalarBaseMult(MustRandomScalar())
	b := g.Bytes64()

	x := new(big.Int).SetBytes(b[:32])
	y := new(big.Int).SetBytes(b[32:])
	var round G1
	round = *G1FromXY(x, y)
	c.Assert(round.Equal(g), qt.IsTrue)
	c.Assert(len(b), qt.Equals, 64)
}

func TestG2GeneratorOnCurve(t *testing.T) {
	c := qt.New(t)
	c.Assert(G2Generator().OnCurve(), qt.IsTrue)
	c.Assert(NewG2Identity().IsIdentity(), qt.IsTrue)
}

func TestG2ScalarMultAndAdd(t *testing.T) {
	c := qt.New(t)
	three := ScalarFromUint64(3)

	g := G2Generator()
	tripled := new(G2).ScalarBaseMult(three)

	sum := new(G2).Add(g, g)
	sum = new(G2).Add(sum, g)
	c.Assert(tripled.Equal(sum), qt.IsTrue)
}

func TestH1H2OnCurve(t *testing.T) {
	c := qt.New(t)
	c.Assert(H1().OnCurve(), qt.IsTrue)
	c.Assert(H2().OnCurve(), qt.IsTrue)
}

func TestG1FromXYRejectsOffCurvePoint(t *testing.T) {
	c := qt.New(t)
	x, y := G1Generator().XY()
	y.Add(y, big.NewInt(1))
	p := G1FromXY(x, y)
	c.Assert(p.OnCurve(), qt.IsFalse)
}
