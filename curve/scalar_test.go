package curve

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestScalarArithmetic(t *testing.T) {
	c := qt.New(t)

	a := NewScalar(big.NewInt(5))
	b := NewScalar(big.NewInt(3))

	c.Assert(new(Scalar).Add(a, b).BigInt(), qt.DeepEquals, big.NewInt(8))
	c.Assert(new(Scalar).Sub(a, b).BigInt(), qt.DeepEquals, big.NewInt(2))
	c.Assert(new(Scalar).Mul(a, b).BigInt(), qt.DeepEquals, big.NewInt(15))

	inv := new(Scalar).Inverse(a)
	one := new(Scalar).Mul(a, inv)
	c.Assert(one.BigInt(), qt.DeepEquals, big.NewInt(1))
}

func TestScalarBytes32RoundTrip(t *testing.T) {
	c := qt.New(t)
	for i := 0; i < 20; i++ {
		s := MustRandomScalar()
		var decoded Scalar
		decoded.SetBytes32(s.Bytes32())
		c.Assert(decoded.Equal(s), qt.IsTrue)
	}
}

func TestScalarModuloReduction(t *testing.T) {
	c := qt.New(t)
	order := Order()
	beyond := new(big.Int).Add(order, big.NewInt(7))
	s := NewScalar(beyond)
	c.Assert(s.BigInt(), qt.DeepEquals, big.NewInt(7))
}
