package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// G1 wraps a BN254 G1 affine point, the way crypto/ecc/bn254.G1 wraps
// gnark-crypto's G1Affine for the teacher's circuits.
type G1 struct {
	inner bn254.G1Affine
}

// NewG1Identity returns the G1 identity element (point at infinity).
func NewG1Identity() *G1 {
	g := &G1{}
	g.inner.X.SetZero()
	g.inner.Y.SetZero()
	return g
}

// G1Generator returns a fresh copy of the standard generator (1, 2).
func G1Generator() *G1 {
	g := &G1{}
	g.inner.X.SetOne()
	g.inner.Y.SetUint64(2)
	return g
}

// G1FromXY builds a G1 point from big-endian coordinates without checking
// curve membership; callers that accept external input MUST call OnCurve.
func G1FromXY(x, y *big.Int) *G1 {
	g := &G1{}
	g.inner.X.SetBigInt(x)
	g.inner.Y.SetBigInt(y)
	return g
}

// OnCurve reports whether the point satisfies y^2 = x^3 + 3, as required by
// spec.md §4.1 for every externally supplied point.
func (g *G1) OnCurve() bool {
	return g.inner.IsOnCurve()
}

func (g *G1) Add(a, b *G1) *G1 {
	g.inner.Add(&a.inner, &b.inner)
	return g
}

func (g *G1) Neg(a *G1) *G1 {
	g.inner.Neg(&a.inner)
	return g
}

// ScalarMult sets g = s*a.
func (g *G1) ScalarMult(a *G1, s *Scalar) *G1 {
	g.inner.ScalarMultiplication(&a.inner, s.BigInt())
	return g
}

// ScalarBaseMult sets g = s*G1.
func (g *G1) ScalarBaseMult(s *Scalar) *G1 {
	gen := G1Generator()
	return g.ScalarMult(gen, s)
}

// Normalize is a no-op for the affine representation used here; it exists
// so call sites that mirror spec.md's normalize(P) read the same way
// regardless of whether a future Jacobian fast path is introduced.
func (g *G1) Normalize() *G1 { return g }

func (g *G1) Equal(o *G1) bool {
	return g.inner.Equal(&o.inner)
}

func (g *G1) IsIdentity() bool {
	return g.inner.X.IsZero() && g.inner.Y.IsZero()
}

// XY returns the affine coordinates as big.Int.
func (g *G1) XY() (*big.Int, *big.Int) {
	return g.inner.X.BigInt(new(big.Int)), g.inner.Y.BigInt(new(big.Int))
}

// Bytes64 returns the wire encoding (x, y) as two 32-byte big-endian words,
// per spec.md §6 "Point encoding on the wire".
func (g *G1) Bytes64() [64]byte {
	var out [64]byte
	x, y := g.XY()
	xb, yb := x.Bytes(), y.Bytes()
	copy(out[32-len(xb):32], xb)
	copy(out[64-len(yb):64], yb)
	return out
}

func (g *G1) String() string {
	x, y := g.XY()
	return fmt.Sprintf("(%s, %s)", x.String(), y.String())
}

// G2 wraps a BN254 G2 affine point (over Fq2).
type G2 struct {
	inner bn254.G2Affine
}

func NewG2Identity() *G2 {
	g := &G2{}
	g.inner.X.SetZero()
	g.inner.Y.SetZero()
	return g
}

// G2Generator returns the standard EIP-197 G2 generator.
func G2Generator() *G2 {
	_, _, _, gen2 := bn254.Generators()
	g := &G2{inner: gen2}
	return g
}

// G2FromFq2 builds a G2 point from its four Fq coordinates, imaginary part
// first for each of x and y, matching spec.md §6's wire order
// (a_i, a, b_i, b).
func G2FromFq2(xi, x, yi, y *big.Int) *G2 {
	g := &G2{}
	g.inner.X.A1.SetBigInt(xi)
	g.inner.X.A0.SetBigInt(x)
	g.inner.Y.A1.SetBigInt(yi)
	g.inner.Y.A0.SetBigInt(y)
	return g
}

func (g *G2) OnCurve() bool {
	return g.inner.IsOnCurve()
}

func (g *G2) Add(a, b *G2) *G2 {
	g.inner.Add(&a.inner, &b.inner)
	return g
}

func (g *G2) Neg(a *G2) *G2 {
	g.inner.Neg(&a.inner)
	return g
}

func (g *G2) ScalarMult(a *G2, s *Scalar) *G2 {
	g.inner.ScalarMultiplication(&a.inner, s.BigInt())
	return g
}

func (g *G2) ScalarBaseMult(s *Scalar) *G2 {
	gen := G2Generator()
	return g.ScalarMult(gen, s)
}

func (g *G2) Equal(o *G2) bool {
	return g.inner.Equal(&o.inner)
}

func (g *G2) IsIdentity() bool {
	return g.inner.X.IsZero() && g.inner.Y.IsZero()
}

// Fq2Coords returns (x_imag, x_real, y_imag, y_real), matching the wire
// order spec.md §6 mandates.
func (g *G2) Fq2Coords() (xi, x, yi, y *big.Int) {
	return g.inner.X.A1.BigInt(new(big.Int)), g.inner.X.A0.BigInt(new(big.Int)),
		g.inner.Y.A1.BigInt(new(big.Int)), g.inner.Y.A0.BigInt(new(big.Int))
}

func (g *G2) String() string {
	xi, x, yi, y := g.Fq2Coords()
	return fmt.Sprintf("((%s, %s), (%s, %s))", xi.String(), x.String(), yi.String(), y.String())
}

// fieldModulus is p, the BN254 base field order, used by hash-to-G1's
// Tonelli-Shanks shortcut (p ≡ 3 mod 4).
func fieldModulus() *big.Int {
	return fp.Modulus()
}
