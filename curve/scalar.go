// Package curve wraps gnark-crypto's bn254 implementation behind the
// group-element and scalar types the DKG protocol is specified over,
// the way crypto/ecc/bn254 wraps gnark-crypto for the teacher's circuits.
package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Scalar is an element of Fq = Z/rZ, r the BN254 scalar-field order.
type Scalar struct {
	inner fr.Element
}

// Order returns r, the BN254 group order.
func Order() *big.Int {
	m := fr.Modulus()
	return new(big.Int).Set(m)
}

// NewScalar builds a Scalar from a big.Int, reducing mod r.
func NewScalar(v *big.Int) *Scalar {
	s := &Scalar{}
	s.inner.SetBigInt(v)
	return s
}

// ScalarFromUint64 builds a Scalar from a small non-negative integer, used
// for ParticipantId evaluation points.
func ScalarFromUint64(v uint64) *Scalar {
	s := &Scalar{}
	s.inner.SetUint64(v)
	return s
}

// RandomScalar draws a uniformly random scalar using a CSPRNG. Per spec.md
// §5, every secret scalar, polynomial coefficient, and proof nonce must
// come from here, never from a non-cryptographic RNG.
func RandomScalar() (*Scalar, error) {
	var v fr.Element
	if _, err := v.SetRandom(); err != nil {
		return nil, fmt.Errorf("sampling random scalar: %w", err)
	}
	return &Scalar{inner: v}, nil
}

// MustRandomScalar panics on RNG failure; used where a failure would be
// unrecoverable anyway (the caller has no plan B for its own key material).
func MustRandomScalar() *Scalar {
	s, err := RandomScalar()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.inner.Add(&a.inner, &b.inner)
	return s
}

func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	s.inner.Sub(&a.inner, &b.inner)
	return s
}

func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	s.inner.Mul(&a.inner, &b.inner)
	return s
}

func (s *Scalar) Neg(a *Scalar) *Scalar {
	s.inner.Neg(&a.inner)
	return s
}

// Inverse sets s to a^-1 mod r. a must be non-zero.
func (s *Scalar) Inverse(a *Scalar) *Scalar {
	s.inner.Inverse(&a.inner)
	return s
}

func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *Scalar) Equal(o *Scalar) bool {
	return s.inner.Equal(&o.inner)
}

// BigInt returns the canonical (non-Montgomery) big.Int representation.
func (s *Scalar) BigInt() *big.Int {
	return s.inner.BigInt(new(big.Int))
}

// Bytes32 returns the 32-byte big-endian encoding used by every transcript
// and every wire field in this protocol (spec.md §4.1).
func (s *Scalar) Bytes32() [32]byte {
	var out [32]byte
	b := s.BigInt().Bytes()
	copy(out[32-len(b):], b)
	return out
}

// SetBytes32 decodes a 32-byte big-endian field, reducing mod r.
func (s *Scalar) SetBytes32(b [32]byte) *Scalar {
	s.inner.SetBigInt(new(big.Int).SetBytes(b[:]))
	return s
}

func (s *Scalar) String() string {
	return s.BigInt().String()
}

