package curve

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	lru "github.com/hashicorp/golang-lru/v2"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// hashToG1Cache memoizes HashToG1 results. The try-and-increment loop is
// the one non-constant-time, potentially-looping primitive on the hot
// path (spec.md §4.1), and commitments/disputes re-hash the same
// 32-byte inputs repeatedly as an n-participant run fans events in; a
// small bounded cache avoids redoing the loop for inputs already seen.
var hashToG1Cache, _ = lru.New[[32]byte, *G1](4096)

var pPlus1Over4 = func() *big.Int {
	p := fieldModulus()
	n := new(big.Int).Add(p, big.NewInt(1))
	return n.Rsh(n, 2)
}()

// HashToScalar computes H_s(data) = Keccak256(data) mod r, spec.md §4.1.
func HashToScalar(data ...[]byte) *Scalar {
	h := ethcrypto.Keccak256(data...)
	return NewScalar(new(big.Int).SetBytes(h))
}

// HashToG1 maps an arbitrary-length input to a G1 point via the
// try-and-increment procedure of spec.md §4.1. Inputs are canonicalized
// to 32 bytes by Keccak256 first if not already exactly 32 bytes, so
// callers never need to pre-hash themselves.
//
// This function is deliberately NOT constant-time: it must reproduce
// exactly the same point an on-ledger verifier using the identical
// procedure would produce for the same input, and that verifier is not
// constant-time either (spec.md §4.1).
func HashToG1(data []byte) *G1 {
	var canon [32]byte
	if len(data) == 32 {
		copy(canon[:], data)
	} else {
		h := ethcrypto.Keccak256(data)
		copy(canon[:], h)
	}

	if cached, ok := hashToG1Cache.Get(canon); ok {
		return cached
	}

	p := fieldModulus()
	for i := uint32(0); ; i++ {
		var iBytes [32]byte
		binary.BigEndian.PutUint32(iBytes[28:], i)
		h := ethcrypto.Keccak256(iBytes[:], canon[:])
		hInt := new(big.Int).SetBytes(h)

		b := new(big.Int).And(hInt, big.NewInt(1))
		x := new(big.Int).Rsh(hInt, 2)
		if x.Cmp(p) >= 0 {
			continue
		}

		var xElem, zElem, yElem fp.Element
		xElem.SetBigInt(x)
		zElem.Square(&xElem)
		zElem.Mul(&zElem, &xElem)
		zElem.Add(&zElem, curveB())

		yElem.Exp(zElem, pPlus1Over4)

		var check fp.Element
		check.Square(&yElem)
		if !check.Equal(&zElem) {
			continue
		}

		y := yElem.BigInt(new(big.Int))
		if b.Sign() != 0 {
			y.Sub(p, y)
		}

		point := G1FromXY(x, y)
		hashToG1Cache.Add(canon, point)
		return point
	}
}

// curveB returns the BN254 short Weierstrass coefficient b=3 as an fp.Element.
func curveB() *fp.Element {
	var b fp.Element
	b.SetUint64(3)
	return &b
}
