package vss

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

// PairwiseKey computes k_ij = sk_i * pk_j, the ElGamal-style shared secret
// both endpoints can derive independently (spec.md §4.2 "Share encryption").
func PairwiseKey(sk *curve.Scalar, pk *curve.G1) *curve.G1 {
	return new(curve.G1).ScalarMult(pk, sk)
}

// EncryptedShare is the XOR-masked wire encoding of a single share.
type EncryptedShare [32]byte

// EncryptShare masks share with Keccak256(normalize(k).x || receiver),
// spec.md §4.2. receiver is the id of the share's intended holder, mixed in
// so the masks used for i->j and j->i differ even though k_ij == k_ji.
func EncryptShare(share *curve.Scalar, k *curve.G1, receiver *curve.Scalar) EncryptedShare {
	return EncryptedShare(xorMask(share, k, receiver))
}

// DecryptShare undoes EncryptShare; it is the same XOR, so it is also its
// own encryption function (spec.md §8 "Share-encryption is an involution").
func DecryptShare(enc EncryptedShare, k *curve.G1, receiver *curve.Scalar) *curve.Scalar {
	plain := xorMaskBytes([32]byte(enc), k, receiver)
	var s curve.Scalar
	s.SetBytes32(plain)
	return &s
}

func xorMask(share *curve.Scalar, k *curve.G1, receiver *curve.Scalar) [32]byte {
	return xorMaskBytes(share.Bytes32(), k, receiver)
}

func xorMaskBytes(data [32]byte, k *curve.G1, receiver *curve.Scalar) [32]byte {
	x, _ := k.XY()
	var xBytes [32]byte
	b := x.Bytes()
	copy(xBytes[32-len(b):], b)

	receiverBytes := receiver.Bytes32()
	mask := ethcrypto.Keccak256(xBytes[:], receiverBytes[:])

	var out [32]byte
	for i := range out {
		out[i] = data[i] ^ mask[i]
	}
	return out
}
