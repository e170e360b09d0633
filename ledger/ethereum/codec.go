package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

func addressToCommon(a ledger.Address) common.Address {
	return common.Address(a)
}

func commonToAddress(a common.Address) ledger.Address {
	return ledger.Address(a)
}

func g1ToXY(p *curve.G1) (x, y *big.Int) {
	return p.XY()
}

func g1FromXY(x, y *big.Int) (*curve.G1, error) {
	p := curve.G1FromXY(x, y)
	if !p.OnCurve() {
		return nil, fmt.Errorf("point (%s, %s) is not on the bn254 G1 curve", x, y)
	}
	return p, nil
}

func g2ToFq2(p *curve.G2) (xi, x, yi, y *big.Int) {
	return p.Fq2Coords()
}

func g2FromFq2(xi, x, yi, y *big.Int) (*curve.G2, error) {
	p := curve.G2FromFq2(xi, x, yi, y)
	if !p.OnCurve() {
		return nil, fmt.Errorf("point not on the bn254 G2 curve")
	}
	return p, nil
}

func schnorrToArgs(proof *curve.SchnorrProof) (c, r *big.Int) {
	return proof.C.BigInt(), proof.R.BigInt()
}

func schnorrFromArgs(c, r *big.Int) *curve.SchnorrProof {
	return &curve.SchnorrProof{C: curve.NewScalar(c), R: curve.NewScalar(r)}
}

func dleqToArgs(proof *curve.DLEQProof) (c, r *big.Int) {
	return proof.C.BigInt(), proof.R.BigInt()
}

func dleqFromArgs(c, r *big.Int) *curve.DLEQProof {
	return &curve.DLEQProof{C: curve.NewScalar(c), R: curve.NewScalar(r)}
}
