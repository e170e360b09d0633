package curve

import "fmt"

// SchnorrProof is a non-interactive proof of knowledge of a discrete log,
// spec.md §4.1. When ProveSchnorr and VerifySchnorr are given a non-nil
// address, the proof additionally binds the witness to that ledger
// account, as registration does.
type SchnorrProof struct {
	C *Scalar
	R *Scalar
}

// ProveSchnorr proves knowledge of alpha such that pk = alpha*G1,
// optionally binding an account address.
func ProveSchnorr(alpha *Scalar, pk *G1, address *[20]byte) (*SchnorrProof, error) {
	w, err := RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("sampling schnorr nonce: %w", err)
	}
	T := new(G1).ScalarBaseMult(w)

	tr := NewTranscript().AppendG1(G1Generator()).AppendG1(pk).AppendG1(T)
	if address != nil {
		tr.AppendAddress(*address)
	}
	c := tr.Challenge()

	// r = w - alpha*c mod r
	ac := new(Scalar).Mul(alpha, c)
	r := new(Scalar).Sub(w, ac)
	return &SchnorrProof{C: c, R: r}, nil
}

// VerifySchnorr recomputes T' = r*G1 + c*pk and checks the challenge matches.
func VerifySchnorr(proof *SchnorrProof, pk *G1, address *[20]byte) bool {
	rG := new(G1).ScalarBaseMult(proof.R)
	cPk := new(G1).ScalarMult(pk, proof.C)
	Tprime := new(G1).Add(rG, cPk)

	tr := NewTranscript().AppendG1(G1Generator()).AppendG1(pk).AppendG1(Tprime)
	if address != nil {
		tr.AppendAddress(*address)
	}
	cPrime := tr.Challenge()
	return cPrime.Equal(proof.C)
}
