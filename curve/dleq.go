package curve

import "fmt"

// DLEQProof is a non-interactive proof that two base/image pairs share an
// exponent: Y1 = alpha*X1 and Y2 = alpha*X2 (spec.md §4.1). It is used for
// the dispute shared-key proof (bases G1, pk_issuer), the key-share proof
// (bases H1, G1), and the recovery pairwise-key proof (bases G1, pk_i).
type DLEQProof struct {
	C *Scalar
	R *Scalar
}

// ProveDLEQ proves knowledge of alpha such that Y1=alpha*X1, Y2=alpha*X2.
// Y1 and Y2 are the public images the verifier already holds; the caller
// is responsible for having computed them consistently with alpha.
func ProveDLEQ(alpha *Scalar, X1, Y1, X2, Y2 *G1) (*DLEQProof, error) {
	w, err := RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("sampling dleq nonce: %w", err)
	}
	A1 := new(G1).ScalarMult(X1, w)
	A2 := new(G1).ScalarMult(X2, w)

	c := dleqChallenge(A1, A2, X1, Y1, X2, Y2)
	ac := new(Scalar).Mul(alpha, c)
	r := new(Scalar).Sub(w, ac)
	return &DLEQProof{C: c, R: r}, nil
}

// VerifyDLEQ recomputes A1'=r*X1+c*Y1, A2'=r*X2+c*Y2 and checks the
// challenge matches.
func VerifyDLEQ(proof *DLEQProof, X1, Y1, X2, Y2 *G1) bool {
	rX1 := new(G1).ScalarMult(X1, proof.R)
	cY1 := new(G1).ScalarMult(Y1, proof.C)
	A1 := new(G1).Add(rX1, cY1)

	rX2 := new(G1).ScalarMult(X2, proof.R)
	cY2 := new(G1).ScalarMult(Y2, proof.C)
	A2 := new(G1).Add(rX2, cY2)

	cPrime := dleqChallenge(A1, A2, X1, Y1, X2, Y2)
	return cPrime.Equal(proof.C)
}

func dleqChallenge(A1, A2, X1, Y1, X2, Y2 *G1) *Scalar {
	return NewTranscript().
		AppendG1(A1).AppendG1(A2).
		AppendG1(X1).AppendG1(Y1).
		AppendG1(X2).AppendG1(Y2).
		Challenge()
}
