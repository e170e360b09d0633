package participant

import (
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
)

// DeriveKeys computes the three final outputs of spec.md §3's last rows:
// the master public key, this participant's individual group secret key,
// and its two individual group public keys. A DLEQ proof ties gpk^H1 to
// gsk*G1, and a pairing check ties gpk^H1 to gpk^H2 (spec.md §4.3 "Key
// derivation").
func (c *Core) DeriveKeys() (*DerivedKeys, error) {
	if err := c.requirePhase(PhaseRecoveryDone); err != nil {
		return nil, err
	}

	mpk := curve.NewG2Identity()
	for _, id := range c.ids {
		ks, ok := c.keyShares[id.Address()]
		if !ok {
			continue
		}
		mpk.Add(mpk, ks.H2)
	}

	// Every term summed here already passed vss.Verify against its
	// issuer's commitments back in LoadShares, including the share from
	// an issuer whose key share was recovered; invariant 2 therefore
	// already holds termwise and needs no re-checking here.
	gsk := new(curve.Scalar)
	for _, id := range c.ids {
		if !c.qualified[id.Address()] {
			continue
		}
		var s *curve.Scalar
		if id.Address() == c.self {
			s = c.ownShare
		} else {
			s = c.decryptedShares[id.Address()]
		}
		if s == nil {
			return nil, fmt.Errorf("missing decrypted share for qualified issuer %x", id.Address())
		}
		gsk.Add(gsk, s)
	}

	gpkH1 := new(curve.G1).ScalarMult(curve.H1(), gsk)
	gpkH2 := new(curve.G2).ScalarMult(curve.H2(), gsk)
	gpkG1 := new(curve.G1).ScalarBaseMult(gsk)

	proof, err := curve.ProveDLEQ(gsk, curve.H1(), gpkH1, curve.G1Generator(), gpkG1)
	if err != nil {
		return nil, fmt.Errorf("proving group key consistency: %w", err)
	}

	consistent, err := curve.VerifyKeyShareConsistency(gpkH1, gpkH2)
	if err != nil {
		return nil, fmt.Errorf("checking group key pairing consistency: %w", err)
	}
	if !consistent {
		return nil, fmt.Errorf("e(H2,gpk^H1) != e(gpk^H2,H1)")
	}

	derived := &DerivedKeys{
		MPK:      mpk,
		GSK:      gsk,
		GPKInH2:  gpkH2,
		GPKInH1:  gpkH1,
		GPKProof: proof,
	}
	c.derived = derived
	c.transition(PhaseKeysDerived)
	return derived, nil
}
