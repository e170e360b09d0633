package participant

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	"github.com/PhilippSchindler/ethdkg-go/persist"
	"github.com/PhilippSchindler/ethdkg-go/vss"
)

// Snapshot captures the correctness-critical subset of the run spec.md §6
// calls out for persistence: sk, s, this participant's own share of s,
// every decrypted share received from others, and this participant's own
// published commitments. Everything else (the roster, Q, disputed set,
// key shares) is re-derivable from the ledger on restart by replaying
// LoadShares/LoadDisputes/LoadKeyShares, so it is not persisted.
func (c *Core) Snapshot() persist.State {
	s := persist.State{
		RunID: c.RunID.String(),
		Self:  hexAddress(c.self),
		Phase: int(c.phase),
	}
	if c.sk != nil {
		b := c.sk.Bytes32()
		s.SK = b[:]
	}
	if c.s != nil {
		b := c.s.Bytes32()
		s.S = b[:]
	}
	if c.ownShare != nil {
		b := c.ownShare.Bytes32()
		s.OwnShare = b[:]
	}
	for addr, share := range c.decryptedShares {
		if share == nil {
			continue // INVALID_SHARE sentinel, not a secret to persist
		}
		b := share.Bytes32()
		s.DecryptedShares = append(s.DecryptedShares, persist.Share{
			Issuer: hexAddress(addr),
			Value:  b[:],
		})
	}
	if own, ok := c.commitments[c.self]; ok {
		points := make([][]byte, len(own))
		for i, p := range own {
			b := p.Bytes64()
			points[i] = b[:]
		}
		s.OwnCommitments = append(s.OwnCommitments, persist.Commitment{
			Issuer: hexAddress(c.self),
			Points: points,
		})
	}
	return s
}

// RestoreCore rebuilds a Core's correctness-critical secret material from
// a previously saved Snapshot. The caller still must call Setup (and
// whichever Load* calls correspond to snap.Phase) to rebuild the
// ledger-derived bookkeeping (roster, Q, D, key shares) before resuming,
// the way client/node.py reloads its sqlite-backed state and then
// replays chain events forward on restart.
func RestoreCore(l ledger.Ledger, snap persist.State) (*Core, error) {
	self, err := decodeHexAddress(snap.Self)
	if err != nil {
		return nil, fmt.Errorf("decoding persisted self address: %w", err)
	}
	runID, err := uuid.Parse(snap.RunID)
	if err != nil {
		return nil, fmt.Errorf("decoding persisted run id: %w", err)
	}

	c := NewCore(l, self)
	c.RunID = runID
	c.phase = Phase(snap.Phase)

	if len(snap.SK) == 32 {
		var b [32]byte
		copy(b[:], snap.SK)
		c.sk = new(curve.Scalar).SetBytes32(b)
		c.pk = new(curve.G1).ScalarBaseMult(c.sk)
	}
	if len(snap.S) == 32 {
		var b [32]byte
		copy(b[:], snap.S)
		c.s = new(curve.Scalar).SetBytes32(b)
	}
	if len(snap.OwnShare) == 32 {
		var b [32]byte
		copy(b[:], snap.OwnShare)
		c.ownShare = new(curve.Scalar).SetBytes32(b)
	}
	for _, share := range snap.DecryptedShares {
		addr, err := decodeHexAddress(share.Issuer)
		if err != nil {
			return nil, fmt.Errorf("decoding decrypted-share issuer: %w", err)
		}
		if len(share.Value) != 32 {
			return nil, fmt.Errorf("decrypted share for %s has wrong length", share.Issuer)
		}
		var b [32]byte
		copy(b[:], share.Value)
		c.decryptedShares[addr] = new(curve.Scalar).SetBytes32(b)
		if addr == self {
			c.ownShare = c.decryptedShares[addr]
		}
	}
	for _, cm := range snap.OwnCommitments {
		addr, err := decodeHexAddress(cm.Issuer)
		if err != nil {
			return nil, fmt.Errorf("decoding commitment issuer: %w", err)
		}
		points := make(vss.Commitments, len(cm.Points))
		for i, raw := range cm.Points {
			if len(raw) != 64 {
				return nil, fmt.Errorf("commitment point %d for %s has wrong length", i, cm.Issuer)
			}
			var x, y [32]byte
			copy(x[:], raw[:32])
			copy(y[:], raw[32:])
			points[i] = curve.G1FromXY(new(curve.Scalar).SetBytes32(x).BigInt(), new(curve.Scalar).SetBytes32(y).BigInt())
		}
		c.commitments[addr] = points
	}
	return c, nil
}

func hexAddress(a ledger.Address) string {
	return hex.EncodeToString(a[:])
}

func decodeHexAddress(s string) (ledger.Address, error) {
	var out ledger.Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("address hex %q has wrong length", s)
	}
	copy(out[:], b)
	return out, nil
}
