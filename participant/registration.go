package participant

import (
	"context"
	"fmt"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

// Register generates (sk, pk), proves knowledge of sk bound to self, and
// submits before the registration deadline (spec.md §4.3 "Registration").
func (c *Core) Register(ctx context.Context) error {
	if err := c.requirePhase(PhaseNew); err != nil {
		return err
	}

	deadlines, err := c.ledger.Deadlines(ctx)
	if err != nil {
		return fmt.Errorf("reading deadlines: %w", err)
	}
	block, err := c.ledger.CurrentBlock(ctx)
	if err != nil {
		return fmt.Errorf("reading current block: %w", err)
	}
	if block > deadlines.RegistrationEnd {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindLatePhase,
			fmt.Errorf("registration closed at block %d, now %d", deadlines.RegistrationEnd, block)))
	}

	sk, err := curve.RandomScalar()
	if err != nil {
		return fmt.Errorf("sampling long-term key: %w", err)
	}
	pk := new(curve.G1).ScalarBaseMult(sk)

	proof, err := curve.ProveSchnorr(sk, pk, (*[20]byte)(&c.self))
	if err != nil {
		return fmt.Errorf("proving knowledge of sk: %w", err)
	}

	if err := c.ledger.Register(ctx, pk, proof); err != nil {
		return c.abort(ctx, dkgerrors.New(dkgerrors.KindLedgerRejected, err))
	}

	c.sk, c.pk = sk, pk
	c.transition(PhaseRegistered)
	return nil
}

// Setup reads the closed registration roster, builds the ParticipantId
// list, and precomputes pairwise DH secrets (spec.md §4.3 "Setup"). It must
// run after the registration phase has closed on-ledger.
func (c *Core) Setup(ctx context.Context) error {
	if err := c.requirePhase(PhaseRegistered); err != nil {
		return err
	}

	addrs, err := c.ledger.Addresses(ctx)
	if err != nil {
		return fmt.Errorf("reading registration roster: %w", err)
	}
	if len(addrs) == 0 {
		return fmt.Errorf("empty registration roster")
	}

	c.ids = make([]ID, len(addrs))
	c.index = -1
	for i, addr := range addrs {
		c.ids[i] = IDFromAddress(addr)
		if addr == c.self {
			c.index = i
		}

		pk, err := c.ledger.PublicKey(ctx, addr)
		if err != nil {
			return fmt.Errorf("reading public key for %x: %w", addr, err)
		}
		if !pk.OnCurve() {
			return dkgerrors.For(dkgerrors.KindPointNotOnCurve, idToLogField(addr),
				fmt.Errorf("registered public key not on curve"))
		}
		c.pkOf[addr] = pk
	}
	if c.index < 0 {
		return fmt.Errorf("self address %x not found in registration roster", c.self)
	}

	c.t = ThresholdETHDKG(len(addrs))

	for _, id := range c.ids {
		if id.Address() == c.self {
			continue
		}
		c.sharedKeys[id.Address()] = new(curve.G1).ScalarMult(c.pkOf[id.Address()], c.sk)
	}
	return nil
}

// selfID returns this participant's own ParticipantId.
func (c *Core) selfID() ID { return c.ids[c.index] }

// otherIDs returns every ParticipantId except self, in roster order.
func (c *Core) otherIDs() []ID {
	return c.otherIDsOf(c.self)
}

// otherIDsOf returns every ParticipantId except issuer, in roster order:
// the order any issuer's own encrypted-share submission follows (spec.md
// §4.3 "Share distribution": "the fixed order [ids \ {idx}]").
func (c *Core) otherIDsOf(issuer ledger.Address) []ID {
	out := make([]ID, 0, len(c.ids)-1)
	for _, id := range c.ids {
		if id.Address() != issuer {
			out = append(out, id)
		}
	}
	return out
}
