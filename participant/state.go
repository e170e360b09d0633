package participant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/dkgerrors"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
	"github.com/PhilippSchindler/ethdkg-go/vss"
)

// Phase is one state in the linear progression of spec.md §4.3.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseRegistered
	PhaseSharesDistributed
	PhaseSharesLoaded
	PhaseDisputesSubmitted
	PhaseDisputesLoaded
	PhaseKeyShareSubmitted
	PhaseKeyShareLoaded
	PhaseRecoveryDone
	PhaseKeysDerived
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "NEW"
	case PhaseRegistered:
		return "REGISTERED"
	case PhaseSharesDistributed:
		return "SHARES_DISTRIBUTED"
	case PhaseSharesLoaded:
		return "SHARES_LOADED"
	case PhaseDisputesSubmitted:
		return "DISPUTES_SUBMITTED"
	case PhaseDisputesLoaded:
		return "DISPUTES_LOADED"
	case PhaseKeyShareSubmitted:
		return "KEY_SHARE_SUBMITTED"
	case PhaseKeyShareLoaded:
		return "KEY_SHARES_LOADED"
	case PhaseRecoveryDone:
		return "RECOVERY_DONE"
	case PhaseKeysDerived:
		return "KEYS_DERIVED"
	case PhaseAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// KeyShare is a published (h1, h2) pair, spec.md §3.
type KeyShare struct {
	H1 *curve.G1
	H2 *curve.G2
}

// DerivedKeys holds the three final outputs of spec.md §3's last row.
type DerivedKeys struct {
	MPK       *curve.G2
	GSK       *curve.Scalar
	GPKInH2   *curve.G2
	GPKInH1   *curve.G1
	GPKProof  *curve.DLEQProof
}

// Core is a single participant's DKG run. It is not safe for concurrent
// use: per spec.md §5 the core is single-threaded cooperative, driven
// entirely by the caller's sequential phase loop.
type Core struct {
	RunID uuid.UUID

	ledger ledger.Ledger
	self   ledger.Address

	sk *curve.Scalar
	pk *curve.G1

	phase Phase
	t     int

	ids   []ID
	index int // position of self within ids

	pkOf map[ledger.Address]*curve.G1

	// Local secret material. Never published.
	s               *curve.Scalar
	ownShare        *curve.Scalar
	sharedKeys      map[ledger.Address]*curve.G1
	decryptedShares map[ledger.Address]*curve.Scalar // nil entry == INVALID_SHARE

	commitments map[ledger.Address]vss.Commitments
	distributed map[ledger.Address]bool // issuer published a ShareDistribution

	// archivedShares holds every issuer's full published encrypted-share
	// array, in its original [ids \ {issuer}] order, so a dispute or a
	// recovery for an arbitrary (issuer, receiver) pair unrelated to self
	// can be replayed and re-verified.
	archivedShares map[ledger.Address][][32]byte

	disputeCandidates map[ledger.Address]bool
	disputed          map[ledger.Address]bool // D
	qualified         map[ledger.Address]bool // Q, fixed once computed

	keyShares     map[ledger.Address]KeyShare
	submittedKeys map[ledger.Address]bool

	recovery *recoveryState

	derived *DerivedKeys
}

// NewCore creates a fresh Core for self, driven by l.
func NewCore(l ledger.Ledger, self ledger.Address) *Core {
	return &Core{
		RunID:             uuid.New(),
		ledger:            l,
		self:              self,
		phase:             PhaseNew,
		pkOf:              make(map[ledger.Address]*curve.G1),
		sharedKeys:        make(map[ledger.Address]*curve.G1),
		decryptedShares:   make(map[ledger.Address]*curve.Scalar),
		commitments:       make(map[ledger.Address]vss.Commitments),
		distributed:       make(map[ledger.Address]bool),
		archivedShares:    make(map[ledger.Address][][32]byte),
		disputeCandidates: make(map[ledger.Address]bool),
		disputed:          make(map[ledger.Address]bool),
		qualified:         make(map[ledger.Address]bool),
		keyShares:         make(map[ledger.Address]KeyShare),
		submittedKeys:     make(map[ledger.Address]bool),
		recovery:          newRecoveryState(),
	}
}

// Phase returns the current phase.
func (c *Core) Phase() Phase { return c.phase }

// Threshold returns t, valid only once Setup has run.
func (c *Core) Threshold() int { return c.t }

// Qualified returns the snapshot of Q once computed (spec.md §4.3
// "Qualified set"); empty before the dispute phase has closed.
func (c *Core) Qualified() []ledger.Address {
	out := make([]ledger.Address, 0, len(c.qualified))
	for addr, ok := range c.qualified {
		if ok {
			out = append(out, addr)
		}
	}
	return out
}

// Derived returns the locally derived keys once KEYS_DERIVED is reached.
func (c *Core) Derived() *DerivedKeys { return c.derived }

func (c *Core) transition(next Phase) {
	log.PhaseTransition(idToLogField(c.self), next.String(), 0)
	c.phase = next
}

func (c *Core) abort(ctx context.Context, err *dkgerrors.Error) error {
	c.phase = PhaseAborted
	log.Errorw(err, "dkg run aborted", "run", c.RunID.String())
	return err
}

func idToLogField(a ledger.Address) uint64 {
	var v uint64
	for _, b := range a[12:] {
		v = v<<8 | uint64(b)
	}
	return v
}

func (c *Core) requirePhase(want Phase) error {
	if c.phase != want {
		return fmt.Errorf("expected phase %s, got %s", want, c.phase)
	}
	return nil
}
