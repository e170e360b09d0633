package participant

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// TestSnapshotRestoreRoundTrip checks that a Core's secret material
// survives a Snapshot/RestoreCore round trip untouched — the property
// persist/ exists to guarantee across a process restart (spec.md §6/§9).
func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c := qt.New(t)

	_, _, cores := setupRun(t, 3)
	distributeAndLoad(t, cores)

	original := cores[0]
	snap := original.Snapshot()

	restored, err := RestoreCore(original.ledger, snap)
	c.Assert(err, qt.IsNil)

	c.Assert(restored.self, qt.Equals, original.self)
	c.Assert(restored.RunID, qt.Equals, original.RunID)
	c.Assert(restored.phase, qt.Equals, original.phase)
	c.Assert(restored.sk.Equal(original.sk), qt.IsTrue)
	c.Assert(restored.s.Equal(original.s), qt.IsTrue)
	c.Assert(restored.ownShare.Equal(original.ownShare), qt.IsTrue)

	for addr, share := range original.decryptedShares {
		if share == nil {
			continue
		}
		got, ok := restored.decryptedShares[addr]
		c.Assert(ok, qt.IsTrue)
		c.Assert(got.Equal(share), qt.IsTrue)
	}

	ownCommitments, ok := restored.commitments[original.self]
	c.Assert(ok, qt.IsTrue)
	c.Assert(len(ownCommitments), qt.Equals, len(original.commitments[original.self]))
	for i, p := range ownCommitments {
		c.Assert(p.Equal(original.commitments[original.self][i]), qt.IsTrue)
	}
}
