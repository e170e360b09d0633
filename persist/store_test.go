package persist

import (
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "state.cbor"))

	c.Assert(store.Exists(), qt.IsFalse)

	want := State{
		RunID:    "11111111-1111-1111-1111-111111111111",
		Self:     "0102030405060708090a0b0c0d0e0f1011121314",
		Phase:    3,
		SK:       make([]byte, 32),
		S:        make([]byte, 32),
		OwnShare: make([]byte, 32),
		DecryptedShares: []Share{
			{Issuer: "1111111111111111111111111111111111111111", Value: make([]byte, 32)},
		},
		OwnCommitments: []Commitment{
			{Issuer: "0102030405060708090a0b0c0d0e0f1011121314", Points: [][]byte{make([]byte, 64)}},
		},
	}
	want.SK[31] = 7

	c.Assert(store.Save(want), qt.IsNil)
	c.Assert(store.Exists(), qt.IsTrue)

	got, err := store.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, want)
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "state.cbor"))

	c.Assert(store.Save(State{RunID: "a", Phase: 1}), qt.IsNil)
	c.Assert(store.Save(State{RunID: "b", Phase: 5}), qt.IsNil)

	got, err := store.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(got.RunID, qt.Equals, "b")
	c.Assert(got.Phase, qt.Equals, 5)
}

func TestMarshalIsDeterministic(t *testing.T) {
	c := qt.New(t)
	s := State{RunID: "x", Self: "y", Phase: 2, SK: []byte{1, 2, 3}}

	a, err := Marshal(s)
	c.Assert(err, qt.IsNil)
	b, err := Marshal(s)
	c.Assert(err, qt.IsNil)
	c.Assert(a, qt.DeepEquals, b)
}
