package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a single-file, atomic-write backing store for one participant's
// State, the granularity spec.md §9 calls for ("a correctness-critical
// store", not a pluggable storage layer — see DESIGN.md for why this
// stays on stdlib os/io rather than an embedded database).
type Store struct {
	path string
}

// Open returns a Store writing to path. The directory must already exist;
// Open does not create it, matching os.WriteFile's own contract.
func Open(path string) *Store {
	return &Store{path: path}
}

// Save atomically replaces the stored State: it encodes to a temp file in
// the same directory, fsyncs it, then renames over the destination, so a
// crash mid-write never leaves a truncated or partially-written file
// behind for the next restart to load.
func (st *Store) Save(s State) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding participant state: %w", err)
	}

	dir := filepath.Dir(st.path)
	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, st.path); err != nil {
		return fmt.Errorf("renaming state file into place: %w", err)
	}
	return nil
}

// Load reads and decodes the persisted State. It returns os.ErrNotExist
// (wrapped) when no state has ever been saved, so callers can tell
// "fresh participant" apart from "state file corrupted".
func (st *Store) Load() (State, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return State{}, err
	}
	s, err := Unmarshal(data)
	if err != nil {
		return State{}, fmt.Errorf("decoding participant state %s: %w", st.path, err)
	}
	return s, nil
}

// Exists reports whether a state file is present at path.
func (st *Store) Exists() bool {
	_, err := os.Stat(st.path)
	return err == nil
}
