package participant

import "github.com/PhilippSchindler/ethdkg-go/ledger"

// Disputed returns the current accusation evidence log D: every issuer a
// valid accusation has been published against (spec.md §3 "Disputed set").
func (c *Core) Disputed() []ledger.Address {
	out := make([]ledger.Address, 0, len(c.disputed))
	for addr, ok := range c.disputed {
		if ok {
			out = append(out, addr)
		}
	}
	return out
}

// IsQualified reports whether addr is a member of Q.
func (c *Core) IsQualified(addr ledger.Address) bool {
	return c.qualified[addr]
}

// IsDisputed reports whether addr has a valid accusation recorded against it.
func (c *Core) IsDisputed(addr ledger.Address) bool {
	return c.disputed[addr]
}
