package stm

// writeEntry records a buffered write: the target address and the pending
// value, align bytes wide.
type writeEntry struct {
	addr    Address
	pending []byte
}

// WriteSet is a per-transaction, append-only, ordered log of buffered
// writes. A second write to an address already present overwrites that
// entry's pending value in place rather than appending a duplicate; lookup
// by address therefore always returns the most recent value (read-own-write
// policy, §4.4).
//
// n is small per transaction, so a slice scanned linearly beats a map here:
// no hashing overhead, no allocation churn per insert, and insertion order
// (needed by the commit protocol's lock-acquisition and write-back passes)
// falls out for free.
type WriteSet struct {
	entries []writeEntry
}

// Lookup returns the pending value for addr and true if addr has a buffered
// write, or nil and false otherwise.
func (s *WriteSet) Lookup(addr Address) ([]byte, bool) {
	for i := range s.entries {
		if s.entries[i].addr == addr {
			return s.entries[i].pending, true
		}
	}
	return nil, false
}

// Put buffers a write of value (copied) to addr, overwriting any existing
// entry for addr in place or appending a new one at the end.
func (s *WriteSet) Put(addr Address, value []byte) {
	for i := range s.entries {
		if s.entries[i].addr == addr {
			copy(s.entries[i].pending, value)
			return
		}
	}
	pending := make([]byte, len(value))
	copy(pending, value)
	s.entries = append(s.entries, writeEntry{addr: addr, pending: pending})
}

// Len reports the number of distinct addresses buffered.
func (s *WriteSet) Len() int {
	return len(s.entries)
}

// Each calls fn for every entry in insertion order. fn must not mutate the
// set.
func (s *WriteSet) Each(fn func(addr Address, pending []byte)) {
	for i := range s.entries {
		fn(s.entries[i].addr, s.entries[i].pending)
	}
}
