package stm

// readEntry records that a transaction observed a shared word. Only the
// address matters for validation; the value it produced is never re-checked,
// only its stripe's version and lock state are.
type readEntry struct {
	addr Address
}

// ReadSet is a per-transaction, append-only log of observed addresses. It is
// never shared across transactions and needs no synchronization.
type ReadSet struct {
	entries []readEntry
}

// Append records a new read-set entry. Duplicates are allowed and harmless:
// validation just re-checks the same stripe twice.
func (s *ReadSet) Append(a Address) {
	s.entries = append(s.entries, readEntry{addr: a})
}

// Len reports the number of recorded entries.
func (s *ReadSet) Len() int {
	return len(s.entries)
}
