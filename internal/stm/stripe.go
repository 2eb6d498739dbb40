package stm

// LockStripe is a fixed-size table of versioned spin-locks. Every shared
// word maps to exactly one stripe entry by address hashing; distinct
// addresses may alias to the same entry, which produces only false
// conflicts, never unsafety.
type LockStripe struct {
	locks []VersionedSpinLock
}

// NewLockStripe allocates a stripe table of the given size and initializes
// every entry to version 0, unlocked. size must be positive.
func NewLockStripe(size int) *LockStripe {
	s := &LockStripe{locks: make([]VersionedSpinLock, size)}
	for i := range s.locks {
		s.locks[i].Init()
	}
	return s
}

// Size returns the number of stripe entries.
func (s *LockStripe) Size() int {
	return len(s.locks)
}

// indexOf maps a shared address to its stripe entry.
func (s *LockStripe) indexOf(a Address) int {
	return int(uint64(a) % uint64(len(s.locks)))
}

// at returns the stripe entry governing address a.
func (s *LockStripe) at(a Address) *VersionedSpinLock {
	return &s.locks[s.indexOf(a)]
}
