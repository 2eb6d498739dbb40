package stm

import "go.uber.org/atomic"

// lockBit is the least significant bit of a VSL word: 1 means the stripe is
// currently held by a committing transaction.
const lockBit = uint64(1)

// VersionedSpinLock packs a lock bit and a commit version into one atomic
// word so a reader can sample both with a single load. Splitting them across
// two atomics would let a reader observe a version and a lock state that
// never coexisted.
type VersionedSpinLock struct {
	state atomic.Uint64
}

// Init resets the lock to version 0, unlocked.
func (l *VersionedSpinLock) Init() {
	l.state.Store(0)
}

// TryAcquire attempts to set the lock bit without blocking. It fails
// immediately on contention; callers decide whether to abort.
func (l *VersionedSpinLock) TryAcquire() bool {
	for {
		cur := l.state.Load()
		if cur&lockBit != 0 {
			return false
		}
		if l.state.CAS(cur, cur|lockBit) {
			return true
		}
	}
}

// ReadState returns the raw (version, locked) word with acquire ordering.
func (l *VersionedSpinLock) ReadState() uint64 {
	return l.state.Load()
}

// Locked reports whether state encodes a held lock.
func Locked(state uint64) bool {
	return state&lockBit != 0
}

// Version extracts the version bits from state.
func Version(state uint64) uint64 {
	return state >> 1
}

// ReleaseUntouched clears the lock bit without advancing the version. Used
// only when rolling back a partial lock acquisition during commit.
func (l *VersionedSpinLock) ReleaseUntouched() {
	l.state.Sub(lockBit)
}

// SetAndRelease publishes newVersion and clears the lock bit in one store,
// with release ordering so a subsequent reader observing newVersion also
// observes every write made under the lock.
func (l *VersionedSpinLock) SetAndRelease(newVersion uint64) {
	l.state.Store(newVersion << 1)
}
