package stm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionedSpinLockLifecycle(t *testing.T) {
	var l VersionedSpinLock
	l.Init()
	require.Equal(t, uint64(0), l.ReadState())

	require.True(t, l.TryAcquire())
	require.True(t, Locked(l.ReadState()))
	require.False(t, l.TryAcquire(), "second acquire must fail while held")

	l.ReleaseUntouched()
	require.False(t, Locked(l.ReadState()))
	require.Equal(t, uint64(0), Version(l.ReadState()))

	require.True(t, l.TryAcquire())
	l.SetAndRelease(42)
	require.False(t, Locked(l.ReadState()))
	require.Equal(t, uint64(42), Version(l.ReadState()))
}

func TestLockStripeAliasing(t *testing.T) {
	s := NewLockStripe(4)
	require.Equal(t, s.indexOf(Address(0)), s.indexOf(Address(4)))
	require.NotEqual(t, s.indexOf(Address(1)), s.indexOf(Address(2)))
}
