package stm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocSplicesAndZeroFills(t *testing.T) {
	r := newTestRegion(t)
	tx := Begin(r, false)

	addr, res := Alloc(r, tx, r.Align*2)
	require.Equal(t, AllocSuccess, res)
	require.Equal(t, 1, r.SegmentCount())

	buf := r.wordAt(addr, r.Align*2)
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}

	addr2, res2 := Alloc(r, tx, r.Align)
	require.Equal(t, AllocSuccess, res2)
	require.Equal(t, 2, r.SegmentCount())
	require.NotEqual(t, addr, addr2)
}

func TestAllocRejectsMisalignedSize(t *testing.T) {
	r := newTestRegion(t)
	tx := Begin(r, false)

	_, res := Alloc(r, tx, r.Align+1)
	require.Equal(t, AllocNoMem, res)
}

func TestFreeIsNoOp(t *testing.T) {
	r := newTestRegion(t)
	tx := Begin(r, false)
	addr, res := Alloc(r, tx, r.Align)
	require.Equal(t, AllocSuccess, res)

	require.True(t, Free(r, tx, addr))
	require.Equal(t, 1, r.SegmentCount(), "free must not remove the segment")
}
