package stm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSetOverwritesInPlace(t *testing.T) {
	var ws WriteSet
	ws.Put(Address(8), []byte{1, 2, 3, 4})
	ws.Put(Address(16), []byte{5, 6, 7, 8})
	ws.Put(Address(8), []byte{9, 9, 9, 9})

	require.Equal(t, 2, ws.Len(), "duplicate address must overwrite, not append")

	var order []Address
	ws.Each(func(addr Address, pending []byte) {
		order = append(order, addr)
	})
	require.Equal(t, []Address{8, 16}, order, "insertion order must be preserved")

	v, ok := ws.Lookup(Address(8))
	require.True(t, ok)
	require.Equal(t, []byte{9, 9, 9, 9}, v)

	_, ok = ws.Lookup(Address(99))
	require.False(t, ok)
}

func TestReadSetAppend(t *testing.T) {
	var rs ReadSet
	require.Equal(t, 0, rs.Len())
	rs.Append(Address(1))
	rs.Append(Address(2))
	require.Equal(t, 2, rs.Len())
}
