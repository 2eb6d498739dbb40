package handle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbustamante/tl2stm/internal/config"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig
	cfg.RegionSize = 32
	cfg.Align = 8
	cfg.StripeSize = 16
	cfg.LogLevel = "error"
	return cfg
}

func TestCreateDestroy(t *testing.T) {
	rh := Create(testConfig())
	require.NotEqual(t, InvalidRegion, rh)
	require.Equal(t, 32, Size(rh))
	require.Equal(t, 8, Align(rh))
	require.NotEqual(t, uintptr(0), Start(rh))
	Destroy(rh)
}

func TestCreateRejectsInvalidSize(t *testing.T) {
	cfg := testConfig()
	cfg.RegionSize = 7 // not a multiple of align
	rh := Create(cfg)
	require.Equal(t, InvalidRegion, rh)
}

func TestBeginReadWriteEndRoundTrip(t *testing.T) {
	rh := Create(testConfig())
	defer Destroy(rh)

	base := Start(rh)
	align := Align(rh)

	wtx := Begin(rh, false)
	require.NotEqual(t, InvalidTx, wtx)
	src := make([]byte, align)
	src[0] = 0xAB
	require.True(t, Write(rh, wtx, src, align, base))
	require.True(t, End(rh, wtx))

	rtx := Begin(rh, true)
	dst := make([]byte, align)
	require.True(t, Read(rh, rtx, base, align, dst))
	require.Equal(t, byte(0xAB), dst[0])
	require.True(t, End(rh, rtx))
}

func TestUnknownHandlesFailSafely(t *testing.T) {
	require.Equal(t, InvalidTx, Begin(RegionHandle(9999), false))
	require.False(t, End(RegionHandle(9999), TxHandle(1)))
	require.False(t, Read(RegionHandle(9999), TxHandle(1), 0, 8, make([]byte, 8)))
	require.False(t, Write(RegionHandle(9999), TxHandle(1), make([]byte, 8), 8, 0))
}

func TestEndConsumesHandle(t *testing.T) {
	rh := Create(testConfig())
	defer Destroy(rh)

	tx := Begin(rh, true)
	require.True(t, End(rh, tx))
	// Reusing the same handle must not succeed again.
	require.False(t, End(rh, tx))
}
