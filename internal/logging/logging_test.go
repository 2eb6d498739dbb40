package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := New(lvl)
		require.NoError(t, err)
		require.NotNil(t, l)
	}
}

func TestNewFallsBackOnUnknownLevel(t *testing.T) {
	l, err := New("not-a-level")
	require.NoError(t, err)
	require.NotNil(t, l)
}
