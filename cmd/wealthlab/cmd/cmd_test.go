package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"wealthlab/internal/collector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveTickers(t *testing.T) {
	got := liveTickers([]string{"mtx", "0050"}, collector.NewSymbolMap(nil))
	assert.Equal(t, map[string]string{"MTX": "WTX&", "0050": "0050.TW"}, got)
}

func TestPriceCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"price", "--spot", "100", "--strike", "100", "--years", "1", "--rate", "0.05", "--sigma", "0.2",
	})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "price 10.4506")
}

func TestPriceCommandRejectsBadKind(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"price", "--spot", "100", "--strike", "100", "--kind", "straddle",
	})
	assert.Error(t, rootCmd.Execute())
}
