package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sim_settings.yaml"))
	doc, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, doc)
	assert.NotNil(t, doc)
}

func TestStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sim_settings.yaml")
	s := NewStore(path)

	doc := Document{
		"symbol":   "00631L",
		"capital":  1000000,
		"leverage": 2.0,
		"compare":  []interface{}{"0050", "TAIEX"},
		"ma":       map[string]interface{}{"period": 60},
	}
	require.NoError(t, s.Save(doc))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "00631L", got["symbol"])
	assert.Equal(t, 1000000, got["capital"])
	assert.Equal(t, 2.0, got["leverage"])
	assert.Equal(t, []interface{}{"0050", "TAIEX"}, got["compare"])
	assert.Equal(t, map[string]interface{}{"period": 60}, got["ma"])

	// overwrite replaces the whole document
	require.NoError(t, s.Save(Document{"symbol": "TQQQ"}))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, Document{"symbol": "TQQQ"}, got)
}

func TestStore_SaveNil(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "s.yaml"))
	require.NoError(t, s.Save(nil))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [unclosed"), 0644))
	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
