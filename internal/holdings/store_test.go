package holdings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data", "portfolio.json"))
}

func TestStore_EmptyWhenMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStore_AddListDelete(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Add(" 0050 ", decimal.NewFromInt(1000), decimal.RequireFromString("120.5"))
	require.NoError(t, err)
	assert.Equal(t, "0050", p.Symbol)
	assert.Len(t, p.ID, 36)

	_, err = s.Add("cash", decimal.NewFromInt(50000), decimal.NewFromInt(1))
	require.NoError(t, err)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CASH", list[1].Symbol)
	assert.True(t, list[0].AvgCost.Equal(decimal.RequireFromString("120.5")))

	require.NoError(t, s.Delete(p.ID))
	list, err = s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.ErrorIs(t, s.Delete(p.ID), ErrNotFound)
}

func TestStore_Validation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("  ", decimal.NewFromInt(1), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidPosition)
	_, err = s.Add("0050", decimal.NewFromInt(1), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestStore_ReadsNumericJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	legacy := `[{"id":"a","symbol":"MTX","shares":-1.0,"avg_cost":17500.0,"created_at":"2024-01-02T10:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	got, err := NewStore(path).List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Shares.Equal(decimal.NewFromInt(-1)))
	assert.True(t, got[0].AvgCost.Equal(decimal.NewFromInt(17500)))
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStore(path).List()
	assert.Error(t, err)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add("TQQQ", decimal.NewFromInt(1), decimal.NewFromInt(50))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := s.List()
	require.NoError(t, err)
	assert.Len(t, list, 10)
}
