package holdings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"wealthlab/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("position not found")
	ErrInvalidPosition = errors.New("invalid position")
)

// Store keeps positions in a JSON file. All access goes through one mutex so
// concurrent requests never interleave a read-modify-write.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) List() ([]types.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Add(symbol string, shares, avgCost decimal.Decimal) (*types.Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidPosition)
	}
	if avgCost.IsNegative() {
		return nil, fmt.Errorf("%w: avg_cost must not be negative", ErrInvalidPosition)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	positions, err := s.load()
	if err != nil {
		return nil, err
	}
	p := types.Holding{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Shares:    shares,
		AvgCost:   avgCost,
		CreatedAt: s.now(),
	}
	positions = append(positions, p)
	if err := s.save(positions); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions, err := s.load()
	if err != nil {
		return err
	}
	kept := positions[:0]
	for _, p := range positions {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(positions) {
		return fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	return s.save(kept)
}

func (s *Store) load() ([]types.Holding, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.Holding{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read holdings: %w", err)
	}
	positions := []types.Holding{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return positions, nil
	}
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("decode holdings %s: %w", s.path, err)
	}
	return positions, nil
}

// save writes to a temp file and renames it over the store.
func (s *Store) save(positions []types.Holding) error {
	data, err := json.MarshalIndent(positions, "", "    ")
	if err != nil {
		return fmt.Errorf("encode holdings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create holdings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write holdings: %w", err)
	}
	return os.Rename(tmp, s.path)
}
