// Package jsonstore persists collections as flat JSON files with
// whole-file load/save semantics. Writes are mutex-guarded and atomic
// (temp file + rename) so a crash mid-write cannot leave a half-written
// store behind. Reads accept stale data; lost updates between
// concurrent writers are an accepted limitation.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
)

const (
	usersFile      = "users.json"
	portfoliosFile = "portfolios.json"
	ratesFile      = "rates.json"
	historyFile    = "exchange_rates.json"
)

// Store is the shared handle to the JSON data directory.
type Store struct {
	dataDir string
	mu      sync.Mutex
}

// NewStore opens (creating if needed) the data directory.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	// Persisted shapes use plain JSON numbers for balances and rates.
	decimal.MarshalJSONWithoutQuotes = true
	return &Store{dataDir: dataDir}, nil
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

// load reads filename into v. A missing or empty file leaves v
// untouched so callers start from their zero-value collection.
func (s *Store) load(filename string, v any) error {
	data, err := os.ReadFile(s.path(filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return apperrors.NewAPIRequestError(fmt.Sprintf("read %s", filename), err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.NewAPIRequestError(fmt.Sprintf("decode %s", filename), err)
	}
	return nil
}

// save atomically replaces filename with the JSON encoding of v.
func (s *Store) save(filename string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewAPIRequestError(fmt.Sprintf("encode %s", filename), err)
	}

	tmp, err := os.CreateTemp(s.dataDir, filename+".tmp-*")
	if err != nil {
		return apperrors.NewAPIRequestError(fmt.Sprintf("stage %s", filename), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewAPIRequestError(fmt.Sprintf("write %s", filename), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewAPIRequestError(fmt.Sprintf("flush %s", filename), err)
	}
	if err := os.Rename(tmpName, s.path(filename)); err != nil {
		os.Remove(tmpName)
		return apperrors.NewAPIRequestError(fmt.Sprintf("replace %s", filename), err)
	}
	return nil
}
