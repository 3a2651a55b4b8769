// Package search keeps the recent-searches cache: the last few distinct
// terms that produced results, most recent first.
package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	snapshotFile = "recent_searches.json"
	maxRecents   = 5
)

type Recents struct {
	mu    sync.Mutex
	terms []string
	path  string
}

// NewRecents creates the store rooted at dataDir, loading the previous
// snapshot if one exists.
func NewRecents(dataDir string) (*Recents, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	r := &Recents{path: filepath.Join(dataDir, snapshotFile)}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read recent searches: %w", err)
	}
	if err := json.Unmarshal(data, &r.terms); err != nil {
		return nil, fmt.Errorf("failed to parse recent searches: %w", err)
	}
	if len(r.terms) > maxRecents {
		r.terms = r.terms[:maxRecents]
	}
	return r, nil
}

// Add records a successful search term. Duplicates move to the front; the
// list never exceeds five entries.
func (r *Recents) Add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	terms := make([]string, 0, maxRecents)
	terms = append(terms, term)
	for _, t := range r.terms {
		if strings.EqualFold(t, term) {
			continue
		}
		terms = append(terms, t)
		if len(terms) == maxRecents {
			break
		}
	}
	r.terms = terms
	r.persist()
}

// List returns the recent terms, most recent first.
func (r *Recents) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...)
}

func (r *Recents) persist() {
	data, err := json.Marshal(r.terms)
	if err != nil {
		return
	}
	// Best effort; a lost snapshot only loses suggestion history.
	_ = os.WriteFile(r.path, data, 0o644)
}
