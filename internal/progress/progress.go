// Package progress keeps what the user accumulates between runs: best
// scores per category, favorite words, the chosen theme and quiz history.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"lugat-go/internal/kv"
)

const (
	progressKey  = "progress"
	favoritesKey = "favorites"
	themeKey     = "theme"
)

// Percent rounds correct/total to a whole percentage. A total of zero yields 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Repository stores the best-ever percentage per category key.
type Repository struct {
	store kv.Store
	mu    sync.Mutex
}

func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) All(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	if err := getJSON(ctx, r.store, progressKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the stored percentage, 0 when there is none.
func (r *Repository) Get(ctx context.Context, key string) (int, error) {
	all, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	return all[key], nil
}

// Save records correct/total for key if it beats the stored value. It returns
// the percentage of this result and whether it was written.
func (r *Repository) Save(ctx context.Context, key string, correct, total int) (int, bool, error) {
	if total <= 0 {
		return 0, false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.All(ctx)
	if err != nil {
		return 0, false, err
	}
	pct := Percent(correct, total)
	if pct <= all[key] {
		return pct, false, nil
	}
	all[key] = pct
	if err := setJSON(ctx, r.store, progressKey, all); err != nil {
		return pct, false, err
	}
	return pct, true, nil
}

func getJSON(ctx context.Context, store kv.Store, key string, v any) error {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok || raw == "" {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("error parsing %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, store kv.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}
