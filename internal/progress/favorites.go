package progress

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"lugat-go/internal/kv"
)

// Favorites is the ordered list of favorite words. Toggle is safe to call
// from several goroutines.
type Favorites struct {
	store kv.Store
	mu    sync.Mutex
}

func NewFavorites(store kv.Store) *Favorites {
	return &Favorites{store: store}
}

func (f *Favorites) List(ctx context.Context) ([]string, error) {
	var words []string
	if err := getJSON(ctx, f.store, favoritesKey, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (f *Favorites) Contains(ctx context.Context, word string) (bool, error) {
	words, err := f.List(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(words, word), nil
}

// Toggle adds word to the end of the list or removes it, and reports whether
// it is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, word string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	words, err := f.List(ctx)
	if err != nil {
		return false, err
	}
	added := !lo.Contains(words, word)
	if added {
		words = append(words, word)
	} else {
		words = lo.Without(words, word)
	}
	if words == nil {
		words = []string{}
	}
	if err := setJSON(ctx, f.store, favoritesKey, words); err != nil {
		return false, err
	}
	return added, nil
}
