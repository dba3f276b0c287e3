package progress

import (
	"context"
	"sync"

	"lugat-go/internal/kv"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Themes struct {
	store kv.Store
	mu    sync.Mutex
}

func NewThemes(store kv.Store) *Themes {
	return &Themes{store: store}
}

// Get falls back to light for a missing or unrecognised value.
func (t *Themes) Get(ctx context.Context) (Theme, error) {
	v, _, err := t.store.Get(ctx, themeKey)
	if err != nil {
		return ThemeLight, err
	}
	if Theme(v) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (t *Themes) Toggle(ctx context.Context) (Theme, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, err := t.Get(ctx)
	if err != nil {
		return cur, err
	}
	next := ThemeDark
	if cur == ThemeDark {
		next = ThemeLight
	}
	return next, t.store.Set(ctx, themeKey, string(next))
}
