package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lugat-go/internal/config"
	"lugat-go/internal/kv"
	"lugat-go/internal/offline"
	"lugat-go/internal/storage"
)

const testWords = `{
	"Fruits": [
		{"word": "apple", "translation": "olma"},
		{"word": "pear", "translation": "nok"}
	],
	"Phrasal Verbs": [
		{"word": "give up", "translation": "taslim bo'lmoq", "transcription": "[gɪv ʌp]"}
	]
}`

// writeConfig lays out a dataset, a database path and a config file in a
// temp dir and returns the config path.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(data, []byte(testWords), 0o644))

	cfg := fmt.Sprintf(`data:
  source: %q
store:
  driver: sqlite
  path: %q
log:
  file: ""
`, data, filepath.Join(dir, "lugat.db"))
	path := filepath.Join(dir, "lugat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = categoriesCmd.Flags().Set("search", "")
		_ = wordsCmd.Flags().Set("search", "")
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOpenKV(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := openKV(ctx, config.StoreConfig{Driver: "sqlite"}, db)
	require.NoError(t, err)
	assert.IsType(t, &kv.SQLite{}, s)

	s, err = openKV(ctx, config.StoreConfig{Driver: "memory"}, db)
	require.NoError(t, err)
	assert.IsType(t, &kv.Memory{}, s)

	_, err = openKV(ctx, config.StoreConfig{Driver: "etcd"}, db)
	assert.ErrorIs(t, err, kv.ErrUnknownDriver)
}

func TestNewApp(t *testing.T) {
	a, err := newApp(context.Background(), writeConfig(t))
	require.NoError(t, err)

	store := a.loader.Load(context.Background())
	assert.Equal(t, 3, store.Len())
	assert.Empty(t, a.cfg.Cache.Assets, "local word lists need no cache")
	require.NoError(t, a.Close())
}

func TestNewApp_PurgesOldCacheVersions(t *testing.T) {
	ctx := context.Background()
	path := writeConfig(t)
	dbPath := filepath.Join(filepath.Dir(path), "lugat.db")

	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	old := offline.New(db, nil, offline.Options{Name: "lugat-cache-v0"})
	require.NoError(t, old.Put(ctx, "https://example.com/words.json", []byte("{}")))
	require.NoError(t, db.Close())

	a, err := newApp(ctx, path)
	require.NoError(t, err)
	defer a.Close()

	var n int
	require.NoError(t, a.db.QueryRow("SELECT COUNT(*) FROM asset_cache").Scan(&n))
	assert.Zero(t, n)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	path := writeConfig(t)
	t.Setenv("LUGAT_STORE_DRIVER", "etcd")

	_, err := newApp(context.Background(), path)
	assert.ErrorIs(t, err, kv.ErrUnknownDriver)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := runCommand(t, "--config", writeConfig(t), "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Fruits")
	assert.Contains(t, out, "Phrasal Verbs")
	assert.Contains(t, out, "3 words in 2 categories")
}

func TestCategoriesCommand_Search(t *testing.T) {
	out, err := runCommand(t, "--config", writeConfig(t), "categories", "--search", "verb")
	require.NoError(t, err)
	assert.Contains(t, out, "Phrasal Verbs")
	assert.NotContains(t, out, "Fruits")
}

func TestWordsCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := runCommand(t, "--config", path, "words", "phrasalverbs")
	require.NoError(t, err)
	assert.Contains(t, out, "give up")
	assert.Contains(t, out, "taslim bo'lmoq")

	_, err = runCommand(t, "--config", path, "words", "Animals")
	assert.ErrorIs(t, err, errNoSuchCategory)
}

func TestProgressCommand_Empty(t *testing.T) {
	out, err := runCommand(t, "--config", writeConfig(t), "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "No quizzes played yet.")
}

func TestSyncCommand_LocalSource(t *testing.T) {
	out, err := runCommand(t, "--config", writeConfig(t), "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to cache")
}
