package offline

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lugat-go/internal/storage"
)

type fakeFetcher struct {
	mu    sync.Mutex
	body  map[string]string
	calls int
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.body[url]
	if !ok {
		return nil, errors.New("404")
	}
	return []byte(b), nil
}

func (f *fakeFetcher) set(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.body[url] = body
}

func newCache(t *testing.T, name string, fetcher Fetcher, assets ...string) *Cache {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newCacheOn(db, name, fetcher, assets...)
}

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const dataURL = "https://example.com/lugat.json"

func TestCache_MissWaitsForNetwork(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{body: map[string]string{dataURL: "v1"}}
	c := newCache(t, "", fetcher)

	body, err := c.Fetch(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(body))

	cached, err := c.Match(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(cached))
}

func TestCache_StaleWhileRevalidate(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{body: map[string]string{dataURL: "v1"}}
	c := newCache(t, "", fetcher, dataURL)
	require.NoError(t, c.Install(ctx))

	fetcher.set(dataURL, "v2")
	body, err := c.Fetch(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(body), "cached copy served first")

	c.Wait()
	body, err = c.Match(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(body), "refreshed for next time")
}

func TestCache_OfflineServesCached(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{body: map[string]string{dataURL: "v1"}}
	c := newCache(t, "", fetcher, dataURL)
	require.NoError(t, c.Install(ctx))

	fetcher.err = errors.New("network down")
	body, err := c.Fetch(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(body))
	c.Wait()

	body, err = c.Match(ctx, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(body), "failed refresh keeps the old copy")
}

func TestCache_MissOffline(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network down")}
	c := newCache(t, "", fetcher)

	_, err := c.Fetch(context.Background(), dataURL)
	assert.Error(t, err)
	_, err = c.Match(context.Background(), dataURL)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_InstallFailure(t *testing.T) {
	fetcher := &fakeFetcher{body: map[string]string{}}
	c := newCache(t, "", fetcher, dataURL)
	assert.Error(t, c.Install(context.Background()))
}

func TestCache_ActivatePurgesOtherVersions(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	fetcher := &fakeFetcher{body: map[string]string{dataURL: "v1"}}
	old := newCacheOn(db, "lugat-cache-v0", fetcher, dataURL)
	require.NoError(t, old.Install(ctx))

	cur := newCacheOn(db, "lugat-cache-v1", fetcher, dataURL)
	require.NoError(t, cur.Install(ctx))

	n, err := cur.Activate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = old.Match(ctx, dataURL)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cur.Match(ctx, dataURL)
	assert.NoError(t, err)

	n, err = cur.Activate(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func newCacheOn(db *sql.DB, name string, fetcher Fetcher, assets ...string) *Cache {
	return New(db, fetcher, Options{Name: name, Assets: assets, Log: quietLog()})
}
