// Package offline keeps a versioned copy of remote assets (the dataset) in
// the local database so the app works without a network. Reads are
// stale-while-revalidate.
package offline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultCacheName = "lugat-cache-v1"

var ErrCacheMiss = errors.New("asset not cached")

// Fetcher retrieves an asset from the network.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Cache struct {
	db      *sql.DB
	name    string
	assets  []string
	fetcher Fetcher
	log     logrus.FieldLogger
	timeout time.Duration

	wg sync.WaitGroup
}

type Options struct {
	Name    string
	Assets  []string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

func New(db *sql.DB, fetcher Fetcher, opts Options) *Cache {
	if opts.Name == "" {
		opts.Name = DefaultCacheName
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Cache{
		db:      db,
		name:    opts.Name,
		assets:  opts.Assets,
		fetcher: fetcher,
		log:     opts.Log.WithField("cache", opts.Name),
		timeout: opts.Timeout,
	}
}

func (c *Cache) Name() string { return c.name }

// Install fetches every configured asset into the current cache. It stops
// at the first failure, leaving earlier assets stored.
func (c *Cache) Install(ctx context.Context) error {
	for _, url := range c.assets {
		body, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("install %s: %w", url, err)
		}
		if err := c.Put(ctx, url, body); err != nil {
			return err
		}
	}
	c.log.WithField("assets", len(c.assets)).Info("cache installed")
	return nil
}

// Activate drops every entry that belongs to another cache version and
// returns how many rows were removed.
func (c *Cache) Activate(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM asset_cache WHERE cache_name != ?", c.name)
	if err != nil {
		return 0, fmt.Errorf("purge old caches: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		c.log.WithField("purged", n).Info("old cache entries removed")
	}
	return n, nil
}

func (c *Cache) Match(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT body FROM asset_cache WHERE cache_name = ? AND url = ?", c.name, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read cached %s: %w", url, err)
	}
	return body, nil
}

func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO asset_cache (cache_name, url, body, fetched_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cache_name, url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		c.name, url, body)
	if err != nil {
		return fmt.Errorf("store %s: %w", url, err)
	}
	return nil
}

// Fetch returns the cached copy right away and refreshes it in the
// background. Without a cached copy it waits for the network and stores the
// result.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	cached, err := c.Match(ctx, url)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		c.log.WithError(err).Warn("cache read failed, going to network")
	}
	if err == nil {
		c.wg.Add(1)
		go c.revalidate(url)
		return cached, nil
	}

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, url, body); err != nil {
		c.log.WithError(err).Warn("could not cache response")
	}
	return body, nil
}

func (c *Cache) revalidate(url string) {
	defer c.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.log.WithError(err).WithField("url", url).Debug("background refresh failed")
		return
	}
	if err := c.Put(ctx, url, body); err != nil {
		c.log.WithError(err).WithField("url", url).Warn("background refresh not stored")
	}
}

// Wait blocks until background refreshes started so far are done.
func (c *Cache) Wait() {
	c.wg.Wait()
}
