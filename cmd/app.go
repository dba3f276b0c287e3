package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"lugat-go/internal/config"
	"lugat-go/internal/kv"
	"lugat-go/internal/logging"
	"lugat-go/internal/offline"
	"lugat-go/internal/progress"
	"lugat-go/internal/storage"
	"lugat-go/internal/words"
)

// app is everything a command needs, opened from one config.
type app struct {
	cfg       *config.Config
	log       *logrus.Logger
	db        *sql.DB
	kv        kv.Store
	cache     *offline.Cache
	loader    *words.Loader
	progress  *progress.Repository
	favorites *progress.Favorites
	themes    *progress.Themes
	history   *progress.History

	closers []func() error
}

func newApp(ctx context.Context, path string) (a *app, err error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	a = &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a.log = log
	a.closers = append(a.closers, closeLog)

	a.db, err = storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db.Close)

	a.kv, err = openKV(ctx, cfg.Store, a.db)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.kv.Close)

	a.cache = offline.New(a.db, offline.NewHTTPFetcher(cfg.Cache.Timeout), offline.Options{
		Name:    cfg.Cache.Name,
		Assets:  cfg.Cache.Assets,
		Timeout: cfg.Cache.Timeout,
		Log:     log,
	})
	a.closers = append(a.closers, func() error {
		a.cache.Wait()
		return nil
	})
	if _, err := a.cache.Activate(ctx); err != nil {
		log.WithError(err).Warn("could not purge old cache versions")
	}

	a.loader = &words.Loader{Source: cfg.Data.Source, Remote: a.cache, Log: log}
	a.progress = progress.NewRepository(a.kv)
	a.favorites = progress.NewFavorites(a.kv)
	a.themes = progress.NewThemes(a.kv)
	a.history = progress.NewHistory(a.db)

	log.WithFields(logrus.Fields{
		"source": cfg.Data.Source,
		"store":  cfg.Store.Driver,
	}).Debug("app ready")
	return a, nil
}

// openKV picks the key/value backend for progress, favorites and the theme.
func openKV(ctx context.Context, cfg config.StoreConfig, db *sql.DB) (kv.Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return kv.NewSQLite(db), nil
	case "redis":
		r, err := kv.NewRedis(ctx, kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	case "memory":
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", kv.ErrUnknownDriver, cfg.Driver)
	}
}

// Close releases resources in reverse order of opening.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
