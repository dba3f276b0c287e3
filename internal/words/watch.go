package words

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const defaultWatchDebounce = 200 * time.Millisecond

// Watcher reloads the dataset whenever one of its files changes. Editors tend
// to emit several events per save, so changes are debounced.
type Watcher struct {
	loader   *Loader
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      logrus.FieldLogger

	mu    sync.Mutex
	files map[string]bool
	timer *time.Timer
}

func NewWatcher(loader *Loader, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	log := loader.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		loader:   loader,
		fsw:      fsw,
		debounce: debounce,
		log:      log,
		files:    make(map[string]bool),
	}, nil
}

// Start watches the directories holding the dataset files and calls onChange
// with a freshly loaded store after each burst of writes. It returns once the
// watches are registered; events are handled until ctx is done.
func (w *Watcher) Start(ctx context.Context, onChange func(*Store)) error {
	files, err := Files(w.loader.Source)
	if err != nil {
		return err
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	go w.run(ctx, onChange)
	w.log.WithField("files", len(files)).Info("dataset watcher started")
	return nil
}

func (w *Watcher) run(ctx context.Context, onChange func(*Store)) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, event, onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("dataset watcher error")
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event, onChange func(*Store)) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.matches(abs) {
		return
	}
	w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("dataset change detected")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		onChange(w.loader.Load(ctx))
	})
}

// matches accepts the known files and, for glob sources, new files that
// match the pattern.
func (w *Watcher) matches(abs string) bool {
	if w.files[abs] {
		return true
	}
	pattern, err := filepath.Abs(w.loader.Source)
	if err != nil {
		return false
	}
	ok, _ := doublestar.PathMatch(pattern, abs)
	return ok
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
