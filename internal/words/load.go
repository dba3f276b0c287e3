package words

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// Remote resolves dataset URLs, normally through the offline asset cache.
type Remote interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Loader struct {
	Source string
	Remote Remote
	Log    logrus.FieldLogger
}

func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Files expands a local source (plain path or doublestar glob) into the
// matching files in lexical order.
func Files(source string) ([]string, error) {
	if IsRemote(source) {
		return nil, nil
	}
	if !strings.ContainsAny(source, "*?[{") {
		return []string{source}, nil
	}
	matches, err := doublestar.FilepathGlob(source, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Read loads the dataset and reports any failure to the caller.
func (l *Loader) Read(ctx context.Context) (*Store, error) {
	s := NewStore()
	if IsRemote(l.Source) {
		if l.Remote == nil {
			return nil, fmt.Errorf("no remote configured for %s", l.Source)
		}
		data, err := l.Remote.Fetch(ctx, l.Source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", l.Source, err)
		}
		if err := s.merge(data); err != nil {
			return nil, fmt.Errorf("%s: %w", l.Source, err)
		}
		return s, nil
	}

	files, err := Files(l.Source)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files match %s", l.Source)
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := s.merge(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return s, nil
}

// Load never fails: a dataset that cannot be read is logged and replaced by an
// empty store so the rest of the app keeps working.
func (l *Loader) Load(ctx context.Context) *Store {
	s, err := l.Read(ctx)
	if err != nil {
		if l.Log != nil {
			l.Log.WithError(err).WithField("source", l.Source).Error("Error loading word data")
		}
		return NewStore()
	}
	if l.Log != nil {
		l.Log.WithFields(logrus.Fields{
			"source":     l.Source,
			"categories": len(s.order),
			"words":      s.Len(),
		}).Info("word data loaded")
	}
	return s
}
