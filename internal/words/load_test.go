package words

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	body []byte
	err  error
}

func (r stubRemote) Fetch(context.Context, string) ([]byte, error) {
	return r.body, r.err
}

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoader_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lugat.json")
	writeFile(t, path, sampleJSON)

	s := (&Loader{Source: path, Log: quietLog()}).Load(context.Background())
	assert.Equal(t, 2, s.WordCount("Fruits"))
}

func TestLoader_Glob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "fruits.yaml"), "Fruits:\n  - word: apple\n")
	writeFile(t, filepath.Join(dir, "a", "verbs.json"), `{"Verbs": [{"word": "go"}]}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	s, err := (&Loader{Source: filepath.Join(dir, "**", "*.{json,yaml}")}).Read(context.Background())
	require.NoError(t, err)
	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Verbs", cats[0].Label, "files merged in lexical order")
	assert.Equal(t, "Fruits", cats[1].Label)
}

func TestLoader_Remote(t *testing.T) {
	l := &Loader{Source: "https://example.com/lugat.json", Remote: stubRemote{body: []byte(sampleJSON)}}
	s, err := l.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Categories(), 3)

	l.Remote = stubRemote{err: errors.New("offline")}
	_, err = l.Read(context.Background())
	assert.Error(t, err)
}

func TestLoader_FailureYieldsEmptyStore(t *testing.T) {
	l := &Loader{Source: filepath.Join(t.TempDir(), "missing.json"), Log: quietLog()}
	_, err := l.Read(context.Background())
	assert.Error(t, err)

	s := l.Load(context.Background())
	require.NotNil(t, s)
	assert.Empty(t, s.Categories())
	assert.Zero(t, s.WordCount("anything"))

	bad := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, bad, `{"Verbs": [`)
	s = (&Loader{Source: bad, Log: quietLog()}).Load(context.Background())
	assert.Empty(t, s.Categories())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lugat.json")
	writeFile(t, path, `{"Verbs": [{"word": "go"}]}`)

	w, err := NewWatcher(&Loader{Source: path, Log: quietLog()}, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got *Store
	require.NoError(t, w.Start(ctx, func(s *Store) {
		mu.Lock()
		defer mu.Unlock()
		got = s
	}))

	writeFile(t, path, `{"Verbs": [{"word": "go"}, {"word": "run"}]}`)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.WordCount("verbs") == 2
	}, 5*time.Second, 20*time.Millisecond)
}
