// Package quiz runs the timed typing challenge: a shuffled word list, one
// letter slot per character, a countdown, and a best-score write-back when
// the run ends.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lugat-go/internal/progress"
	"lugat-go/internal/words"
)

var (
	ErrNoWordsAvailable = errors.New("no words in this category to start quiz")
	ErrAlreadyRunning   = errors.New("a quiz is already running")
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// phase splits Running into accepting letters, waiting for the debounced
// check, and showing the verdict before the next word.
type phase int

const (
	phaseTyping phase = iota
	phaseChecking
	phaseReview
)

type Config struct {
	Duration       time.Duration
	Tick           time.Duration
	Debounce       time.Duration
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Duration:       60 * time.Second,
		Tick:           time.Second,
		Debounce:       100 * time.Millisecond,
		CorrectDelay:   400 * time.Millisecond,
		IncorrectDelay: 1500 * time.Millisecond,
	}
}

// Label names the challenge shown on the result screen, e.g.
// "1 MINUTE CHALLENGE".
func (c Config) Label() string {
	switch {
	case c.Duration == time.Minute:
		return "1 MINUTE CHALLENGE"
	case c.Duration%time.Minute == 0:
		return fmt.Sprintf("%d MINUTES CHALLENGE", int(c.Duration/time.Minute))
	default:
		return fmt.Sprintf("%d SECONDS CHALLENGE", int(c.Duration/time.Second))
	}
}

type ProgressSaver interface {
	Save(ctx context.Context, key string, correct, total int) (int, bool, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, r progress.Result) error
}

// Question is the word currently on screen together with what was typed.
type Question struct {
	Number  int
	Total   int
	Entry   words.Entry
	Layout  Layout
	Entries []rune
	Focus   int
}

type Result struct {
	RunID     string
	Category  string
	Label     string
	Correct   int
	Incorrect int
	Percent   int
	Duration  time.Duration
	Expired   bool
	// Saved is true when the run set a new best score for the category.
	Saved bool
}

type EventKind int

const (
	EventStarted EventKind = iota
	EventTick
	EventQuestion
	EventFocus
	EventVerdict
	EventFinished
	EventExited
)

type Event struct {
	Kind      EventKind
	Remaining int
}

type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithHistory(h HistoryRecorder) Option {
	return func(e *Engine) { e.history = h }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is the quiz controller. It is not safe for concurrent use: every
// method and every scheduled callback must run on one goroutine.
type Engine struct {
	sched    Scheduler
	progress ProgressSaver
	history  HistoryRecorder
	cfg      Config
	rng      *rand.Rand
	log      logrus.FieldLogger
	now      func() time.Time

	state     State
	phase     phase
	session   *Session
	question  *Question
	verdict   *Verdict
	result    *Result
	startedAt time.Time
	ticker    Task
	pending   Task
	listeners []func(Event)
}

func NewEngine(sched Scheduler, saver ProgressSaver, opts ...Option) *Engine {
	e := &Engine{
		sched:    sched,
		progress: saver,
		cfg:      DefaultConfig(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers fn to be called after every state change.
func (e *Engine) Subscribe(fn func(Event)) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(kind EventKind) {
	ev := Event{Kind: kind}
	if e.session != nil {
		ev.Remaining = e.session.Remaining
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Config() Config { return e.cfg }

// Session returns a copy of the running session, nil when idle.
func (e *Engine) Session() *Session {
	if e.session == nil {
		return nil
	}
	s := *e.session
	return &s
}

func (e *Engine) Question() *Question { return e.question }

// Verdict is the check of the last word while it is being shown, else nil.
func (e *Engine) Verdict() *Verdict { return e.verdict }

func (e *Engine) Result() *Result { return e.result }

// Accepting reports whether letter input is currently taken.
func (e *Engine) Accepting() bool {
	return e.state == StateRunning && e.phase == phaseTyping && e.question != nil
}

// Start begins a run over a shuffled copy of list. On ErrNoWordsAvailable the
// engine stays where it was.
func (e *Engine) Start(category string, list []words.Entry) error {
	if e.state == StateRunning {
		return ErrAlreadyRunning
	}
	seconds := int(e.cfg.Duration / time.Second)
	s, err := NewSession(category, list, seconds, e.rng)
	if err != nil {
		return err
	}
	e.cancelAll()
	e.session = s
	e.result = nil
	e.verdict = nil
	e.state = StateRunning
	e.startedAt = e.now()
	e.ticker = e.sched.Every(e.cfg.Tick, e.tick)
	e.log.WithFields(logrus.Fields{"category": category, "words": s.Total()}).Info("quiz started")
	e.emit(EventStarted)
	e.render()
	return nil
}

// Exit abandons the run without recording progress.
func (e *Engine) Exit() {
	if e.state == StateIdle {
		return
	}
	e.cancelAll()
	if e.state == StateRunning {
		e.log.WithField("category", e.session.Category).Info("quiz exited")
	}
	e.state = StateIdle
	e.session = nil
	e.question = nil
	e.verdict = nil
	e.emit(EventExited)
}

// Type enters r into the focused slot and moves focus on. Filling the last
// slot locks input and schedules the check. It reports whether r was taken.
func (e *Engine) Type(r rune) bool {
	if !e.Accepting() || r == 0 || unicode.IsSpace(r) || unicode.IsControl(r) {
		return false
	}
	q := e.question
	q.Entries[q.Focus] = r
	if q.Focus < len(q.Entries)-1 {
		q.Focus++
		e.emit(EventFocus)
		return true
	}
	e.phase = phaseChecking
	e.pending = e.sched.After(e.cfg.Debounce, e.check)
	e.emit(EventFocus)
	return true
}

// Backspace clears the focused slot, or moves back one slot when it is
// already empty.
func (e *Engine) Backspace() {
	if !e.Accepting() {
		return
	}
	q := e.question
	if q.Entries[q.Focus] != 0 {
		q.Entries[q.Focus] = 0
	} else if q.Focus > 0 {
		q.Focus--
	}
	e.emit(EventFocus)
}

// MoveFocus shifts focus by delta slots, clamped to the word.
func (e *Engine) MoveFocus(delta int) {
	if !e.Accepting() {
		return
	}
	q := e.question
	f := q.Focus + delta
	if f < 0 {
		f = 0
	}
	if f > len(q.Entries)-1 {
		f = len(q.Entries) - 1
	}
	if f != q.Focus {
		q.Focus = f
		e.emit(EventFocus)
	}
}

func (e *Engine) tick() {
	if e.state != StateRunning {
		return
	}
	if e.session.Tick() {
		e.finish(true)
		return
	}
	e.emit(EventTick)
}

func (e *Engine) render() {
	entry, ok := e.session.Current()
	if !ok {
		e.finish(false)
		return
	}
	layout := NewLayout(entry.Word)
	e.question = &Question{
		Number:  e.session.Index + 1,
		Total:   e.session.Total(),
		Entry:   entry,
		Layout:  layout,
		Entries: make([]rune, len(layout.Slots)),
	}
	e.verdict = nil
	e.phase = phaseTyping
	e.emit(EventQuestion)
}

func (e *Engine) check() {
	e.pending = nil
	if e.state != StateRunning || e.phase != phaseChecking {
		return
	}
	v := e.question.Layout.Check(e.question.Entries)
	e.session.Answer(v.Correct)
	e.verdict = &v
	e.phase = phaseReview
	delay := e.cfg.CorrectDelay
	if !v.Correct {
		delay = e.cfg.IncorrectDelay
	}
	e.pending = e.sched.After(delay, e.advance)
	e.emit(EventVerdict)
}

func (e *Engine) advance() {
	e.pending = nil
	if e.state != StateRunning {
		return
	}
	if e.session.Done() {
		e.finish(false)
		return
	}
	e.render()
}

func (e *Engine) finish(expired bool) {
	e.cancelAll()
	e.state = StateFinished
	e.question = nil
	e.verdict = nil
	s := e.session
	r := &Result{
		RunID:     uuid.NewString(),
		Category:  s.Category,
		Label:     e.cfg.Label(),
		Correct:   s.Correct,
		Incorrect: s.Incorrect,
		Percent:   progress.Percent(s.Correct, s.Answered()),
		Duration:  e.now().Sub(e.startedAt),
		Expired:   expired,
	}
	e.result = r

	ctx := context.Background()
	key := words.NormalizeKey(s.Category)
	if s.Category != words.FavoritesLabel && e.progress != nil {
		_, saved, err := e.progress.Save(ctx, key, s.Correct, s.Answered())
		if err != nil {
			e.log.WithError(err).WithField("category", key).Error("Error saving progress")
		}
		r.Saved = saved
	}
	if e.history != nil {
		err := e.history.Record(ctx, progress.Result{
			RunID:     r.RunID,
			Category:  key,
			Correct:   r.Correct,
			Incorrect: r.Incorrect,
			Percent:   r.Percent,
			Duration:  r.Duration,
		})
		if err != nil {
			e.log.WithError(err).Error("Error logging quiz result")
		}
	}
	e.log.WithFields(logrus.Fields{
		"category":  s.Category,
		"correct":   r.Correct,
		"incorrect": r.Incorrect,
		"expired":   expired,
	}).Info("quiz finished")
	e.emit(EventFinished)
}

func (e *Engine) cancelAll() {
	if e.ticker != nil {
		e.ticker.Cancel()
		e.ticker = nil
	}
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}
