// Package ui is the terminal front end: a category grid, a searchable word
// table per category and the timed typing quiz.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"lugat-go/internal/progress"
	"lugat-go/internal/quiz"
	"lugat-go/internal/words"
)

type viewState int

const (
	stateGrid viewState = iota
	stateDetail
	stateQuiz
)

const noWordsNotice = "No words in this category to start quiz!"

// Deps are the collaborators the UI needs. History may be nil.
type Deps struct {
	Store     *words.Store
	Progress  *progress.Repository
	Favorites *progress.Favorites
	Themes    *progress.Themes
	History   *progress.History
	Quiz      quiz.Config
	Log       logrus.FieldLogger
}

// card is one category on the grid with its best score.
type card struct {
	Label   string
	Count   int
	Percent int
	// Favorites cards have no score of their own.
	Favorites bool
}

type datasetReloadedMsg struct {
	store *words.Store
}

type cardsLoadedMsg struct {
	progress  map[string]int
	favorites []string
	err       error
}

type themeChangedMsg struct {
	theme progress.Theme
	err   error
}

type favoriteToggledMsg struct {
	word  string
	added bool
	err   error
}

type Model struct {
	deps   Deps
	ctx    context.Context
	log    logrus.FieldLogger
	store  *words.Store
	state  viewState
	err    error
	notice string

	theme  progress.Theme
	styles styles
	width  int
	height int

	// grid
	filterInput    textinput.Model
	cards          []card
	filteredCards  []card
	cursor         int
	viewportStart  int
	viewportHeight int

	// detail
	category      string
	displayed     []words.Entry
	shown         []words.Entry
	searchInput   textinput.Model
	wordCursor    int
	wordViewport  int
	favorites     map[string]bool
	favoritesList []string

	// quiz
	sched    *teaScheduler
	engine   *quiz.Engine
	followUp []tea.Cmd
}

func New(ctx context.Context, deps Deps) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "Search categories..."
	filterInput.Focus()
	filterInput.CharLimit = 50
	filterInput.Width = 50
	filterInput.Prompt = "> "

	searchInput := textinput.New()
	searchInput.Placeholder = "Search words or translations..."
	searchInput.CharLimit = 50
	searchInput.Width = 50
	searchInput.Prompt = "> "

	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	store := deps.Store
	if store == nil {
		store = words.NewStore()
	}

	m := &Model{
		deps:           deps,
		ctx:            ctx,
		log:            log,
		store:          store,
		state:          stateGrid,
		theme:          progress.ThemeLight,
		filterInput:    filterInput,
		searchInput:    searchInput,
		viewportHeight: 15,
		favorites:      make(map[string]bool),
		sched:          newTeaScheduler(),
	}
	if deps.Themes != nil {
		if theme, err := deps.Themes.Get(ctx); err == nil {
			m.theme = theme
		} else {
			log.WithError(err).Warn("could not read theme")
		}
	}
	m.styles = newStyles(m.theme)

	quizCfg := deps.Quiz
	if quizCfg.Duration == 0 {
		quizCfg = quiz.DefaultConfig()
	}
	opts := []quiz.Option{quiz.WithConfig(quizCfg), quiz.WithLogger(log)}
	if deps.History != nil {
		opts = append(opts, quiz.WithHistory(deps.History))
	}
	var saver quiz.ProgressSaver
	if deps.Progress != nil {
		saver = deps.Progress
	}
	m.engine = quiz.NewEngine(m.sched, saver, opts...)
	m.engine.Subscribe(func(ev quiz.Event) {
		if ev.Kind == quiz.EventFinished {
			m.followUp = append(m.followUp, m.loadCardsCmd())
		}
	})

	m.rebuildCards(nil, nil)
	return m
}

// ReloadedMsg wraps a freshly loaded store for delivery through
// tea.Program.Send, e.g. from the dataset watcher.
func ReloadedMsg(store *words.Store) tea.Msg {
	return datasetReloadedMsg{store: store}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCardsCmd())
}

func (m *Model) loadCardsCmd() tea.Cmd {
	ctx := m.ctx
	prog, favs := m.deps.Progress, m.deps.Favorites
	return func() tea.Msg {
		msg := cardsLoadedMsg{}
		if prog != nil {
			msg.progress, msg.err = prog.All(ctx)
		}
		if favs != nil && msg.err == nil {
			msg.favorites, msg.err = favs.List(ctx)
		}
		return msg
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 10; h > 3 {
			m.viewportHeight = h
		}
		return m, nil

	case taskFiredMsg:
		m.sched.Fire(msg.id)
		return m, m.flush()

	case cardsLoadedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Error("Error loading progress")
			m.notice = "Could not load progress: " + msg.err.Error()
		}
		m.rebuildCards(msg.progress, msg.favorites)
		return m, nil

	case datasetReloadedMsg:
		m.store = msg.store
		m.notice = "Word list reloaded."
		if m.state == stateDetail {
			m.openCategory(m.category)
		}
		return m, m.loadCardsCmd()

	case themeChangedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("could not save theme")
		}
		m.theme = msg.theme
		m.styles = newStyles(m.theme)
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Error("Error saving favorites")
			m.notice = "Could not save favorite: " + msg.err.Error()
			return m, nil
		}
		m.setFavorite(msg.word, msg.added)
		return m, nil

	case spokenMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlT:
			return m, m.toggleThemeCmd()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateGrid:
		cmd = m.updateGrid(msg)
	case stateDetail:
		cmd = m.updateDetail(msg)
	case stateQuiz:
		cmd = m.updateQuiz(msg)
	}
	cmds = append(cmds, cmd, m.flush())
	return m, tea.Batch(cmds...)
}

// flush collects ticks queued by the engine and follow-up commands from
// engine events.
func (m *Model) flush() tea.Cmd {
	cmds := append(m.followUp, m.sched.Flush())
	m.followUp = nil
	return tea.Batch(cmds...)
}

func (m *Model) toggleThemeCmd() tea.Cmd {
	themes, ctx, cur := m.deps.Themes, m.ctx, m.theme
	return func() tea.Msg {
		if themes == nil {
			next := progress.ThemeDark
			if cur == progress.ThemeDark {
				next = progress.ThemeLight
			}
			return themeChangedMsg{theme: next}
		}
		next, err := themes.Toggle(ctx)
		return themeChangedMsg{theme: next, err: err}
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return m.styles.error.Render("Error: " + m.err.Error())
	}
	switch m.state {
	case stateGrid:
		return m.viewGrid()
	case stateDetail:
		return m.viewDetail()
	case stateQuiz:
		return m.viewQuiz()
	default:
		return "Unknown state."
	}
}
