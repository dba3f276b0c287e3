package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"lugat-go/internal/words"
)

func (m *Model) openCategory(label string) {
	m.category = label
	m.displayed = m.store.Resolve(label, m.favoritesList)
	m.state = stateDetail
	m.filterInput.Blur()
	m.searchInput.Focus()
	m.applySearch()
}

// showGrid returns to the category list and clears both searches.
func (m *Model) showGrid() {
	m.state = stateGrid
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.filterInput.SetValue("")
	m.filterInput.Focus()
	m.applyFilter()
}

func (m *Model) applySearch() {
	m.shown = words.Filter(m.displayed, m.searchInput.Value())
	if m.wordCursor >= len(m.shown) {
		m.wordCursor = 0
	}
	m.wordViewport = scrollTo(m.wordCursor, m.wordViewport, m.viewportHeight, len(m.shown))
}

func (m *Model) setFavorite(word string, added bool) {
	if added {
		if !m.favorites[word] {
			m.favoritesList = append(m.favoritesList, word)
		}
		m.favorites[word] = true
	} else {
		delete(m.favorites, word)
		m.favoritesList = lo.Without(m.favoritesList, word)
	}
	m.rebuildCards(nil, nil)
}

func (m *Model) toggleFavoriteCmd(word string) tea.Cmd {
	favs, ctx := m.deps.Favorites, m.ctx
	added := !m.favorites[word]
	return func() tea.Msg {
		if favs == nil {
			return favoriteToggledMsg{word: word, added: added}
		}
		added, err := favs.Toggle(ctx, word)
		return favoriteToggledMsg{word: word, added: added, err: err}
	}
}

func (m *Model) startQuiz() tea.Cmd {
	// A Favorites quiz covers what is listed now, not a stale snapshot.
	list := m.displayed
	if m.category == words.FavoritesLabel {
		list = m.store.Favorites(m.favoritesList)
	}
	if err := m.engine.Start(m.category, list); err != nil {
		m.notice = noWordsNotice
		m.log.WithError(err).WithField("category", m.category).Warn("quiz not started")
		return nil
	}
	m.notice = ""
	m.searchInput.Blur()
	m.state = stateQuiz
	return nil
}

func (m *Model) updateDetail(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			if m.searchInput.Value() != "" {
				m.searchInput.SetValue("")
				m.applySearch()
				return nil
			}
			m.notice = ""
			m.showGrid()
			return nil

		case tea.KeyUp:
			if m.wordCursor > 0 {
				m.wordCursor--
				m.wordViewport = scrollTo(m.wordCursor, m.wordViewport, m.viewportHeight, len(m.shown))
			}
			return nil

		case tea.KeyDown:
			if m.wordCursor < len(m.shown)-1 {
				m.wordCursor++
				m.wordViewport = scrollTo(m.wordCursor, m.wordViewport, m.viewportHeight, len(m.shown))
			}
			return nil

		case tea.KeyEnter:
			return m.startQuiz()

		case tea.KeyCtrlF:
			if len(m.shown) > 0 {
				return m.toggleFavoriteCmd(m.shown[m.wordCursor].Word)
			}
			return nil

		case tea.KeyCtrlS:
			if len(m.shown) > 0 {
				return speakCmd(m.shown[m.wordCursor].Word)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	old := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != old {
		m.applySearch()
	}
	return cmd
}

func (m *Model) viewDetail() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render(m.category))
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf(" %d words available", len(m.displayed))))
	b.WriteString("\n\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if len(m.shown) == 0 {
		b.WriteString("No words to show.\n")
	} else {
		tw, ww := 0, 0
		for _, e := range m.shown {
			tw = max(tw, lipgloss.Width(e.Translation))
			ww = max(ww, lipgloss.Width(e.Word))
		}
		end := min(m.wordViewport+m.viewportHeight, len(m.shown))
		for i := m.wordViewport; i < end; i++ {
			e := m.shown[i]
			cursor := " "
			if i == m.wordCursor {
				cursor = m.styles.cursor.Render(">")
			}
			star := " "
			if m.favorites[e.Word] {
				star = m.styles.favorite.Render("★")
			}
			line := fmt.Sprintf("%s %s%s | %s %s%s | %s",
				cursor,
				e.Translation, strings.Repeat(" ", tw-lipgloss.Width(e.Translation)),
				star,
				e.Word, strings.Repeat(" ", ww-lipgloss.Width(e.Word)),
				m.styles.subtle.Render(e.Transcription))
			if i == m.wordCursor {
				b.WriteString(m.styles.highlight.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + m.styles.notice.Render(m.notice) + "\n")
	}
	b.WriteString(m.styles.subtle.Render("\n ↑/↓: Navigate | enter: 1 minute quiz | ctrl+f: Favorite | ctrl+s: Pronounce"))
	b.WriteString(m.styles.subtle.Render("\n ctrl+t: Theme | esc: Back"))
	return b.String()
}
