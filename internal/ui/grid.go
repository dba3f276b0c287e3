package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lugat-go/internal/words"
)

// rebuildCards recomputes the grid from the store, the stored progress and
// the favorites list. A nil map or slice keeps what is already known.
func (m *Model) rebuildCards(prog map[string]int, favs []string) {
	if favs != nil {
		m.favoritesList = favs
		m.favorites = make(map[string]bool, len(favs))
		for _, w := range favs {
			m.favorites[w] = true
		}
	}
	known := make(map[string]int, len(m.cards))
	for _, c := range m.cards {
		if !c.Favorites {
			known[words.NormalizeKey(c.Label)] = c.Percent
		}
	}
	if prog == nil {
		prog = known
	}

	m.cards = m.cards[:0]
	if len(m.favoritesList) > 0 {
		m.cards = append(m.cards, card{Label: words.FavoritesLabel, Count: len(m.favoritesList), Percent: 100, Favorites: true})
	}
	for _, c := range m.store.Categories() {
		m.cards = append(m.cards, card{Label: c.Label, Count: c.Count, Percent: prog[c.Key]})
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	filterText := strings.ToLower(m.filterInput.Value())
	m.filteredCards = m.filteredCards[:0]
	for _, c := range m.cards {
		if strings.Contains(strings.ToLower(c.Label), filterText) {
			m.filteredCards = append(m.filteredCards, c)
		}
	}
	if m.cursor >= len(m.filteredCards) {
		m.cursor = 0
	}
	m.updateViewport()
}

func (m *Model) updateViewport() {
	m.viewportStart = scrollTo(m.cursor, m.viewportStart, m.viewportHeight, len(m.filteredCards))
}

// scrollTo returns the first visible row so that cursor stays in a window of
// height rows.
func scrollTo(cursor, start, height, total int) int {
	if total == 0 {
		return 0
	}
	if cursor < start {
		start = cursor
	}
	if cursor >= start+height {
		start = cursor - height + 1
	}
	return start
}

func (m *Model) updateGrid(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			if m.filterInput.Value() != "" {
				m.filterInput.SetValue("")
				m.applyFilter()
				return nil
			}
			return tea.Quit

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.updateViewport()
			}
			return nil

		case tea.KeyDown:
			if m.cursor < len(m.filteredCards)-1 {
				m.cursor++
				m.updateViewport()
			}
			return nil

		case tea.KeyEnter:
			if len(m.filteredCards) > 0 {
				m.openCategory(m.filteredCards[m.cursor].Label)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	oldFilter := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != oldFilter {
		m.applyFilter()
	}
	return cmd
}

func (m *Model) viewGrid() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("lugat: Categories"))
	b.WriteString("\n\n")
	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")

	start := m.viewportStart
	end := m.viewportStart + m.viewportHeight
	if end > len(m.filteredCards) {
		end = len(m.filteredCards)
	}

	if len(m.filteredCards) == 0 {
		b.WriteString("No categories match your search.\n")
	} else {
		width := 0
		for _, c := range m.filteredCards {
			width = max(width, lipgloss.Width(c.Label))
		}
		for i := start; i < end; i++ {
			c := m.filteredCards[i]
			cursor := " "
			if m.cursor == i {
				cursor = m.styles.cursor.Render(">")
			}
			label := c.Label
			if c.Favorites {
				label = m.styles.favorite.Render("★ " + c.Label)
			}
			pad := strings.Repeat(" ", max(0, width-lipgloss.Width(c.Label)))
			line := fmt.Sprintf("%s %s%s | %4d words | %s %3d%%",
				cursor, label, pad, c.Count, m.renderBar(float64(c.Percent)/100, 30), c.Percent)
			if m.cursor == i {
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
	b.WriteString(fmt.Sprintf("\n  %s", m.styles.subtle.Render(fmt.Sprintf("Showing %d of %d categories", len(m.filteredCards), len(m.cards)))))
	b.WriteString(m.styles.subtle.Render("\n\n ↑/↓: Navigate | enter: Open | ctrl+t: Theme | esc: Quit"))
	return b.String()
}

func (m *Model) renderBar(percentage float64, width int) string {
	filled := int(percentage * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat(m.styles.barFilled.String(), filled) +
		strings.Repeat(m.styles.barEmpty.String(), width-filled)
}
