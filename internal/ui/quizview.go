package ui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"lugat-go/internal/quiz"
)

const lowTimeSeconds = 10

// leaveQuiz drops the run and goes back to the word list of its category.
func (m *Model) leaveQuiz() tea.Cmd {
	m.engine.Exit()
	m.state = stateDetail
	m.searchInput.Focus()
	return m.loadCardsCmd()
}

func (m *Model) updateQuiz(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.engine.State() == quiz.StateFinished {
		switch key.Type {
		case tea.KeyEsc, tea.KeyEnter:
			return m.leaveQuiz()
		case tea.KeyCtrlR:
			return m.startQuiz()
		}
		return nil
	}

	switch key.Type {
	case tea.KeyEsc:
		return m.leaveQuiz()
	case tea.KeyBackspace:
		m.engine.Backspace()
	case tea.KeyLeft:
		m.engine.MoveFocus(-1)
	case tea.KeyRight:
		m.engine.MoveFocus(1)
	case tea.KeyRunes:
		for _, r := range key.Runes {
			m.engine.Type(r)
		}
	}
	return nil
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (m *Model) viewQuiz() string {
	if m.engine.State() == quiz.StateFinished {
		return m.viewResult()
	}
	s := m.engine.Session()
	q := m.engine.Question()
	if s == nil || q == nil {
		return m.styles.subtle.Render("Loading...")
	}

	var b strings.Builder
	const indent = "  "
	clock := m.styles.timer
	if s.Remaining <= lowTimeSeconds {
		clock = m.styles.timerLow
	}
	b.WriteString(m.styles.header.Render(m.category))
	b.WriteString("  ")
	b.WriteString(clock.Render("⏱ " + formatClock(s.Remaining)))
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf(" Question %d/%d", q.Number, q.Total)))
	b.WriteString("\n\n")
	b.WriteString(indent)
	b.WriteString(m.styles.accent.Render(q.Entry.Translation))
	b.WriteString("\n\n")
	b.WriteString(indent)
	b.WriteString(m.renderSlots(q))
	b.WriteString("\n\n")

	if v := m.engine.Verdict(); v != nil {
		b.WriteString(indent)
		if v.Correct {
			b.WriteString(m.styles.correct.Render("Correct! ✨"))
		} else {
			styledInput, styledTarget := m.correction(q, v)
			b.WriteString(m.styles.incorrect.Render("Incorrect! ❌"))
			b.WriteString(fmt.Sprintf("\n%sYour input: %s", indent, styledInput))
			b.WriteString(fmt.Sprintf("\n%sCorrect:    %s", indent, styledTarget))
		}
		b.WriteString("\n")
	} else if q.Entry.Transcription != "" {
		b.WriteString(indent)
		b.WriteString(m.styles.subtle.Render(q.Entry.Transcription))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.subtle.Render(fmt.Sprintf("\n ✔ %d  ✘ %d", s.Correct, s.Incorrect)))
	b.WriteString(m.styles.subtle.Render("\n ←/→: Move | backspace: Erase | esc: Exit quiz"))
	return b.String()
}

// renderSlots draws one cell per letter. Separators are printed as they are
// and the focused slot is underlined.
func (m *Model) renderSlots(q *quiz.Question) string {
	var marks []bool
	if v := m.engine.Verdict(); v != nil {
		marks = v.Marks
	}
	groups := make([]string, 0, len(q.Layout.Groups))
	for _, group := range q.Layout.Groups {
		var g strings.Builder
		for _, cell := range group {
			if cell.Separator {
				g.WriteString(m.styles.subtle.Render(string(cell.Rune)))
				continue
			}
			r := q.Entries[cell.Slot]
			text := "_"
			if r != 0 {
				text = string(unicode.ToUpper(r))
			}
			switch {
			case marks != nil && marks[cell.Slot]:
				g.WriteString(m.styles.correct.Render(text))
			case marks != nil:
				g.WriteString(m.styles.incorrect.Render(text))
			case cell.Slot == q.Focus && m.engine.Accepting():
				g.WriteString(m.styles.slotFocus.Render(text))
			default:
				g.WriteString(m.styles.slot.Render(text))
			}
		}
		groups = append(groups, g.String())
	}
	return strings.Join(groups, "   ")
}

// correction renders the answer and the target side by side, highlighting
// the slots the verdict marked wrong. Separators are copied to both lines.
func (m *Model) correction(q *quiz.Question, v *quiz.Verdict) (string, string) {
	target := []rune(q.Layout.Target)
	slotAt := make(map[int]int, len(q.Layout.Slots))
	for i, slot := range q.Layout.Slots {
		slotAt[slot.Index] = i
	}

	var answer, expected strings.Builder
	for pos, want := range target {
		i, ok := slotAt[pos]
		if !ok {
			answer.WriteRune(want)
			expected.WriteRune(want)
			continue
		}
		got := q.Entries[i]
		if got == 0 {
			got = '_'
		}
		if i < len(v.Marks) && v.Marks[i] {
			answer.WriteRune(got)
			expected.WriteRune(want)
			continue
		}
		answer.WriteString(m.styles.inputDiff.Render(string(got)))
		expected.WriteString(m.styles.correctDiff.Render(string(want)))
	}
	return answer.String(), expected.String()
}

func (m *Model) viewResult() string {
	r := m.engine.Result()
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.header.Render(r.Label))
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(" " + r.Category))
	b.WriteString("\n\n")
	if r.Expired {
		b.WriteString("  Time's up!\n\n")
	} else {
		b.WriteString("  All words done!\n\n")
	}
	b.WriteString(fmt.Sprintf("  %s %d\n", m.styles.correct.Render("Correct:  "), r.Correct))
	b.WriteString(fmt.Sprintf("  %s %d\n", m.styles.incorrect.Render("Incorrect:"), r.Incorrect))
	b.WriteString(fmt.Sprintf("  Score:      %d%%  %s\n", r.Percent, m.renderBar(float64(r.Percent)/100, 30)))
	if r.Saved {
		b.WriteString("\n  " + m.styles.notice.Render("New best score!") + "\n")
	}
	b.WriteString(m.styles.subtle.Render("\n enter: Back to words | ctrl+r: Play again | ctrl+t: Theme"))
	return b.String()
}
