package quiz

import (
	"strings"
	"unicode"
)

// Cell is one rendered position of a target word: either an editable slot
// or a literal separator.
type Cell struct {
	Rune      rune
	Separator bool
	// Slot is the position in Layout.Slots, -1 for separators.
	Slot int
}

// Slot is an editable letter box. Index is the rune position of the letter
// in the full target string, separators and spaces included.
type Slot struct {
	Index int
}

type Layout struct {
	Target string
	Groups [][]Cell
	Slots  []Slot
}

func isSeparator(r rune) bool {
	return r == '-' || r == '\''
}

// NewLayout splits the trimmed target on whitespace into groups and gives
// every letter except '-' and '\'' its own slot.
func NewLayout(word string) Layout {
	l := Layout{Target: strings.TrimSpace(word)}
	var group []Cell
	for i, r := range []rune(l.Target) {
		switch {
		case unicode.IsSpace(r):
			l.Groups = append(l.Groups, group)
			group = nil
		case isSeparator(r):
			group = append(group, Cell{Rune: r, Separator: true, Slot: -1})
		default:
			group = append(group, Cell{Rune: r, Slot: len(l.Slots)})
			l.Slots = append(l.Slots, Slot{Index: i})
		}
	}
	if l.Target != "" {
		l.Groups = append(l.Groups, group)
	}
	return l
}

// Verdict is the outcome of checking one word.
type Verdict struct {
	Correct bool
	Errors  int
	// Marks holds per-slot correctness, parallel to Layout.Slots.
	Marks []bool
	// Correction is the full target, set only when the word was wrong.
	Correction string
}

// Check compares each entry, case-insensitively, with the target letter at
// its slot's Index. entries is parallel to l.Slots; a zero rune is a blank.
func (l Layout) Check(entries []rune) Verdict {
	target := []rune(l.Target)
	v := Verdict{Marks: make([]bool, len(l.Slots))}
	for i, slot := range l.Slots {
		var typed rune
		if i < len(entries) {
			typed = entries[i]
		}
		ok := typed != 0 && unicode.ToLower(typed) == unicode.ToLower(target[slot.Index])
		v.Marks[i] = ok
		if !ok {
			v.Errors++
		}
	}
	v.Correct = v.Errors == 0
	if !v.Correct {
		v.Correction = l.Target
	}
	return v
}
