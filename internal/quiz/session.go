package quiz

import (
	"math/rand"

	"lugat-go/internal/words"
)

// Session is the pure state of one quiz run. Engine owns it and drives it
// from timer and input callbacks; every method here is a plain transition.
type Session struct {
	Category  string
	Words     []words.Entry
	Index     int
	Correct   int
	Incorrect int
	Remaining int
}

// NewSession copies list, dropping entries with nothing to type, and
// shuffles it. It fails with ErrNoWordsAvailable when nothing is left.
func NewSession(category string, list []words.Entry, seconds int, rng *rand.Rand) (*Session, error) {
	playable := make([]words.Entry, 0, len(list))
	for _, e := range list {
		if len(NewLayout(e.Word).Slots) > 0 {
			playable = append(playable, e)
		}
	}
	if len(playable) == 0 {
		return nil, ErrNoWordsAvailable
	}
	rng.Shuffle(len(playable), func(i, j int) {
		playable[i], playable[j] = playable[j], playable[i]
	})
	return &Session{
		Category:  category,
		Words:     playable,
		Remaining: seconds,
	}, nil
}

func (s *Session) Total() int { return len(s.Words) }

// Current returns the word being asked, false once every word was answered.
func (s *Session) Current() (words.Entry, bool) {
	if s.Index >= len(s.Words) {
		return words.Entry{}, false
	}
	return s.Words[s.Index], true
}

// Tick removes one second and reports whether time ran out.
func (s *Session) Tick() bool {
	if s.Remaining > 0 {
		s.Remaining--
	}
	return s.Remaining <= 0
}

// Answer counts the current word and moves past it, so
// Correct+Incorrect never exceeds Index.
func (s *Session) Answer(correct bool) {
	if s.Index >= len(s.Words) {
		return
	}
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.Index++
}

func (s *Session) Answered() int { return s.Correct + s.Incorrect }

// Done reports whether the run is over: all words answered or no time left.
func (s *Session) Done() bool {
	return s.Index >= len(s.Words) || s.Remaining <= 0
}
