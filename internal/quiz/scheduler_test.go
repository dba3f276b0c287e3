package quiz

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lugat-go/internal/words"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	var fired []string

	c.After(300*time.Millisecond, func() { fired = append(fired, "after") })
	ticker := c.Every(100*time.Millisecond, func() { fired = append(fired, "tick") })
	cancelled := c.After(50*time.Millisecond, func() { fired = append(fired, "never") })
	cancelled.Cancel()

	c.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"tick", "tick"}, fired)
	assert.Equal(t, 250*time.Millisecond, c.Now())

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"tick", "tick", "after", "tick"}, fired, "ties run in schedule order")

	ticker.Cancel()
	c.Advance(time.Second)
	assert.Len(t, fired, 4)
	assert.Zero(t, c.Pending())
}

func TestManualClock_NestedScheduling(t *testing.T) {
	c := NewManualClock()
	var at []time.Duration
	c.After(10*time.Millisecond, func() {
		at = append(at, c.Now())
		c.After(10*time.Millisecond, func() { at = append(at, c.Now()) })
	})
	c.Advance(time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, at)
}

func TestSession(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewSession("Verbs", []words.Entry{{Word: "a"}, {Word: "b"}}, 2, rng)
	require.NoError(t, err)

	assert.False(t, s.Done())
	s.Answer(true)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 1, s.Correct)
	s.Answer(false)
	assert.Equal(t, 2, s.Index)
	assert.True(t, s.Done())

	s.Answer(true)
	assert.Equal(t, 2, s.Index, "index never passes the end")
	assert.Equal(t, 2, s.Answered())

	_, ok := s.Current()
	assert.False(t, ok)

	assert.False(t, s.Tick())
	assert.True(t, s.Tick())
	assert.True(t, s.Tick())
	assert.Zero(t, s.Remaining)
}
