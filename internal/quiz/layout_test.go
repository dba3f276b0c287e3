package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout_Separators(t *testing.T) {
	l := NewLayout("up-to-date")

	require.Len(t, l.Slots, 8)
	require.Len(t, l.Groups, 1)
	assert.Len(t, l.Groups[0], 10)

	indices := make([]int, len(l.Slots))
	for i, s := range l.Slots {
		indices[i] = s.Index
	}
	assert.Equal(t, []int{0, 1, 3, 4, 6, 7, 8, 9}, indices)

	assert.True(t, l.Groups[0][2].Separator)
	assert.Equal(t, -1, l.Groups[0][2].Slot)
	assert.Equal(t, '-', l.Groups[0][2].Rune)
}

func TestNewLayout_Groups(t *testing.T) {
	l := NewLayout("  give up  ")

	assert.Equal(t, "give up", l.Target)
	require.Len(t, l.Groups, 2)
	assert.Len(t, l.Groups[0], 4)
	assert.Len(t, l.Groups[1], 2)
	require.Len(t, l.Slots, 6)
	assert.Equal(t, 5, l.Slots[4].Index, "space counts toward the index")
}

func TestNewLayout_Apostrophe(t *testing.T) {
	l := NewLayout("don't")
	require.Len(t, l.Slots, 4)
	assert.Equal(t, 4, l.Slots[3].Index)
}

func TestNewLayout_Empty(t *testing.T) {
	l := NewLayout("   ")
	assert.Empty(t, l.Slots)
	assert.Empty(t, l.Groups)
}

func TestLayout_Check(t *testing.T) {
	l := NewLayout("up-to-date")

	t.Run("all match", func(t *testing.T) {
		v := l.Check([]rune("uptodate"))
		assert.True(t, v.Correct)
		assert.Zero(t, v.Errors)
		assert.Empty(t, v.Correction)
	})

	t.Run("case insensitive", func(t *testing.T) {
		v := l.Check([]rune("UpToDaTe"))
		assert.True(t, v.Correct)
	})

	t.Run("one mismatch", func(t *testing.T) {
		v := l.Check([]rune("uptodata"))
		assert.False(t, v.Correct)
		assert.Equal(t, 1, v.Errors)
		assert.Equal(t, "up-to-date", v.Correction)
		assert.Equal(t, []bool{true, true, true, true, true, true, true, false}, v.Marks)
	})

	t.Run("blank slot is wrong", func(t *testing.T) {
		entries := []rune("uptodate")
		entries[3] = 0
		v := l.Check(entries)
		assert.Equal(t, 1, v.Errors)
	})
}
