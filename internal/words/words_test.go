package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"Phrasal Verbs!": [
		{"word": "give up", "translation": "taslim bo'lmoq", "transcription": "[gɪv ʌp]"},
		{"en": "look after", "uz": "qaramoq"}
	],
	"Fruits": [
		{"word": "apple", "translation": "olma"},
		{"word": "pear", "en": "ignored", "translation": "nok"}
	],
	"Empty": []
}`

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Phrasal Verbs!", "phrasalverbs"},
		{"phrasalverbs", "phrasalverbs"},
		{"  Top-100 Words ", "top100words"},
		{"Ёлка", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeKey(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeKey(got), "idempotent")
		})
	}
	assert.Equal(t, NormalizeKey("Phrasal Verbs!"), NormalizeKey("phrasalverbs"))
}

func TestParse_JSON(t *testing.T) {
	s, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	cats := s.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, Category{Label: "Phrasal Verbs!", Key: "phrasalverbs", Count: 2}, cats[0])
	assert.Equal(t, "Fruits", cats[1].Label)
	assert.Equal(t, 0, cats[2].Count)

	verbs := s.Words("phrasal verbs")
	require.Len(t, verbs, 2)
	assert.Equal(t, Entry{Word: "give up", Translation: "taslim bo'lmoq", Transcription: "[gɪv ʌp]"}, verbs[0])
	assert.Equal(t, Entry{Word: "look after", Translation: "qaramoq"}, verbs[1], "aliases and empty defaults")

	assert.Equal(t, "pear", s.Words("fruits")[1].Word, "first alias wins")

	for _, c := range cats {
		assert.Equal(t, len(s.Words(c.Label)), s.WordCount(c.Label))
	}
	assert.Equal(t, 0, s.WordCount("missing"))
	assert.Equal(t, 4, s.Len())
}

func TestParse_YAML(t *testing.T) {
	doc := `
Animals:
  - word: cat
    translation: mushuk
  - en: dog
    uz: it
Colors:
  - word: red
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Animals", cats[0].Label)
	assert.Equal(t, Entry{Word: "dog", Translation: "it"}, s.Words("animals")[1])
}

func TestParse_MergesSameKey(t *testing.T) {
	s, err := Parse([]byte(`{"Verbs": [{"word": "go"}], "verbs!": [{"word": "run"}]}`))
	require.NoError(t, err)
	require.Len(t, s.Categories(), 1)
	assert.Equal(t, 2, s.WordCount("VERBS"))
	assert.Equal(t, "Verbs", s.Categories()[0].Label)

	got := s.Words("verbs")
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].Word)
	assert.Equal(t, "run", got[1].Word)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`["not", "a", "mapping"]`))
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = Parse([]byte(`{"Verbs": "nope"}`))
	assert.Error(t, err)

	s, err := Parse([]byte("   "))
	require.NoError(t, err)
	assert.Empty(t, s.Categories())
}

func TestStore_Favorites(t *testing.T) {
	s, err := Parse([]byte(`{
		"A": [{"word": "apple", "translation": "olma"}, {"word": "go"}],
		"B": [{"word": "go", "translation": "bormoq"}, {"word": "pear"}]
	}`))
	require.NoError(t, err)

	favs := s.Favorites([]string{"pear", "go", "missing"})
	require.Len(t, favs, 2)
	assert.Equal(t, "go", favs[0].Word, "store order, not favorites order")
	assert.Equal(t, "", favs[0].Translation, "first occurrence kept")
	assert.Equal(t, "pear", favs[1].Word)

	assert.Equal(t, favs, s.Resolve(FavoritesLabel, []string{"pear", "go"}))
	assert.Len(t, s.Resolve("a", nil), 2)
	assert.Empty(t, s.Favorites(nil))
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Word: "Apple", Translation: "olma"},
		{Word: "pear", Translation: "nok"},
		{Word: "pineapple", Translation: "ananas"},
	}
	assert.Len(t, Filter(entries, ""), 3)
	assert.Len(t, Filter(entries, "APPLE"), 2)
	assert.Equal(t, "pear", Filter(entries, "NOK")[0].Word)
	assert.Empty(t, Filter(entries, "zzz"))
}

func TestFilterCategories(t *testing.T) {
	cats := []Category{{Label: "Phrasal Verbs"}, {Label: "Fruits"}, {Label: "Irregular verbs"}}
	assert.Len(t, FilterCategories(cats, "verb"), 2)
	assert.Len(t, FilterCategories(cats, ""), 3)
}
