// Package words holds the vocabulary dataset: normalized entries grouped by
// category key, plus the filtering helpers the views use.
package words

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// FavoritesLabel is the synthetic category built from the favorites list.
const FavoritesLabel = "Favorites"

var ErrInvalidDataset = errors.New("dataset must be a mapping of category to word list")

type Entry struct {
	Word          string
	Translation   string
	Transcription string
}

// rawEntry accepts both the canonical field names and the short en/uz aliases.
type rawEntry struct {
	Word          string `json:"word" yaml:"word"`
	En            string `json:"en" yaml:"en"`
	Translation   string `json:"translation" yaml:"translation"`
	Uz            string `json:"uz" yaml:"uz"`
	Transcription string `json:"transcription" yaml:"transcription"`
}

func (r rawEntry) normalize() Entry {
	return Entry{
		Word:          lo.CoalesceOrEmpty(r.Word, r.En),
		Translation:   lo.CoalesceOrEmpty(r.Translation, r.Uz),
		Transcription: r.Transcription,
	}
}

type Category struct {
	Label string
	Key   string
	Count int
}

// Store is built once per load and never mutated afterwards.
type Store struct {
	order   []Category
	entries map[string][]Entry
}

// NormalizeKey lowercases the label and drops everything outside [a-z0-9].
func NormalizeKey(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func NewStore() *Store {
	return &Store{entries: make(map[string][]Entry)}
}

// Parse reads a JSON or YAML document mapping category labels to word lists.
// Category order follows the document.
func Parse(data []byte) (*Store, error) {
	s := NewStore()
	if err := s.merge(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) merge(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		return s.mergeJSON(trimmed)
	}
	return s.mergeYAML(trimmed)
}

// mergeJSON walks the top-level object token by token so category order
// survives decoding.
func (s *Store) mergeJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}
	if tok != json.Delim('{') {
		return ErrInvalidDataset
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parse dataset: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return ErrInvalidDataset
		}
		var raws []rawEntry
		if err := dec.Decode(&raws); err != nil {
			return fmt.Errorf("category %q: %w", label, err)
		}
		s.add(label, normalizeAll(raws))
	}
	return nil
}

func (s *Store) mergeYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return ErrInvalidDataset
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		label := root.Content[i].Value
		var raws []rawEntry
		if err := root.Content[i+1].Decode(&raws); err != nil {
			return fmt.Errorf("category %q: %w", label, err)
		}
		s.add(label, normalizeAll(raws))
	}
	return nil
}

func normalizeAll(raws []rawEntry) []Entry {
	return lo.Map(raws, func(r rawEntry, _ int) Entry { return r.normalize() })
}

func (s *Store) add(label string, entries []Entry) {
	key := NormalizeKey(label)
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, Category{Label: label, Key: key})
	}
	s.entries[key] = append(s.entries[key], entries...)
	for i := range s.order {
		if s.order[i].Key == key {
			s.order[i].Count = len(s.entries[key])
		}
	}
}

func (s *Store) Categories() []Category {
	out := make([]Category, len(s.order))
	copy(out, s.order)
	return out
}

// Words returns the entries of a category by label or key. The slice must
// not be modified.
func (s *Store) Words(label string) []Entry {
	return s.entries[NormalizeKey(label)]
}

func (s *Store) WordCount(label string) int {
	return len(s.Words(label))
}

func (s *Store) Len() int {
	return lo.SumBy(s.order, func(c Category) int { return c.Count })
}

// All returns every entry in category order.
func (s *Store) All() []Entry {
	var out []Entry
	for _, c := range s.order {
		out = append(out, s.entries[c.Key]...)
	}
	return out
}

// Favorites collects the entries whose word is in favs, keeping the first
// occurrence of each word in store order.
func (s *Store) Favorites(favs []string) []Entry {
	set := lo.SliceToMap(favs, func(w string) (string, struct{}) { return w, struct{}{} })
	matched := lo.Filter(s.All(), func(e Entry, _ int) bool {
		_, ok := set[e.Word]
		return ok
	})
	return lo.UniqBy(matched, func(e Entry) string { return e.Word })
}

// Resolve returns the word list shown for a category label, handling the
// Favorites pseudo-category.
func (s *Store) Resolve(label string, favs []string) []Entry {
	if label == FavoritesLabel {
		return s.Favorites(favs)
	}
	return s.Words(label)
}

// Filter keeps entries whose word or translation contains term, ignoring case.
func Filter(entries []Entry, term string) []Entry {
	term = strings.ToLower(term)
	if term == "" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Word), term) ||
			strings.Contains(strings.ToLower(e.Translation), term)
	})
}

func FilterCategories(cats []Category, term string) []Category {
	term = strings.ToLower(term)
	return lo.Filter(cats, func(c Category, _ int) bool {
		return strings.Contains(strings.ToLower(c.Label), term)
	})
}
