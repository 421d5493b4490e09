package words

import (
	"context"
	"fmt"
	"slices"

	"github.com/wordsprout/wordsprout/internal/store"
)

// Catalog is an immutable, validated set of categories and words with
// precomputed indices.
type Catalog struct {
	categories []Category
	words      []Word
	catByID    map[string]int
	wordByID   map[int]int
	byCategory map[string][]Word
}

// New validates categories and words and builds a Catalog. Categories keep
// their given order; words within a category are ordered by id.
func New(categories []Category, words []Word) (*Catalog, error) {
	if err := validateCatalog(categories, words); err != nil {
		return nil, err
	}

	c := &Catalog{
		categories: slices.Clone(categories),
		words:      slices.Clone(words),
		catByID:    make(map[string]int, len(categories)),
		wordByID:   make(map[int]int, len(words)),
		byCategory: make(map[string][]Word, len(categories)),
	}
	for i, cat := range c.categories {
		c.catByID[cat.ID] = i
	}
	slices.SortFunc(c.words, func(a, b Word) int { return a.ID - b.ID })
	for i, w := range c.words {
		c.wordByID[w.ID] = i
		c.byCategory[w.CategoryID] = append(c.byCategory[w.CategoryID], w)
	}
	return c, nil
}

// Load returns the built-in catalog merged with the custom categories and
// words stored in repo.
func Load(ctx context.Context, repo store.WordRepo) (*Catalog, error) {
	seed, err := Seed()
	if err != nil {
		return nil, err
	}

	customCats, err := repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load custom categories: %w", err)
	}
	customWords, err := repo.ListWords(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load custom words: %w", err)
	}

	categories := slices.Clone(seed.categories)
	for _, rec := range customCats {
		categories = append(categories, Category{ID: rec.ID, Name: rec.Name, Emoji: rec.Emoji, Custom: true})
	}
	words := slices.Clone(seed.words)
	for _, rec := range customWords {
		words = append(words, Word{
			ID:         rec.ID,
			CategoryID: rec.CategoryID,
			Text:       rec.Text,
			Emoji:      rec.Emoji,
			Definition: rec.Definition,
			Example:    rec.Example,
			Custom:     true,
		})
	}
	return New(categories, words)
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (Category, error) {
	i, ok := c.catByID[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return c.categories[i], nil
}

// HasCategory reports whether id names a category.
func (c *Catalog) HasCategory(id string) bool {
	_, ok := c.catByID[id]
	return ok
}

// WordsByCategory returns the words of a category ordered by id. An unknown
// or empty category yields an empty slice.
func (c *Catalog) WordsByCategory(id string) []Word {
	return slices.Clone(c.byCategory[id])
}

// WordIDs returns the ids of a category's words.
func (c *Catalog) WordIDs(categoryID string) []int {
	words := c.byCategory[categoryID]
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

// Word returns the word with the given id.
func (c *Catalog) Word(id int) (Word, error) {
	i, ok := c.wordByID[id]
	if !ok {
		return Word{}, fmt.Errorf("%w: %d", ErrUnknownWord, id)
	}
	return c.words[i], nil
}

// WordCount returns the number of words in the catalog.
func (c *Catalog) WordCount() int {
	return len(c.words)
}
