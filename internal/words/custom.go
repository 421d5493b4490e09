package words

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/wordsprout/wordsprout/internal/store"
)

// ErrBuiltinCategory is returned when custom words target a built-in category.
var ErrBuiltinCategory = errors.New("built-in categories cannot be extended")

// Slug turns a name into a category id: "Under the Sea" -> "under-the-sea".
// Accents are stripped; anything other than letters and digits separates words.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	fields := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}

// DisplayName title-cases a learner-typed category name.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// SaveCustom stores ws under cat, creating the custom category when catalog
// does not know it yet. An existing custom category keeps its name and emoji.
// Word ids are assigned from CustomWordFloor upward; ws ids and categories
// are ignored. Returns the stored words. catalog is not modified.
func SaveCustom(ctx context.Context, repo store.WordRepo, catalog *Catalog, cat Category, ws []Word, now time.Time) ([]Word, error) {
	if cat.ID == "" {
		return nil, fmt.Errorf("save custom words: %w: empty id", ErrUnknownCategory)
	}
	rec := store.CategoryRecord{ID: cat.ID, Name: cat.Name, Emoji: cat.Emoji, CreatedAt: now}
	if existing, err := catalog.Category(cat.ID); err == nil {
		if !existing.Custom {
			return nil, fmt.Errorf("%q: %w", cat.ID, ErrBuiltinCategory)
		}
		rec.Name, rec.Emoji = existing.Name, existing.Emoji
	}
	if rec.Name == "" {
		rec.Name = DisplayName(strings.ReplaceAll(cat.ID, "-", " "))
	}
	if err := repo.SaveCategory(ctx, rec); err != nil {
		return nil, err
	}
	if len(ws) == 0 {
		return nil, nil
	}

	next, err := repo.NextWordID(ctx, CustomWordFloor)
	if err != nil {
		return nil, err
	}
	recs := make([]store.WordRecord, len(ws))
	out := make([]Word, len(ws))
	for i, w := range ws {
		w.ID = next + i
		w.CategoryID = cat.ID
		w.Custom = true
		out[i] = w
		recs[i] = store.WordRecord{
			ID:         w.ID,
			CategoryID: cat.ID,
			Text:       w.Text,
			Definition: w.Definition,
			Example:    w.Example,
			Emoji:      w.Emoji,
			CreatedAt:  now,
		}
	}
	if err := repo.SaveWords(ctx, recs); err != nil {
		return nil, err
	}
	return out, nil
}

// Texts returns the texts of a category's words.
func (c *Catalog) Texts(categoryID string) []string {
	ws := c.byCategory[categoryID]
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Text
	}
	return out
}
