package wordgen

import (
	"context"
	"fmt"
	"time"

	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/words"
)

// Save stores pack under categoryID, creating the custom category if needed,
// and returns the words with their assigned ids. An empty categoryID uses
// the slug of the pack's theme.
func Save(ctx context.Context, repo store.WordRepo, catalog *words.Catalog, categoryID string, pack *Pack, now time.Time) ([]words.Word, error) {
	if categoryID == "" {
		categoryID = words.Slug(pack.Theme)
	}
	if categoryID == "" {
		return nil, fmt.Errorf("theme %q: %w", pack.Theme, ErrEmptyTheme)
	}

	ws := make([]words.Word, len(pack.Words))
	for i, g := range pack.Words {
		ws[i] = words.Word{Text: g.Text, Emoji: g.Emoji, Definition: g.Definition, Example: g.Example}
	}
	cat := words.Category{ID: categoryID, Name: words.DisplayName(pack.Theme), Emoji: pack.Emoji}
	return words.SaveCustom(ctx, repo, catalog, cat, ws, now)
}
