package words

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/wordsprout/wordsprout/internal/store"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Under the Sea":     "under-the-sea",
		"  Café & Crêpes! ": "cafe-crepes",
		"Space 2":           "space-2",
		"???":               "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(" under the sea "); got != "Under The Sea" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestSaveCustom(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	repo := st.WordRepo()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	c, err := Load(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}

	saved, err := SaveCustom(ctx, repo, c, Category{ID: "space"}, []Word{{Text: "moon"}, {Text: "star", ID: 3}}, now)
	if err != nil {
		t.Fatalf("SaveCustom: %v", err)
	}
	if saved[0].ID != CustomWordFloor || saved[1].ID != CustomWordFloor+1 {
		t.Errorf("ids = %d, %d", saved[0].ID, saved[1].ID)
	}

	c, err = Load(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := c.Category("space")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Name != "Space" || !cat.Custom {
		t.Errorf("category = %+v", cat)
	}
	if got := c.Texts("space"); !slices.Equal(got, []string{"moon", "star"}) {
		t.Errorf("Texts = %v", got)
	}

	_, err = SaveCustom(ctx, repo, c, Category{ID: "animals"}, []Word{{Text: "yak"}}, now)
	if !errors.Is(err, ErrBuiltinCategory) {
		t.Errorf("builtin: err = %v", err)
	}
}
