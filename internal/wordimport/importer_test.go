package wordimport

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/words"
)

const sampleCSV = `word,definition,example,emoji,category
moon,The bright thing in the night sky.,The moon is round.,🌙,Space
star, A tiny light in the sky.,,⭐,space

rocket,A ship that flies to space.,,🚀,
,no word here,,,Space
dog,An animal that barks.,,🐶,Animals
Moon,duplicate,,,Space
`

func newImporter(t *testing.T) (*Importer, *store.Store, *words.Catalog) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "import.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog, err := words.Load(context.Background(), st.WordRepo())
	require.NoError(t, err)

	im := New(st.WordRepo(), slog.New(slog.DiscardHandler))
	im.now = func() time.Time { return time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC) }
	return im, st, catalog
}

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV), DefaultConfig())
	require.NoError(t, err)

	require.Len(t, rows, 6, "header and blank line are dropped")
	assert.Equal(t, Row{
		Line: 2, Text: "moon", Definition: "The bright thing in the night sky.",
		Example: "The moon is round.", Emoji: "🌙", Category: "Space",
	}, rows[0])
	assert.Equal(t, "A tiny light in the sky.", rows[1].Definition)
	assert.Equal(t, 5, rows[2].Line)
	assert.Empty(t, rows[2].Category)
}

func TestReadCSV_CustomColumns(t *testing.T) {
	cfg := Config{WordColumn: "B", DefinitionColumn: "A", StartRow: 1}
	rows, err := ReadCSV(strings.NewReader("A cold season.,winter\n"), cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "winter", rows[0].Text)
	assert.Equal(t, "A cold season.", rows[0].Definition)
	assert.Empty(t, rows[0].Category)
}

func TestReadCSV_BadColumn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordColumn = "1"
	_, err := ReadCSV(strings.NewReader("a,b\n"), cfg)
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	im, st, catalog := newImporter(t)

	rows, err := ReadCSV(strings.NewReader(sampleCSV), DefaultConfig())
	require.NoError(t, err)

	res, err := im.Import(ctx, catalog, rows, "Outer Space")
	require.NoError(t, err)

	assert.Equal(t, 6, res.Processed)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.Skipped, "Moon repeats moon")
	assert.Equal(t, []string{"space", "outer-space"}, res.CategoriesCreated)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "row 6")
	assert.Contains(t, res.Errors[1], "built-in")

	catalog, err = words.Load(ctx, st.WordRepo())
	require.NoError(t, err)
	assert.Equal(t, []string{"moon", "star"}, catalog.Texts("space"))
	assert.Equal(t, []string{"rocket"}, catalog.Texts("outer-space"))
	space, err := catalog.Category("space")
	require.NoError(t, err)
	assert.Equal(t, "🌙", space.Emoji)

	// Importing again adds nothing.
	res, err = im.Import(ctx, catalog, rows, "Outer Space")
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Equal(t, 4, res.Skipped)
	assert.Empty(t, res.CategoriesCreated)
}

func TestImport_NoCategory(t *testing.T) {
	im, _, catalog := newImporter(t)
	res, err := im.Import(context.Background(), catalog, []Row{{Line: 3, Text: "kite"}}, "")
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no category")
}

func TestReadFile_Spreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"word", "definition", "example", "emoji", "category"},
		{"tulip", "A cup-shaped spring flower.", "Red tulips grew by the door.", "🌷", "Garden"},
		{"seed", "A tiny thing a plant grows from.", "", "🌱", "Garden"},
	}
	for i, row := range data {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadFile(path, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "tulip", rows[0].Text)
	assert.Equal(t, "Garden", rows[1].Category)
	assert.Empty(t, rows[1].Example)

	im, _, catalog := newImporter(t)
	res, err := im.Import(context.Background(), catalog, rows, "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, []string{"garden"}, res.CategoriesCreated)
}

func TestReadFile_CSVExtension(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.CSV"), DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open csv")
}
