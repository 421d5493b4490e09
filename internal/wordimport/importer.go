// Package wordimport reads custom words from spreadsheets and CSV files.
package wordimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/words"
)

// Config names the columns holding each field. Columns use spreadsheet
// letters for both xlsx and CSV files.
type Config struct {
	WordColumn       string
	DefinitionColumn string
	ExampleColumn    string
	EmojiColumn      string
	CategoryColumn   string

	// SheetName selects the xlsx sheet; empty means the first sheet.
	SheetName string

	// StartRow is the first 1-based row holding data.
	StartRow int
}

// DefaultConfig reads word, definition, example, emoji and category from
// columns A to E and skips a header row.
func DefaultConfig() Config {
	return Config{
		WordColumn:       "A",
		DefinitionColumn: "B",
		ExampleColumn:    "C",
		EmojiColumn:      "D",
		CategoryColumn:   "E",
		StartRow:         2,
	}
}

// Row is one parsed data row.
type Row struct {
	Line       int
	Text       string
	Definition string
	Example    string
	Emoji      string
	Category   string
}

// Result summarizes an import.
type Result struct {
	Processed int
	Created   int
	Skipped   int

	// CategoriesCreated lists ids of categories the import added.
	CategoriesCreated []string
	Errors            []string
}

// ReadFile parses path as CSV when it ends in .csv and as xlsx otherwise.
func ReadFile(path string, cfg Config) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, cfg)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRecords(records, nil, cfg)
}

// ReadCSV parses CSV records from r.
func ReadCSV(r io.Reader, cfg Config) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		// The reader skips empty lines, so take line numbers from it.
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return parseRecords(records, lines, cfg)
}

// parseRecords maps records to rows. lines holds each record's 1-based line;
// nil means records are consecutive from line 1.
func parseRecords(records [][]string, lines []int, cfg Config) ([]Row, error) {
	cols := make([]int, 5)
	for i, name := range []string{cfg.WordColumn, cfg.DefinitionColumn, cfg.ExampleColumn, cfg.EmojiColumn, cfg.CategoryColumn} {
		if name == "" {
			cols[i] = -1
			continue
		}
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cols[i] = n - 1
	}
	start := max(cfg.StartRow, 1)

	var rows []Row
	for i, rec := range records {
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		if line < start || blank(rec) {
			continue
		}
		rows = append(rows, Row{
			Line:       line,
			Text:       cell(rec, cols[0]),
			Definition: cell(rec, cols[1]),
			Example:    cell(rec, cols[2]),
			Emoji:      cell(rec, cols[3]),
			Category:   cell(rec, cols[4]),
		})
	}
	return rows, nil
}

func cell(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[col])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Importer stores parsed rows as custom words.
type Importer struct {
	repo   store.WordRepo
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Importer.
func New(repo store.WordRepo, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{repo: repo, logger: logger, now: time.Now}
}

// Import adds rows to catalog's custom categories. Rows with an empty
// category cell go to defaultCategory. Rows repeating a word already in their
// category, or earlier in the file, are skipped. Row problems are collected
// in Result.Errors; only store failures abort.
func (im *Importer) Import(ctx context.Context, catalog *words.Catalog, rows []Row, defaultCategory string) (*Result, error) {
	res := &Result{}

	type batch struct {
		cat   words.Category
		words []words.Word
	}
	var order []string
	batches := make(map[string]*batch)
	seen := make(map[string]map[string]bool)

	for _, row := range rows {
		res.Processed++

		name := row.Category
		if name == "" {
			name = defaultCategory
		}
		if err := validateRow(row, name); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
			continue
		}

		id := words.Slug(name)
		if existing, err := catalog.Category(id); err == nil && !existing.Custom {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %q: %v", row.Line, id, words.ErrBuiltinCategory))
			continue
		}

		known, ok := seen[id]
		if !ok {
			known = make(map[string]bool)
			for _, t := range catalog.Texts(id) {
				known[strings.ToLower(t)] = true
			}
			seen[id] = known
		}
		key := strings.ToLower(row.Text)
		if known[key] {
			res.Skipped++
			continue
		}
		known[key] = true

		b, ok := batches[id]
		if !ok {
			b = &batch{cat: words.Category{ID: id, Name: words.DisplayName(name)}}
			batches[id] = b
			order = append(order, id)
		}
		if b.cat.Emoji == "" && row.Emoji != "" && !catalog.HasCategory(id) {
			b.cat.Emoji = row.Emoji
		}
		b.words = append(b.words, words.Word{
			Text:       row.Text,
			Emoji:      row.Emoji,
			Definition: row.Definition,
			Example:    row.Example,
		})
	}

	now := im.now()
	for _, id := range order {
		b := batches[id]
		saved, err := words.SaveCustom(ctx, im.repo, catalog, b.cat, b.words, now)
		if err != nil {
			return res, fmt.Errorf("import into %q: %w", id, err)
		}
		if !catalog.HasCategory(id) {
			res.CategoriesCreated = append(res.CategoriesCreated, id)
		}
		res.Created += len(saved)
		im.logger.Info("imported words",
			slog.String("category", id),
			slog.Int("words", len(saved)))
	}
	return res, nil
}

var (
	errNoWord     = errors.New("word cannot be empty")
	errNoCategory = errors.New("no category and no default category")
	errNoSlug     = errors.New("category name has no letters or digits")
)

func validateRow(row Row, category string) error {
	switch {
	case row.Text == "":
		return errNoWord
	case category == "":
		return errNoCategory
	case words.Slug(category) == "":
		return errNoSlug
	}
	return nil
}
