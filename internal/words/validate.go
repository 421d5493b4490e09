package words

import (
	"fmt"
	"strings"
)

// validateCatalog performs all structural checks on a category and word set.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(categories []Category, words []Word) error {
	var errs []string

	catSet := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("category %q has an empty id", c.Name))
			continue
		}
		if catSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category ID: %q", c.ID))
		}
		catSet[c.ID] = true
	}

	idSet := make(map[int]bool, len(words))
	for _, w := range words {
		if w.ID <= 0 {
			errs = append(errs, fmt.Sprintf("word %q has non-positive ID %d", w.Text, w.ID))
		}
		if idSet[w.ID] {
			errs = append(errs, fmt.Sprintf("duplicate word ID: %d", w.ID))
		}
		idSet[w.ID] = true

		if strings.TrimSpace(w.Text) == "" {
			errs = append(errs, fmt.Sprintf("word %d has no text", w.ID))
		}
		if !catSet[w.CategoryID] {
			errs = append(errs, fmt.Sprintf("word %d references nonexistent category %q", w.ID, w.CategoryID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("word catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
