package wordgen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Validator checks a generated word pack.
type Validator interface {
	Name() string
	Validate(pack *Pack, in Input) *ValidationError
}

// ValidationError describes why a pack was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Length limits for generated words.
const (
	maxTextLen       = 24
	maxDefinitionLen = 160
	maxExampleLen    = 120
)

// StructuralValidator checks counts, required fields and lengths.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(pack *Pack, in Input) *ValidationError {
	if len(pack.Words) == 0 {
		return v.fail("no words returned")
	}
	if len(pack.Words) > in.Count {
		return v.fail(fmt.Sprintf("asked for %d words, got %d", in.Count, len(pack.Words)))
	}
	for i, w := range pack.Words {
		switch {
		case w.Text == "":
			return v.fail(fmt.Sprintf("word %d has no text", i+1))
		case utf8.RuneCountInString(w.Text) > maxTextLen:
			return v.fail(fmt.Sprintf("word %q is longer than %d characters", w.Text, maxTextLen))
		case len(strings.Fields(w.Text)) > 2:
			return v.fail(fmt.Sprintf("%q has more than two words", w.Text))
		case w.Definition == "":
			return v.fail(fmt.Sprintf("%q has no definition", w.Text))
		case utf8.RuneCountInString(w.Definition) > maxDefinitionLen:
			return v.fail(fmt.Sprintf("definition of %q is too long", w.Text))
		case utf8.RuneCountInString(w.Example) > maxExampleLen:
			return v.fail(fmt.Sprintf("example for %q is too long", w.Text))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// DuplicateValidator rejects packs that repeat a word, within the pack or
// against in.Existing. Words within MaxDistance edits of each other
// (kitten, kittens) count as repeats.
type DuplicateValidator struct {
	MaxDistance int
}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(pack *Pack, in Input) *ValidationError {
	seen := make([]string, 0, len(in.Existing)+len(pack.Words))
	for _, e := range in.Existing {
		seen = append(seen, normalize(e))
	}
	for _, w := range pack.Words {
		text := normalize(w.Text)
		if match, ok := v.near(text, seen); ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%q repeats %q", w.Text, match),
			}
		}
		seen = append(seen, text)
	}
	return nil
}

func (v *DuplicateValidator) near(text string, seen []string) (string, bool) {
	for _, s := range seen {
		if s == text {
			return s, true
		}
		// Short words differ legitimately by one letter (cat, hat).
		if v.MaxDistance > 0 && min(len(s), len(text)) > 4 &&
			levenshtein.Distance(s, text, nil) <= v.MaxDistance {
			return s, true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
