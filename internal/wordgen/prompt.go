package wordgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You pick vocabulary words for children aged 4 to 8 who are learning to read.

Rules:
- Every word must fit the given theme and be a common, concrete, kind word.
- Prefer single words. Two-word names are fine when that is how children say them.
- Definitions are one short sentence with simple words. Do not use the word itself in its definition.
- Example sentences are under twelve words and show the meaning clearly.
- Never repeat a word from the "already known" list, and never return near-duplicates such as plurals.
- Nothing scary, violent or unsuitable for young children.`

// buildUserMessage describes one generation request.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %s\n", in.Theme)
	fmt.Fprintf(&b, "Number of words: %d\n", in.Count)
	b.WriteString("\nAlready known:\n")
	b.WriteString(knownList(in.Existing, cfg.MaxExisting))
	return b.String()
}

// knownList formats the most recent max known words, or "None".
func knownList(known []string, max int) string {
	if len(known) == 0 {
		return "None"
	}
	if max > 0 && len(known) > max {
		known = known[len(known)-max:]
	}
	return strings.Join(known, ", ")
}
