// Package wordgen asks an LLM for themed word packs and stores them as
// custom categories.
package wordgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wordsprout/wordsprout/internal/llm"
)

var (
	// ErrEmptyTheme is returned when no theme is given.
	ErrEmptyTheme = errors.New("theme must not be empty")

	// ErrCount is returned for a word count outside 1..MaxCount.
	ErrCount = errors.New("word count out of range")
)

// Input describes one word pack request.
type Input struct {
	Theme string
	Count int

	// Existing lists words the pack must not repeat.
	Existing []string
}

// GeneratedWord is one word of a pack, before it has an id.
type GeneratedWord struct {
	Text       string `json:"text"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Emoji      string `json:"emoji"`
}

// Pack is a validated LLM reply.
type Pack struct {
	Theme string          `json:"-"`
	Emoji string          `json:"emoji"`
	Words []GeneratedWord `json:"words"`
	Usage llm.Usage       `json:"-"`
	Model string          `json:"-"`
}

// Generator produces word packs with an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate requests in.Count words about in.Theme and runs the configured
// validators on the reply.
func (g *Generator) Generate(ctx context.Context, in Input) (*Pack, error) {
	in.Theme = strings.TrimSpace(in.Theme)
	if in.Theme == "" {
		return nil, ErrEmptyTheme
	}
	if in.Count < 1 || in.Count > MaxCount {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrCount, in.Count, MaxCount)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeWordGen)
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in, g.config)}},
		Schema:      WordListSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %q words: %w", in.Theme, err)
	}

	var pack Pack
	if err := json.Unmarshal(resp.Content, &pack); err != nil {
		return nil, fmt.Errorf("parse word pack: %w", err)
	}
	pack.Theme = in.Theme
	pack.Usage = resp.Usage
	pack.Model = resp.Model
	pack.Emoji = strings.TrimSpace(pack.Emoji)
	for i := range pack.Words {
		w := &pack.Words[i]
		w.Text = strings.TrimSpace(w.Text)
		w.Definition = strings.TrimSpace(w.Definition)
		w.Example = strings.TrimSpace(w.Example)
		w.Emoji = strings.TrimSpace(w.Emoji)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&pack, in); verr != nil {
			return nil, verr
		}
	}
	return &pack, nil
}
