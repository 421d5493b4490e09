package wordgen

import "github.com/wordsprout/wordsprout/internal/llm"

// WordListSchema is the reply shape requested from the LLM.
var WordListSchema = &llm.Schema{
	Name:        "word-list",
	Description: "A themed list of vocabulary words for young children",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"emoji": map[string]any{
				"type":        "string",
				"description": "One emoji that represents the whole theme",
			},
			"words": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The word itself, lowercase unless a proper noun",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "A one-sentence definition a five-year-old understands",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "A short example sentence using the word",
						},
						"emoji": map[string]any{
							"type":        "string",
							"description": "One emoji picturing the word, or empty",
						},
					},
					"required":             []any{"text", "definition", "example", "emoji"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"emoji", "words"},
		"additionalProperties": false,
	},
}
