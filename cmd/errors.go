package cmd

import "errors"

var errNoProvider = errors.New("no LLM provider configured: set WORDSPROUT_LLM_PROVIDER and its API key, or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
