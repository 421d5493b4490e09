package wordgen

// MaxCount is the largest word pack one request may ask for.
const MaxCount = 20

// Config controls a Generator.
type Config struct {
	// Validators run in order on every generated pack; the first failure
	// rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxExisting caps how many known words are listed in the prompt.
	MaxExisting int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{MaxDistance: 1},
		},
		MaxTokens:   2048,
		Temperature: 0.8,
		MaxExisting: 200,
	}
}
