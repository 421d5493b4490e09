package words

import "errors"

var (
	// ErrUnknownCategory is returned for a category id not in the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownWord is returned for a word id not in the catalog.
	ErrUnknownWord = errors.New("unknown word")
)

// CustomWordFloor is the lowest id handed to learner-created words, keeping
// them clear of the built-in catalog.
const CustomWordFloor = 10000

// Category groups related vocabulary words.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"-"`
}

// Label returns the category name prefixed with its emoji.
func (c Category) Label() string {
	if c.Emoji == "" {
		return c.Name
	}
	return c.Emoji + " " + c.Name
}

// Word is a single vocabulary entry.
type Word struct {
	ID         int    `json:"id"`
	CategoryID string `json:"category"`
	Text       string `json:"text"`
	Emoji      string `json:"emoji,omitempty"`
	Definition string `json:"definition,omitempty"`
	Example    string `json:"example,omitempty"`
	Custom     bool   `json:"-"`
}
