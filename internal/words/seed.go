package words

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

type seedFile struct {
	Categories []Category `json:"categories"`
	Words      []Word     `json:"words"`
}

// Seed returns the built-in catalog.
func Seed() (*Catalog, error) {
	var f seedFile
	if err := json.Unmarshal(seedJSON, &f); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return New(f.Categories, f.Words)
}
