package nebotool

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/pkg/render"
)

// Metadata holds the settings for a single page from its meta.json file.
type Metadata struct {
	// Title is nil for pages without a title.
	Title *string `json:"pageTitle,omitempty"`
	// Pattern is the background pattern, e.g. a grid.
	Pattern render.Pattern `json:"backgroundPattern"`
}

// ReadMetadata reads page metadata from the given JSON file.
func ReadMetadata(path string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, errors.NewNotFound("no page metadata at %q", path)
		}
		return m, err
	}

	err = json.Unmarshal(data, &m)
	if err != nil {
		return m, errors.Wrap(err, "could not parse metadata at %q", path)
	}
	return m, nil
}

// HasTitle tells if the page has a non-blank title.
func (m Metadata) HasTitle() bool {
	return m.Title != nil && strings.TrimSpace(*m.Title) != ""
}

// Validate checks that the metadata contains only supported values.
func (m Metadata) Validate() error {
	switch m.Pattern {
	case render.PatternNone, render.PatternGrid, render.PatternLines, render.PatternDots:
	default:
		return errors.NewValidationError("invalid background pattern %v", m.Pattern)
	}
	if m.Title != nil && strings.ContainsRune(*m.Title, 0) {
		return errors.NewValidationError("page title contains a NUL character")
	}
	return nil
}
