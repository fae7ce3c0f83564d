// Package jiix contains the data model for the JIIX ink description that is
// exported for each page of a handwritten note.
//
// Only the parts needed to reconstruct strokes, lines and images are
// modeled. See https://developer.myscript.com/docs/interactive-ink/2.0/reference/jiix/
package jiix

import (
	"encoding/json"
	"io"
	"os"

	"github.com/akeil/nebotool/internal/errors"
)

// ElementKind distinguishes the top-level elements in an ink description.
type ElementKind int

const (
	ElementUnknown ElementKind = iota
	RawContent
	Edge
	Node
	Image
)

func parseElementKind(tag string) ElementKind {
	switch tag {
	case "Raw Content":
		return RawContent
	case "Edge":
		return Edge
	case "Node":
		return Node
	case "Image":
		return Image
	default:
		return ElementUnknown
	}
}

func (k ElementKind) String() string {
	switch k {
	case RawContent:
		return "Raw Content"
	case Edge:
		return "Edge"
	case Node:
		return "Node"
	case Image:
		return "Image"
	default:
		return "UNKNOWN"
	}
}

// IsContentGroup tells if elements of this kind contain ink items.
func (k ElementKind) IsContentGroup() bool {
	switch k {
	case RawContent, Edge, Node:
		return true
	default:
		return false
	}
}

// ItemKind is the type of a single item inside a content group.
type ItemKind int

const (
	ItemUnknown ItemKind = iota
	Stroke
	Line
	Glyph
	Arc
)

func parseItemKind(tag string) ItemKind {
	switch tag {
	case "stroke":
		return Stroke
	case "line":
		return Line
	case "glyph":
		return Glyph
	case "arc":
		return Arc
	default:
		return ItemUnknown
	}
}

func (k ItemKind) String() string {
	switch k {
	case Stroke:
		return "stroke"
	case Line:
		return "line"
	case Glyph:
		return "glyph"
	case Arc:
		return "arc"
	default:
		return "UNKNOWN"
	}
}

// Document is the ink description for one page.
type Document struct {
	Elements []Element `json:"elements"`
}

// Element is one top-level entry in the ink description.
type Element struct {
	// Tag is the type as given in the source, e.g. "Raw Content" or "Image".
	Tag  string      `json:"type"`
	Kind ElementKind `json:"-"`
	// URL is the filename of the asset for image elements.
	URL string `json:"url,omitempty"`
	// Position and size are set for images.
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	// Items and Spans are set for content groups.
	Items []Item `json:"items,omitempty"`
	Spans []Span `json:"spans,omitempty"`
	// Style is the element-wide style, used by line items.
	Style *Style `json:"-"`
}

func (e *Element) UnmarshalJSON(b []byte) error {
	type element Element
	var x struct {
		element
		RawStyle *string `json:"style"`
	}
	err := json.Unmarshal(b, &x)
	if err != nil {
		return err
	}

	*e = Element(x.element)
	e.Kind = parseElementKind(e.Tag)
	if x.RawStyle != nil {
		st, err := ParseStyle(*x.RawStyle)
		if err != nil {
			return errors.Wrap(err, "style of %q element", e.Tag)
		}
		e.Style = &st
	}

	return nil
}

// Item is a single ink primitive inside a content group.
type Item struct {
	Tag  string   `json:"type"`
	Kind ItemKind `json:"-"`
	ID   string   `json:"id,omitempty"`
	// X, Y, F (pressure) and T (timestamps) are set for strokes.
	X []float64 `json:"X,omitempty"`
	Y []float64 `json:"Y,omitempty"`
	F []float64 `json:"F,omitempty"`
	T []float64 `json:"T,omitempty"`
	// Endpoints for lines.
	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`
	// Label is the recognized character for glyphs.
	Label string `json:"label,omitempty"`
}

func (i *Item) UnmarshalJSON(b []byte) error {
	type item Item
	var x item
	err := json.Unmarshal(b, &x)
	if err != nil {
		return err
	}

	*i = Item(x)
	i.Kind = parseItemKind(i.Tag)
	return nil
}

// Span assigns a style to a run of items.
type Span struct {
	// LastItem is the index of the last item covered by this span (inclusive).
	LastItem int
	Style    Style
}

func (s *Span) UnmarshalJSON(b []byte) error {
	var x struct {
		LastItem int    `json:"last-item"`
		Style    string `json:"style"`
	}
	err := json.Unmarshal(b, &x)
	if err != nil {
		return err
	}

	st, err := ParseStyle(x.Style)
	if err != nil {
		return errors.Wrap(err, "style of span ending at %d", x.LastItem)
	}

	s.LastItem = x.LastItem
	s.Style = st
	return nil
}

func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LastItem int    `json:"last-item"`
		Style    string `json:"style"`
	}{s.LastItem, s.Style.String()})
}

// Decode reads an ink description from the given reader.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	err := json.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadFile reads an ink description from a .jiix file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("no ink description at %q", path)
		}
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse %q", path)
	}
	return d, nil
}
