// Package render writes reconstructed ink pages to output documents.
//
// A page is exported through a Sink together with a Config that describes
// the document background and layout. Available sinks write PDF, PNG or a
// compressed JSON ink document.
package render

import (
	"encoding/json"
	"image/color"
	"io"
	"strings"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
)

// Pattern is the background pattern of a page.
type Pattern int

const (
	PatternNone Pattern = iota
	PatternGrid
	PatternLines
	PatternDots
)

// ParsePattern maps the background pattern name from page metadata.
// Unknown names yield PatternNone.
func ParsePattern(s string) Pattern {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grid":
		return PatternGrid
	case "lines", "ruled":
		return PatternLines
	case "dots":
		return PatternDots
	case "", "none", "blank":
		return PatternNone
	default:
		logging.Debug("Unknown background pattern %q", s)
		return PatternNone
	}
}

func (p Pattern) String() string {
	switch p {
	case PatternNone:
		return "none"
	case PatternGrid:
		return "grid"
	case PatternLines:
		return "lines"
	case PatternDots:
		return "dots"
	default:
		return "UNKNOWN"
	}
}

func (p *Pattern) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}
	*p = ParsePattern(s)
	return nil
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Layout decides how the output page is sized.
type Layout int

const (
	// LayoutInfinite sizes the page to fit its content.
	LayoutInfinite Layout = iota
	// LayoutFixed uses a fixed A4 page and scales content down to fit.
	LayoutFixed
)

func (l Layout) String() string {
	switch l {
	case LayoutInfinite:
		return "infinite"
	case LayoutFixed:
		return "fixed"
	default:
		return "UNKNOWN"
	}
}

const (
	// DefaultPatternSize is the spacing of grid lines and dots.
	DefaultPatternSize = 32.0
	// DefaultMargin is the space added around page content.
	DefaultMargin = 32.0
)

// A4 page size in points
const (
	a4Width  = 595.28
	a4Height = 841.89
)

var patternColor = color.NRGBA{0xbd, 0xc7, 0xd4, 0xff}
var borderColor = color.NRGBA{0x80, 0x80, 0x80, 0xff}

// Config describes the output document for one page.
type Config struct {
	Background  color.NRGBA
	Pattern     Pattern
	PatternSize float64
	ShowBorders bool
	Layout      Layout
	Margin      float64
}

// ConfigFor returns the default document configuration for a page
// with the given background pattern.
func ConfigFor(p Pattern) Config {
	return Config{
		Background:  color.NRGBA{0xff, 0xff, 0xff, 0xff},
		Pattern:     p,
		PatternSize: DefaultPatternSize,
		ShowBorders: false,
		Layout:      LayoutInfinite,
		Margin:      DefaultMargin,
	}
}

// Validate checks the configuration for invalid sizes.
func (c Config) Validate() error {
	if c.Pattern != PatternNone && c.PatternSize <= 0 {
		return errors.NewValidationError("invalid pattern size %v", c.PatternSize)
	}
	if c.Margin < 0 {
		return errors.NewValidationError("invalid margin %v", c.Margin)
	}
	switch c.Layout {
	case LayoutInfinite, LayoutFixed:
	default:
		return errors.NewValidationError("invalid layout %v", c.Layout)
	}
	return nil
}

// Sink writes a page to an output document.
type Sink interface {
	// Export writes the complete document for the given page.
	Export(p *ink.Page, cfg Config, w io.Writer) error
	// Ext is the filename extension (including the dot) for documents
	// written by this sink.
	Ext() string
}

// NewSink returns the sink for the named output format,
// one of "pdf", "png" or "archive".
func NewSink(format string) (Sink, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return &PDFSink{}, nil
	case "png":
		return &PNGSink{}, nil
	case "archive":
		return &ArchiveSink{}, nil
	default:
		return nil, errors.NewValidationError("unsupported output format %q", format)
	}
}

// frame is the area of the page in ink coordinates that is shown in the
// output, including the margin.
func frame(p *ink.Page, cfg Config) ink.Rect {
	b := p.Bounds()
	if b.Empty() {
		// blank pages get a blank A4 sheet
		return ink.Rect{X0: 0, Y0: 0, X1: a4Width, Y1: a4Height}
	}
	return b.Grow(cfg.Margin)
}
