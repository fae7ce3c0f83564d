// Package nebotool converts handwritten notes exported from a note taking
// app into vector documents.
//
// An export is a directory with collections of pages. Each page has an ink
// description in JIIX format which is reconstructed into strokes, lines and
// images (see package ink) and written to an output document (see package
// render).
package nebotool

import (
	"io"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
	"github.com/akeil/nebotool/pkg/render"
)

// SetLogLevel sets the log level by name, one of
// "debug", "info", "warning" or "error".
// Other names disable logging.
func SetLogLevel(level string) {
	logging.SetLevel(logging.ParseLevel(level))
}

// LoadPage reads the ink description of a page and reconstructs its
// drawables. It also returns the output configuration for the page.
func LoadPage(p *PageRef, opts ink.Options) (*ink.Page, render.Config, error) {
	cfg := render.ConfigFor(p.Meta.Pattern)

	doc, err := p.ReadInk()
	if err != nil {
		return nil, cfg, err
	}
	// problems found here are either tolerated or reported with a more
	// specific error by Assemble
	if verr := doc.Validate(); verr != nil {
		logging.Info("Page %q: %v", p.Title, verr)
	}

	page, err := ink.Assemble(doc, p.Collection.Assets(), opts)
	if err != nil {
		return nil, cfg, errors.Wrap(err, "page %q", p.Title)
	}
	page.Title = p.Title

	logging.Debug("Loaded page %q with %d drawables", p.Title, len(page.Entries))
	return page, cfg, nil
}

// ConvertPage converts a single page and writes the output document
// to the given writer.
//
// Nothing is written if the page cannot be reconstructed.
func ConvertPage(p *PageRef, sink render.Sink, opts ink.Options, w io.Writer) error {
	page, cfg, err := LoadPage(p, opts)
	if err != nil {
		return err
	}

	return sink.Export(page, cfg, w)
}
