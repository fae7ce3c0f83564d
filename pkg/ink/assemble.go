package ink

import (
	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/jiix"
)

// Classifier converts single elements to drawables, dispatching on the
// element and item kinds.
type Classifier struct {
	opts   Options
	placer *ImagePlacer
}

// NewClassifier creates a classifier which loads images from assets.
func NewClassifier(assets AssetSource, opts Options) *Classifier {
	return &Classifier{
		opts:   opts,
		placer: NewImagePlacer(assets, opts.Scale),
	}
}

// Convert returns the drawables for one element in item order.
//
// Elements of unknown kind yield no entries and no error.
func (c *Classifier) Convert(e *jiix.Element) ([]Entry, error) {
	switch {
	case e.Kind.IsContentGroup():
		return c.convertGroup(e)
	case e.Kind == jiix.Image:
		img, err := c.placer.Place(e)
		if err != nil {
			return nil, err
		}
		return []Entry{{Drawable: img, Layer: NoLayer}}, nil
	default:
		logging.Warning("Unexpected element type %q, ignoring", e.Tag)
		return nil, nil
	}
}

func (c *Classifier) convertGroup(e *jiix.Element) ([]Entry, error) {
	entries := make([]Entry, 0, len(e.Items))
	walker := NewSpanWalker(e.Spans)

	for i := range e.Items {
		it := &e.Items[i]

		var s *Stroke
		var err error
		switch it.Kind {
		case jiix.Stroke:
			var style *jiix.Style
			if st, ok := walker.Resolve(i); ok {
				style = &st
			}
			s, err = BuildStroke(it, style, c.opts)
		case jiix.Line:
			s, err = BuildLine(it, e.Style, c.opts)
		case jiix.Glyph, jiix.Arc:
			// text and arcs are not reconstructed
			continue
		default:
			err = errors.New(errors.UnsupportedItemType, "item type %q", it.Tag)
		}

		if err != nil {
			return nil, errors.Wrap(err, "item %d", i)
		}
		entries = append(entries, Entry{Drawable: s, Layer: UserLayer(0)})
	}

	return entries, nil
}

// Assemble converts all elements of an ink description into a Page.
//
// Drawables are collected in source order. If any element fails, no page is
// returned.
func Assemble(doc *jiix.Document, assets AssetSource, opts Options) (*Page, error) {
	c := NewClassifier(assets, opts)
	p := &Page{Entries: make([]Entry, 0)}

	for i := range doc.Elements {
		entries, err := c.Convert(&doc.Elements[i])
		if err != nil {
			return nil, errors.Wrap(err, "element %d", i)
		}
		p.Entries = append(p.Entries, entries...)
	}

	logging.Debug("Assembled %d drawables from %d elements", len(p.Entries), len(doc.Elements))
	return p, nil
}
