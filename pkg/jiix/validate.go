package jiix

import (
	"github.com/akeil/nebotool/internal/errors"
)

// Validate checks the document and all elements for consistent data.
// Returns an error if invalid data is found, nil if everything is fine.
//
// Conversion does not require a valid document; problems reported here are
// handled leniently or with more specific errors during conversion.
func (d *Document) Validate() error {
	for i, e := range d.Elements {
		err := e.Validate()
		if err != nil {
			return errors.Wrap(err, "element %d", i)
		}
	}
	return nil
}

// Validate checks span ordering and coverage as well as the items of a
// content group. Other elements are always valid.
func (e *Element) Validate() error {
	if !e.Kind.IsContentGroup() {
		return nil
	}

	last := -1
	for _, s := range e.Spans {
		if s.LastItem <= last {
			return errors.NewValidationError("span ending at %d does not follow span ending at %d", s.LastItem, last)
		}
		last = s.LastItem
	}
	if len(e.Spans) > 0 && last < len(e.Items)-1 {
		return errors.NewValidationError("spans cover %d of %d items", last+1, len(e.Items))
	}

	for i := range e.Items {
		err := e.Items[i].Validate()
		if err != nil {
			return errors.Wrap(err, "item %d", i)
		}
	}

	return nil
}

// Validate checks that stroke arrays have matching lengths and lines have
// both endpoints.
func (i *Item) Validate() error {
	switch i.Kind {
	case Stroke:
		n := len(i.X)
		if n == 0 {
			return errors.NewValidationError("stroke has no points")
		}
		if len(i.Y) != n || len(i.F) != n {
			return errors.NewValidationError("stroke arrays differ in length: X=%d Y=%d F=%d", n, len(i.Y), len(i.F))
		}
		if i.T != nil && len(i.T) != n {
			return errors.NewValidationError("stroke has %d timestamps for %d points", len(i.T), n)
		}
	case Line:
		if i.X1 == nil || i.Y1 == nil || i.X2 == nil || i.Y2 == nil {
			return errors.NewValidationError("line is missing an endpoint")
		}
	}
	return nil
}
