package ink

import (
	"math"

	"github.com/google/uuid"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/jiix"
)

// fullPressure is used for both endpoints of a straight line.
const fullPressure = 1.0

// BuildStroke reconstructs a freehand stroke from the coordinate, pressure
// and (optional) timestamp arrays of a stroke item.
//
// If style is nil, the default width and color from opts are used.
func BuildStroke(it *jiix.Item, style *jiix.Style, opts Options) (*Stroke, error) {
	n := len(it.X)
	if n == 0 {
		return nil, errors.New(errors.EmptyOrMismatchedArrays, "stroke has no points")
	}
	if len(it.Y) != n || len(it.F) != n {
		return nil, errors.New(errors.EmptyOrMismatchedArrays, "X=%d Y=%d F=%d", n, len(it.Y), len(it.F))
	}
	if it.T != nil && len(it.T) != n {
		return nil, errors.New(errors.EmptyOrMismatchedArrays, "%d timestamps for %d points", len(it.T), n)
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		x, y, f := it.X[i], it.Y[i], it.F[i]
		if !finite(x, y, f) {
			return nil, errors.New(errors.DegeneratePath, "point %d is not finite (%v, %v, %v)", i, x, y, f)
		}
		points[i] = Point{
			X:        opts.Scale * x,
			Y:        opts.Scale * y,
			Pressure: f,
		}
		if it.T != nil {
			points[i].Time = int64(math.Round(it.T[i]))
		}
	}

	s := &Stroke{
		ID:     uuid.New().String(),
		Kind:   Freehand,
		Points: points,
	}
	if style != nil {
		s.Width = style.PenWidth * opts.Scale
		s.Color = opts.Alpha.apply(style.Color, Freehand)
	} else {
		logging.Debug("No style for stroke %q, using defaults", it.ID)
		s.Width = opts.DefaultWidth
		s.Color = opts.DefaultColor
	}

	return s, nil
}

// BuildLine creates a two-point stroke from a line item.
//
// Lines use the style of their element, which is required.
// The pen width is used as-is; only the endpoints are scaled.
func BuildLine(it *jiix.Item, style *jiix.Style, opts Options) (*Stroke, error) {
	if style == nil {
		return nil, errors.New(errors.MissingStyleForLine, "element has no style")
	}
	if it.X1 == nil || it.Y1 == nil || it.X2 == nil || it.Y2 == nil {
		return nil, errors.New(errors.DegeneratePath, "line is missing an endpoint")
	}
	x1, y1, x2, y2 := *it.X1, *it.Y1, *it.X2, *it.Y2
	if !finite(x1, y1, x2, y2) {
		return nil, errors.New(errors.DegeneratePath, "line endpoints are not finite")
	}

	return &Stroke{
		ID:   uuid.New().String(),
		Kind: StraightLine,
		Points: []Point{
			{X: opts.Scale * x1, Y: opts.Scale * y1, Pressure: fullPressure},
			{X: opts.Scale * x2, Y: opts.Scale * y2, Pressure: fullPressure},
		},
		Width: style.PenWidth,
		Color: opts.Alpha.apply(style.Color, StraightLine),
	}, nil
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
