// Package ink reconstructs drawable strokes and images from a JIIX ink
// description.
//
// The entry point is Assemble, which converts the elements of one page in
// source order into a Page with an ordered list of drawables.
package ink

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/akeil/nebotool/internal/imaging"
)

// DefaultScale is the factor applied to export coordinates and pen widths.
// It was chosen empirically so that the grid of the source and the output
// document line up.
const DefaultScale = 7.0

// DefaultWidth is the stroke width used when no style is known for a stroke.
const DefaultWidth = 2.0

// DefaultColor is the stroke color used when no style is known for a stroke.
var DefaultColor = color.NRGBA{0, 0, 0, 255}

// AlphaPolicy decides how the decoded alpha channel is applied to strokes.
type AlphaPolicy int

const (
	// AlphaSource makes freehand strokes opaque and keeps alpha for lines.
	AlphaSource AlphaPolicy = iota
	// AlphaOpaque makes all strokes opaque.
	AlphaOpaque
	// AlphaPreserve keeps the decoded alpha for all strokes.
	AlphaPreserve
)

// ParseAlphaPolicy maps "source", "opaque" or "preserve" to an AlphaPolicy.
func ParseAlphaPolicy(s string) (AlphaPolicy, error) {
	switch strings.ToLower(s) {
	case "", "source":
		return AlphaSource, nil
	case "opaque":
		return AlphaOpaque, nil
	case "preserve":
		return AlphaPreserve, nil
	default:
		return AlphaSource, fmt.Errorf("invalid alpha policy %q", s)
	}
}

func (a AlphaPolicy) String() string {
	switch a {
	case AlphaSource:
		return "source"
	case AlphaOpaque:
		return "opaque"
	case AlphaPreserve:
		return "preserve"
	default:
		return "UNKNOWN"
	}
}

// apply returns the color to use for a stroke of the given kind.
func (a AlphaPolicy) apply(c color.NRGBA, kind StrokeKind) color.NRGBA {
	switch a {
	case AlphaPreserve:
		return c
	case AlphaOpaque:
		c.A = 255
		return c
	default:
		if kind == Freehand {
			c.A = 255
		}
		return c
	}
}

// Options control the conversion of a page.
type Options struct {
	// Scale is applied to all coordinates and to pen widths of freehand strokes.
	Scale float64
	// Alpha selects how alpha values from styles are used.
	Alpha AlphaPolicy
	// DefaultWidth and DefaultColor are used for strokes without a style.
	DefaultWidth float64
	DefaultColor color.NRGBA
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Scale:        DefaultScale,
		Alpha:        AlphaSource,
		DefaultWidth: DefaultWidth,
		DefaultColor: DefaultColor,
	}
}

// Rect is an axis aligned rectangle from (X0, Y0) to (X1, Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectFromCorners creates a normalized rectangle from two corner points.
func RectFromCorners(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Empty tells if the rectangle has no area and no position,
// i.e. is the zero value.
func (r Rect) Empty() bool {
	return r == Rect{}
}

// Union returns the smallest rectangle containing r and o.
// An empty rectangle does not contribute to the union.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		X0: math.Min(r.X0, o.X0),
		Y0: math.Min(r.Y0, o.Y0),
		X1: math.Max(r.X1, o.X1),
		Y1: math.Max(r.Y1, o.Y1),
	}
}

// Grow returns the rectangle extended by d on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{r.X0 - d, r.Y0 - d, r.X1 + d, r.Y1 + d}
}

// Point is one sample of a stroke path.
type Point struct {
	X float64
	Y float64
	// Pressure is in the range 0.0 through 1.0.
	Pressure float64
	// Time is the capture timestamp in milliseconds, zero if unknown.
	Time int64
}

// Drawable is the common interface for all reconstructed elements.
//
// The set of implementations is closed: *Stroke and *Image.
type Drawable interface {
	// Bounds is the area covered by the drawable.
	Bounds() Rect
	drawable()
}

// StrokeKind tells how a stroke was created.
type StrokeKind int

const (
	// Freehand strokes are reconstructed from sampled pen input.
	Freehand StrokeKind = iota
	// StraightLine strokes are built from the two endpoints of a line.
	StraightLine
)

func (k StrokeKind) String() string {
	switch k {
	case Freehand:
		return "freehand"
	case StraightLine:
		return "line"
	default:
		return "UNKNOWN"
	}
}

// Stroke is a continous path with a uniform base width and color.
type Stroke struct {
	ID     string
	Kind   StrokeKind
	Points []Point
	// Width is the base width; the effective width may vary with pressure.
	Width float64
	Color color.NRGBA
}

func (s *Stroke) drawable() {}

// Bounds returns the bounding box of all points, extended by half the
// stroke width.
func (s *Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	p := s.Points[0]
	r := Rect{p.X, p.Y, p.X, p.Y}
	for _, p := range s.Points[1:] {
		r.X0 = math.Min(r.X0, p.X)
		r.Y0 = math.Min(r.Y0, p.Y)
		r.X1 = math.Max(r.X1, p.X)
		r.Y1 = math.Max(r.Y1, p.Y)
	}
	return r.Grow(s.Width / 2)
}

// Image is a raster image placed into a rectangle.
type Image struct {
	ID string
	// Name is the asset filename from the ink description.
	Name  string
	Rect  Rect
	Asset imaging.Asset
}

func (i *Image) drawable() {}

func (i *Image) Bounds() Rect {
	return i.Rect
}

// Layer is the optional layer tag for a drawable.
type Layer int

// NoLayer marks drawables that are not assigned to a user layer.
const NoLayer Layer = -1

// UserLayer returns the tag for the user layer with the given index.
func UserLayer(n int) Layer {
	return Layer(n)
}

// Entry is a drawable with its layer tag.
type Entry struct {
	Drawable Drawable
	Layer    Layer
}

// Page is the result of converting one ink description.
type Page struct {
	Title string
	// Entries in source order. Later entries are stacked above earlier ones.
	Entries []Entry
}

// Bounds returns the area covered by all entries.
func (p *Page) Bounds() Rect {
	var r Rect
	for _, e := range p.Entries {
		r = r.Union(e.Drawable.Bounds())
	}
	return r
}

// Strokes returns all strokes in order.
func (p *Page) Strokes() []*Stroke {
	l := make([]*Stroke, 0)
	for _, e := range p.Entries {
		if s, ok := e.Drawable.(*Stroke); ok {
			l = append(l, s)
		}
	}
	return l
}

// Images returns all images in order.
func (p *Page) Images() []*Image {
	l := make([]*Image, 0)
	for _, e := range p.Entries {
		if i, ok := e.Drawable.(*Image); ok {
			l = append(l, i)
		}
	}
	return l
}
