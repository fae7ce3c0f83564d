package render

import (
	"math"

	"github.com/akeil/nebotool/pkg/ink"
)

// Brush decides how the sampled pen input of a stroke is painted.
type Brush interface {
	// Width returns the effective width of a segment for the given base
	// width and pressure (0.0 through 1.0).
	Width(base, pressure float64) float64
	// Opacity is a factor applied to the stroke alpha for the given
	// pressure.
	Opacity(pressure float64) float64
}

// NewBrush returns the brush for strokes of the given kind.
func NewBrush(k ink.StrokeKind) Brush {
	switch k {
	case ink.Freehand:
		return &Ballpoint{}
	case ink.StraightLine:
		return &Fineliner{}
	default:
		return &Fineliner{}
	}
}

// Ballpoint ------------------------------------------------------------------

// The Ballpoint pen has some sensitivity for pressure.
type Ballpoint struct{}

func (b *Ballpoint) Width(base, pressure float64) float64 {
	// low pressure lines are thinner, but never vanish
	p := clamp(pressure)
	x := math.Pow(p, 2)
	y := 0.4
	return base * ((1.0 - y) + x*y)
}

func (b *Ballpoint) Opacity(pressure float64) float64 {
	// light strokes are a bit paler
	x := math.Pow(clamp(pressure), 2)
	y := 0.2
	return (x * y) + (1.0 - y)
}

// Fineliner ------------------------------------------------------------------

// Fineliner has no sensitivity to pressure.
type Fineliner struct{}

func (f *Fineliner) Width(base, pressure float64) float64 {
	return base
}

func (f *Fineliner) Opacity(pressure float64) float64 {
	return 1.0
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
