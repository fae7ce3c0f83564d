package render

import (
	"image/color"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dkit"

	"github.com/akeil/nebotool/internal/imaging"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
)

// Context paints ink pages onto a draw2d graphic context.
//
// The same painting code is used for raster and PDF output; the few
// operations that differ are supplied as functions.
type Context struct {
	gc draw2d.GraphicContext
	// tx maps ink coordinates to device coordinates.
	tx imaging.Affine
	// Width and Height of the device page.
	Width  float64
	Height float64

	// alpha is set for devices where transparency is a separate state
	// instead of part of the color.
	alpha func(a float64)
	// image draws a raster image into a device rectangle.
	image func(img *ink.Image, x0, y0, x1, y1 float64) error
}

// newContext sets up the transform and device size for the given page.
func newContext(gc draw2d.GraphicContext, p *ink.Page, cfg Config) *Context {
	fr := frame(p, cfg)
	scale := 1.0
	w, h := fr.Width(), fr.Height()

	if cfg.Layout == LayoutFixed {
		scale = math.Min(1.0, math.Min(a4Width/w, a4Height/h))
		w, h = a4Width, a4Height
	}

	return &Context{
		gc:     gc,
		tx:     imaging.Translation(-fr.X0, -fr.Y0).Then(imaging.Scaling(scale, scale)),
		Width:  w,
		Height: h,
	}
}

// deviceSize returns the size of the output page without painting anything.
func deviceSize(p *ink.Page, cfg Config) (float64, float64) {
	c := newContext(nil, p, cfg)
	return c.Width, c.Height
}

// Page paints the complete page: background, pattern, drawables in order
// and optional borders.
func (c *Context) Page(p *ink.Page, cfg Config) error {
	c.background(cfg.Background)
	c.pattern(p, cfg)

	for i, e := range p.Entries {
		switch d := e.Drawable.(type) {
		case *ink.Stroke:
			c.stroke(d)
		case *ink.Image:
			err := c.drawImage(d)
			if err != nil {
				return err
			}
		default:
			logging.Warning("Cannot paint drawable %d of type %T", i, d)
		}
	}

	if cfg.ShowBorders {
		c.borders()
	}
	return nil
}

func (c *Context) setColor(col color.NRGBA, opacity float64) {
	a := float64(col.A) / 255 * opacity
	if c.alpha != nil {
		c.alpha(a)
		col.A = 0xff
	} else {
		col.A = uint8(math.Round(a * 255))
	}
	c.gc.SetStrokeColor(col)
	c.gc.SetFillColor(col)
}

func (c *Context) resetColor() {
	if c.alpha != nil {
		c.alpha(1.0)
	}
}

func (c *Context) background(bg color.NRGBA) {
	c.setColor(bg, 1.0)
	c.gc.BeginPath()
	draw2dkit.Rectangle(c.gc, 0, 0, c.Width, c.Height)
	c.gc.Fill()
	c.resetColor()
}

// pattern paints the background pattern aligned to the ink coordinate
// origin, so that it lines up with the source grid.
func (c *Context) pattern(p *ink.Page, cfg Config) {
	if cfg.Pattern == PatternNone || cfg.PatternSize <= 0 {
		return
	}

	fr := frame(p, cfg)
	size := cfg.PatternSize
	x0 := math.Ceil(fr.X0/size) * size
	y0 := math.Ceil(fr.Y0/size) * size

	c.setColor(patternColor, 1.0)
	defer c.resetColor()
	c.gc.SetLineWidth(1.0)

	switch cfg.Pattern {
	case PatternGrid:
		for x := x0; x <= fr.X1; x += size {
			c.line(x, fr.Y0, x, fr.Y1)
		}
		for y := y0; y <= fr.Y1; y += size {
			c.line(fr.X0, y, fr.X1, y)
		}
	case PatternLines:
		for y := y0; y <= fr.Y1; y += size {
			c.line(fr.X0, y, fr.X1, y)
		}
	case PatternDots:
		r := 1.5
		for x := x0; x <= fr.X1; x += size {
			for y := y0; y <= fr.Y1; y += size {
				dx, dy := c.tx.Apply(x, y)
				c.gc.BeginPath()
				draw2dkit.Circle(c.gc, dx, dy, r)
				c.gc.Fill()
			}
		}
	}
}

// line strokes a straight line given in ink coordinates.
func (c *Context) line(x0, y0, x1, y1 float64) {
	ax, ay := c.tx.Apply(x0, y0)
	bx, by := c.tx.Apply(x1, y1)
	c.gc.BeginPath()
	c.gc.MoveTo(ax, ay)
	c.gc.LineTo(bx, by)
	c.gc.Stroke()
}

func (c *Context) borders() {
	c.setColor(borderColor, 1.0)
	defer c.resetColor()
	c.gc.SetLineWidth(1.0)
	c.gc.BeginPath()
	draw2dkit.Rectangle(c.gc, 0.5, 0.5, c.Width-0.5, c.Height-0.5)
	c.gc.Stroke()
}

// stroke paints a single stroke.
//
// Strokes with varying pressure are painted segment by segment, each
// with its own width and opacity.
func (c *Context) stroke(s *ink.Stroke) {
	if len(s.Points) == 0 {
		return
	}

	brush := NewBrush(s.Kind)
	f := c.tx.ScaleFactor()

	defer c.resetColor()
	c.gc.SetLineCap(draw2d.RoundCap)
	c.gc.SetLineJoin(draw2d.RoundJoin)

	if len(s.Points) == 1 {
		p := s.Points[0]
		x, y := c.tx.Apply(p.X, p.Y)
		c.setColor(s.Color, brush.Opacity(p.Pressure))
		c.gc.BeginPath()
		draw2dkit.Circle(c.gc, x, y, brush.Width(s.Width, p.Pressure)*f/2)
		c.gc.Fill()
		return
	}

	widths := make([]float64, len(s.Points)-1)
	opacities := make([]float64, len(s.Points)-1)
	uniform := true
	for i := 1; i < len(s.Points); i++ {
		pressure := (s.Points[i-1].Pressure + s.Points[i].Pressure) / 2
		widths[i-1] = brush.Width(s.Width, pressure) * f
		opacities[i-1] = brush.Opacity(pressure)
		if widths[i-1] != widths[0] || opacities[i-1] != opacities[0] {
			uniform = false
		}
	}

	if uniform {
		c.setColor(s.Color, opacities[0])
		c.gc.SetLineWidth(widths[0])
		c.gc.BeginPath()
		x, y := c.tx.Apply(s.Points[0].X, s.Points[0].Y)
		c.gc.MoveTo(x, y)
		for _, p := range s.Points[1:] {
			x, y = c.tx.Apply(p.X, p.Y)
			c.gc.LineTo(x, y)
		}
		c.gc.Stroke()
		return
	}

	for i := 1; i < len(s.Points); i++ {
		c.setColor(s.Color, opacities[i-1])
		c.gc.SetLineWidth(widths[i-1])
		a, b := s.Points[i-1], s.Points[i]
		c.line(a.X, a.Y, b.X, b.Y)
	}
}

func (c *Context) drawImage(img *ink.Image) error {
	if c.image == nil {
		logging.Debug("Skip image %q, not supported on this device", img.Name)
		return nil
	}
	x0, y0 := c.tx.Apply(img.Rect.X0, img.Rect.Y0)
	x1, y1 := c.tx.Apply(img.Rect.X1, img.Rect.Y1)
	return c.image(img, x0, y0, x1, y1)
}
