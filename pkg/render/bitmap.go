package render

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/imaging"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
)

// maxPixels limits the size of rendered PNG images.
const maxPixels = 100_000_000

// PNGSink renders a page to a PNG image, one pixel per ink unit.
type PNGSink struct{}

func (s *PNGSink) Ext() string {
	return ".png"
}

// Export paints the page and writes the PNG data to the given writer.
func (s *PNGSink) Export(p *ink.Page, cfg Config, w io.Writer) error {
	dst, err := RenderImage(p, cfg)
	if err != nil {
		return err
	}
	return png.Encode(w, dst)
}

// RenderImage paints the given page onto a new RGBA image.
func RenderImage(p *ink.Page, cfg Config) (*image.RGBA, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	w, h := deviceSize(p, cfg)
	// check in float space, huge sizes do not fit into an int
	w, h = math.Max(1, math.Ceil(w)), math.Max(1, math.Ceil(h))
	if math.IsNaN(w) || math.IsNaN(h) || w*h > maxPixels {
		return nil, errors.NewValidationError("page too large for PNG output (%.0fx%.0f)", w, h)
	}
	wPx := int(w)
	hPx := int(h)
	logging.Debug("Render page %q to %dx%d PNG", p.Title, wPx, hPx)

	dst := image.NewRGBA(image.Rect(0, 0, wPx, hPx))
	gc := draw2dimg.NewGraphicContext(dst)

	c := newContext(gc, p, cfg)
	c.image = func(img *ink.Image, x0, y0, x1, y1 float64) error {
		src, err := img.Asset.Image()
		if err != nil {
			return errors.Wrap(err, "image %q", img.Name)
		}
		r := image.Rect(
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x1)), int(math.Round(y1)))
		imaging.Scale(dst, r, src)
		return nil
	}

	err = c.Page(p, cfg)
	if err != nil {
		return nil, err
	}
	return dst, nil
}
