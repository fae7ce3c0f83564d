package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/akeil/nebotool/internal/errors"
)

// formats which have a registered image decoder
var supported = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// Asset is an embedded raster image with its detected format and size.
type Asset struct {
	Data []byte
	// Format is the file extension for the detected type, e.g. "png" or "jpg".
	Format string
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int
}

// Decode detects the type of the given image data and reads its dimensions.
//
// An error of kind AssetDecodeFailed is returned if the data is not a
// supported image.
func Decode(data []byte) (Asset, error) {
	a := Asset{Data: data}

	kind, err := filetype.Match(data)
	if err != nil {
		return a, errors.WithCause(errors.AssetDecodeFailed, err, "detect type")
	}
	if kind == filetype.Unknown {
		return a, errors.New(errors.AssetDecodeFailed, "unknown image type")
	}
	if !supported[kind.Extension] {
		return a, errors.New(errors.AssetDecodeFailed, "unsupported image type %q", kind.MIME.Value)
	}
	a.Format = kind.Extension

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return a, errors.WithCause(errors.AssetDecodeFailed, err, "read %v header", a.Format)
	}
	a.Width = cfg.Width
	a.Height = cfg.Height

	return a, nil
}

// Image decodes the full image.
func (a Asset) Image() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return nil, errors.WithCause(errors.AssetDecodeFailed, err, "decode %v image", a.Format)
	}
	return img, nil
}

// PNG returns the asset encoded as PNG, re-encoding if necessary.
func (a Asset) PNG() ([]byte, error) {
	if a.Format == "png" {
		return a.Data, nil
	}

	img, err := a.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = png.Encode(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Scale draws src onto dst, scaled to fill the rectangle r.
func Scale(dst draw.Image, r image.Rectangle, src image.Image) {
	s := draw.BiLinear
	s.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}
