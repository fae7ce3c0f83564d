package ink

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/imaging"
	"github.com/akeil/nebotool/pkg/jiix"
)

// AssetSource provides the raster images referenced by image elements.
type AssetSource interface {
	// ReadAsset returns the content of the named asset.
	// It returns a "not found" error if there is no such asset.
	ReadAsset(name string) ([]byte, error)
	// DecodeAsset detects the format and size of asset data.
	DecodeAsset(data []byte) (imaging.Asset, error)
}

type dirAssets struct {
	dir string
}

// DirAssets returns an AssetSource reading files from the given directory.
func DirAssets(dir string) AssetSource {
	return dirAssets{dir}
}

func (d dirAssets) ReadAsset(name string) ([]byte, error) {
	// names are plain filenames, never paths
	if name == "" || filepath.Base(name) != name {
		return nil, errors.NewNotFound("invalid asset name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if os.IsNotExist(err) {
		return nil, errors.AsNotFound(err)
	}
	return data, err
}

func (d dirAssets) DecodeAsset(data []byte) (imaging.Asset, error) {
	return imaging.Decode(data)
}

// ImagePlacer creates Image drawables for image elements.
type ImagePlacer struct {
	assets AssetSource
	scale  float64
}

// NewImagePlacer creates a placer which loads assets from the given source
// and uses the given coordinate scale.
func NewImagePlacer(assets AssetSource, scale float64) *ImagePlacer {
	return &ImagePlacer{assets: assets, scale: scale}
}

// Place loads the asset for an image element and computes its placement.
//
// If the element has no width or height, the pixel size of the asset is used
// for the output size.
func (p *ImagePlacer) Place(e *jiix.Element) (*Image, error) {
	if e.URL == "" {
		return nil, errors.New(errors.AssetNotFound, "image element has no url")
	}
	if e.X == nil || e.Y == nil {
		return nil, errors.NewValidationError("image %q has no position", e.URL)
	}
	if p.assets == nil {
		return nil, errors.New(errors.AssetNotFound, "no asset source for %q", e.URL)
	}

	data, err := p.assets.ReadAsset(e.URL)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WithCause(errors.AssetNotFound, err, "image %q", e.URL)
		}
		return nil, err
	}

	a, err := p.assets.DecodeAsset(data)
	if err != nil {
		if errors.Is(err, errors.AssetDecodeFailed) {
			return nil, errors.Wrap(err, "image %q", e.URL)
		}
		return nil, errors.WithCause(errors.AssetDecodeFailed, err, "image %q", e.URL)
	}

	x, y := *e.X, *e.Y
	w := float64(a.Width) / p.scale
	if e.Width != nil {
		w = *e.Width
	}
	h := float64(a.Height) / p.scale
	if e.Height != nil {
		h = *e.Height
	}

	return &Image{
		ID:    uuid.New().String(),
		Name:  e.URL,
		Rect:  RectFromCorners(p.scale*x, p.scale*y, p.scale*(x+w), p.scale*(y+h)),
		Asset: a,
	}, nil
}
