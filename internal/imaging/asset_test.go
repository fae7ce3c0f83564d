package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/nebotool/internal/errors"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{200, 10, 10, 255})
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(4, 3)))

	a, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", a.Format)
	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 3, a.Height)

	data, err := a.PNG()
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), data)
}

func TestDecodeJPEGToPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(8, 8), nil))

	a, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpg", a.Format)

	data, err := a.PNG()
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 8, cfg.Width)
}

func TestDecodeFailures(t *testing.T) {
	inputs := map[string][]byte{
		"empty":     {},
		"garbage":   []byte("definitely not an image"),
		"pdf":       []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"),
		"truncated": {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0},
	}

	for name, data := range inputs {
		_, err := Decode(data)
		if !errors.Is(err, errors.AssetDecodeFailed) {
			t.Errorf("%v: expected AssetDecodeFailed, got %v", name, err)
		}
	}
}

func TestScale(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Scale(dst, image.Rect(2, 2, 8, 8), testImage(2, 2))

	_, _, _, a := dst.At(5, 5).RGBA()
	assert.NotZero(t, a, "scaled image should cover the target rect")
	_, _, _, a = dst.At(0, 0).RGBA()
	assert.Zero(t, a, "pixels outside the target rect should be untouched")
}
