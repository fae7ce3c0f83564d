package ink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/imaging"
	"github.com/akeil/nebotool/pkg/jiix"
)

type memAssets map[string][]byte

func (m memAssets) ReadAsset(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, errors.NewNotFound("no asset %q", name)
	}
	return data, nil
}

func (m memAssets) DecodeAsset(data []byte) (imaging.Asset, error) {
	return imaging.Decode(data)
}

func pngData(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode(t *testing.T, s string) *jiix.Document {
	d, err := jiix.Decode(strings.NewReader(s))
	require.NoError(t, err)
	return d
}

func TestAssembleSingleStroke(t *testing.T) {
	doc := decode(t, `{"elements": [{
		"type": "Raw Content",
		"items": [{"type": "stroke", "X": [0, 1], "Y": [0, 1], "F": [0.5, 0.5]}],
		"spans": [{"last-item": 0, "style": "-myscript-pen-width:2;color:#11223344"}]
	}]}`)

	p, err := Assemble(doc, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, p.Entries, 1)

	e := p.Entries[0]
	assert.Equal(t, UserLayer(0), e.Layer)
	s, ok := e.Drawable.(*Stroke)
	require.True(t, ok)
	assert.Equal(t, 14.0, s.Width)
	assert.Equal(t, color.NRGBA{17, 34, 51, 255}, s.Color)
	assert.Equal(t, []Point{{0, 0, 0.5, 0}, {7, 7, 0.5, 0}}, s.Points)
}

func TestAssembleKeepsOrder(t *testing.T) {
	doc := decode(t, `{"elements": [
		{
			"type": "Node",
			"style": "-myscript-pen-width:1;color:#000000FF",
			"items": [
				{"type": "line", "x1": 0, "y1": 0, "x2": 1, "y2": 0},
				{"type": "glyph", "label": "x"},
				{"type": "stroke", "X": [2], "Y": [2], "F": [1]}
			],
			"spans": [{"last-item": 2, "style": "-myscript-pen-width:3"}]
		},
		{"type": "Text"},
		{"type": "Image", "url": "a.png", "x": 1, "y": 1, "width": 2, "height": 3},
		{"type": "Edge", "items": [{"type": "stroke", "X": [5], "Y": [5], "F": [1]}]}
	]}`)
	assets := memAssets{"a.png": pngData(t, 4, 6)}

	p, err := Assemble(doc, assets, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, p.Entries, 4)

	line := p.Entries[0].Drawable.(*Stroke)
	assert.Equal(t, StraightLine, line.Kind)
	stroke := p.Entries[1].Drawable.(*Stroke)
	assert.Equal(t, Freehand, stroke.Kind)
	assert.Equal(t, 21.0, stroke.Width)

	img := p.Entries[2].Drawable.(*Image)
	assert.Equal(t, NoLayer, p.Entries[2].Layer)
	assert.Equal(t, Rect{7, 7, 21, 28}, img.Rect)
	assert.Equal(t, 4, img.Asset.Width)

	// no spans, default style
	last := p.Entries[3].Drawable.(*Stroke)
	assert.Equal(t, DefaultWidth, last.Width)

	assert.Len(t, p.Strokes(), 3)
	assert.Len(t, p.Images(), 1)
}

func TestAssembleEmpty(t *testing.T) {
	p, err := Assemble(&jiix.Document{}, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, p.Entries)
	assert.True(t, p.Bounds().Empty())
}

func TestAssembleFailsWholePage(t *testing.T) {
	cases := []struct {
		doc  string
		kind errors.Kind
	}{
		{`{"elements": [{"type": "Image", "url": "missing.png", "x": 0, "y": 0}]}`, errors.AssetNotFound},
		{`{"elements": [{"type": "Image", "url": "bad.png", "x": 0, "y": 0}]}`, errors.AssetDecodeFailed},
		{`{"elements": [{"type": "Raw Content", "items": [{"type": "stroke", "X": [1, 2], "Y": [1], "F": [1, 1]}]}]}`, errors.EmptyOrMismatchedArrays},
		{`{"elements": [{"type": "Raw Content", "items": [{"type": "line", "x1": 0, "y1": 0, "x2": 1, "y2": 1}]}]}`, errors.MissingStyleForLine},
		{`{"elements": [{"type": "Raw Content", "items": [{"type": "blob"}]}]}`, errors.UnsupportedItemType},
	}
	assets := memAssets{"bad.png": []byte("not an image")}

	for i, c := range cases {
		doc := decode(t, `{"elements": [{"type": "Raw Content", "items": [{"type": "stroke", "X": [0], "Y": [0], "F": [1]}]},`+c.doc[len(`{"elements": [`):])
		p, err := Assemble(doc, assets, DefaultOptions())
		if err == nil {
			t.Errorf("case %d: expected error", i)
			continue
		}
		if p != nil {
			t.Errorf("case %d: expected no page", i)
		}
		if k := errors.KindOf(err); k != c.kind {
			t.Errorf("case %d: expected %v, got %v (%v)", i, c.kind, k, err)
		}
		if !strings.Contains(err.Error(), "element 1") {
			t.Errorf("case %d: expected element index in %q", i, err)
		}
	}
}

func TestImagePlacerPixelSize(t *testing.T) {
	x, y := 1.0, 2.0
	e := &jiix.Element{Kind: jiix.Image, URL: "p.png", X: &x, Y: &y}
	placer := NewImagePlacer(memAssets{"p.png": pngData(t, 14, 7)}, 7)

	img, err := placer.Place(e)
	require.NoError(t, err)
	assert.Equal(t, Rect{7, 14, 21, 21}, img.Rect)
	assert.Equal(t, "p.png", img.Name)
	assert.Equal(t, "png", img.Asset.Format)
}

func TestImagePlacerNoPosition(t *testing.T) {
	e := &jiix.Element{Kind: jiix.Image, URL: "p.png"}
	placer := NewImagePlacer(memAssets{"p.png": pngData(t, 1, 1)}, 7)
	_, err := placer.Place(e)
	assert.True(t, errors.IsValidation(err))
}

func TestDirAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngData(t, 2, 2), 0644))
	src := DirAssets(dir)

	data, err := src.ReadAsset("a.png")
	require.NoError(t, err)
	a, err := src.DecodeAsset(data)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Height)

	_, err = src.ReadAsset("b.png")
	assert.True(t, errors.IsNotFound(err))

	_, err = src.ReadAsset("../a.png")
	assert.True(t, errors.IsNotFound(err))
}
