package render

import (
	"compress/gzip"
	"encoding/json"
	"image/color"
	"io"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/pkg/ink"
	"github.com/akeil/nebotool/pkg/jiix"
)

const archiveVersion = 1

// ArchiveSink writes the page as a gzip compressed JSON ink document.
//
// Unlike the other sinks, the archive keeps the drawables themselves
// (points, pressure, widths, image data) and can be read back with
// ReadArchive.
type ArchiveSink struct{}

func (s *ArchiveSink) Ext() string {
	return ".inkdoc.json.gz"
}

// Archive is the serialized form of a page.
type Archive struct {
	Version int            `json:"version"`
	Title   string         `json:"title"`
	Config  ArchiveConfig  `json:"config"`
	Entries []ArchiveEntry `json:"entries"`
}

type ArchiveConfig struct {
	Background  string  `json:"background"`
	Pattern     Pattern `json:"pattern"`
	PatternSize float64 `json:"patternSize"`
	ShowBorders bool    `json:"showBorders"`
	Layout      string  `json:"layout"`
}

// ArchiveEntry holds either a stroke or an image.
// Layer is omitted for drawables without a layer.
type ArchiveEntry struct {
	Layer  *int           `json:"layer,omitempty"`
	Stroke *ArchiveStroke `json:"stroke,omitempty"`
	Image  *ArchiveImage  `json:"image,omitempty"`
}

type ArchiveStroke struct {
	ID     string      `json:"id"`
	Kind   string      `json:"kind"`
	Width  float64     `json:"width"`
	Color  string      `json:"color"`
	Points [][]float64 `json:"points"`
}

type ArchiveImage struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Rect   [4]float64 `json:"rect"`
	Format string     `json:"format"`
	Data   []byte     `json:"data"`
}

// Export writes the compressed JSON document.
func (s *ArchiveSink) Export(p *ink.Page, cfg Config, w io.Writer) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	a := Archive{
		Version: archiveVersion,
		Title:   p.Title,
		Config: ArchiveConfig{
			Background:  jiix.FormatColor(cfg.Background),
			Pattern:     cfg.Pattern,
			PatternSize: cfg.PatternSize,
			ShowBorders: cfg.ShowBorders,
			Layout:      cfg.Layout.String(),
		},
		Entries: make([]ArchiveEntry, 0, len(p.Entries)),
	}

	for _, e := range p.Entries {
		var ae ArchiveEntry
		if e.Layer != ink.NoLayer {
			l := int(e.Layer)
			ae.Layer = &l
		}

		switch d := e.Drawable.(type) {
		case *ink.Stroke:
			ae.Stroke = archiveStroke(d)
		case *ink.Image:
			ae.Image = &ArchiveImage{
				ID:     d.ID,
				Name:   d.Name,
				Rect:   [4]float64{d.Rect.X0, d.Rect.Y0, d.Rect.X1, d.Rect.Y1},
				Format: d.Asset.Format,
				Data:   d.Asset.Data,
			}
		default:
			return errors.New(errors.Other, "unsupported drawable %T", d)
		}
		a.Entries = append(a.Entries, ae)
	}

	zw := gzip.NewWriter(w)
	err = json.NewEncoder(zw).Encode(&a)
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func archiveStroke(s *ink.Stroke) *ArchiveStroke {
	points := make([][]float64, len(s.Points))
	for i, p := range s.Points {
		points[i] = []float64{p.X, p.Y, p.Pressure, float64(p.Time)}
	}
	return &ArchiveStroke{
		ID:     s.ID,
		Kind:   s.Kind.String(),
		Width:  s.Width,
		Color:  jiix.FormatColor(s.Color),
		Points: points,
	}
}

// ReadArchive reads a document written by ArchiveSink.
func ReadArchive(r io.Reader) (*Archive, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var a Archive
	err = json.NewDecoder(zr).Decode(&a)
	if err != nil {
		return nil, err
	}
	if a.Version != archiveVersion {
		return nil, errors.NewValidationError("unsupported archive version %d", a.Version)
	}
	return &a, nil
}

// StrokeColor decodes the color of an archived stroke.
func (s *ArchiveStroke) StrokeColor() (color.NRGBA, error) {
	return jiix.ParseColor(s.Color)
}
