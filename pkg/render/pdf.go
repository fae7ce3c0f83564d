package render

import (
	"bytes"
	"io"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/llgcode/draw2d/draw2dpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/akeil/nebotool/internal/errors"
	"github.com/akeil/nebotool/internal/logging"
	"github.com/akeil/nebotool/pkg/ink"
)

const producer = "nebotool"

// PDFSink writes a page as a single page PDF document with vector strokes.
type PDFSink struct{}

func (s *PDFSink) Ext() string {
	return ".pdf"
}

// Export renders the page to PDF and writes the result to the given writer.
func (s *PDFSink) Export(p *ink.Page, cfg Config, w io.Writer) error {
	return CollectionPDF(p.Title, []Sheet{{Page: p, Config: cfg}}, w)
}

// Sheet is a page with its output configuration.
type Sheet struct {
	Page   *ink.Page
	Config Config
}

// CollectionPDF renders several pages into one PDF document.
//
// Each PDF page is sized individually according to its Config.
func CollectionPDF(title string, sheets []Sheet, w io.Writer) error {
	if len(sheets) == 0 {
		return errors.NewValidationError("no pages for %q", title)
	}
	for _, s := range sheets {
		err := s.Config.Validate()
		if err != nil {
			return err
		}
	}

	logging.Debug("Render PDF %q with %d pages", title, len(sheets))
	pdf := setupPDF(title, sheets[0])

	for i, s := range sheets {
		err := renderPDFPage(pdf, s)
		if err != nil {
			return errors.Wrap(err, "page %d", i+1)
		}
	}

	return pdf.Output(w)
}

func setupPDF(title string, first Sheet) *gofpdf.Fpdf {
	wd, ht := deviceSize(first.Page, first.Config)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})

	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetProducer(producer, true)
	pdf.SetCreator(producer, true)
	if title != "" {
		pdf.SetTitle(title, true)
	}

	return pdf
}

func renderPDFPage(pdf *gofpdf.Fpdf, s Sheet) error {
	wd, ht := deviceSize(s.Page, s.Config)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wd, Ht: ht})

	gc := draw2dpdf.NewGraphicContext(pdf)
	c := newContext(gc, s.Page, s.Config)
	c.alpha = func(a float64) {
		pdf.SetAlpha(a, "Normal")
	}
	c.image = func(img *ink.Image, x0, y0, x1, y1 float64) error {
		return placePDFImage(pdf, img, x0, y0, x1-x0, y1-y0)
	}

	err := c.Page(s.Page, s.Config)
	if err != nil {
		return err
	}
	return pdf.Error()
}

// placePDFImage registers the image data under a unique name and places it
// on the current page.
func placePDFImage(pdf *gofpdf.Fpdf, img *ink.Image, x, y, w, h float64) error {
	var data []byte
	var imageType string
	switch img.Asset.Format {
	case "png":
		data, imageType = img.Asset.Data, "PNG"
	case "jpg":
		data, imageType = img.Asset.Data, "JPG"
	case "gif":
		data, imageType = img.Asset.Data, "GIF"
	default:
		// no PDF support for the format, convert
		var err error
		data, err = img.Asset.PNG()
		if err != nil {
			return errors.Wrap(err, "image %q", img.Name)
		}
		imageType = "PNG"
	}

	name := uuid.New().String()
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		return errors.WithCause(errors.AssetDecodeFailed, pdf.Error(), "image %q", img.Name)
	}

	flow := false
	link := 0
	linkStr := ""
	pdf.ImageOptions(name, x, y, w, h, flow, opts, link, linkStr)

	return nil
}

// CountPages reads a PDF document and returns its number of pages.
func CountPages(rs io.ReadSeeker) (int, error) {
	conf := pdfcpu.NewDefaultConfiguration()
	n, err := api.PageCount(rs, conf)
	if err != nil {
		return 0, errors.Wrap(err, "count pages")
	}
	return n, nil
}
