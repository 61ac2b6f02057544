package report

import (
	"bytes"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

// fitPage scales a capture of pxW by pxH pixels to the page width, or to the
// page height when it would overflow, keeping the aspect ratio.
func fitPage(pxW, pxH int) (w, h float64) {
	if pxW <= 0 || pxH <= 0 {
		return 0, 0
	}
	w = pageWidth
	h = float64(pxH) * pageWidth / float64(pxW)
	if h > pageHeight {
		h = pageHeight
		w = float64(pxW) * pageHeight / float64(pxH)
	}
	return w, h
}

// WritePDF renders doc as a single A4 page holding its image capture,
// horizontally centred.
func WritePDF(w io.Writer, doc *Document, opts CaptureOptions) error {
	img, err := Rasterize(doc, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("MediMind Raporu", true)
	pdf.SetCreator("MediMind", true)
	pdf.AddPage()

	b := img.Bounds()
	iw, ih := fitPage(b.Dx(), b.Dy())
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("report", opt, &buf)
	pdf.ImageOptions("report", (pageWidth-iw)/2, 0, iw, ih, false, opt, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
