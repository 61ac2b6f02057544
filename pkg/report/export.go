package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatHTML, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	}
	return "application/pdf"
}

// Export writes doc in format f. Every format renders the light appearance
// with the symptoms-detail block shown, whatever the display theme is.
func Export(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, doc, CaptureOptions{})
	case FormatPNG:
		return WritePNG(w, doc, CaptureOptions{})
	case FormatHTML:
		return WriteSnapshotHTML(w, doc, Light)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
