package report

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	strip "github.com/grokify/html-strip-tags-go"
	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/predictor"
)

// OtherSliceName labels the complement slice of a synthesized distribution.
const OtherSliceName = "Diğer"

const (
	Disclaimer = "Yasal Uyarı: Bu bir yapay zeka tahminidir ve profesyonel tıbbi tavsiye yerine geçmez. " +
		"Acil durumlarda lütfen en yakın sağlık kuruluşuna başvurun."
	noDescription = "Tanım bulunamadı."
)

// Theme is the display appearance. Exports always use Light.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "dark" and "light"; anything else is Light.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Tone is the accent of the report header, driven by the confidence.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneOrange Tone = "orange"
)

func (t Tone) RGBA() color.RGBA {
	if t == ToneGreen {
		return color.RGBA{0x16, 0xa3, 0x4a, 0xff}
	}
	return color.RGBA{0xea, 0x58, 0x0c, 0xff}
}

// Slice is one segment of the probability chart.
type Slice struct {
	Name  string
	Value float64
	Color color.RGBA
}

// Percent formats the slice value the way the chart tooltip does.
func (s Slice) Percent() string {
	return fmt.Sprintf("%.1f%%", s.Value*100)
}

var chartColors = []color.RGBA{
	{0x3b, 0x82, 0xf6, 0xff},
	{0x10, 0xb9, 0x81, 0xff},
	{0xf5, 0x9e, 0x0b, 0xff},
	{0xef, 0x44, 0x44, 0xff},
	{0x8b, 0x5c, 0xf6, 0xff},
}

// ChartData returns the distribution to draw: the service's top predictions
// when present, otherwise the top disease against the rest.
func ChartData(r predictor.Result) []Slice {
	var out []Slice
	if r.TopPredictions != nil {
		for i, p := range r.TopPredictions {
			out = append(out, Slice{Name: p.Name, Value: p.Value, Color: chartColors[i%len(chartColors)]})
		}
		return out
	}
	return []Slice{
		{Name: r.Disease, Value: r.Confidence, Color: chartColors[0]},
		{Name: OtherSliceName, Value: 1 - r.Confidence, Color: chartColors[1]},
	}
}

// Document is a prediction laid out for display. Symptoms is the
// symptoms-detail block: only exports show it.
type Document struct {
	Disease           string
	ConfidencePercent int
	Tone              Tone
	Symptoms          []string
	Chart             []Slice
	Description       string
	Precautions       []string
	Disclaimer        string
}

// Build turns a prediction into a Document. Text from the service is treated
// as untrusted and stripped of HTML.
func Build(r predictor.Result) *Document {
	pct := r.ConfidencePercent()
	tone := ToneOrange
	if pct > 50 {
		tone = ToneGreen
	}

	desc := strings.TrimSpace(strip.StripTags(r.Description))
	if desc == "" {
		desc = noDescription
	}

	doc := &Document{
		Disease:           strings.TrimSpace(strip.StripTags(r.Disease)),
		ConfidencePercent: pct,
		Tone:              tone,
		Chart:             ChartData(r),
		Description:       desc,
		Disclaimer:        Disclaimer,
	}
	for _, s := range r.Symptoms {
		doc.Symptoms = append(doc.Symptoms, utils.HumanizeSymptom(s))
	}
	for _, p := range r.Precautions {
		if p = strings.TrimSpace(strip.StripTags(p)); p != "" {
			doc.Precautions = append(doc.Precautions, p)
		}
	}
	return doc
}

// Filename is the download name of an export made at now.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("MediMind_Rapor_%s.%s", now.Format("02.01.2006"), strings.TrimPrefix(ext, "."))
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
