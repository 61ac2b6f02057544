package report

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sw33tLie/medimind/pkg/predictor"
)

func sample() predictor.Result {
	return predictor.Result{
		Disease:     "Migraine",
		Confidence:  0.82,
		Description: "A **primary** headache disorder. <script>alert(1)</script>",
		Precautions: []string{"meditation", "  ", "<b>reduce stress</b>"},
		Symptoms:    []string{"headache", "blurred_and_distorted_vision"},
	}
}

func TestChartDataFallback(t *testing.T) {
	slices := ChartData(sample())
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}
	if slices[0].Name != "Migraine" || slices[0].Value != 0.82 {
		t.Errorf("first slice = %+v", slices[0])
	}
	if slices[1].Name != OtherSliceName || math.Abs(slices[1].Value-0.18) > 1e-9 {
		t.Errorf("second slice = %+v", slices[1])
	}
}

func TestChartDataTopPredictions(t *testing.T) {
	r := sample()
	r.TopPredictions = []predictor.Prediction{{Name: "A", Value: 0.6}, {Name: "B", Value: 0.3}}
	slices := ChartData(r)
	if len(slices) != 2 || slices[0].Name != "A" || slices[1].Name != "B" {
		t.Fatalf("got %+v", slices)
	}
	if slices[0].Color == slices[1].Color {
		t.Error("slices share a color")
	}
	if got := slices[0].Percent(); got != "60.0%" {
		t.Errorf("Percent() = %q", got)
	}
}

func TestBuild(t *testing.T) {
	doc := Build(sample())
	if doc.ConfidencePercent != 82 || doc.Tone != ToneGreen {
		t.Errorf("got %d%% %s", doc.ConfidencePercent, doc.Tone)
	}
	if strings.Contains(doc.Description, "<script>") {
		t.Errorf("description not stripped: %q", doc.Description)
	}
	if len(doc.Precautions) != 2 || doc.Precautions[1] != "reduce stress" {
		t.Errorf("precautions = %q", doc.Precautions)
	}
	if doc.Symptoms[1] != "blurred and distorted vision" {
		t.Errorf("symptoms = %q", doc.Symptoms)
	}

	r := sample()
	r.Confidence = 0.5
	r.Description = ""
	doc = Build(r)
	if doc.Tone != ToneOrange {
		t.Errorf("50%% should be orange, got %s", doc.Tone)
	}
	if doc.Description != noDescription {
		t.Errorf("empty description = %q", doc.Description)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC)
	if got := Filename(now, "pdf"); got != "MediMind_Rapor_07.03.2026.pdf" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename(now, ".png"); got != "MediMind_Rapor_07.03.2026.png" {
		t.Errorf("Filename = %q", got)
	}
}

func TestWriteTextOmitsSymptoms(t *testing.T) {
	var b bytes.Buffer
	if err := WriteText(&b, Build(sample()), TextOptions{Width: 60}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"Migraine", "%82", OtherSliceName, "1. meditation", "2. reduce stress"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "distorted vision") || strings.Contains(out, "\033[") {
		t.Errorf("unexpected content:\n%s", out)
	}
}

func TestWriteHTMLHidesSymptoms(t *testing.T) {
	var b bytes.Buffer
	if err := WriteHTML(&b, Build(sample()), Dark); err != nil {
		t.Fatal(err)
	}
	doc, err := goquery.NewDocumentFromReader(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Find("html").HasClass("dark") {
		t.Error("dark theme not applied")
	}
	if !doc.Find("#" + SymptomsID).HasClass("hidden") {
		t.Error("symptoms block should be hidden")
	}
	if doc.Find("script:contains('alert')").Length() != 0 {
		t.Error("description script survived")
	}
	if doc.Find("#"+CardID+" strong").Text() != "primary" {
		t.Error("markdown emphasis not rendered")
	}
}

func TestSnapshotRevealsSymptoms(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSnapshotHTML(&b, Build(sample()), Dark); err != nil {
		t.Fatal(err)
	}
	doc, err := goquery.NewDocumentFromReader(&b)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("html").HasClass("dark") {
		t.Error("export kept the dark appearance")
	}
	sym := doc.Find("#" + SymptomsID)
	if sym.Length() != 1 || sym.HasClass("hidden") {
		t.Error("symptoms block not revealed")
	}
	card := doc.Find("#" + CardID)
	if card.HasClass("animate-fade-in-up") {
		t.Error("animation class kept")
	}
	if style, _ := card.Attr("style"); !strings.Contains(style, "width: 1000px") {
		t.Errorf("card style = %q", style)
	}
}

func TestConicGradient(t *testing.T) {
	got := conicGradient([]Slice{{Value: 0.2, Color: chartColors[0]}, {Value: 0.2, Color: chartColors[1]}})
	want := "conic-gradient(#3b82f6 0.00% 50.00%, #10b981 50.00% 100.00%)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if conicGradient(nil) != "#e2e8f0" {
		t.Error("empty chart should be plain")
	}
}

func TestFitPage(t *testing.T) {
	tests := []struct {
		pxW, pxH int
		w, h     float64
	}{
		{2000, 1000, 210, 105},
		{2000, 2828, 210, 296.94},
		{2000, 4000, 148.5, 297},
		{0, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := fitPage(tt.pxW, tt.pxH)
		if math.Abs(w-tt.w) > 0.01 || math.Abs(h-tt.h) > 0.01 {
			t.Errorf("fitPage(%d, %d) = %.2f, %.2f; want %.2f, %.2f", tt.pxW, tt.pxH, w, h, tt.w, tt.h)
		}
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(Build(sample()), CaptureOptions{Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != CaptureWidth || img.Bounds().Dy() < 300 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Header band carries the tone color.
	if got := img.RGBAAt(5, 5); got != ToneGreen.RGBA() {
		t.Errorf("header pixel = %v", got)
	}

	var b bytes.Buffer
	if err := WritePNG(&b, Build(sample()), CaptureOptions{Scale: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&b); err != nil {
		t.Errorf("png: %v", err)
	}
}

func TestWritePDF(t *testing.T) {
	var b bytes.Buffer
	if err := WritePDF(&b, Build(sample()), CaptureOptions{Scale: 1}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("%PDF")) {
		t.Errorf("not a PDF: %q", b.Bytes()[:min(8, b.Len())])
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPDF, "PDF": FormatPDF, ".html": FormatHTML, "png": FormatPNG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("expected error for docx")
	}
}

func TestRasterizeDefaultScale(t *testing.T) {
	img, err := Rasterize(Build(sample()), CaptureOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 3*CaptureWidth {
		t.Fatalf("default capture width = %d, want %d", got, 3*CaptureWidth)
	}
}
