package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/session"
	"github.com/sw33tLie/medimind/pkg/storage"
)

type fixedPredictor struct{ n int }

func (p *fixedPredictor) ListSymptoms(ctx context.Context) ([]catalog.SymptomOption, error) {
	return []catalog.SymptomOption{{Value: "cough", Label: "Öksürük"}}, nil
}

func (p *fixedPredictor) Predict(ctx context.Context, symptoms []string) (*predictor.Result, error) {
	p.n++
	return &predictor.Result{Disease: []string{"", "Bronchitis", "Asthma"}[p.n], Confidence: 0.6}, nil
}

func newTestApp(t *testing.T) *session.App {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "medimind.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	app := session.New(&fixedPredictor{}, db, session.WithClock(func() time.Time { return now }))
	app.Start(context.Background())
	if _, err := app.Select("cough"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := app.Submit(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	return app
}

func TestResolveEntry(t *testing.T) {
	app := newTestApp(t)

	e, err := resolveEntry(app, "#1")
	if err != nil || e.Disease != "Asthma" {
		t.Fatalf("#1 = %q, %v", e.Disease, err)
	}
	e, err = resolveEntry(app, "#2")
	if err != nil || e.Disease != "Bronchitis" {
		t.Fatalf("#2 = %q, %v", e.Disease, err)
	}
	byID, err := resolveEntry(app, "1767340800000")
	if err != nil || byID.Disease != "Bronchitis" {
		t.Fatalf("by id = %q, %v", byID.Disease, err)
	}

	for _, ref := range []string{"#3", "#x", "abc", "42"} {
		if _, err := resolveEntry(app, ref); err == nil {
			t.Errorf("resolveEntry(%q) should fail", ref)
		}
	}
}

func TestExportToDirectory(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()

	if err := exportTo(context.Background(), app, dir, "html"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "MediMind_Rapor_02.01.2026.html")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty export")
	}

	if err := exportTo(context.Background(), app, filepath.Join(dir, "out.docx"), ""); err == nil {
		t.Error("expected an error for an unknown extension")
	}
}
