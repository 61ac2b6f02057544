package session

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/history"
	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/regions"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/storage"
)

type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: map[string]string{}} }

func (k *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(ctx context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *memKV) Delete(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.m, key)
	return nil
}

type fakePredictor struct {
	options []catalog.SymptomOption
	listErr error

	mu      sync.Mutex
	calls   int
	got     [][]string
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakePredictor) ListSymptoms(ctx context.Context) ([]catalog.SymptomOption, error) {
	return f.options, f.listErr
}

func (f *fakePredictor) Predict(ctx context.Context, symptoms []string) (*predictor.Result, error) {
	f.mu.Lock()
	f.calls++
	f.got = append(f.got, symptoms)
	err := f.err
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if err != nil {
		return nil, err
	}
	return &predictor.Result{
		Disease:     "Common Cold",
		Confidence:  0.74,
		Description: "A viral infection.",
		Precautions: []string{"rest"},
	}, nil
}

func (f *fakePredictor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var testOptions = []catalog.SymptomOption{
	{Value: "headache", Label: "Baş Ağrısı"},
	{Value: "cough", Label: "Öksürük"},
	{Value: "itching", Label: "Kaşıntı"},
}

var t0 = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

func newApp(t *testing.T, p *fakePredictor, kv *memKV) *App {
	t.Helper()
	if p.options == nil && p.listErr == nil {
		p.options = testOptions
	}
	a := New(p, kv, WithClock(func() time.Time { return t0 }))
	a.Start(context.Background())
	return a
}

func TestSubmitRecordsHistory(t *testing.T) {
	p := &fakePredictor{}
	kv := newMemKV()
	a := newApp(t, p, kv)

	assert.False(t, a.CanSubmit())
	_, err := a.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, 0, p.Calls())

	_, err = a.Select("headache")
	require.NoError(t, err)
	_, err = a.Select("cough")
	require.NoError(t, err)
	require.True(t, a.CanSubmit())

	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Common Cold", res.Disease)
	assert.Equal(t, []string{"headache", "cough"}, res.Symptoms)
	assert.Equal(t, Success, a.State())
	assert.Empty(t, a.ErrorMessage())

	entries := a.History()
	require.Len(t, entries, 1)
	assert.Equal(t, t0.UnixMilli(), entries[0].ID)
	assert.Equal(t, "16.10.2026", entries[0].Date)
	assert.Equal(t, "14:30", entries[0].Time)
	assert.Contains(t, kv.m[storage.KeyPredictionHistory], `"disease":"Common Cold"`)
}

func TestSubmitFailureKeepsHistory(t *testing.T) {
	p := &fakePredictor{}
	a := newApp(t, p, newMemKV())
	_, err := a.Select("cough")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	p.err = errors.New("boom")
	_, err = a.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, Error, a.State())
	assert.Equal(t, GenericErrorMessage, a.ErrorMessage())
	_, ok := a.Result()
	assert.False(t, ok, "stale report should be cleared")
	assert.Len(t, a.History(), 1)
	assert.True(t, a.CanSubmit(), "retry allowed")
}

func TestSubmitSingleFlight(t *testing.T) {
	p := &fakePredictor{started: make(chan struct{}), release: make(chan struct{})}
	a := newApp(t, p, newMemKV())
	_, err := a.Select("headache")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := a.Submit(context.Background())
		done <- err
	}()
	<-p.started

	assert.Equal(t, InFlight, a.State())
	assert.False(t, a.CanSubmit())
	_, err = a.Submit(context.Background())
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(p.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, p.Calls())
	assert.Equal(t, Success, a.State())
}

func TestShowHistoryDoesNotCallService(t *testing.T) {
	p := &fakePredictor{}
	a := newApp(t, p, newMemKV())
	_, err := a.Select("itching")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)
	id := a.History()[0].ID

	a.ClearResult()
	assert.Equal(t, Idle, a.State())

	e, err := a.ShowHistory(id)
	require.NoError(t, err)
	assert.Equal(t, "Common Cold", e.Disease)
	assert.Equal(t, 1, p.Calls())
	assert.Len(t, a.History(), 1)

	r, ok := a.Result()
	require.True(t, ok)
	assert.Equal(t, []string{"itching"}, r.Symptoms)

	_, err = a.ShowHistory(42)
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestClearHistory(t *testing.T) {
	kv := newMemKV()
	a := newApp(t, &fakePredictor{}, kv)
	_, err := a.Select("cough")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.ClearHistory(context.Background()))
	assert.Empty(t, a.History())
	_, ok := kv.m[storage.KeyPredictionHistory]
	assert.False(t, ok)
}

func TestHistorySurvivesRestart(t *testing.T) {
	kv := newMemKV()
	a := newApp(t, &fakePredictor{}, kv)
	_, err := a.Select("cough")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	b := newApp(t, &fakePredictor{}, kv)
	require.Len(t, b.History(), 1)
	assert.Equal(t, "Common Cold", b.History()[0].Disease)
	_, ok := b.Result()
	assert.False(t, ok)
}

func TestThemePersistence(t *testing.T) {
	kv := newMemKV()
	a := newApp(t, &fakePredictor{}, kv)
	assert.Equal(t, report.Light, a.Theme())

	next, err := a.ToggleTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Dark, next)
	assert.Equal(t, "dark", kv.m[storage.KeyTheme])

	b := newApp(t, &fakePredictor{}, kv)
	assert.Equal(t, report.Dark, b.Theme())
}

func TestCatalogFailureDegrades(t *testing.T) {
	a := newApp(t, &fakePredictor{listErr: errors.New("down")}, newMemKV())
	assert.Empty(t, a.Catalog())
	_, err := a.Select("cough")
	assert.ErrorIs(t, err, ErrUnknownSymptom)
	assert.False(t, a.CanSubmit())
}

func TestRegionFilterKeepsSelection(t *testing.T) {
	a := newApp(t, &fakePredictor{}, newMemKV())
	_, err := a.Select("headache")
	require.NoError(t, err)

	assert.Equal(t, regions.Skin, a.ToggleRegion(regions.Skin))
	visible := a.Visible("")
	require.Len(t, visible, 1)
	assert.Equal(t, "itching", visible[0].Value)
	assert.Len(t, a.Selected(), 1)

	assert.Equal(t, regions.None, a.ToggleRegion(regions.Skin))
	assert.Len(t, a.Visible(""), 3)

	a.ClearSelection()
	assert.Empty(t, a.Selected())
	assert.Equal(t, regions.None, a.Region())
}

func TestExport(t *testing.T) {
	a := newApp(t, &fakePredictor{}, newMemKV())
	var buf bytes.Buffer
	assert.ErrorIs(t, a.Export(context.Background(), &buf, report.FormatHTML), ErrNoResult)

	_, err := a.Select("cough")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.Export(context.Background(), &buf, report.FormatHTML))
	assert.Contains(t, buf.String(), "Common Cold")
	assert.Contains(t, buf.String(), report.SymptomsID)
	assert.False(t, a.Exporting())
	assert.Equal(t, Success, a.State())
	assert.Equal(t, "MediMind_Rapor_16.10.2026.pdf", a.ExportFilename(report.FormatPDF))

	a.exporting.Store(true)
	assert.ErrorIs(t, a.Export(context.Background(), &buf, report.FormatHTML), ErrExportBusy)
}
