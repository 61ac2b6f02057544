// Package session holds the state of one MediMind session: the symptom
// catalog, the current selection, the last report, the prediction history and
// the display theme. The CLI and the web front end both drive an App.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/history"
	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/regions"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/selection"
	"github.com/sw33tLie/medimind/pkg/storage"
)

// GenericErrorMessage is shown for every failed prediction, whatever the cause.
const GenericErrorMessage = "Bir hata oluştu. Lütfen tekrar deneyin."

var (
	ErrEmptySelection  = errors.New("no symptoms selected")
	ErrRequestInFlight = errors.New("a prediction is already running")
	ErrExportBusy      = errors.New("an export is already running")
	ErrNoResult        = errors.New("no report to export")
	ErrUnknownSymptom  = errors.New("unknown symptom")
)

// RequestState tags where the prediction request of the session stands.
type RequestState int

const (
	Idle RequestState = iota
	InFlight
	Error
	Success
)

func (s RequestState) String() string {
	switch s {
	case InFlight:
		return "in-flight"
	case Error:
		return "error"
	case Success:
		return "success"
	}
	return "idle"
}

// Predictor is the prediction service as seen by a session.
type Predictor interface {
	ListSymptoms(ctx context.Context) ([]catalog.SymptomOption, error)
	Predict(ctx context.Context, symptoms []string) (*predictor.Result, error)
}

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// App is one session. It is safe for concurrent use; the prediction call runs
// outside the lock while the state is InFlight.
type App struct {
	predictor Predictor
	kv        history.KV
	log       Logger
	now       func() time.Time

	catalog *catalog.Store
	history *history.Cache

	mu     sync.Mutex
	sel    *selection.Selection
	state  RequestState
	result *predictor.Result
	errMsg string
	theme  report.Theme

	exporting atomic.Bool
}

// Option configures an App.
type Option func(*App)

func WithLogger(log Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithClock replaces time.Now for history stamps and export file names.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func New(p Predictor, kv history.KV, opts ...Option) *App {
	a := &App{
		predictor: p,
		kv:        kv,
		log:       nopLogger{},
		now:       time.Now,
		sel:       selection.New(),
		theme:     report.Light,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.catalog = catalog.NewStore(p, a.log)
	a.history = history.New(kv, a.log)
	return a
}

// Start loads the stored state, then the symptom catalog.
func (a *App) Start(ctx context.Context) {
	a.LoadState(ctx)
	a.LoadCatalog(ctx)
}

// LoadState reads the stored theme and history. Problems are logged and the
// defaults kept.
func (a *App) LoadState(ctx context.Context) {
	if v, ok, err := a.kv.Get(ctx, storage.KeyTheme); err != nil {
		a.log.Debugf("Could not read stored theme: %v", err)
	} else if ok {
		a.mu.Lock()
		a.theme = report.ParseTheme(v)
		a.mu.Unlock()
	}
	a.history.LoadFromStorage(ctx)
}

// LoadCatalog fetches the symptom catalog. A failure leaves it empty.
func (a *App) LoadCatalog(ctx context.Context) {
	a.catalog.Load(ctx)
}

// Now is the session clock.
func (a *App) Now() time.Time { return a.now() }

// Catalog returns the loaded symptom options in service order.
func (a *App) Catalog() []catalog.SymptomOption { return a.catalog.Options() }

// Visible returns the options shown for query under the current region filter.
func (a *App) Visible(query string) []catalog.SymptomOption {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.Visible(a.catalog.Options(), query)
}

// Select adds the catalog symptom identified by value. It reports whether the
// selection changed.
func (a *App) Select(value string) (bool, error) {
	opt, ok := a.catalog.Lookup(value)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownSymptom, value)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.Add(opt), nil
}

// ReplaceSelection swaps the selection for the given catalog symptoms. The
// region filter is kept.
func (a *App) ReplaceSelection(values []string) error {
	opts := make([]catalog.SymptomOption, 0, len(values))
	for _, v := range values {
		opt, ok := a.catalog.Lookup(v)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSymptom, v)
		}
		opts = append(opts, opt)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == InFlight {
		return ErrRequestInFlight
	}
	region := a.sel.Region()
	a.sel.Clear()
	a.sel.SetRegion(region)
	for _, opt := range opts {
		a.sel.Add(opt)
	}
	return nil
}

func (a *App) Deselect(value string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.Remove(value)
}

// ClearSelection empties the selection and resets the region filter.
func (a *App) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sel.Clear()
}

func (a *App) Selected() []catalog.SymptomOption {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.Options()
}

func (a *App) Region() regions.Region {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.Region()
}

func (a *App) SetRegion(r regions.Region) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sel.SetRegion(r)
}

// ToggleRegion applies a click on region r and returns the resulting filter.
func (a *App) ToggleRegion(r regions.Region) regions.Region {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel.ToggleRegion(r)
}

// CanSubmit reports whether Submit would start a request.
func (a *App) CanSubmit() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.sel.Empty() && a.state != InFlight
}

// Submit sends the selection to the prediction service. Starting a request
// clears the current report and error. A failure leaves the state at Error
// with GenericErrorMessage and does not touch the history; a success stores
// the report, stamped with the submitted symptoms, and records it.
func (a *App) Submit(ctx context.Context) (*predictor.Result, error) {
	a.mu.Lock()
	if a.state == InFlight {
		a.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	if a.sel.Empty() {
		a.mu.Unlock()
		return nil, ErrEmptySelection
	}
	symptoms := a.sel.Values()
	a.state = InFlight
	a.result = nil
	a.errMsg = ""
	a.mu.Unlock()

	res, err := a.predictor.Predict(ctx, symptoms)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.log.Errorf("Prediction failed: %v", err)
		a.state = Error
		a.errMsg = GenericErrorMessage
		return nil, err
	}

	stored := *res
	stored.Symptoms = symptoms
	a.result = &stored
	a.state = Success
	if _, err := a.history.Record(ctx, stored, a.now()); err != nil {
		a.log.Warnf("Could not save prediction history: %v", err)
	}
	out := stored
	return &out, nil
}

func (a *App) State() RequestState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// ErrorMessage is the banner text of a failed request, empty otherwise.
func (a *App) ErrorMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Result returns the report on display, if any.
func (a *App) Result() (predictor.Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return predictor.Result{}, false
	}
	return *a.result, true
}

// Document lays out the report on display.
func (a *App) Document() (*report.Document, bool) {
	r, ok := a.Result()
	if !ok {
		return nil, false
	}
	return report.Build(r), true
}

// ClearResult dismisses the report and any error, back to Idle.
func (a *App) ClearResult() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == InFlight {
		return
	}
	a.result = nil
	a.errMsg = ""
	a.state = Idle
}

// ShowHistory puts a past prediction back on display. The service is not
// called and the history is left as is.
func (a *App) ShowHistory(id int64) (history.Entry, error) {
	e, err := a.history.Get(id)
	if err != nil {
		return history.Entry{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == InFlight {
		return history.Entry{}, ErrRequestInFlight
	}
	r := e.Result
	a.result = &r
	a.errMsg = ""
	a.state = Success
	return e, nil
}

// History returns the recorded predictions, newest first.
func (a *App) History() []history.Entry { return a.history.Entries() }

func (a *App) HistoryEntry(id int64) (history.Entry, error) { return a.history.Get(id) }

// HistoryAt returns the entry at position i, 0 being the newest.
func (a *App) HistoryAt(i int) (history.Entry, error) { return a.history.At(i) }

func (a *App) ClearHistory(ctx context.Context) error {
	return a.history.Clear(ctx)
}

func (a *App) Theme() report.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme switches the display theme and persists it.
func (a *App) SetTheme(ctx context.Context, t report.Theme) error {
	if t != report.Dark {
		t = report.Light
	}
	a.mu.Lock()
	a.theme = t
	a.mu.Unlock()
	return a.kv.Set(ctx, storage.KeyTheme, string(t))
}

func (a *App) ToggleTheme(ctx context.Context) (report.Theme, error) {
	next := report.Dark
	if a.Theme() == report.Dark {
		next = report.Light
	}
	return next, a.SetTheme(ctx, next)
}

// Exporting reports whether an export is running.
func (a *App) Exporting() bool { return a.exporting.Load() }

// Export writes the report on display in format f. Only one export runs at a
// time; it does not depend on, nor change, the prediction state.
func (a *App) Export(ctx context.Context, w io.Writer, f report.Format) error {
	if !a.exporting.CompareAndSwap(false, true) {
		return ErrExportBusy
	}
	defer a.exporting.Store(false)

	doc, ok := a.Document()
	if !ok {
		return ErrNoResult
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := report.Export(w, doc, f); err != nil {
		a.log.Errorf("Export failed: %v", err)
		return fmt.Errorf("export %s: %w", f, err)
	}
	return nil
}

// ExportFilename is the file name of an export made now.
func (a *App) ExportFilename(f report.Format) string {
	return report.Filename(a.now(), string(f))
}
