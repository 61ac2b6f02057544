package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SymptomOption is one selectable symptom as served by the prediction service.
type SymptomOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Lister fetches the symptom catalog from the remote service.
type Lister interface {
	ListSymptoms(ctx context.Context) ([]SymptomOption, error)
}

// Logger abstracts logging so callers can plug in logrus or anything else
// with the same method set.
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

// Store holds the catalog for the whole process. It is filled once by Load and
// read-only afterwards.
type Store struct {
	lister Lister
	log    Logger

	once    sync.Once
	options []SymptomOption
	index   map[string]int
}

func NewStore(lister Lister, log Logger) *Store {
	if log == nil {
		log = nopLogger{}
	}
	return &Store{lister: lister, log: log}
}

// Load fetches the catalog. A failed fetch leaves the catalog empty: the error
// is logged, never returned, so the rest of the UI keeps working.
// Only the first call talks to the service.
func (s *Store) Load(ctx context.Context) []SymptomOption {
	s.once.Do(func() {
		opts, err := s.lister.ListSymptoms(ctx)
		if err != nil {
			s.log.Warnf("Could not load symptom catalog: %v", err)
			opts = nil
		}
		s.options, s.index = dedupe(opts)
		s.log.Debugf("Loaded %d symptoms", len(s.options))
	})
	return s.Options()
}

// dedupe drops repeated identifiers, keeping the first occurrence.
func dedupe(opts []SymptomOption) ([]SymptomOption, map[string]int) {
	out := make([]SymptomOption, 0, len(opts))
	index := make(map[string]int, len(opts))
	for _, o := range opts {
		if o.Value == "" {
			continue
		}
		if _, seen := index[o.Value]; seen {
			continue
		}
		index[o.Value] = len(out)
		out = append(out, o)
	}
	return out, index
}

// Options returns a copy of the catalog in service order.
func (s *Store) Options() []SymptomOption {
	out := make([]SymptomOption, len(s.options))
	copy(out, s.options)
	return out
}

func (s *Store) Len() int { return len(s.options) }

func (s *Store) Lookup(value string) (SymptomOption, bool) {
	i, ok := s.index[value]
	if !ok {
		return SymptomOption{}, false
	}
	return s.options[i], true
}

// Search returns the options of the catalog matching query.
func (s *Store) Search(query string) []SymptomOption {
	return Search(s.options, query)
}

// A Caser carries state between calls, so each fold gets its own.
func fold(s string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(s))
}

// Search keeps the options whose label or identifier contains query, ignoring
// case with Turkish casing rules. Identifier matching treats '_' as a space.
// An empty query matches everything.
func Search(options []SymptomOption, query string) []SymptomOption {
	q := fold(query)
	out := make([]SymptomOption, 0, len(options))
	for _, o := range options {
		if q == "" ||
			strings.Contains(fold(o.Label), q) ||
			strings.Contains(fold(strings.ReplaceAll(o.Value, "_", " ")), q) ||
			strings.Contains(o.Value, q) {
			out = append(out, o)
		}
	}
	return out
}
