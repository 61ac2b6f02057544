package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type fakeLister struct {
	opts  []SymptomOption
	err   error
	calls int
}

func (f *fakeLister) ListSymptoms(ctx context.Context) ([]SymptomOption, error) {
	f.calls++
	return f.opts, f.err
}

type recordingLogger struct {
	nopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func sample() []SymptomOption {
	return []SymptomOption{
		{Value: "itching", Label: "Kaşıntı"},
		{Value: "headache", Label: "Baş Ağrısı"},
		{Value: "chest_pain", Label: "Göğüs Ağrısı"},
	}
}

func TestLoad_KeepsServiceOrder(t *testing.T) {
	l := &fakeLister{opts: sample()}
	s := NewStore(l, nil)

	got := s.Load(context.Background())
	if len(got) != 3 || got[0].Value != "itching" || got[2].Value != "chest_pain" {
		t.Fatalf("unexpected catalog: %#v", got)
	}
	if opt, ok := s.Lookup("headache"); !ok || opt.Label != "Baş Ağrısı" {
		t.Fatalf("lookup failed: %#v %v", opt, ok)
	}
}

func TestLoad_FailureDegradesToEmpty(t *testing.T) {
	l := &fakeLister{err: errors.New("connection refused")}
	log := &recordingLogger{}
	s := NewStore(l, log)

	got := s.Load(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty catalog, got %d entries", len(got))
	}
	if len(log.warnings) != 1 {
		t.Fatalf("expected the failure to be logged once, got %v", log.warnings)
	}
	if res := s.Search("baş"); len(res) != 0 {
		t.Fatalf("search on empty catalog should yield nothing, got %v", res)
	}
}

func TestLoad_SingleAttempt(t *testing.T) {
	l := &fakeLister{err: errors.New("boom")}
	s := NewStore(l, nil)
	s.Load(context.Background())
	s.Load(context.Background())
	if l.calls != 1 {
		t.Fatalf("expected one fetch per session, got %d", l.calls)
	}
}

func TestLoad_DropsDuplicates(t *testing.T) {
	l := &fakeLister{opts: []SymptomOption{
		{Value: "cough", Label: "Öksürük"},
		{Value: "cough", Label: "Öksürük (2)"},
		{Value: "", Label: "boş"},
	}}
	s := NewStore(l, nil)
	got := s.Load(context.Background())
	if len(got) != 1 || got[0].Label != "Öksürük" {
		t.Fatalf("expected first occurrence only, got %#v", got)
	}
}

func TestOptions_ReturnsCopy(t *testing.T) {
	s := NewStore(&fakeLister{opts: sample()}, nil)
	s.Load(context.Background())
	got := s.Options()
	got[0].Label = "changed"
	if again := s.Options(); again[0].Label != "Kaşıntı" {
		t.Fatal("Options must not expose internal storage")
	}
}

func TestSearch(t *testing.T) {
	opts := sample()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"itching", "headache", "chest_pain"}},
		{"ağrı", []string{"headache", "chest_pain"}},
		{"BAŞ", []string{"headache"}},
		{"chest pain", []string{"chest_pain"}},
		{"chest_pain", []string{"chest_pain"}},
		{"  kaşıntı ", []string{"itching"}},
		{"fever", nil},
	}
	for _, tt := range tests {
		got := Search(opts, tt.query)
		if len(got) != len(tt.want) {
			t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.want)
		}
		for i := range got {
			if got[i].Value != tt.want[i] {
				t.Fatalf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i].Value, tt.want[i])
			}
		}
	}
}

func TestSearch_Concurrent(t *testing.T) {
	opts := sample()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := Search(opts, "BAŞ")
				if len(got) != 1 || got[0].Value != "headache" {
					t.Errorf("Search(BAŞ) = %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
