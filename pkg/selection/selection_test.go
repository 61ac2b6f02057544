package selection

import (
	"testing"

	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/regions"
)

var (
	itching   = catalog.SymptomOption{Value: "itching", Label: "Kaşıntı"}
	headache  = catalog.SymptomOption{Value: "headache", Label: "Baş Ağrısı"}
	chestPain = catalog.SymptomOption{Value: "chest_pain", Label: "Göğüs Ağrısı"}
)

func TestAdd_Deduplicates(t *testing.T) {
	s := New()
	if !s.Add(itching) || !s.Add(headache) {
		t.Fatal("expected first adds to succeed")
	}
	if s.Add(catalog.SymptomOption{Value: "itching", Label: "another label"}) {
		t.Fatal("duplicate identifier must be rejected")
	}
	if s.Add(catalog.SymptomOption{}) {
		t.Fatal("empty identifier must be rejected")
	}
	got := s.Values()
	if len(got) != 2 || got[0] != "itching" || got[1] != "headache" {
		t.Fatalf("unexpected selection %v", got)
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add(itching)
	s.Add(headache)
	s.Add(chestPain)

	if !s.Remove("headache") {
		t.Fatal("expected headache to be removed")
	}
	if s.Remove("headache") {
		t.Fatal("second remove should be a no-op")
	}
	got := s.Values()
	if len(got) != 2 || got[0] != "itching" || got[1] != "chest_pain" {
		t.Fatalf("unexpected selection %v", got)
	}
}

func TestRemove_DoesNotAliasOptions(t *testing.T) {
	s := New()
	s.Add(itching)
	s.Add(headache)
	before := s.Options()
	s.Remove("itching")
	if before[0] != itching || before[1] != headache {
		t.Fatalf("earlier snapshot was mutated: %v", before)
	}
}

func TestClear_ResetsRegion(t *testing.T) {
	s := New()
	s.Add(itching)
	s.ToggleRegion(regions.Skin)
	s.Clear()
	if !s.Empty() {
		t.Fatal("expected empty selection")
	}
	if s.Region() != regions.None {
		t.Fatalf("expected region filter reset, got %s", s.Region())
	}
}

func TestToggleRegion(t *testing.T) {
	s := New()
	if got := s.ToggleRegion(regions.Head); got != regions.Head {
		t.Fatalf("expected head, got %s", got)
	}
	if got := s.ToggleRegion(regions.Head); got != regions.None {
		t.Fatalf("expected deselection, got %s", got)
	}
}

func TestVisible_FilterNeverTouchesSelection(t *testing.T) {
	cat := []catalog.SymptomOption{itching, headache, chestPain}
	s := New()
	s.Add(itching)
	s.ToggleRegion(regions.Head)

	vis := s.Visible(cat, "")
	if len(vis) != 1 || vis[0].Value != "headache" {
		t.Fatalf("expected only headache visible, got %v", vis)
	}
	if !s.Has("itching") {
		t.Fatal("switching region must keep symptoms outside the filter selected")
	}

	s.ToggleRegion(regions.Head)
	if vis := s.Visible(cat, "ağrı"); len(vis) != 2 {
		t.Fatalf("expected search over full catalog, got %v", vis)
	}
}
