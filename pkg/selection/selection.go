package selection

import (
	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/regions"
)

// Selection is the ordered, de-duplicated set of symptoms the user picked,
// together with the body-region filter currently narrowing the option list.
// The filter only affects which options are visible; it never drops picked
// symptoms.
type Selection struct {
	options []catalog.SymptomOption
	region  regions.Region
}

func New() *Selection {
	return &Selection{}
}

// Add appends option unless a symptom with the same identifier is already
// selected. It reports whether the selection changed.
func (s *Selection) Add(option catalog.SymptomOption) bool {
	if option.Value == "" || s.Has(option.Value) {
		return false
	}
	s.options = append(s.options, option)
	return true
}

// Remove drops the symptom with the given identifier.
func (s *Selection) Remove(value string) bool {
	for i, o := range s.options {
		if o.Value == value {
			s.options = append(s.options[:i:i], s.options[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the selection and resets the region filter.
func (s *Selection) Clear() {
	s.options = nil
	s.region = regions.None
}

func (s *Selection) Has(value string) bool {
	for _, o := range s.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (s *Selection) Len() int    { return len(s.options) }
func (s *Selection) Empty() bool { return len(s.options) == 0 }

// Options returns a copy of the selected symptoms in pick order.
func (s *Selection) Options() []catalog.SymptomOption {
	out := make([]catalog.SymptomOption, len(s.options))
	copy(out, s.options)
	return out
}

// Values returns the selected identifiers in pick order, the form the
// prediction service expects.
func (s *Selection) Values() []string {
	out := make([]string, 0, len(s.options))
	for _, o := range s.options {
		out = append(out, o.Value)
	}
	return out
}

func (s *Selection) Region() regions.Region { return s.region }

// SetRegion activates a region filter without toggle semantics.
func (s *Selection) SetRegion(r regions.Region) { s.region = r }

// ToggleRegion applies a body-map click: the active region is deselected,
// any other region becomes active. It returns the region now active.
func (s *Selection) ToggleRegion(r regions.Region) regions.Region {
	s.region = regions.Toggle(s.region, r)
	return s.region
}

// Visible returns the catalog options shown to the user: the active region
// filter first, then the free-text query.
func (s *Selection) Visible(options []catalog.SymptomOption, query string) []catalog.SymptomOption {
	return catalog.Search(regions.Filter(s.region, options), query)
}
