package regions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sw33tLie/medimind/pkg/catalog"
)

// Region is one of the fixed body regions used to narrow the symptom list.
// The zero value is None, meaning no filter.
type Region string

const (
	None    Region = ""
	Head    Region = "head"
	Chest   Region = "chest"
	Abdomen Region = "abdomen"
	Pelvis  Region = "pelvis"
	Limbs   Region = "limbs"
	Skin    Region = "skin"
	General Region = "general"
)

var ErrUnknownRegion = errors.New("unknown body region")

// order is the display order of the body map.
var order = []Region{Head, Chest, Abdomen, Pelvis, Limbs, Skin, General}

var labels = map[Region]string{
	Head:    "Baş ve Boyun",
	Chest:   "Göğüs ve Solunum",
	Abdomen: "Karın ve Mide",
	Pelvis:  "Pelvis ve Boşaltım",
	Limbs:   "Kollar, Bacaklar ve Sırt",
	Skin:    "Cilt ve Deri",
	General: "Genel Belirtiler",
}

// symptomTable maps each region to the symptom identifiers relevant to it.
// Identifiers are spelled exactly as the service catalog spells them, stray
// spaces included. A symptom may belong to more than one region.
var symptomTable = map[Region][]string{
	Head: {
		"anxiety", "blurred_and_distorted_vision", "coma", "depression", "dizziness",
		"drying_and_tingling_lips", "headache", "irritability", "lack_of_concentration",
		"loss_of_balance", "loss_of_smell", "pain_behind_the_eyes", "puffy_face_and_eyes",
		"redness_of_eyes", "runny_nose", "sinus_pressure", "slurred_speech",
		"stiff_neck", "sunken_eyes", "throat_irritation", "ulcers_on_tongue",
		"unsteadiness", "visual_disturbances", "watering_from_eyes", "yellowing_of_eyes",
		"altered_sensorium", "confusion",
	},
	Chest: {
		"blood_in_sputum", "breathlessness", "chest_pain", "congestion",
		"continuous_sneezing", "cough", "fast_heart_rate", "mucoid_sputum",
		"palpitations", "phlegm", "rusty_sputum", "enlarged_thyroid", "patches_in_throat",
	},
	Abdomen: {
		"abdominal_pain", "acidity", "acute_liver_failure", "belly_pain",
		"constipation", "diarrhoea", "distention_of_abdomen", "excessive_hunger",
		"fluid_overload", "indigestion", "internal_itching", "irregular_sugar_level",
		"nausea", "passage_of_gases", "stomach_bleeding", "stomach_pain",
		"swelling_of_stomach", "vomiting",
	},
	Pelvis: {
		"abnormal_menstruation", "bladder_discomfort", "bloody_stool",
		"burning_micturition", "continuous_feel_of_urine", "dark_urine",
		"foul_smell_of_urine", "irritation_in_anus", "pain_during_bowel_movements",
		"pain_in_anal_region", "polyuria", "spotting_ urination", "yellow_urine",
	},
	Limbs: {
		"brittle_nails", "cold_hands_and_feets", "inflammatory_nails",
		"small_dents_in_nails", "swollen_blood_vessels", "weakness_in_limbs",
		"muscle_pain", "muscle_wasting", "muscle_weakness", "joint_pain",
		"swollen_extremeties", "back_pain", "cramps", "hip_joint_pain",
		"knee_pain", "movement_stiffness", "painful_walking",
		"prominent_veins_on_calf", "spinning_movements", "swelling_joints",
		"swollen_legs", "weakness_of_one_body_side",
	},
	Skin: {
		"blackheads", "blister", "bruising", "dischromic _patches", "itching",
		"nodal_skin_eruptions", "pus_filled_pimples", "red_sore_around_nose",
		"red_spots_over_body", "scurring", "silver_like_dusting", "skin_peeling",
		"skin_rash", "swelled_lymph_nodes", "yellow_crust_ooze", "yellowish_skin",
	},
	General: {
		"chills", "dehydration", "fatigue", "high_fever", "increased_appetite",
		"lethargy", "loss_of_appetite", "malaise", "mild_fever", "mood_swings",
		"obesity", "restlessness", "shivering", "sweating", "toxic_look_(typhos)",
		"weight_gain", "weight_loss", "extra_marital_contacts", "family_history",
		"history_of_alcohol_consumption", "receiving_blood_transfusion",
		"receiving_unsterile_injections", "neck_pain",
	},
}

// membership and symptomRegions are lookup tables generated from symptomTable.
var (
	membership     map[Region]map[string]struct{}
	symptomRegions map[string][]Region
)

func init() {
	membership = make(map[Region]map[string]struct{}, len(symptomTable))
	symptomRegions = make(map[string][]Region)
	for _, r := range order {
		set := make(map[string]struct{}, len(symptomTable[r]))
		for _, s := range symptomTable[r] {
			set[s] = struct{}{}
			symptomRegions[s] = append(symptomRegions[s], r)
		}
		membership[r] = set
	}
}

// All returns the regions in body-map order.
func All() []Region {
	out := make([]Region, len(order))
	copy(out, order)
	return out
}

// Parse resolves a region name. An empty string, "none" or "all" mean no filter.
func Parse(name string) (Region, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "none", "all":
		return None, nil
	}
	r := Region(n)
	if _, ok := labels[r]; !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return r, nil
}

func (r Region) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}

// Label is the display name shown on the body map.
func (r Region) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return "Tüm Belirtiler"
}

// Contains reports whether value is in the region's static set.
// None contains nothing.
func (r Region) Contains(value string) bool {
	_, ok := membership[r][value]
	return ok
}

// Symptoms returns the region's static identifier set in table order.
func (r Region) Symptoms() []string {
	out := make([]string, len(symptomTable[r]))
	copy(out, symptomTable[r])
	return out
}

// RegionsOf returns every region listing value, in body-map order.
func RegionsOf(value string) []Region {
	out := make([]Region, len(symptomRegions[value]))
	copy(out, symptomRegions[value])
	return out
}

// Filter narrows options to the ones relevant to region, keeping the order of
// options. None returns options unchanged.
func Filter(region Region, options []catalog.SymptomOption) []catalog.SymptomOption {
	if region == None {
		return options
	}
	out := make([]catalog.SymptomOption, 0)
	for _, o := range options {
		if region.Contains(o.Value) {
			out = append(out, o)
		}
	}
	return out
}

// Toggle returns the region active after picking picked while current is
// active: picking the active region again clears the filter.
func Toggle(current, picked Region) Region {
	if current == picked {
		return None
	}
	return picked
}
