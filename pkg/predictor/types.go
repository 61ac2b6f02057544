package predictor

// Prediction is one slice of the probability distribution returned by the
// service.
type Prediction struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is a single diagnosis as returned by POST /predict, stamped with the
// symptoms that were submitted.
type Result struct {
	Disease        string       `json:"disease"`
	Confidence     float64      `json:"confidence"`
	Description    string       `json:"description"`
	Precautions    []string     `json:"precautions"`
	TopPredictions []Prediction `json:"top_predictions"`
	Symptoms       []string     `json:"symptoms"`
}

// ConfidencePercent is the confidence rounded to a whole percentage.
func (r Result) ConfidencePercent() int {
	return int(r.Confidence*100 + 0.5)
}
