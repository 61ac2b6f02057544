package predictor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/whttp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

var (
	// ErrPredictionFailed wraps every failure of a prediction call, network
	// or HTTP status alike.
	ErrPredictionFailed = errors.New("prediction request failed")
	ErrCatalogFailed    = errors.New("symptom catalog request failed")
	ErrBadResponse      = errors.New("malformed service response")
)

// Client talks to the remote prediction service.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient returns a client for the service rooted at baseURL. A nil
// httpClient means a single-attempt client without proxy.
func NewClient(baseURL string, httpClient *retryablehttp.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		var err error
		httpClient, err = whttp.NewClient(0, "")
		if err != nil {
			return nil, err
		}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// describe renders a failed response for error messages.
func describe(res *whttp.WHTTPRes) string {
	if res.HTTPTitle != "" {
		return fmt.Sprintf("HTTP %d (%s)", res.StatusCode, res.HTTPTitle)
	}
	if detail := gjson.Get(res.BodyString, "detail"); detail.Exists() {
		return fmt.Sprintf("HTTP %d: %s", res.StatusCode, detail.String())
	}
	return fmt.Sprintf("HTTP %d", res.StatusCode)
}

// ListSymptoms fetches the symptom catalog (GET /symptoms).
func (c *Client) ListSymptoms(ctx context.Context) ([]catalog.SymptomOption, error) {
	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: "GET",
		URL:    c.baseURL + "/symptoms",
	}, c.http)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogFailed, err)
	}
	if !res.OK() {
		return nil, fmt.Errorf("%w: %s", ErrCatalogFailed, describe(res))
	}
	if !gjson.Valid(res.BodyString) {
		return nil, fmt.Errorf("%w: %w", ErrCatalogFailed, ErrBadResponse)
	}

	symptoms := gjson.Get(res.BodyString, "symptoms")
	if !symptoms.IsArray() {
		return nil, fmt.Errorf("%w: %w: no symptoms array", ErrCatalogFailed, ErrBadResponse)
	}

	var out []catalog.SymptomOption
	for _, s := range symptoms.Array() {
		value := s.Get("value").String()
		if value == "" {
			continue
		}
		label := s.Get("label").String()
		if label == "" {
			label = value
		}
		out = append(out, catalog.SymptomOption{Value: value, Label: label})
	}
	return out, nil
}

// Predict submits symptoms (POST /predict) and returns the diagnosis. It makes
// exactly one request unless the underlying client was configured to retry.
func (c *Client) Predict(ctx context.Context, symptoms []string) (*Result, error) {
	if symptoms == nil {
		symptoms = []string{}
	}
	body, err := sjson.SetBytes([]byte(`{}`), "symptoms", symptoms)
	if err != nil {
		return nil, err
	}

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: "POST",
		URL:    c.baseURL + "/predict",
		Body:   body,
	}, c.http)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}
	if !res.OK() {
		return nil, fmt.Errorf("%w: %s", ErrPredictionFailed, describe(res))
	}

	result, err := parseResult(res.BodyString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	result.Symptoms = append([]string(nil), symptoms...)
	return result, nil
}

func parseResult(body string) (*Result, error) {
	if !gjson.Valid(body) {
		return nil, ErrBadResponse
	}
	doc := gjson.Parse(body)
	disease := doc.Get("disease")
	if !disease.Exists() {
		return nil, fmt.Errorf("%w: missing disease", ErrBadResponse)
	}

	r := &Result{
		Disease:     disease.String(),
		Confidence:  clamp(doc.Get("confidence").Float()),
		Description: doc.Get("description").String(),
		Precautions: []string{},
	}
	for _, p := range doc.Get("precautions").Array() {
		if s := strings.TrimSpace(p.String()); s != "" {
			r.Precautions = append(r.Precautions, s)
		}
	}

	// top_predictions is optional; leave it nil so the renderer can fall
	// back to a two-slice distribution.
	if top := doc.Get("top_predictions"); top.IsArray() {
		r.TopPredictions = []Prediction{}
		for _, p := range top.Array() {
			r.TopPredictions = append(r.TopPredictions, Prediction{
				Name:  p.Get("name").String(),
				Value: clamp(p.Get("value").Float()),
			})
		}
	}
	return r, nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Health checks the service root endpoint and returns its message.
func (c *Client) Health(ctx context.Context) (string, error) {
	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: "GET",
		URL:    c.baseURL + "/",
	}, c.http)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", fmt.Errorf("service unhealthy: %s", describe(res))
	}
	return gjson.Get(res.BodyString, "message").String(), nil
}
