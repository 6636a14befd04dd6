package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// HTTPHook is a Hook backed by a plain HTTPS GET against a third-party
// verification or enrichment provider. It binds to no concrete provider
// schema: the response is parsed field-by-field with gjson, and any field
// the provider omits keeps its Result zero value.
type HTTPHook struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPHook builds an HTTPHook named name (used only in log lines)
// against baseURL, authenticating with apiKey as a query parameter.
func NewHTTPHook(name, baseURL, apiKey string) *HTTPHook {
	return &HTTPHook{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Call looks up email against the configured provider, retrying per the
// package's bounded backoff policy. A correlation id is attached to every
// attempt's log line so a retry sequence can be joined after the fact.
func (h *HTTPHook) Call(ctx context.Context, email string) (*Result, error) {
	correlationID := uuid.NewString()

	req, err := h.buildRequest(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", h.name, err)
	}

	logrus.WithFields(logrus.Fields{
		"hook":           h.name,
		"correlation_id": correlationID,
		"email":          email,
	}).Debug("calling verification/enrichment provider")

	resp, err := doRequest(ctx, h.client, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"hook":           h.name,
			"correlation_id": correlationID,
			"error":          err,
		}).Warn("verification/enrichment provider call failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response body: %w", h.name, err)
	}

	return parseResult(body), nil
}

func (h *HTTPHook) buildRequest(ctx context.Context, email string) (*http.Request, error) {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("email", email)
	q.Set("api_key", h.apiKey)
	u.RawQuery = q.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

// parseResult extracts the three normalised fields a provider's JSON body
// might carry under any of the common field-name spellings seen across
// verification/enrichment vendors, keeping the raw body regardless.
func parseResult(body []byte) *Result {
	raw := string(body)
	return &Result{
		Status:      firstString(raw, "status", "result", "state"),
		Score:       int(firstFloat(raw, "score", "confidence", "quality_score")),
		Deliverable: firstBool(raw, "deliverable", "is_deliverable", "valid"),
		Raw:         raw,
	}
}

func firstString(json string, paths ...string) string {
	for _, p := range paths {
		if r := gjson.Get(json, p); r.Exists() {
			return r.String()
		}
	}
	return ""
}

func firstFloat(json string, paths ...string) float64 {
	for _, p := range paths {
		if r := gjson.Get(json, p); r.Exists() {
			return r.Float()
		}
	}
	return 0
}

func firstBool(json string, paths ...string) bool {
	for _, p := range paths {
		if r := gjson.Get(json, p); r.Exists() {
			return r.Bool()
		}
	}
	return false
}
