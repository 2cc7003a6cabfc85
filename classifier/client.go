// Package classifier talks to the image classification service that
// suggests an issue category for an uploaded photo.
package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"spotsolve-be/analytics"
)

// ErrInvalidResponse is returned when the service answers 2xx with a body
// that is not a JSON object.
var ErrInvalidResponse = errors.New("ML API returned invalid JSON")

// Error is a non-2xx answer from the service.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return e.Detail
}

// Result is a usable detection. Confidence is nil when the service did not
// send one or sent something outside [0,1].
type Result struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
}

type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

type prediction struct {
	Prediction string          `json:"prediction"`
	Label      string          `json:"label"`
	Confidence json.RawMessage `json:"confidence"`
}

type failure struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Classify uploads an image and returns the normalized category. A nil
// Result with a nil error means the service found nothing usable.
func (c *Client) Classify(ctx context.Context, filename string, image io.Reader) (*Result, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ML request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ML response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Detail: failureDetail(resp.StatusCode, raw)}
	}

	return parsePrediction(raw)
}

func failureDetail(status int, raw []byte) string {
	detail := fmt.Sprintf("ML request failed (%d)", status)
	var f failure
	if err := json.Unmarshal(raw, &f); err != nil {
		if text := strings.TrimSpace(string(raw)); text != "" {
			detail = detail + ": " + text
		}
		return detail
	}
	if f.Error != "" {
		detail = f.Error
	}
	if f.Details != "" {
		detail = detail + ": " + f.Details
	}
	return detail
}

func parsePrediction(raw []byte) (*Result, error) {
	var p prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrInvalidResponse
	}

	label := p.Prediction
	if label == "" {
		label = p.Label
	}
	category := analytics.NormalizeAICategory(label)
	if category == "" {
		return nil, nil
	}
	return &Result{Category: category, Confidence: parseConfidence(p.Confidence)}, nil
}

// parseConfidence accepts a JSON number or a numeric string.
func parseConfidence(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return nil
	}
	return &v
}
