package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agenda/agenda/internal/platform/apperr"
)

// Formatter turns a pattern list into prose for the caller. It is a pure
// consumer of the generator's output; a failing formatter never invalidates
// the patterns themselves.
type Formatter interface {
	Format(ctx context.Context, patterns []SchedulePattern) (string, error)
}

// HTTPFormatter posts patterns to an external formatting service.
type HTTPFormatter struct {
	url    string
	client *http.Client
}

func NewHTTPFormatter(url string) *HTTPFormatter {
	return &HTTPFormatter{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type formatRequest struct {
	Patterns []SchedulePattern `json:"patterns"`
}

type formatResponse struct {
	Summary string `json:"summary"`
}

func (f *HTTPFormatter) Format(ctx context.Context, patterns []SchedulePattern) (string, error) {
	body, err := json.Marshal(formatRequest{Patterns: patterns})
	if err != nil {
		return "", apperr.Upstream("encoding formatter request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Upstream("building formatter request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", apperr.Upstream("formatter unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", apperr.Upstream("formatter rejected request", fmt.Errorf("status %d", resp.StatusCode))
	}

	var out formatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Upstream("decoding formatter response", err)
	}
	return out.Summary, nil
}
