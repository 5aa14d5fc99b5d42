package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/careassist/medeval/internal/models"
)

const (
	// callTimeout bounds one symptom-check call. The deadline is the only
	// cancellation mechanism: a slow backend is recorded as an error row,
	// never retried.
	callTimeout = 90 * time.Second

	probeTimeout = 10 * time.Second
)

// backendParams are the connection fields for a backend-under-test entry.
type backendParams struct {
	BaseURL string `mapstructure:"base_url"`
}

// backendProvider calls the symptom-checker service under test over HTTP.
type backendProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

func newBackendProvider(spec models.ProviderSpec) (*backendProvider, error) {
	var params backendParams
	if err := spec.DecodeParams(&params); err != nil {
		return nil, err
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("BACKEND_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	return &backendProvider{
		name:    spec.Name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: callTimeout},
	}, nil
}

func (b *backendProvider) Name() string              { return b.name }
func (b *backendProvider) Kind() models.ProviderKind { return models.KindBackend }

// checkRequest is the /check request body.
type checkRequest struct {
	Symptoms      string `json:"symptoms"`
	FamilyHistory string `json:"family_history,omitempty"`
}

func (b *backendProvider) Invoke(ctx context.Context, tc models.TestCase) models.RawResult {
	body, err := json.Marshal(checkRequest{
		Symptoms:      tc.Symptoms,
		FamilyHistory: tc.FamilyHistory,
	})
	if err != nil {
		return errorResult(b.name, tc.ID, err)
	}

	endpoint := b.baseURL + "/check?" + url.Values{"target_language": {tc.Language}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errorResult(b.name, tc.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return errorResult(b.name, tc.ID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResult(b.name, tc.ID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorResult(b.name, tc.ID,
			fmt.Errorf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(respBody))))
	}

	return models.RawResult{
		Provider: b.name,
		CaseID:   tc.ID,
		Status:   models.StatusOK,
		Raw:      string(respBody),
	}
}

// Probe checks the backend health endpoint once before a run.
func (b *backendProvider) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %s", resp.Status)
	}
	return nil
}
