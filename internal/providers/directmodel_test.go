package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careassist/medeval/internal/models"
)

func directModelSpec(params map[string]any) models.ProviderSpec {
	return models.ProviderSpec{Name: "qwen", Type: "direct-model", Params: params}
}

func TestNewDirectModelProvider_RequiresModelID(t *testing.T) {
	_, err := newDirectModelProvider(directModelSpec(map[string]any{}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "model_id")
}

func TestDirectModelProvider_MissingTokenIsErrorRow(t *testing.T) {
	t.Setenv("MEDEVAL_API_TOKEN", "")
	t.Setenv("HF_TOKEN", "")

	p, err := newDirectModelProvider(directModelSpec(map[string]any{"model_id": "test-model"}))
	require.NoError(t, err, "a missing credential must not abort construction")

	result := p.Invoke(context.Background(), models.TestCase{ID: "c1", Symptoms: "cough", Language: "en"})
	require.Equal(t, models.StatusError, result.Status)
	require.Contains(t, result.Raw, "TOKEN")
}

func TestDirectModelProvider_Invoke(t *testing.T) {
	const answer = `{"probable_conditions":["Influenza","Common cold"],"recommendations":"rest; hydrate; monitor","disclaimer":"educational purposes"}`

	var gotReq struct {
		Model          string `json:"model"`
		MaxTokens      int    `json:"max_tokens"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			} `json:"json_schema"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + jsonString(answer) + `}}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	t.Setenv("MEDEVAL_API_TOKEN", "test-token")

	p, err := newDirectModelProvider(directModelSpec(map[string]any{
		"model_id": "test-model",
		"base_url": srv.URL + "/v1",
	}))
	require.NoError(t, err)

	result := p.Invoke(context.Background(), models.TestCase{
		ID:            "c1",
		Symptoms:      "fever and chills",
		FamilyHistory: "heart disease",
		Language:      "en",
	})

	require.Equal(t, models.StatusOK, result.Status)
	require.Equal(t, answer, result.Raw)

	require.Equal(t, "test-model", gotReq.Model)
	require.Equal(t, directModelMaxTokens, gotReq.MaxTokens)
	require.Equal(t, "json_schema", gotReq.ResponseFormat.Type)
	require.Equal(t, "EvalResponse", gotReq.ResponseFormat.JSONSchema.Name)
	require.True(t, gotReq.ResponseFormat.JSONSchema.Strict)
	require.Contains(t, gotReq.ResponseFormat.JSONSchema.Schema, "required")

	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
	require.Contains(t, gotReq.Messages[1].Content, "fever and chills")
	require.Contains(t, gotReq.Messages[1].Content, "heart disease")
}

func TestDirectModelProvider_CallFailureIsErrorRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model is overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("MEDEVAL_API_TOKEN", "test-token")

	p, err := newDirectModelProvider(directModelSpec(map[string]any{
		"model_id": "test-model",
		"base_url": srv.URL + "/v1",
	}))
	require.NoError(t, err)

	result := p.Invoke(context.Background(), models.TestCase{ID: "c1", Symptoms: "cough", Language: "en"})
	require.Equal(t, models.StatusError, result.Status)
	require.NotEmpty(t, result.Raw)
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
