package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/careassist/medeval/internal/models"
)

const (
	directModelMaxTokens   = 512
	directModelTemperature = 0.3
)

// directModelParams are the connection fields for a direct-model entry.
type directModelParams struct {
	ModelID string `mapstructure:"model_id"`
	BaseURL string `mapstructure:"base_url"`
}

// directModelProvider submits the case prompt straight to a hosted model
// with a strict structured-output schema and takes the returned content
// verbatim.
type directModelProvider struct {
	name    string
	modelID string
	client  *openai.Client
}

func newDirectModelProvider(spec models.ProviderSpec) (*directModelProvider, error) {
	var params directModelParams
	if err := spec.DecodeParams(&params); err != nil {
		return nil, err
	}
	if params.ModelID == "" {
		return nil, fmt.Errorf("provider %q: direct-model entries need a model_id", spec.Name)
	}

	p := &directModelProvider{
		name:    spec.Name,
		modelID: params.ModelID,
	}

	// A missing credential is not fatal at construction time: the run
	// proceeds and each call records an error row, matching the behavior
	// of an unreachable backend.
	token := os.Getenv("MEDEVAL_API_TOKEN")
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}
	if token != "" {
		cfg := openai.DefaultConfig(token)
		if params.BaseURL != "" {
			cfg.BaseURL = params.BaseURL
		}
		p.client = openai.NewClientWithConfig(cfg)
	}

	return p, nil
}

func (d *directModelProvider) Name() string              { return d.name }
func (d *directModelProvider) Kind() models.ProviderKind { return models.KindDirectModel }

func (d *directModelProvider) Invoke(ctx context.Context, tc models.TestCase) models.RawResult {
	if d.client == nil {
		return errorResult(d.name, tc.ID, fmt.Errorf("MEDEVAL_API_TOKEN or HF_TOKEN not set"))
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(tc.Symptoms, tc.FamilyHistory)},
		},
		MaxTokens:   directModelMaxTokens,
		Temperature: directModelTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "EvalResponse",
				Schema: json.RawMessage(models.AnswerSchemaJSON),
				Strict: true,
			},
		},
	})
	if err != nil {
		return errorResult(d.name, tc.ID, err)
	}
	if len(resp.Choices) == 0 {
		return errorResult(d.name, tc.ID, fmt.Errorf("model %s returned no choices", d.modelID))
	}

	return models.RawResult{
		Provider: d.name,
		CaseID:   tc.ID,
		Status:   models.StatusOK,
		Raw:      resp.Choices[0].Message.Content,
	}
}
