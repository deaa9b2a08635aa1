package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/pitch-coach/internal/schemas"
)

// Media is an opaque binary attachment (typically a recorded demo video).
type Media struct {
	MIMEType string
	Data     []byte
}

// Schema declares the exact shape of the expected JSON output. Definition is
// the provider-native response schema; Document is the equivalent JSON Schema
// used to validate the response text before it is returned.
type Schema struct {
	Name       string
	Definition *genai.Schema
	Document   string
}

// StructuredRequest describes one structured inference call.
type StructuredRequest struct {
	Prompt       string
	Tier         ModelTier
	Schema       *Schema
	Media        *Media
	EnableSearch bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateText generates free text with a hard output-length cap
	GenerateText(ctx context.Context, prompt string, tier ModelTier, maxOutputTokens int32) (string, error)
	// GenerateStructured submits a prompt plus a strict output schema and
	// returns response bytes that are guaranteed to validate against it
	GenerateStructured(ctx context.Context, req *StructuredRequest) ([]byte, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini. Search-grounded requests
// bypass the SDK and go over the REST surface directly (see search.go), so the
// client keeps its own API key and HTTP client alongside the SDK handle.
type GeminiClient struct {
	client        *genai.Client
	config        *Config
	apiKey        string
	httpClient    *http.Client
	searchBaseURL string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:        client,
		config:        config,
		apiKey:        apiKey,
		httpClient:    &http.Client{},
		searchBaseURL: defaultSearchBaseURL,
	}, nil
}

// GenerateText generates free text using the specified model tier.
// maxOutputTokens <= 0 leaves the provider default in place.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, tier ModelTier, maxOutputTokens int32) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &NetworkError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	if maxOutputTokens > 0 {
		model.SetMaxOutputTokens(maxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyTransportError(err)
	}

	return extractTextFromResponse(resp, modelName)
}

// GenerateStructured submits the request and validates the response text
// against the declared schema before returning it.
func (c *GeminiClient) GenerateStructured(ctx context.Context, req *StructuredRequest) ([]byte, error) {
	if req == nil || req.Schema == nil {
		return nil, &SchemaParseError{Message: "structured request requires a schema"}
	}

	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return nil, &NetworkError{Message: fmt.Sprintf("no model configured for tier %s", req.Tier)}
	}

	var text string
	var err error
	if req.EnableSearch {
		// The SDK has no Google Search grounding tool, and the API rejects a
		// declared response schema combined with search anyway, so this call
		// goes over the REST surface with the google_search tool: the prompt
		// requests JSON and the validation pass below enforces the schema.
		text, err = c.generateWithSearch(ctx, modelName, req.Prompt)
	} else {
		model := c.client.GenerativeModel(modelName)
		model.SetTemperature(0.2)
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema.Definition

		parts := make([]genai.Part, 0, 2)
		if req.Media != nil {
			parts = append(parts, genai.Blob{MIMEType: req.Media.MIMEType, Data: req.Media.Data})
		}
		parts = append(parts, genai.Text(req.Prompt))

		var resp *genai.GenerateContentResponse
		resp, err = model.GenerateContent(ctx, parts...)
		if err != nil {
			return nil, classifyTransportError(err)
		}
		text, err = extractTextFromResponse(resp, modelName)
	}
	if err != nil {
		return nil, err
	}

	text = CleanJSONBlock(text)
	if err := schemas.ValidateJSONString(req.Schema.Document, text); err != nil {
		return nil, &SchemaParseError{
			Message: fmt.Sprintf("response does not match %s schema", req.Schema.Name),
			Cause:   err,
		}
	}

	return []byte(text), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// classifyTransportError maps provider call failures into the error taxonomy.
// Timeouts and cancellations surface as NetworkError per the retry contract.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &NetworkError{Message: "inference call timed out", Cause: err}
	}
	return &NetworkError{Message: "failed to generate content", Cause: err}
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse, modelName string) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &EmptyResponseError{Model: modelName}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &EmptyResponseError{Model: modelName}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &EmptyResponseError{Model: modelName}
	}

	joined := strings.Join(parts, "")
	if strings.TrimSpace(joined) == "" {
		return "", &EmptyResponseError{Model: modelName}
	}

	return joined, nil
}
