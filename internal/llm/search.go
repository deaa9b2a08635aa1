// Package llm - search.go carries search-grounded generation over the Gemini
// REST API. The SDK does not expose the google_search tool, so these requests
// are built and sent directly.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultSearchBaseURL is the Gemini REST endpoint for grounded generation.
const defaultSearchBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type searchRequest struct {
	Contents         []searchContent `json:"contents"`
	GenerationConfig searchGenConfig `json:"generationConfig"`
	Tools            []searchTool    `json:"tools"`
}

type searchContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []searchPart `json:"parts"`
}

type searchPart struct {
	Text string `json:"text,omitempty"`
}

type searchGenConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type searchTool struct {
	GoogleSearch *googleSearchTool `json:"google_search,omitempty"`
}

// googleSearchTool enables Google Search grounding; the API takes an empty object.
type googleSearchTool struct{}

type searchResponse struct {
	Candidates []struct {
		Content struct {
			Parts []searchPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// generateWithSearch sends a search-grounded text request and returns the
// joined candidate text. The caller is responsible for schema validation.
func (c *GeminiClient) generateWithSearch(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := searchRequest{
		Contents: []searchContent{
			{Role: "user", Parts: []searchPart{{Text: prompt}}},
		},
		GenerationConfig: searchGenConfig{Temperature: 0.2},
		Tools:            []searchTool{{GoogleSearch: &googleSearchTool{}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &NetworkError{Message: "failed to marshal grounded request", Cause: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.searchBaseURL, modelName, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", &NetworkError{Message: "failed to create grounded request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Message: "failed to read grounded response", Cause: err}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &NetworkError{Message: fmt.Sprintf("unparseable grounded response (HTTP %d)", resp.StatusCode), Cause: err}
	}
	if parsed.Error != nil {
		return "", &NetworkError{Message: fmt.Sprintf("grounded request rejected (HTTP %d): %s", resp.StatusCode, parsed.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{Message: fmt.Sprintf("grounded request failed with HTTP %d", resp.StatusCode)}
	}

	if len(parsed.Candidates) == 0 {
		return "", &EmptyResponseError{Model: modelName}
	}
	var texts []string
	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	joined := strings.Join(texts, "")
	if strings.TrimSpace(joined) == "" {
		return "", &EmptyResponseError{Model: modelName}
	}

	return joined, nil
}
