package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	bmerrors "github.com/pocketmark/api/bookmarks/errors"
)

// Classifier produces a structured categorization for bookmark text.
type Classifier interface {
	Classify(ctx context.Context, input Input) (*Result, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint with a JSON
// schema constraint on the response.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ Classifier = (*Client)(nil)

// ClientConfig contains classifier client configuration
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new classification client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Chat-completion request/response structures (OpenAI compatible)
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func categorizationSchema() jsonSchema {
	return jsonSchema{
		Name:   "bookmark_categorization",
		Strict: true,
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"category_id":           map[string]interface{}{"type": "number"},
				"confidence":            map[string]interface{}{"type": "number"},
				"reasoning":             map[string]interface{}{"type": "string"},
				"suggested_description": map[string]interface{}{"type": "string"},
				"content_type":          map[string]interface{}{"type": "string"},
			},
			"required":             []string{"category_id", "confidence", "reasoning", "suggested_description", "content_type"},
			"additionalProperties": false,
		},
	}
}

// Classify sends the bookmark text to the classification service and parses
// the structured response. Schema violations are classification errors, never
// silently coerced.
func (c *Client) Classify(ctx context.Context, input Input) (*Result, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: buildPrompt(input)},
		},
		ResponseFormat: &responseFormat{
			Type:       "json_schema",
			JSONSchema: categorizationSchema(),
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create classification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrClassification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: service returned status %d: %s", bmerrors.ErrClassification, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", bmerrors.ErrClassification, err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", bmerrors.ErrClassification)
	}

	result, err := parseResult(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrClassification, err)
	}
	return result, nil
}

// parseResult parses the message content as the categorization object and
// enforces the exact field set.
func parseResult(content string) (*Result, error) {
	cleaned := strings.TrimSpace(content)
	// Some models wrap JSON in markdown code fences despite the schema.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("malformed response content: %v", err)
	}

	required := []string{"category_id", "confidence", "reasoning", "suggested_description", "content_type"}
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("missing field %q", name)
		}
	}
	if len(fields) != len(required) {
		return nil, fmt.Errorf("unexpected extra fields in response")
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("response field has wrong type: %v", err)
	}

	if err := validateResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
