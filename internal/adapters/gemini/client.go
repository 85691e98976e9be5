// Package gemini implements the text-generation port against the
// Gemini generateContent REST API.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
	"github.com/ewilliams-labs/resonate/internal/core/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// preferredModels is tried in order; the first model that answers wins.
var preferredModels = []string{
	"gemini-1.5-pro",
	"gemini-1.5-flash",
}

// Client is the HTTP client for the Gemini adapter.
type Client struct {
	http   *resty.Client
	apiKey string
	models []string
}

// compile-time interface assertion
var _ ports.TextGenerator = (*Client)(nil)

// NewClient constructs a Gemini client. baseURL is overridable for
// tests; "" selects the public endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(30 * time.Second),
		apiKey: apiKey,
		models: preferredModels,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateText sends the prompt to each preferred model in turn and
// returns the first non-empty reply. When every model fails the last
// failure is surfaced as *domain.ExternalServiceError; the pipeline
// falls back rather than retrying.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range c.models {
		text, err := c.generate(ctx, model, prompt)
		if err != nil {
			log.Printf("WARN gemini adapter: model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		return text, nil
	}
	return "", &domain.ExternalServiceError{Service: "gemini", Err: lastErr}
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	var parsed generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&parsed).
		SetError(&parsed).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.IsError() {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}
