// Package openai implements the ai.Generator interface over the
// OpenAI-compatible chat completions HTTP API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avaskin/contentforge/internal/ai"
	"github.com/avaskin/contentforge/internal/model"
)

type Provider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

var _ ai.Generator = (*Provider)(nil)

// NewProvider constructs a provider for the given endpoint and model.
func NewProvider(baseURL, apiKey, modelName string) *Provider {
	return &Provider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends a chat completion request built from the generation parameters.
func (p *Provider) Generate(ctx context.Context, req model.GenerationRequest) (string, string, error) {
	payload := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: ai.SystemPrompt(req)},
			{Role: "user", Content: ai.UserPrompt(req)},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", "", fmt.Errorf("openai: %s (status %d)", out.Error.Message, resp.StatusCode)
		}
		return "", "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", "", errors.New("openai: empty choices in response")
	}

	modelUsed := out.Model
	if modelUsed == "" {
		modelUsed = p.Model
	}
	return out.Choices[0].Message.Content, modelUsed, nil
}
