package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/keyring"
	"github.com/mockmate/interview-api/internal/llm"
)

// Provider implements llm.Transport for the OpenRouter chat-completions API
type Provider struct {
	baseURL     string
	model       string
	referer     string
	appTitle    string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewProvider creates a new OpenRouter transport. The per-request deadline is
// owned by the gateway's context, so the client carries no timeout of its own.
func NewProvider(cfg config.OpenRouterConfig) *Provider {
	model := cfg.Model
	if model == "" {
		model = "google/gemma-2-9b-it"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Provider{
		baseURL:     baseURL,
		model:       model,
		referer:     cfg.Referer,
		appTitle:    cfg.AppTitle,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{},
	}
}

// Name returns the keyring service name
func (p *Provider) Name() string {
	return keyring.ServiceOpenRouter
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Send issues one chat-completion request and returns the raw reply text.
func (p *Provider) Send(ctx context.Context, apiKey, controlPrompt string, transcript []domain.Turn) (string, error) {
	messages := make([]chatMessage, 0, len(transcript)+1)
	messages = append(messages, chatMessage{Role: "system", Content: controlPrompt})
	for _, turn := range transcript {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.appTitle != "" {
		httpReq.Header.Set("X-Title", p.appTitle)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &llm.StatusError{Code: resp.StatusCode}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
