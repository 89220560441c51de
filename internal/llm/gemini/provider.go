package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/keyring"
	"github.com/mockmate/interview-api/internal/llm"
)

// Provider implements llm.Transport for the Gemini API
type Provider struct {
	model       string
	temperature float32
}

// NewProvider creates a new Gemini transport.
func NewProvider(cfg config.GeminiConfig) *Provider {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Provider{model: model, temperature: 0.7}
}

// Name returns the keyring service name
func (p *Provider) Name() string {
	return keyring.ServiceGemini
}

// Send runs the transcript through a Gemini chat and returns the raw reply
// text. The client is created per call because the credential rotates.
func (p *Provider) Send(ctx context.Context, apiKey, controlPrompt string, transcript []domain.Turn) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	temperature := p.temperature
	model.Temperature = &temperature
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(controlPrompt)},
	}

	if len(transcript) == 0 {
		return "", fmt.Errorf("empty transcript")
	}

	chat := model.StartChat()
	for _, turn := range transcript[:len(transcript)-1] {
		chat.History = append(chat.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	last := transcript[len(transcript)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", &llm.StatusError{Code: apiErr.Code}
		}
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func geminiRole(role string) string {
	if role == domain.RoleAssistant {
		return "model"
	}
	return "user"
}
