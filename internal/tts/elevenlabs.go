// Package tts converts assistant replies to speech through the ElevenLabs API.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/keyring"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Voice settings tuned for a steady interviewer delivery
const (
	voiceStability       = 0.35
	voiceSimilarityBoost = 0.7
)

// Client synthesizes speech with the ElevenLabs text-to-speech endpoint,
// rotating through the configured API keys.
type Client struct {
	keys          *keyring.Ring
	baseURL       string
	modelID       string
	maleVoiceID   string
	femaleVoiceID string
	client        *http.Client
}

// NewClient creates an ElevenLabs client over the shared key ring.
func NewClient(keys *keyring.Ring, cfg config.TTSConfig) *Client {
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "eleven_turbo_v2"
	}
	return &Client{
		keys:          keys,
		baseURL:       defaultBaseURL,
		modelID:       modelID,
		maleVoiceID:   cfg.MaleVoiceID,
		femaleVoiceID: cfg.FemaleVoiceID,
		client:        &http.Client{},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize renders text as MPEG audio in the requested voice style
// ("male" or anything else for female).
func (c *Client) Synthesize(ctx context.Context, text, voiceStyle string) ([]byte, error) {
	apiKey := c.keys.Next(keyring.ServiceElevenLabs)
	if apiKey == "" {
		return nil, domain.ErrNoCredentials
	}

	voiceID := c.femaleVoiceID
	if voiceStyle == "male" {
		voiceID = c.maleVoiceID
	}

	body, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       voiceStability,
			SimilarityBoost: voiceSimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("xi-api-key", apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			Status:  resp.StatusCode,
			Message: "speech synthesis failed",
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	return audio, nil
}
