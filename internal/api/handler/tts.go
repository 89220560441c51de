package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mockmate/interview-api/internal/api/response"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/tts"
)

// TTSHandler handles speech synthesis endpoints
type TTSHandler struct {
	synth *tts.Client
}

// NewTTSHandler creates a new TTS handler
func NewTTSHandler(synth *tts.Client) *TTSHandler {
	return &TTSHandler{synth: synth}
}

// Synthesize renders text as spoken audio
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string `json:"text" validate:"required"`
		VoiceStyle string `json:"voice_style"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	audio, err := h.synth.Synthesize(r.Context(), req.Text, req.VoiceStyle)
	if err != nil {
		if errors.Is(err, domain.ErrNoCredentials) {
			response.InternalError(w, "no speech credentials configured")
			return
		}
		log.Error().Err(err).Msg("speech synthesis failed")
		response.InternalError(w, "speech synthesis failed")
		return
	}

	response.Audio(w, audio)
}
