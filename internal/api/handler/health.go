package handler

import (
	"net/http"

	"github.com/mockmate/interview-api/internal/api/response"
	"github.com/mockmate/interview-api/internal/keyring"
	"github.com/mockmate/interview-api/internal/service"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// Root returns a service banner with credential and session counts, handy
// for a quick deployment sanity check.
func Root(keys *keyring.Ring, interviews *service.InterviewService, provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"service":         "AI Interview Practitioner API",
			"provider":        provider,
			"model_keys":      keys.Size(provider),
			"tts_keys":        keys.Size(keyring.ServiceElevenLabs),
			"active_sessions": interviews.ActiveSessions(),
		})
	}
}
