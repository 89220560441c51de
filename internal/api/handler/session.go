package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mockmate/interview-api/internal/api/middleware"
	"github.com/mockmate/interview-api/internal/api/response"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/service"
)

// SessionHandler handles interview session endpoints
type SessionHandler struct {
	interviews *service.InterviewService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(interviews *service.InterviewService) *SessionHandler {
	return &SessionHandler{interviews: interviews}
}

// Start creates a new interview session and returns the opening reply
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetCallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req domain.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	sess, reply, err := h.interviews.StartSession(r.Context(), callerID, req)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"session_id":     sess.ID,
		"domain":         sess.Domain,
		"role":           sess.Role,
		"interview_type": sess.InterviewType,
		"difficulty":     sess.Difficulty,
		"duration":       sess.DurationMinutes,
		"created_at":     sess.CreatedAt,
		"reply":          reply,
	})
}

// Chat runs one exchange on an existing session
func (h *SessionHandler) Chat(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetCallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.BadRequest(w, "invalid session ID")
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	reply, err := h.interviews.Chat(r.Context(), callerID, sessionID, req.UserMessage)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"session_id": sessionID,
		"reply":      reply,
	})
}

// List returns summaries of the caller's sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetCallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	response.OK(w, h.interviews.ListSessions(callerID))
}

// writeSessionError maps session engine errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var uerr *domain.UpstreamError

	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr.Message)
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(w, "session not found")
	case errors.Is(err, domain.ErrNotSessionOwner):
		response.Forbidden(w, "session belongs to another caller")
	case errors.Is(err, domain.ErrNoCredentials):
		log.Error().Err(err).Msg("interview request failed: no credentials")
		response.InternalError(w, "no model credentials configured")
	case errors.As(err, &uerr):
		log.Error().Err(err).Msg("interview request failed upstream")
		response.InternalError(w, "the interview engine is unavailable, try again")
	default:
		log.Error().Err(err).Msg("interview request failed")
		response.InternalError(w, "internal error")
	}
}
