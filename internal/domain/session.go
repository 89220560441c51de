package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Speaker roles in a transcript turn
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TerminationSentinel replaces the caller's message once the misuse limit is
// reached. The model is instructed to close out the interview when it sees it.
const TerminationSentinel = "[END_INTERVIEW_INAPPROPRIATE_BEHAVIOR]"

// SystemMarkerPrefix marks internal messages that bypass content moderation.
const SystemMarkerPrefix = "["

// Turn is a single entry in a session transcript
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the structured response contract expected from the model
type Reply struct {
	TextResponse  string `json:"text_response"`
	VoiceResponse string `json:"voice_response"`
	End           bool   `json:"end"`
}

// Session represents one interview conversation. The configuration fields and
// ControlPrompt are immutable after creation; the transcript and counters are
// mutated only while the session lock is held.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Domain          string     `json:"domain"`
	Role            string     `json:"role"`
	InterviewType   string     `json:"interview_type"`
	Difficulty      string     `json:"difficulty"`
	DurationMinutes int        `json:"duration_minutes"`
	ControlPrompt   string     `json:"-"`
	Transcript      []Turn     `json:"transcript"`
	ExchangeCount   int        `json:"exchange_count"`
	QuestionCount   int        `json:"question_count"`
	Inappropriate   int        `json:"inappropriate_count"`
	Redirects       int        `json:"redirect_count"`
	CreatedAt       time.Time  `json:"created_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`

	mu sync.Mutex
}

// Lock serializes read-modify-write access to the session's transcript and
// counters. The outbound model call must not happen while it is held.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Ended reports whether the model has closed the interview.
func (s *Session) Ended() bool { return s.EndedAt != nil }

// SessionSummary is the owner-facing projection of a session. It deliberately
// excludes the transcript.
type SessionSummary struct {
	ID            uuid.UUID `json:"session_id"`
	Domain        string    `json:"domain"`
	Role          string    `json:"role"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
	ExchangeCount int       `json:"exchange_count"`
	Ended         bool      `json:"ended"`
}

// StartSessionRequest carries the interview configuration for a new session
type StartSessionRequest struct {
	Domain          string `json:"domain" validate:"required"`
	Role            string `json:"role" validate:"required"`
	InterviewType   string `json:"interview_type"`
	Difficulty      string `json:"difficulty"`
	DurationMinutes int    `json:"duration" validate:"omitempty,min=5,max=120"`
}

// ChatRequest carries one user turn
type ChatRequest struct {
	UserMessage string `json:"user_message" validate:"required"`
}
