package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/moderation"
	"github.com/mockmate/interview-api/internal/store"
)

// Completer produces a structured model reply for a transcript. Implemented
// by llm.Gateway.
type Completer interface {
	Complete(ctx context.Context, controlPrompt string, transcript []domain.Turn) (*domain.Reply, error)
}

// firstTurnMessage seeds every new session's transcript.
const firstTurnMessage = "Start the interview with warm small talk as instructed."

// Defaults applied when the start request leaves fields empty
const (
	defaultInterviewType   = "Mixed"
	defaultDifficulty      = "Intermediate"
	defaultDurationMinutes = 15
)

// InterviewService owns session lifecycle and conversation integrity: it is
// the only component that creates, mutates and removes sessions.
type InterviewService struct {
	store     *store.SessionStore
	completer Completer
	clock     clockwork.Clock

	warmupExchanges int
	misuseLimit     int
	maxAge          time.Duration
	endedGrace      time.Duration
}

// NewInterviewService creates the session engine.
func NewInterviewService(sessions *store.SessionStore, completer Completer, clock clockwork.Clock, cfg config.SessionConfig) *InterviewService {
	return &InterviewService{
		store:           sessions,
		completer:       completer,
		clock:           clock,
		warmupExchanges: cfg.WarmupExchanges,
		misuseLimit:     cfg.MisuseLimit,
		maxAge:          cfg.MaxAge,
		endedGrace:      cfg.EndedGrace,
	}
}

// StartSession validates the configuration, obtains the opening reply from
// the model and persists the new session. No session is created when the
// model call fails.
func (s *InterviewService) StartSession(ctx context.Context, ownerID string, req domain.StartSessionRequest) (*domain.Session, *domain.Reply, error) {
	if strings.TrimSpace(req.Domain) == "" || strings.TrimSpace(req.Role) == "" {
		return nil, nil, &domain.ValidationError{Message: "domain and role are required"}
	}
	if req.InterviewType == "" {
		req.InterviewType = defaultInterviewType
	}
	if req.Difficulty == "" {
		req.Difficulty = defaultDifficulty
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = defaultDurationMinutes
	}

	controlPrompt := BuildControlPrompt(req.Domain, req.Role, req.InterviewType, req.Difficulty, req.DurationMinutes)
	opening := domain.Turn{Role: domain.RoleUser, Content: firstTurnMessage}

	reply, err := s.completer.Complete(ctx, controlPrompt, []domain.Turn{opening})
	if err != nil {
		return nil, nil, err
	}

	sess := &domain.Session{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Domain:          req.Domain,
		Role:            req.Role,
		InterviewType:   req.InterviewType,
		Difficulty:      req.Difficulty,
		DurationMinutes: req.DurationMinutes,
		ControlPrompt:   controlPrompt,
		Transcript:      []domain.Turn{opening, assistantTurn(reply)},
		CreatedAt:       s.clock.Now(),
	}
	s.store.Put(sess)

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("owner_id", ownerID).
		Str("domain", req.Domain).
		Str("role", req.Role).
		Msg("interview session started")

	return sess, reply, nil
}

// Chat runs one exchange: moderation, misuse escalation, transcript append,
// model call with hidden context, assistant append. The user turn is kept on
// model failure so the caller can resend.
func (s *InterviewService) Chat(ctx context.Context, ownerID string, sessionID uuid.UUID, userMessage string) (*domain.Reply, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.OwnerID != ownerID {
		return nil, domain.ErrNotSessionOwner
	}

	sess.Lock()

	// Internal bracketed messages bypass moderation entirely.
	effective := userMessage
	if !strings.HasPrefix(userMessage, domain.SystemMarkerPrefix) {
		flags := moderation.Classify(userMessage)
		if flags.NeedsRedirection {
			sess.Inappropriate++
			sess.Redirects++
		}
		if sess.Inappropriate >= s.misuseLimit {
			// Strike limit reached: the caller's text is discarded and the
			// model sees only the termination signal.
			effective = domain.TerminationSentinel
			log.Warn().
				Str("session_id", sess.ID.String()).
				Int("strikes", sess.Inappropriate).
				Msg("misuse limit reached, forcing interview termination")
		}
	}

	sess.Transcript = append(sess.Transcript, domain.Turn{Role: domain.RoleUser, Content: effective})
	sess.ExchangeCount++
	if sess.ExchangeCount > s.warmupExchanges {
		sess.QuestionCount++
	}

	outbound := s.outboundTranscript(sess, effective)
	controlPrompt := sess.ControlPrompt
	sess.Unlock()

	// The model call happens outside every lock so a slow upstream only
	// stalls this session's caller.
	reply, err := s.completer.Complete(ctx, controlPrompt, outbound)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if !s.store.Has(sess.ID) {
		// Reaped while the call was in flight.
		return nil, domain.ErrSessionNotFound
	}

	sess.Transcript = append(sess.Transcript, assistantTurn(reply))
	if reply.End && sess.EndedAt == nil {
		now := s.clock.Now()
		sess.EndedAt = &now
	}

	return reply, nil
}

// outboundTranscript builds the derived view sent to the model: the stored
// turns with the last one rewrapped to carry the hidden context block. The
// stored transcript itself is never touched.
func (s *InterviewService) outboundTranscript(sess *domain.Session, effective string) []domain.Turn {
	elapsed := s.clock.Now().Sub(sess.CreatedAt).Minutes()
	timeLeft := float64(sess.DurationMinutes) - elapsed

	outbound := make([]domain.Turn, len(sess.Transcript))
	copy(outbound, sess.Transcript)
	outbound[len(outbound)-1] = domain.Turn{
		Role: domain.RoleUser,
		Content: fmt.Sprintf(`[CONTEXT - HIDDEN]
Exchanges: %d
Questions: %d
Inappropriate: %d
Redirects: %d
Time left: %.1f min
[END]
User message: %s`,
			sess.ExchangeCount, sess.QuestionCount, sess.Inappropriate, sess.Redirects, timeLeft, effective),
	}
	return outbound
}

// ListSessions returns summaries of the owner's sessions, transcript omitted.
func (s *InterviewService) ListSessions(ownerID string) []domain.SessionSummary {
	sessions := s.store.ListByOwner(ownerID)
	summaries := make([]domain.SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		summaries = append(summaries, domain.SessionSummary{
			ID:            sess.ID,
			Domain:        sess.Domain,
			Role:          sess.Role,
			Difficulty:    sess.Difficulty,
			CreatedAt:     sess.CreatedAt,
			ExchangeCount: sess.ExchangeCount,
			Ended:         sess.Ended(),
		})
		sess.Unlock()
	}
	return summaries
}

// Reap removes sessions past their lifetime and returns how many went.
func (s *InterviewService) Reap() int {
	return s.store.Reap(s.clock.Now(), s.maxAge, s.endedGrace)
}

// ActiveSessions reports the number of live sessions, for health reporting.
func (s *InterviewService) ActiveSessions() int {
	return s.store.Len()
}

func assistantTurn(reply *domain.Reply) domain.Turn {
	content, err := json.Marshal(reply)
	if err != nil {
		// Reply is a plain struct; this cannot realistically fail.
		content = []byte(reply.TextResponse)
	}
	return domain.Turn{Role: domain.RoleAssistant, Content: string(content)}
}
