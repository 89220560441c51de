package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mockmate/interview-api/internal/api/handler"
	customMiddleware "github.com/mockmate/interview-api/internal/api/middleware"
	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/keyring"
	"github.com/mockmate/interview-api/internal/llm"
	"github.com/mockmate/interview-api/internal/llm/gemini"
	"github.com/mockmate/interview-api/internal/llm/openrouter"
	"github.com/mockmate/interview-api/internal/repository/redis"
	"github.com/mockmate/interview-api/internal/security"
	"github.com/mockmate/interview-api/internal/service"
	"github.com/mockmate/interview-api/internal/store"
	"github.com/mockmate/interview-api/internal/tts"
)

// NewRouter wires every component and configures the HTTP router. It also
// returns the interview service so the caller can run the session reaper.
func NewRouter(cfg *config.Config, redisClient *redis.Client, clock clockwork.Clock) (http.Handler, *service.InterviewService) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Register every configured credential on the shared key ring
	keys := keyring.New()
	keys.Register(keyring.ServiceOpenRouter, cfg.LLM.OpenRouter.Keys...)
	keys.Register(keyring.ServiceGemini, cfg.LLM.Gemini.Keys...)
	keys.Register(keyring.ServiceElevenLabs, cfg.TTS.Keys...)

	// Select the model transport
	var transport llm.Transport
	switch cfg.LLM.Provider {
	case keyring.ServiceGemini:
		transport = gemini.NewProvider(cfg.LLM.Gemini)
	default:
		transport = openrouter.NewProvider(cfg.LLM.OpenRouter)
	}
	log.Info().
		Str("provider", transport.Name()).
		Int("keys", keys.Size(transport.Name())).
		Msg("model transport initialized")

	policy := llm.DefaultRetryPolicy()
	if cfg.LLM.Retry.MaxAttempts > 0 {
		policy = llm.RetryPolicy{
			MaxAttempts:    cfg.LLM.Retry.MaxAttempts,
			Backoff:        cfg.LLM.Retry.Backoff,
			AttemptTimeout: cfg.LLM.Retry.AttemptTimeout,
		}
	}
	gateway := llm.NewGateway(transport, keys, policy, clock)

	// Initialize services
	sessions := store.NewSessionStore()
	interviewService := service.NewInterviewService(sessions, gateway, clock, cfg.Session)
	authService := service.NewAuthService(cfg.Auth.Users, jwtManager)
	synth := tts.NewClient(keys, cfg.TTS)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(interviewService)
	ttsHandler := handler.NewTTSHandler(synth)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	// Rate limiting is optional: it only runs when Redis is configured
	var rateLimitMiddleware *customMiddleware.RateLimitMiddleware
	if redisClient != nil {
		rateLimiter := redis.NewRateLimiter(
			redisClient,
			clock,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
		rateLimitMiddleware = customMiddleware.NewRateLimitMiddleware(rateLimiter)
	}

	// Service banner
	r.Get("/", handler.Root(keys, interviewService, cfg.LLM.Provider))

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			if rateLimitMiddleware != nil {
				r.Use(rateLimitMiddleware.Limit)
			}

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Post("/", sessionHandler.Start)
				r.Post("/{sessionID}/chat", sessionHandler.Chat)
			})

			r.Post("/tts", ttsHandler.Synthesize)
		})
	})

	return r, interviewService
}
