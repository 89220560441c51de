package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Users           []UserConfig  `mapstructure:"users"`
}

// UserConfig is a statically configured caller. PasswordHash is a bcrypt hash.
type UserConfig struct {
	ID           string `mapstructure:"id"`
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

type LLMConfig struct {
	Provider   string           `mapstructure:"provider"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Retry      RetryConfig      `mapstructure:"retry"`
}

type OpenRouterConfig struct {
	Keys        []string `mapstructure:"keys"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	Referer     string   `mapstructure:"referer"`
	AppTitle    string   `mapstructure:"app_title"`
	Temperature float64  `mapstructure:"temperature"`
	MaxTokens   int      `mapstructure:"max_tokens"`
}

type GeminiConfig struct {
	Keys  []string `mapstructure:"keys"`
	Model string   `mapstructure:"model"`
}

type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	Backoff        time.Duration `mapstructure:"backoff"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

type TTSConfig struct {
	Keys          []string `mapstructure:"keys"`
	ModelID       string   `mapstructure:"model_id"`
	MaleVoiceID   string   `mapstructure:"male_voice_id"`
	FemaleVoiceID string   `mapstructure:"female_voice_id"`
}

type SessionConfig struct {
	MaxAge          time.Duration `mapstructure:"max_age"`
	EndedGrace      time.Duration `mapstructure:"ended_grace"`
	ReapInterval    time.Duration `mapstructure:"reap_interval"`
	WarmupExchanges int           `mapstructure:"warmup_exchanges"`
	MisuseLimit     int           `mapstructure:"misuse_limit"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether Redis-backed rate limiting is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type SecurityConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Credential lists arrive as comma-separated env vars
	if keys := splitKeys(os.Getenv("OPENROUTER_KEYS")); len(keys) > 0 {
		cfg.LLM.OpenRouter.Keys = keys
	}
	if keys := splitKeys(os.Getenv("GEMINI_KEYS")); len(keys) > 0 {
		cfg.LLM.Gemini.Keys = keys
	}
	if keys := splitKeys(os.Getenv("ELEVEN_KEYS")); len(keys) > 0 {
		cfg.TTS.Keys = keys
	}

	return &cfg, nil
}

// splitKeys splits a comma-separated credential list, dropping blanks.
func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.middleware_timeout", "110s")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Auth
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h") // 7 days

	// LLM
	v.SetDefault("llm.provider", "openrouter")
	v.SetDefault("llm.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.openrouter.model", "google/gemma-2-9b-it")
	v.SetDefault("llm.openrouter.referer", "https://ai-interview-practitioner.com")
	v.SetDefault("llm.openrouter.app_title", "AI Interview Practitioner")
	v.SetDefault("llm.openrouter.temperature", 0.7)
	v.SetDefault("llm.openrouter.max_tokens", 256)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.retry.max_attempts", 3)
	v.SetDefault("llm.retry.backoff", "2s")
	v.SetDefault("llm.retry.attempt_timeout", "30s")

	// TTS
	v.SetDefault("tts.model_id", "eleven_turbo_v2")
	v.SetDefault("tts.male_voice_id", "pNInz6obpgDQGcFmaJgB")
	v.SetDefault("tts.female_voice_id", "Xb0ZEqXn3XGQW2c3Kmbl")

	// Session lifecycle
	v.SetDefault("session.max_age", "24h")
	v.SetDefault("session.ended_grace", "1h")
	v.SetDefault("session.reap_interval", "10m")
	v.SetDefault("session.warmup_exchanges", 3)
	v.SetDefault("session.misuse_limit", 3)

	// Redis (rate limiting only; empty host disables it)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Security
	v.SetDefault("security.rate_limit.requests_per_minute", 60)
	v.SetDefault("security.rate_limit.burst", 10)

	// CORS
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
}
