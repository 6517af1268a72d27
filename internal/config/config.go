package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// maxRowsCap bounds how many rows a single run may send to the model.
const maxRowsCap = 50

// API holds the full configuration of the api binary, read from environment
// variables (a .env file is loaded first when present).
type API struct {
	BindAddr    string
	FrontendURL string

	Provider        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	Model           string
	Temperature     float64
	MaxOutputTokens int64
	RequestTimeout  time.Duration

	TextColumn      string
	MaxRows         int
	PreviewRows     int
	IncludeExcerpts bool

	SessionTTL time.Duration
	RedisURL   string
}

// Load builds the API config from environment variables and validates it.
func Load() (*API, error) {
	c := &API{
		BindAddr:    getEnv("BIND_ADDR", ":8080"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		Provider:        getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		Temperature:     getFloat("LLM_TEMPERATURE", 0.2),
		MaxOutputTokens: int64(getInt("LLM_MAX_OUTPUT_TOKENS", 2048)),
		RequestTimeout:  getDuration("LLM_REQUEST_TIMEOUT", "60s"),

		TextColumn:      getEnv("TEXT_COLUMN", "feedback"),
		MaxRows:         getInt("MAX_ROWS", 15),
		PreviewRows:     getInt("PREVIEW_ROWS", 20),
		IncludeExcerpts: getBool("REPORT_EXCERPTS", false),

		SessionTTL: getDuration("SESSION_TTL", "1h"),
		RedisURL:   os.Getenv("REDIS_URL"),
	}

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set when LLM_PROVIDER is %q", ProviderOpenAI)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY must be set when LLM_PROVIDER is %q", ProviderAnthropic)
		}
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, c.Provider)
	}

	if c.MaxRows <= 0 || c.MaxRows > maxRowsCap {
		return nil, fmt.Errorf("MAX_ROWS must be between 1 and %d", maxRowsCap)
	}
	if c.PreviewRows <= 0 {
		return nil, fmt.Errorf("PREVIEW_ROWS must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}
	if c.MaxOutputTokens <= 0 {
		return nil, fmt.Errorf("LLM_MAX_OUTPUT_TOKENS must be positive")
	}
	if c.RequestTimeout <= 0 {
		return nil, fmt.Errorf("LLM_REQUEST_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.TextColumn == "" {
		return nil, fmt.Errorf("TEXT_COLUMN cannot be empty")
	}

	return c, nil
}

// MaxRowsCap is the hard upper bound for per-request max_rows overrides.
func MaxRowsCap() int { return maxRowsCap }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key, fallback string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
