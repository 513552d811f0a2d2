package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration, loaded once at startup.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Provider  ProviderProfile
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ClientURL    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// AuthConfig carries the shared secret the credential collaborator signs
// bearer tokens with.
type AuthConfig struct {
	CredentialSecret string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// ProviderProfile is the resolved completion-provider endpoint. Exactly one
// profile is active per process; see ResolveProvider.
type ProviderProfile struct {
	Name    string
	BaseURL string
	Model   string
	APIKey  string
}

// ProviderEnv are the raw environment values the two provider profiles are
// resolved from. Kept as a plain struct so resolution stays unit-testable
// without touching the environment.
type ProviderEnv struct {
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string
	GrokAPIKey  string
	GrokModel   string
	GrokBaseURL string
}

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultGrokBaseURL = "https://api.x.ai/v1"
	defaultGrokModel   = "grok-2-latest"
)

// ResolveProvider picks the active provider profile. Whichever API key is
// present wins (Groq first); a key with the "gsk_" prefix always selects the
// Groq profile regardless of which variable carried it. An empty result key
// means the provider is not configured and completion calls must fail fast.
func ResolveProvider(env ProviderEnv) ProviderProfile {
	key := env.GroqAPIKey
	if key == "" {
		key = env.GrokAPIKey
	}

	if strings.HasPrefix(key, "gsk_") {
		return ProviderProfile{
			Name:    "groq",
			BaseURL: firstNonEmpty(env.GroqBaseURL, defaultGroqBaseURL),
			Model:   firstNonEmpty(env.GroqModel, defaultGroqModel),
			APIKey:  key,
		}
	}
	return ProviderProfile{
		Name:    "grok",
		BaseURL: firstNonEmpty(env.GrokBaseURL, defaultGrokBaseURL),
		Model:   firstNonEmpty(env.GrokModel, defaultGrokModel),
		APIKey:  key,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// LoadConfig loads configuration from environment variables and a local .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("MONGODB_DATABASE", "inkling")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ClientURL:    viper.GetString("CLIENT_URL"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{
			CredentialSecret: viper.GetString("CREDENTIAL_SECRET"),
		},
		Provider: ResolveProvider(ProviderEnv{
			GroqAPIKey:  viper.GetString("GROQ_API_KEY"),
			GroqModel:   viper.GetString("GROQ_MODEL"),
			GroqBaseURL: viper.GetString("GROQ_BASE_URL"),
			GrokAPIKey:  viper.GetString("GROK_API_KEY"),
			GrokModel:   viper.GetString("GROK_MODEL"),
			GrokBaseURL: viper.GetString("GROK_BASE_URL"),
		}),
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg, nil
}
