package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	ProviderOllama   = "ollama"
	ProviderGoogleAI = "googleai"

	// DefaultSessionSecret must match the SESSION_SECRET envDefault below.
	DefaultSessionSecret = "bookmarker-dev-secret"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	StoreDriver   string `env:"STORE_DRIVER"   envDefault:"mongo"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"bookmarker"`

	LLMProvider     string `env:"LLM_PROVIDER"      envDefault:"ollama"`
	LLMModel        string `env:"LLM_MODEL"         envDefault:"llama2-chat"`
	OllamaServerURL string `env:"OLLAMA_SERVER_URL" envDefault:"http://localhost:11434"`
	APIKey          string `env:"API_KEY"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	MaxRedirects int           `env:"MAX_REDIRECTS" envDefault:"10"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS"   envDefault:"3"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"5"`
	SessionSecret  string   `env:"SESSION_SECRET"   envDefault:"bookmarker-dev-secret"`

	ReadTimeout  time.Duration `env:"READ_TIMEOUT"  envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"5m"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads the configuration from the environment (and .env, if present).
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI must be set when STORE_DRIVER=%s", StoreMongo)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.LLMProvider {
	case ProviderOllama:
	case ProviderGoogleAI:
		if c.APIKey == "" {
			return fmt.Errorf("API_KEY must be set when LLM_PROVIDER=%s", ProviderGoogleAI)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.MaxRedirects < 0 {
		return fmt.Errorf("MAX_REDIRECTS must not be negative")
	}
	return nil
}

// Warnings lists settings that are valid but unsafe outside development.
func (c Config) Warnings() []string {
	var warnings []string
	if c.SessionSecret == DefaultSessionSecret {
		warnings = append(warnings, "SESSION_SECRET is the built-in development default; flash cookies can be forged")
	}
	return warnings
}
