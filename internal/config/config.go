package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

type Config struct {
	AppName        string   `env:"APP_NAME" envDefault:"Retro-Cyber Secret Keeper"`
	AppEnv         string   `env:"APP_ENV" envDefault:"dev"`
	Port           int      `env:"PORT" envDefault:"8000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	GeminiAPIKey          string  `env:"GEMINI_API_KEY"`
	GeminiModel           string  `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	GeminiTemperature     float32 `env:"GEMINI_TEMPERATURE" envDefault:"0.2"`
	GeminiMaxOutputTokens int32   `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"512"`
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.AllowedOrigins = origins

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
