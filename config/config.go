package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server and model settings.
type Config struct {
	Environment string    `yaml:"environment"`
	Port        string    `yaml:"port"`
	LLM         LLMConfig `yaml:"llm"`
	Mock        bool      `yaml:"mock"`
}

// LLMConfig configures the text-generation and research models.
type LLMConfig struct {
	APIKey          string        `yaml:"api_key,omitempty"`
	BaseURL         string        `yaml:"base_url,omitempty"`
	Model           string        `yaml:"model"`
	Temperature     float64       `yaml:"temperature"`
	MaxTokens       int           `yaml:"max_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxRetries      int           `yaml:"max_retries"`
	ResearchModel   string        `yaml:"research_model"`
	ResearchEnabled bool          `yaml:"research_enabled"`
}

func Default() Config {
	return Config{
		Environment: "development",
		Port:        "3001",
		LLM: LLMConfig{
			Model:           "gpt-4o",
			Temperature:     0.8,
			MaxTokens:       2000,
			Timeout:         60 * time.Second,
			MaxRetries:      2,
			ResearchModel:   "gpt-4o-search-preview",
			ResearchEnabled: true,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (optional),
// a .env file (optional) and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env file could not be loaded", "error", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("OPENAI_MODEL", cfg.LLM.Model)
	cfg.LLM.ResearchModel = getEnv("RESEARCH_MODEL", cfg.LLM.ResearchModel)

	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid OPENAI_TEMPERATURE %q: %w", v, err)
		}
		cfg.LLM.Temperature = f
	}
	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid OPENAI_MAX_TOKENS %q: %w", v, err)
		}
		cfg.LLM.MaxTokens = n
	}
	if v := os.Getenv("OPENAI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid OPENAI_TIMEOUT %q: %w", v, err)
		}
		cfg.LLM.Timeout = d
	}
	if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid OPENAI_MAX_RETRIES %q: %w", v, err)
		}
		cfg.LLM.MaxRetries = n
	}
	if v := os.Getenv("RESEARCH_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RESEARCH_ENABLED %q: %w", v, err)
		}
		cfg.LLM.ResearchEnabled = b
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.Mock {
		return nil
	}
	if c.LLM.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required (or run with -mock)")
	}
	if c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature %.2f out of range [0, 2]", c.LLM.Temperature)
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm max_retries cannot be negative")
	}
	return nil
}
