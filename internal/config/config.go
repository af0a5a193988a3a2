// Package config loads runtime settings from .env, an optional YAML file and
// the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable pointing at an optional YAML config file.
const FileEnv = "MOODBOARD_CONFIG"

type Config struct {
	Port         string        `yaml:"port"`
	DatabasePath string        `yaml:"database_path"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`

	OpenAI OpenAI `yaml:"openai"`

	RedisAddr            string `yaml:"redis_addr"`
	DailyGenerationLimit int    `yaml:"daily_generation_limit"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type OpenAI struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	TextModel    string        `yaml:"text_model"`
	ImageModel   string        `yaml:"image_model"`
	MaxAttempts  int           `yaml:"max_attempts"`
	TextTimeout  time.Duration `yaml:"text_timeout"`
	ImageTimeout time.Duration `yaml:"image_timeout"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port:         "8080",
		DatabasePath: "moodboard.db",
		JWTSecret:    "dev-secret-123",
		TokenTTL:     24 * time.Hour,
		OpenAI: OpenAI{
			BaseURL:      "https://api.openai.com/v1",
			TextModel:    "gpt-4o-mini",
			ImageModel:   "gpt-image-1",
			MaxAttempts:  3,
			TextTimeout:  45 * time.Second,
			ImageTimeout: 90 * time.Second,
		},
		DailyGenerationLimit: 20,
		RateLimitRPS:         5,
		RateLimitBurst:       10,
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Load reads .env when present, then the YAML file named by MOODBOARD_CONFIG,
// then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = envString("PORT", c.Port)
	c.DatabasePath = envString("DATABASE_PATH", c.DatabasePath)
	c.JWTSecret = envString("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = envDuration("TOKEN_TTL", c.TokenTTL)

	c.OpenAI.APIKey = envString("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.BaseURL = envString("OPENAI_BASE_URL", c.OpenAI.BaseURL)
	c.OpenAI.TextModel = envString("OPENAI_TEXT_MODEL", c.OpenAI.TextModel)
	c.OpenAI.ImageModel = envString("OPENAI_IMAGE_MODEL", c.OpenAI.ImageModel)
	c.OpenAI.MaxAttempts = envInt("OPENAI_MAX_ATTEMPTS", c.OpenAI.MaxAttempts)
	c.OpenAI.TextTimeout = envDuration("OPENAI_TEXT_TIMEOUT", c.OpenAI.TextTimeout)
	c.OpenAI.ImageTimeout = envDuration("OPENAI_IMAGE_TIMEOUT", c.OpenAI.ImageTimeout)

	c.RedisAddr = envString("REDIS_ADDR", c.RedisAddr)
	c.DailyGenerationLimit = envInt("DAILY_GENERATION_LIMIT", c.DailyGenerationLimit)
	c.RateLimitRPS = envFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = envInt("RATE_LIMIT_BURST", c.RateLimitBurst)

	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envString("LOG_FORMAT", c.LogFormat)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
