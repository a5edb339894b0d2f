// Package config loads the bot's environment-sourced configuration.
// Secrets have no defaults; a deployment must supply them explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default values for everything that is safe to default.
const (
	DefaultPort            = 3000
	DefaultMuteRoleName    = "Muted"
	DefaultIsolateRoleName = "Isolated"

	DefaultTemperature     = 0.9
	DefaultTopK            = 1
	DefaultTopP            = 1.0
	DefaultMaxOutputTokens = 2048
)

// Generation holds the sampling profile for the generative backend.
// These are deployment tunables, not business logic.
type Generation struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// Config is the full runtime configuration.
type Config struct {
	BotToken          string
	GenerativeAPIKey  string
	ModelName         string
	AllowedChannelIDs []string
	MuteRoleName      string
	IsolateRoleName   string
	Port              int
	Generation        Generation
}

// Load reads configuration from the environment. It fails naming the first
// missing required variable.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:         os.Getenv("DISCORD_BOT_TOKEN"),
		GenerativeAPIKey: os.Getenv("GENERATIVE_AI_API_KEY"),
		ModelName:        os.Getenv("MODEL_NAME"),
		MuteRoleName:     getenvDefault("MUTE_ROLE_NAME", DefaultMuteRoleName),
		IsolateRoleName:  getenvDefault("ISOLATE_ROLE_NAME", DefaultIsolateRoleName),
		Port:             DefaultPort,
		Generation: Generation{
			Temperature:     DefaultTemperature,
			TopK:            DefaultTopK,
			TopP:            DefaultTopP,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.GenerativeAPIKey == "" {
		return nil, fmt.Errorf("GENERATIVE_AI_API_KEY is required")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("MODEL_NAME is required")
	}

	cfg.AllowedChannelIDs = splitChannelIDs(os.Getenv("ALLOWED_CHANNEL_IDS"))

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	if err := loadGeneration(&cfg.Generation); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadGeneration(gen *Generation) error {
	if raw := os.Getenv("GEN_TEMPERATURE"); raw != "" {
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("invalid GEN_TEMPERATURE %q: %w", raw, err)
		}
		gen.Temperature = float32(value)
	}
	if raw := os.Getenv("GEN_TOP_K"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid GEN_TOP_K %q: %w", raw, err)
		}
		gen.TopK = int32(value)
	}
	if raw := os.Getenv("GEN_TOP_P"); raw != "" {
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("invalid GEN_TOP_P %q: %w", raw, err)
		}
		gen.TopP = float32(value)
	}
	if raw := os.Getenv("GEN_MAX_OUTPUT_TOKENS"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid GEN_MAX_OUTPUT_TOKENS %q: %w", raw, err)
		}
		gen.MaxOutputTokens = int32(value)
	}
	return nil
}

// splitChannelIDs parses a comma-separated channel list, dropping empty
// elements so trailing commas are harmless.
func splitChannelIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	var ids []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
