// Package config provides configuration management for the debate engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration settings.
type Config struct {
	// API settings
	APIBaseURL string `json:"api_base_url"`
	APIKey     string `json:"api_key,omitempty"`
	Model      string `json:"model"`
	Provider   string `json:"provider,omitempty"` // "openai", "anthropic", "ollama", or "" for auto-detect

	// Generation parameters
	Temperature   *float64 `json:"temperature,omitempty"`
	MaxTokens     *int     `json:"max_tokens,omitempty"`
	ContextWindow int      `json:"context_window,omitempty"` // Ollama num_ctx
	RepeatPenalty float64  `json:"repeat_penalty,omitempty"` // Ollama only
	CacheSize     int      `json:"cache_size,omitempty"`     // prompt cache entries, 0 = default

	// Search parameters
	MaxDepth     int `json:"max_depth"`
	MaxBreadth   int `json:"max_breadth"`
	SampleSize   int `json:"sample_size,omitempty"`   // facts per rebuttal prompt
	MaxSentences int `json:"max_sentences,omitempty"` // response length cap

	// Debate settings
	Topic        string   `json:"topic"`
	Rounds       int      `json:"rounds"`
	Seed         int64    `json:"seed,omitempty"` // 0 = time-seeded
	ProKnowledge []string `json:"pro_knowledge"`
	ConKnowledge []string `json:"con_knowledge"`

	// Output settings
	OutputsDir string `json:"outputs_dir,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`
	LogFile    string `json:"log_file,omitempty"`
}

// DefaultConfig returns the stock configuration: a local Ollama daemon, a
// small model, and the shallow depth=2/breadth=2 search that keeps one
// response under a dozen service calls.
func DefaultConfig() *Config {
	temperature := 0.4
	maxTokens := 150

	return &Config{
		APIBaseURL:    "http://localhost:11434",
		Model:         "phi3:instruct",
		Provider:      "ollama",
		Temperature:   &temperature,
		MaxTokens:     &maxTokens,
		ContextWindow: 1024,
		RepeatPenalty: 1.1,
		MaxDepth:      2,
		MaxBreadth:    2,
		SampleSize:    2,
		MaxSentences:  3,
		Topic:         "AI should be widely adopted in college education",
		Rounds:        3,
		ProKnowledge: []string{
			"AI enables 24/7 personalized tutoring (Stanford 2023 study)",
			"Automated grading saves teachers 9hrs/week (Brookings Institute)",
			"Adaptive learning improves test scores by 22% (MIT Review)",
		},
		ConKnowledge: []string{
			"AI cannot replicate human mentorship (UNESCO Report 2024)",
			"Algorithmic bias widens achievement gaps (Harvard Ed. Review)",
			"Over-reliance erases critical thinking skills (Neuroscience Journal)",
		},
		OutputsDir: "outputs",
		LogLevel:   "INFO",
	}
}

// Load reads configuration from path. A missing file is not an error: the
// defaults are written there so the user has something to edit.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := cfg.Save(path); saveErr != nil {
			return nil, fmt.Errorf("failed to write default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Validate fails fast on settings that would otherwise surface mid-debate.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxBreadth < 1 {
		return fmt.Errorf("max_breadth must be >= 1, got %d", c.MaxBreadth)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be >= 1, got %d", c.Rounds)
	}
	if len(c.ProKnowledge) == 0 || len(c.ConKnowledge) == 0 {
		return fmt.Errorf("both knowledge bases must be non-empty")
	}
	if c.SampleSize > len(c.ProKnowledge) || c.SampleSize > len(c.ConKnowledge) {
		return fmt.Errorf("sample_size %d exceeds a knowledge base", c.SampleSize)
	}
	return nil
}
