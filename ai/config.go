// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// GenerationHost is the base URL for the text generation service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	GenerationHost string

	// LightEmbeddingModel is the model identifier for the fast embedding tier.
	// Example: "embeddinggemma", "text-embedding-3-small"
	LightEmbeddingModel string

	// HeavyEmbeddingModel is the model identifier for the quality embedding tier.
	// Example: "mxbai-embed-large", "text-embedding-3-large"
	HeavyEmbeddingModel string

	// GenerationModel is the model identifier for fallback text generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GenerationModel string

	// MaxAnswerLength is the rune bound applied to generated fallback answers
	// when the caller does not pass its own limit.
	// Default: 240
	MaxAnswerLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerationHost sets the generation service host URL.
func WithGenerationHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerationHost = host
	}
}

// WithHost sets both embedding and generation hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerationHost = host
	}
}

// WithLightEmbeddingModel sets the fast-tier embedding model identifier.
func WithLightEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.LightEmbeddingModel = model
	}
}

// WithHeavyEmbeddingModel sets the quality-tier embedding model identifier.
func WithHeavyEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.HeavyEmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithMaxAnswerLength sets the default rune bound for generated answers.
func WithMaxAnswerLength(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAnswerLength = n
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, embedding and generation use the same host, and the heavy tier
// falls back to a larger local embedding model.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:       defaultHost,
		GenerationHost:      defaultHost,
		LightEmbeddingModel: "embeddinggemma",
		HeavyEmbeddingModel: "mxbai-embed-large",
		GenerationModel:     "qwen2.5:3b",
		MaxAnswerLength:     240,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithLightEmbeddingModel("text-embedding-3-small"),
//   )
//
// Example with different hosts:
//   cfg := NewConfig(
//       WithEmbeddingHost("http://localhost:11434/v1"),
//       WithGenerationHost("http://localhost:9100/v1"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// EmbeddingModel returns the model identifier registered for the given tier.
// Unknown tiers resolve to the light model, matching the selector's
// never-raise contract.
func (c *Config) EmbeddingModel(tier ModelTier) string {
	if tier == TierHeavy {
		return c.HeavyEmbeddingModel
	}
	return c.LightEmbeddingModel
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	// Ensure EmbeddingHost ends with /v1 for OpenAI-compatible APIs
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	// Ensure GenerationHost ends with /v1 for OpenAI-compatible APIs
	if c.GenerationHost != "" && !strings.HasSuffix(c.GenerationHost, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.GenerationHost = strings.TrimSuffix(c.GenerationHost, "/")
		c.GenerationHost = c.GenerationHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure hosts are in correct format
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerationHost == "" {
		return errors.New("ai config: GenerationHost is required")
	}
	if c.LightEmbeddingModel == "" {
		return errors.New("ai config: LightEmbeddingModel is required")
	}
	if c.HeavyEmbeddingModel == "" {
		return errors.New("ai config: HeavyEmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.MaxAnswerLength < 1 {
		return errors.New("ai config: MaxAnswerLength must be positive")
	}
	return nil
}
