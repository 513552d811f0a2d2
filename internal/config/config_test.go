package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider_GroqKeyPrefix(t *testing.T) {
	p := ResolveProvider(ProviderEnv{GroqAPIKey: "gsk_abc123"})
	assert.Equal(t, "groq", p.Name)
	assert.Equal(t, "https://api.groq.com/openai/v1", p.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", p.Model)
	assert.Equal(t, "gsk_abc123", p.APIKey)
}

func TestResolveProvider_GrokKeyByDefault(t *testing.T) {
	p := ResolveProvider(ProviderEnv{GrokAPIKey: "xai-secret"})
	assert.Equal(t, "grok", p.Name)
	assert.Equal(t, "https://api.x.ai/v1", p.BaseURL)
	assert.Equal(t, "grok-2-latest", p.Model)
	assert.Equal(t, "xai-secret", p.APIKey)
}

func TestResolveProvider_PrefixWinsOverVariableName(t *testing.T) {
	// A gsk_ key placed in the Grok variable still selects the Groq profile.
	p := ResolveProvider(ProviderEnv{GrokAPIKey: "gsk_misplaced"})
	assert.Equal(t, "groq", p.Name)
	assert.Equal(t, "gsk_misplaced", p.APIKey)
}

func TestResolveProvider_Overrides(t *testing.T) {
	p := ResolveProvider(ProviderEnv{
		GroqAPIKey:  "gsk_x",
		GroqModel:   "llama-custom",
		GroqBaseURL: "http://localhost:9999/v1",
	})
	assert.Equal(t, "llama-custom", p.Model)
	assert.Equal(t, "http://localhost:9999/v1", p.BaseURL)
}

func TestResolveProvider_Unconfigured(t *testing.T) {
	p := ResolveProvider(ProviderEnv{})
	require.Empty(t, p.APIKey)
	// defaults still resolve so diagnostics can print the would-be endpoint
	assert.Equal(t, "grok", p.Name)
	assert.NotEmpty(t, p.BaseURL)
}
