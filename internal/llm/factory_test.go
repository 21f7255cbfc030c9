package llm

import (
	"strings"
	"testing"
)

func TestNewProvider_OpenAI(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected openai, got %q", provider.Name())
	}
}

func TestNewProvider_AnthropicAliases(t *testing.T) {
	for _, name := range []string{"anthropic", "claude", "Anthropic"} {
		provider, err := NewProvider(Config{Provider: name, APIKey: "sk-test"})
		if err != nil {
			t.Fatalf("provider %q: expected no error, got %v", name, err)
		}
		if provider.Name() != "anthropic" {
			t.Errorf("provider %q: expected anthropic, got %q", name, provider.Name())
		}
	}
}

func TestNewProvider_Ollama(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("expected ollama, got %q", provider.Name())
	}
}

func TestNewProvider_Empty(t *testing.T) {
	_, err := NewProvider(Config{})
	if err == nil {
		t.Fatal("expected error for empty provider")
	}
	if !strings.Contains(err.Error(), "no LLM provider") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("expected provider name in error, got %v", err)
	}
}
