package stream

import (
	"context"
	"testing"

	"ponder/internal/config"
)

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("scripted needs no key", func(t *testing.T) {
		c, err := New(ctx, config.LLMConfig{Provider: "scripted"})
		if err != nil {
			t.Fatalf("New(scripted) error: %v", err)
		}
		if c.Name() != "scripted" {
			t.Errorf("Name() = %q, want scripted", c.Name())
		}
	})

	t.Run("gemini requires a key", func(t *testing.T) {
		if _, err := New(ctx, config.LLMConfig{Provider: "gemini"}); err == nil {
			t.Error("New(gemini) without key should fail")
		}
	})

	t.Run("openai requires a key", func(t *testing.T) {
		if _, err := New(ctx, config.LLMConfig{Provider: "openai"}); err == nil {
			t.Error("New(openai) without key should fail")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := New(ctx, config.LLMConfig{Provider: "carrier-pigeon"}); err == nil {
			t.Error("New(carrier-pigeon) should fail")
		}
	})
}

func TestChunkKindString(t *testing.T) {
	tests := []struct {
		kind ChunkKind
		want string
	}{
		{KindReasoning, "reasoning"},
		{KindAnswer, "answer"},
		{ChunkKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ChunkKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestOpenAIClientDefaults(t *testing.T) {
	c, err := NewOpenAI("sk-test", "", "")
	if err != nil {
		t.Fatalf("NewOpenAI error: %v", err)
	}
	if c.Name() != "openai-compatible (gpt-4o-mini)" {
		t.Errorf("Name() = %q", c.Name())
	}
}
