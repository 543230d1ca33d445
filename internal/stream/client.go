// Package stream adapts model providers to a single chunked interface that
// separates reasoning text from answer text.
package stream

import (
	"context"
	"fmt"
	"time"

	"ponder/internal/config"
)

// ChunkKind tells which half of the model output a chunk belongs to.
type ChunkKind int

const (
	// KindReasoning is internal deliberation text, the input to status
	// extraction. It is never rendered verbatim in the chat transcript.
	KindReasoning ChunkKind = iota

	// KindAnswer is the visible reply.
	KindAnswer
)

func (k ChunkKind) String() string {
	switch k {
	case KindReasoning:
		return "reasoning"
	case KindAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// Chunk is one streamed fragment of model output.
type Chunk struct {
	Kind ChunkKind
	Text string
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one prior exchange in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Request describes one generation call. History carries earlier turns so
// providers can send full conversation context; System is optional.
type Request struct {
	System  string
	Prompt  string
	History []Message
}

// Client streams model output split into reasoning and answer chunks.
//
// Stream returns immediately. The chunk channel carries fragments in arrival
// order and is closed when the stream ends; the error channel delivers at
// most one terminal error before both channels close. Cancelling the context
// stops the stream.
type Client interface {
	Stream(ctx context.Context, req Request) (<-chan Chunk, <-chan error)
	Name() string
}

// New builds the provider named by the configuration.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "scripted":
		return NewScripted(DefaultScript(), 80*time.Millisecond), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// deliver sends a chunk unless the context ends first. It reports whether
// the send happened.
func deliver(ctx context.Context, out chan<- Chunk, c Chunk) bool {
	select {
	case out <- c:
		return true
	case <-ctx.Done():
		return false
	}
}
