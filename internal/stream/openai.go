package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openailib "github.com/sashabaranov/go-openai"

	"ponder/internal/logging"
)

// =============================================================================
// OPENAI-COMPATIBLE PROVIDER
// =============================================================================

// OpenAIClient streams from any endpoint that speaks the OpenAI chat
// completions protocol. Reasoning deltas, when the model emits them, arrive
// as reasoning chunks; regular deltas arrive as answer chunks.
type OpenAIClient struct {
	client *openailib.Client
	model  string
}

// NewOpenAI creates an OpenAI-compatible streaming client. A custom base URL
// points it at other providers that speak the same protocol.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	clientConfig := openailib.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openailib.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Stream starts a chat completion and fans its deltas out as chunks.
func (c *OpenAIClient) Stream(ctx context.Context, req Request) (<-chan Chunk, <-chan error) {
	chunks := make(chan Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		logging.Stream("OpenAI stream opened (model %s, prompt %d chars, %d history messages)",
			c.model, len(req.Prompt), len(req.History))

		var messages []openailib.ChatCompletionMessage
		if req.System != "" {
			messages = append(messages, openailib.ChatCompletionMessage{
				Role: openailib.ChatMessageRoleSystem, Content: req.System,
			})
		}
		for _, m := range req.History {
			role := openailib.ChatMessageRoleUser
			if m.Role == RoleAssistant {
				role = openailib.ChatMessageRoleAssistant
			}
			messages = append(messages, openailib.ChatCompletionMessage{Role: role, Content: m.Content})
		}
		messages = append(messages, openailib.ChatCompletionMessage{
			Role: openailib.ChatMessageRoleUser, Content: req.Prompt,
		})

		// Retry loop for stream setup, before the first delta arrives. Recv
		// failures are final; a reconnect would replay reasoning the session
		// already consumed.
		maxRetries := 3
		var (
			stream  *openailib.ChatCompletionStream
			lastErr error
		)
		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				// Exponential backoff: 1s, 2s, 4s
				time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
			}

			stream, lastErr = c.client.CreateChatCompletionStream(ctx, openailib.ChatCompletionRequest{
				Model:    c.model,
				Messages: messages,
				Stream:   true,
			})
			if lastErr == nil {
				break
			}
			if ctx.Err() != nil {
				break
			}
			logging.Stream("OpenAI stream attempt %d failed: %v", attempt+1, lastErr)
		}
		if lastErr != nil {
			logging.StreamError("OpenAI stream creation failed after retries: %v", lastErr)
			errs <- fmt.Errorf("openai stream: %w", lastErr)
			return
		}
		defer stream.Close()

		var reasoningChars, answerChars int
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				logging.StreamError("OpenAI stream recv failed: %v", err)
				errs <- fmt.Errorf("openai stream recv: %w", err)
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}

			delta := resp.Choices[0].Delta
			if rc := delta.ReasoningContent; rc != "" {
				reasoningChars += len(rc)
				if !deliver(ctx, chunks, Chunk{Kind: KindReasoning, Text: rc}) {
					errs <- ctx.Err()
					return
				}
			}
			if delta.Content != "" {
				answerChars += len(delta.Content)
				if !deliver(ctx, chunks, Chunk{Kind: KindAnswer, Text: delta.Content}) {
					errs <- ctx.Err()
					return
				}
			}
		}

		logging.Stream("OpenAI stream closed: %d reasoning chars, %d answer chars", reasoningChars, answerChars)
	}()

	return chunks, errs
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return fmt.Sprintf("openai-compatible (%s)", c.model)
}
