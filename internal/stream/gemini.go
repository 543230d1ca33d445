package stream

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"ponder/internal/logging"
)

// =============================================================================
// GEMINI PROVIDER
// =============================================================================

// GeminiClient streams from the Gemini API with thought parts enabled, so
// the model's deliberation arrives as reasoning chunks ahead of the answer.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini streaming client.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Stream starts a generation call and fans its parts out as chunks.
func (g *GeminiClient) Stream(ctx context.Context, req Request) (<-chan Chunk, <-chan error) {
	chunks := make(chan Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		logging.Stream("Gemini stream opened (model %s, prompt %d chars, %d history messages)",
			g.model, len(req.Prompt), len(req.History))

		var contents []*genai.Content
		for _, m := range req.History {
			var role genai.Role = genai.RoleUser
			if m.Role == RoleAssistant {
				role = genai.RoleModel
			}
			contents = append(contents, genai.NewContentFromText(m.Content, role))
		}
		contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

		cfg := &genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{
				IncludeThoughts: true,
			},
		}
		if req.System != "" {
			cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
		}

		var reasoningChars, answerChars int
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
			if err != nil {
				logging.StreamError("Gemini stream failed: %v", err)
				errs <- fmt.Errorf("gemini stream: %w", err)
				return
			}
			for _, cand := range resp.Candidates {
				if cand.Content == nil {
					continue
				}
				for _, part := range cand.Content.Parts {
					if part == nil || part.Text == "" {
						continue
					}
					kind := KindAnswer
					if part.Thought {
						kind = KindReasoning
						reasoningChars += len(part.Text)
					} else {
						answerChars += len(part.Text)
					}
					if !deliver(ctx, chunks, Chunk{Kind: kind, Text: part.Text}) {
						errs <- ctx.Err()
						return
					}
				}
			}
		}

		logging.Stream("Gemini stream closed: %d reasoning chars, %d answer chars", reasoningChars, answerChars)
	}()

	return chunks, errs
}

// Name returns the provider name.
func (g *GeminiClient) Name() string {
	return fmt.Sprintf("gemini (%s)", g.model)
}

// Close releases the underlying client.
func (g *GeminiClient) Close() error {
	return nil
}
