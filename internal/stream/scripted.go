package stream

import (
	"bufio"
	"context"
	"io"
	"time"

	"ponder/internal/logging"
)

// =============================================================================
// SCRIPTED PROVIDER
// =============================================================================

// ScriptedClient replays a canned transcript on a fixed pace. It needs no
// API key and ignores the prompt, which makes it the demo and offline
// provider. The built-in script walks the status line through every phase.
type ScriptedClient struct {
	script []Chunk
	pace   time.Duration
}

// NewScripted creates a client that replays the given chunks, waiting pace
// between consecutive chunks. A zero pace replays as fast as the consumer
// reads.
func NewScripted(script []Chunk, pace time.Duration) *ScriptedClient {
	return &ScriptedClient{
		script: script,
		pace:   pace,
	}
}

// Stream replays the script.
func (s *ScriptedClient) Stream(ctx context.Context, _ Request) (<-chan Chunk, <-chan error) {
	chunks := make(chan Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		logging.Stream("Scripted stream opened (%d chunks, pace %v)", len(s.script), s.pace)

		for i, c := range s.script {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}
			if i > 0 && s.pace > 0 {
				timer := time.NewTimer(s.pace)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					errs <- ctx.Err()
					return
				}
			}
			if !deliver(ctx, chunks, c) {
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}

// Name returns the provider name.
func (s *ScriptedClient) Name() string {
	return "scripted"
}

// ParseScript reads a transcript where every line is one chunk. Lines before
// a bare "---" separator are reasoning, lines after it are answer. The
// newline each line lost to splitting is restored.
func ParseScript(r io.Reader) ([]Chunk, error) {
	var script []Chunk
	kind := KindReasoning

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" && kind == KindReasoning {
			kind = KindAnswer
			continue
		}
		script = append(script, Chunk{Kind: kind, Text: line + "\n"})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return script, nil
}

// DefaultScript returns the built-in demo transcript. The reasoning is long
// enough to carry the status line through every phase before the answer
// arrives.
func DefaultScript() []Chunk {
	reasoning := []string{
		"The user wants a quick demo of the status line in action. ",
		"First I need to understand what the user expects to see on screen. ",
		"The important part is that the little pill keeps moving while the model thinks. ",
		"Here is the plan: stream the reasoning and refresh the pill as phases change. ",
		"I will keep the approach lean and let the extraction engine do the heavy lifting. ",
		"Time to implement the loop that feeds these very sentences into the engine. ",
		"Each chunk lands in a buffer and the freshest phase message wins the pill. ",
		"A bit of styling next, with a border around the pill and a spinner beside it. ",
		"Colors come from the theme so both dark and light terminals stay readable. ",
		"The layout holds steady while longer answers scroll underneath the status row. ",
		"All that remains is to finalize the demo and hand back a short closing answer. ",
	}
	answer := []string{
		"Here is the demo you asked for.\n\n",
		"The status line just walked from Thinking to Finalizing, ",
		"driven by reasoning text you never saw directly.\n",
	}

	script := make([]Chunk, 0, len(reasoning)+len(answer))
	for _, text := range reasoning {
		script = append(script, Chunk{Kind: KindReasoning, Text: text})
	}
	for _, text := range answer {
		script = append(script, Chunk{Kind: KindAnswer, Text: text})
	}
	return script
}
