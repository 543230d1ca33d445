// Package session tracks one conversational turn: the prompt, the streamed
// reasoning and answer text, and the status line derived from the reasoning.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ponder/internal/logging"
	"ponder/internal/status"
)

// PhaseEvent records the moment a session advanced into a phase.
type PhaseEvent struct {
	Phase  status.Phase `json:"phase"`
	At     time.Time    `json:"at"`
	Offset int          `json:"offset"` // reasoning bytes accumulated when the phase was entered
}

// Session is one conversational turn. All methods are safe for concurrent
// use; the stream reader feeds it while the UI reads from it.
type Session struct {
	mu sync.RWMutex

	// Identity
	id      string
	prompt  string
	started time.Time

	// Accumulated stream text
	reasoning strings.Builder
	answer    strings.Builder

	// Status engine state
	cfg      status.Config
	state    status.State
	timeline []PhaseEvent

	finished time.Time
}

// New creates a session for one prompt.
func New(prompt string, cfg status.Config) *Session {
	s := &Session{
		id:      uuid.NewString(),
		prompt:  prompt,
		started: time.Now(),
		cfg:     cfg,
		state:   status.NewState(),
	}
	logging.Session("Session %s started (prompt %d chars)", s.id, len(prompt))
	return s
}

// Feed appends a reasoning chunk and re-runs status extraction.
func (s *Session) Feed(chunk string) status.Result {
	return s.FeedAt(chunk, time.Now())
}

// FeedAt is Feed with an explicit clock, for tests and replay.
func (s *Session) FeedAt(chunk string, now time.Time) status.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reasoning.WriteString(chunk)
	prior := s.state.Phase

	res := status.ExtractAt(s.reasoning.String(), s.state, s.cfg, now)
	s.state = res.State

	if res.State.Phase != prior {
		s.timeline = append(s.timeline, PhaseEvent{
			Phase:  res.State.Phase,
			At:     now,
			Offset: s.reasoning.Len(),
		})
		logging.Session("Session %s phase %s -> %s at %d chars",
			s.id, prior, res.State.Phase, s.reasoning.Len())
	}
	if res.Updated {
		logging.StatusDebug("Session %s status: %q", s.id, res.Text)
	}
	return res
}

// FeedAnswer appends a chunk of the visible answer.
func (s *Session) FeedAnswer(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answer.WriteString(chunk)
}

// Candidate returns the newest reasoning sentence that survives validation.
// It backs the verbose status line; the main status line comes from Feed.
func (s *Session) Candidate() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return status.BestCandidate(s.reasoning.String(), s.cfg)
}

// GetID returns the session's unique identifier.
func (s *Session) GetID() string {
	return s.id
}

// GetPrompt returns the prompt this session answers.
func (s *Session) GetPrompt() string {
	return s.prompt
}

// StatusText returns the text the status line should show right now.
func (s *Session) StatusText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastText
}

// CurrentPhase returns the phase the session is in.
func (s *Session) CurrentPhase() status.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Phase
}

// Reasoning returns the reasoning text streamed so far.
func (s *Session) Reasoning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reasoning.String()
}

// Answer returns the answer text streamed so far.
func (s *Session) Answer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answer.String()
}

// Timeline returns a copy of the phase transitions so far.
func (s *Session) Timeline() []PhaseEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PhaseEvent, len(s.timeline))
	copy(out, s.timeline)
	return out
}

// Finish marks the session complete. Calling it again has no effect.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished.IsZero() {
		return
	}
	s.finished = time.Now()
	logging.Session("Session %s finished: %d reasoning chars, %d answer chars, %d phase changes",
		s.id, s.reasoning.Len(), s.answer.Len(), len(s.timeline))
}

// Elapsed returns how long the session has been running, or its final
// duration once finished.
func (s *Session) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.finished.IsZero() {
		return s.finished.Sub(s.started)
	}
	return time.Since(s.started)
}

// Turn is an immutable record of a session in the shape the history store
// persists. FinishedAt is zero while the session is still live. Provider and
// Model are filled by the layer that owns the stream client.
type Turn struct {
	ID         string
	Prompt     string
	Reasoning  string
	Answer     string
	StatusText string
	Phase      status.Phase
	Provider   string
	Model      string
	StartedAt  time.Time
	FinishedAt time.Time
	Timeline   []PhaseEvent
}

// Snapshot returns the session as a Turn record.
func (s *Session) Snapshot() Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timeline := make([]PhaseEvent, len(s.timeline))
	copy(timeline, s.timeline)

	return Turn{
		ID:         s.id,
		Prompt:     s.prompt,
		Reasoning:  s.reasoning.String(),
		Answer:     s.answer.String(),
		StatusText: s.state.LastText,
		Phase:      s.state.Phase,
		StartedAt:  s.started,
		FinishedAt: s.finished,
		Timeline:   timeline,
	}
}
