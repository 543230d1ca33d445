// Package chat test utilities. This file holds the model builder and
// fixtures shared by the chat tests.
package chat

import (
	"testing"

	"github.com/charmbracelet/bubbles/viewport"

	"ponder/internal/config"
	"ponder/internal/store"
	"ponder/internal/stream"
)

// =============================================================================
// TEST MODEL BUILDER
// =============================================================================

// TestModelOption configures a test model.
type TestModelOption func(*Model)

// NewTestModel creates a Model wired to the scripted provider, sized and
// marked ready so Update and View work without a real terminal.
func NewTestModel(opts ...TestModelOption) Model {
	cfg := *config.DefaultConfig()
	cfg.History.Enabled = false

	m := New(cfg, stream.NewScripted(stream.DefaultScript(), 0), nil)
	m.width = 100
	m.height = 40
	m.ready = true
	m.viewport = viewport.New(100, 30)

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithLoading sets the loading state.
func WithLoading(loading bool) TestModelOption {
	return func(m *Model) {
		m.isLoading = loading
	}
}

// WithMessages seeds the transcript.
func WithMessages(messages ...Message) TestModelOption {
	return func(m *Model) {
		m.messages = append(m.messages, messages...)
	}
}

// WithClient swaps the stream client.
func WithClient(client stream.Client) TestModelOption {
	return func(m *Model) {
		m.client = client
	}
}

// WithVerbose turns on the verbose candidate line.
func WithVerbose() TestModelOption {
	return func(m *Model) {
		m.cfg.Status.Verbose = true
	}
}

// WithStore attaches a history store and enables persistence.
func WithStore(hs *store.HistoryStore) TestModelOption {
	return func(m *Model) {
		m.history = hs
		m.cfg.History.Enabled = true
	}
}

// newTestStore opens an in-memory history store that closes with the test.
func newTestStore(t *testing.T) *store.HistoryStore {
	t.Helper()
	hs, err := store.NewHistoryStore(":memory:")
	if err != nil {
		t.Fatalf("NewHistoryStore: %v", err)
	}
	t.Cleanup(func() { hs.Close() })
	return hs
}
