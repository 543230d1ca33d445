// Package chat provides the interactive TUI for ponder. The interface is
// split across files:
//   - model.go: types, construction, lifecycle
//   - update.go: the Update loop and turn processing
//   - view.go: rendering
package chat

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"ponder/cmd/ponder/ui"
	"ponder/internal/config"
	"ponder/internal/logging"
	"ponder/internal/session"
	"ponder/internal/store"
	"ponder/internal/stream"
)

// Message is one entry in the visible transcript.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Model is the main model for the interactive chat interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool
	err    error

	// Backend
	cfg     config.Config
	client  stream.Client
	history *store.HistoryStore

	// Conversation state
	messages  []Message
	sess      *session.Session
	turnCount int
	isLoading bool

	// Status tracking
	statusMessage string      // Current status pill text
	candidate     string      // Verbose-mode secondary line
	statusChan    chan string // Channel for streaming status updates

	// Shutdown coordination
	shutdownOnce   *sync.Once
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
	turnCancel     context.CancelFunc // Cancels the in-flight turn only
}

// New builds the chat model. history may be nil when persistence is off.
func New(cfg config.Config, client stream.Client, history *store.HistoryStore) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask ponder anything..."
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	styles := ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		textarea:       ta,
		spinner:        sp,
		styles:         styles,
		cfg:            cfg,
		client:         client,
		history:        history,
		statusChan:     make(chan string, 10),
		shutdownOnce:   &sync.Once{},
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
}

// Init starts the status listener alongside the standard component ticks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForStatus(),
	)
}

// statusMsg represents a status update from the streaming turn.
type statusMsg string

// turnDoneMsg carries the finished turn back to the Update loop.
type turnDoneMsg struct {
	turn session.Turn
	err  error
}

// waitForStatus listens for status updates.
func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(<-m.statusChan)
	}
}

// ReportStatus sends a non-blocking status update.
func (m Model) ReportStatus(msg string) {
	if m.statusChan == nil {
		return
	}
	defer func() {
		// Sending on a closed channel panics; shutdown races are dropped.
		_ = recover()
	}()
	select {
	case m.statusChan <- msg:
	default:
		// Channel full, drop update to prevent blocking
	}
}

// Shutdown stops the in-flight turn and unblocks the status listener.
// Safe to call multiple times.
func (m Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.shutdownCancel != nil {
			m.shutdownCancel()
		}
		if m.statusChan != nil {
			close(m.statusChan)
		}
		logging.UI("Chat shut down after %d turns", m.turnCount)
	})
}

// Run starts the chat program and blocks until it exits.
func Run(cfg config.Config, client stream.Client, history *store.HistoryStore) error {
	p := tea.NewProgram(
		New(cfg, client, history),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
