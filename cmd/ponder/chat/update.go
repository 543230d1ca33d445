package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"ponder/internal/logging"
	"ponder/internal/session"
	"ponder/internal/stream"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Shutdown()
			return m, tea.Quit
		case tea.KeyCtrlX:
			// Stop the in-flight turn without quitting.
			if m.isLoading && m.turnCancel != nil {
				m.turnCancel()
			}
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case statusMsg:
		m.statusMessage = string(msg)
		if m.cfg.Status.Verbose && m.sess != nil {
			if text, ok := m.sess.Candidate(); ok {
				m.candidate = text
			}
		}
		return m, m.waitForStatus()

	case turnDoneMsg:
		return m.finishTurn(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoading {
			return m, cmd
		}
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// handleResize fits the viewport to whatever vertical space the fixed
// chrome leaves over, and rebuilds the markdown renderer at the new width.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	m.textarea.SetWidth(msg.Width - 4)

	if m.cfg.UI.Markdown {
		wrap := msg.Width - 6
		if wrap > 100 {
			wrap = 100
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}

	chrome := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderFooter()) +
		lipgloss.Height(m.styles.Content.Render("x")) - 1
	vpHeight := msg.Height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m
}

// submit starts a new turn from the textarea content.
func (m Model) submit() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.textarea.Value())
	if prompt == "" || m.isLoading || !m.ready {
		return m, nil
	}

	prior := m.streamHistory()
	m.messages = append(m.messages, Message{Role: "user", Content: prompt})
	m.textarea.Reset()
	m.err = nil
	m.isLoading = true
	m.statusMessage = "Processing..."
	m.candidate = ""
	m.sess = session.New(prompt, m.cfg.Engine())

	ctx, cancel := context.WithCancel(m.shutdownCtx)
	m.turnCancel = cancel

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()

	logging.UI("Turn %d submitted (%d chars)", m.turnCount+1, len(prompt))
	return m, tea.Batch(m.spinner.Tick, m.processTurn(ctx, prompt, prior))
}

// processTurn streams one model response. It feeds reasoning chunks through
// the session so every accepted extraction lands on the status pill, then
// hands the finished turn back to Update.
func (m Model) processTurn(ctx context.Context, prompt string, prior []stream.Message) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		chunks, errs := m.client.Stream(ctx, stream.Request{
			Prompt:  prompt,
			History: prior,
		})

		for chunk := range chunks {
			switch chunk.Kind {
			case stream.KindReasoning:
				if res := sess.Feed(chunk.Text); res.Updated {
					m.ReportStatus(res.Text)
				}
			case stream.KindAnswer:
				sess.FeedAnswer(chunk.Text)
			}
		}
		err := <-errs

		sess.Finish()
		turn := sess.Snapshot()
		turn.Provider = m.client.Name()
		turn.Model = m.cfg.LLM.Model

		if err == nil && m.history != nil && m.cfg.History.Enabled {
			if serr := m.history.SaveTurn(turn); serr != nil {
				logging.StoreError("Failed to save turn %s: %v", turn.ID, serr)
			}
		}
		return turnDoneMsg{turn: turn, err: err}
	}
}

// finishTurn folds a completed turn back into the transcript.
func (m Model) finishTurn(msg turnDoneMsg) Model {
	m.isLoading = false
	m.statusMessage = ""
	m.candidate = ""
	m.sess = nil
	if m.turnCancel != nil {
		m.turnCancel()
		m.turnCancel = nil
	}

	cancelled := errors.Is(msg.err, context.Canceled)
	if msg.err != nil && !cancelled {
		m.err = msg.err
	}

	switch {
	case strings.TrimSpace(msg.turn.Answer) != "":
		m.messages = append(m.messages, Message{Role: "assistant", Content: msg.turn.Answer})
	case cancelled:
		m.messages = append(m.messages, Message{Role: "assistant", Content: "(stopped)"})
	case msg.err == nil:
		m.messages = append(m.messages, Message{Role: "assistant", Content: "(no answer)"})
	}
	m.turnCount++

	if m.ready {
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	}
	return m
}

// streamHistory converts the transcript into provider messages.
func (m Model) streamHistory() []stream.Message {
	out := make([]stream.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		role := stream.RoleUser
		if msg.Role == "assistant" {
			role = stream.RoleAssistant
		}
		out = append(out, stream.Message{Role: role, Content: msg.Content})
	}
	return out
}
