package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.styles.Content.Render(m.viewport.View()),
		m.renderInput(),
		m.renderFooter(),
	)
}

// renderHeader shows the app badge plus the live status pill. While a turn
// is streaming the pill carries the extracted status text; "Thinking..." is
// the fallback so the pill is never blank.
func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" ponder ")
	version := m.styles.Badge.Render("v" + m.cfg.Version)

	var status string
	if m.isLoading {
		text := m.statusMessage
		if text == "" {
			text = "Thinking..."
		}
		status = lipgloss.JoinHorizontal(lipgloss.Center,
			m.spinner.View(), " ", m.styles.Badge.Render(text))
	} else {
		status = m.styles.Success.Render("Ready")
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", version, "  ", status)

	parts := []string{headerLine}
	if m.cfg.Status.Verbose {
		// Keep the line present even when empty so the layout height is stable.
		detail := m.candidate
		if detail == "" {
			detail = " "
		}
		parts = append(parts, m.styles.Muted.Render("  "+detail))
	}
	parts = append(parts, m.styles.RenderDivider(m.width))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTranscript lays out the conversation for the viewport.
func (m Model) renderTranscript() string {
	if len(m.messages) == 0 {
		return m.styles.Muted.Render(
			"Streaming answers show up here. The status pill above tracks the\nmodel's reasoning while it thinks.")
	}

	userLabel := m.styles.Bold.Foreground(m.styles.Theme.Primary)
	agentLabel := m.styles.Bold.Foreground(m.styles.Theme.Accent)

	var sb strings.Builder
	for _, msg := range m.messages {
		if msg.Role == "user" {
			sb.WriteString(userLabel.Render("You"))
			sb.WriteString("\n")
			sb.WriteString(m.styles.UserInput.Render(msg.Content))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(agentLabel.Render("ponder"))
		sb.WriteString("\n")
		sb.WriteString(m.safeRenderMarkdown(msg.Content))
		sb.WriteString("\n")
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown, falling back to the raw text when the
// renderer is disabled or chokes on the input.
func (m Model) safeRenderMarkdown(content string) (out string) {
	if m.renderer == nil {
		return m.styles.AgentResponse.Render(content)
	}
	defer func() {
		if r := recover(); r != nil {
			out = m.styles.AgentResponse.Render(content)
		}
	}()

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return m.styles.AgentResponse.Render(content)
	}
	return strings.TrimRight(rendered, "\n")
}

func (m Model) renderInput() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1).
		Render(m.textarea.View())
}

func (m Model) renderFooter() string {
	hotkeys := "Enter: send | Esc: quit"
	if m.isLoading {
		hotkeys = "Ctrl+X: stop | " + hotkeys
	}

	line := fmt.Sprintf("%s | %d turns | %s | %s",
		m.client.Name(), m.turnCount, time.Now().Format("15:04"), hotkeys)

	footer := m.styles.Muted.Render(line)
	if m.err != nil {
		footer += "  " + m.styles.Error.Render("error: "+m.err.Error())
	}
	return lipgloss.NewStyle().MarginTop(1).MaxWidth(m.width).Render(footer)
}
