package chat

import (
	"strings"
	"testing"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestRenderHeader_ThinkingFallback(t *testing.T) {
	t.Parallel()
	m := NewTestModel(WithLoading(true))
	m.statusMessage = ""

	if !strings.Contains(m.renderHeader(), "Thinking...") {
		t.Error("Empty pill while loading should fall back to Thinking...")
	}
}

func TestRenderHeader_ShowsStatusText(t *testing.T) {
	t.Parallel()
	m := NewTestModel(WithLoading(true))
	m.statusMessage = "Styling the interface..."

	if !strings.Contains(m.renderHeader(), "Styling the interface...") {
		t.Error("Header should carry the current status text")
	}
}

func TestRenderHeader_ReadyWhenIdle(t *testing.T) {
	t.Parallel()
	m := NewTestModel()

	header := m.renderHeader()
	if !strings.Contains(header, "Ready") {
		t.Error("Idle header should show Ready")
	}
	if strings.Contains(header, "Thinking...") {
		t.Error("Idle header should not show the loading pill")
	}
}

func TestRenderHeader_VerboseCandidateLine(t *testing.T) {
	t.Parallel()
	m := NewTestModel(WithVerbose(), WithLoading(true))
	m.candidate = "Analyzing the layout before writing any markup..."

	if !strings.Contains(m.renderHeader(), "Analyzing the layout") {
		t.Error("Verbose mode should render the candidate line")
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestRenderTranscript_Empty(t *testing.T) {
	t.Parallel()
	m := NewTestModel()

	if !strings.Contains(m.renderTranscript(), "status pill") {
		t.Error("Empty transcript should show the welcome text")
	}
}

func TestRenderTranscript_RolesLabelled(t *testing.T) {
	t.Parallel()
	m := NewTestModel(WithMessages(
		Message{Role: "user", Content: "what is a goroutine?"},
		Message{Role: "assistant", Content: "A lightweight thread."},
	))

	out := m.renderTranscript()
	if !strings.Contains(out, "You") {
		t.Error("User messages should be labelled")
	}
	if !strings.Contains(out, "ponder") {
		t.Error("Assistant messages should be labelled")
	}
	if !strings.Contains(out, "lightweight thread") {
		t.Error("Answer content missing from transcript")
	}
}

func TestSafeRenderMarkdown_NoRenderer(t *testing.T) {
	t.Parallel()
	m := NewTestModel()
	m.renderer = nil

	out := m.safeRenderMarkdown("plain **bold** text")
	if !strings.Contains(out, "plain **bold** text") {
		t.Errorf("Without a renderer the raw text should pass through, got %q", out)
	}
}

// =============================================================================
// FOOTER AND VIEW TESTS
// =============================================================================

func TestRenderFooter_StopHintWhileLoading(t *testing.T) {
	t.Parallel()

	idle := NewTestModel()
	if strings.Contains(idle.renderFooter(), "Ctrl+X") {
		t.Error("Idle footer should not offer stop")
	}

	loading := NewTestModel(WithLoading(true))
	if !strings.Contains(loading.renderFooter(), "Ctrl+X") {
		t.Error("Loading footer should offer Ctrl+X: stop")
	}
}

func TestRenderFooter_ShowsProvider(t *testing.T) {
	t.Parallel()
	m := NewTestModel()

	if !strings.Contains(m.renderFooter(), "scripted") {
		t.Error("Footer should name the provider")
	}
}

func TestView_NotReady(t *testing.T) {
	t.Parallel()
	m := NewTestModel()
	m.ready = false

	if m.View() != "Initializing..." {
		t.Error("View before the first resize should show the boot line")
	}
}

func TestView_ComposesSections(t *testing.T) {
	t.Parallel()
	m := NewTestModel(WithMessages(
		Message{Role: "user", Content: "hello"},
	))
	m.viewport.SetContent(m.renderTranscript())

	out := m.View()
	if !strings.Contains(out, "ponder") {
		t.Error("View should include the header badge")
	}
	if !strings.Contains(out, "Enter: send") {
		t.Error("View should include the footer hotkeys")
	}
}
