// Package status turns the growing reasoning buffer of a model stream into a
// short, stable display phrase. It is deterministic and side-effect free:
// every call is a pure computation over the buffer, the caller-owned State,
// and a clock value. The engine surfaces at most one fixed message per
// lifecycle phase plus a single code-writing override, never raw extracted
// sentences, so the visible text cannot flicker as tokens stream in.
package status

import (
	"strings"
	"time"
)

// Bootstrap sentinels and the code override. A State still showing a
// bootstrap sentinel is "initial": it has never displayed real content, so
// throttling does not apply to it.
const (
	msgThinking   = "Thinking..."
	msgProcessing = "Processing..."
	msgCoding     = "Writing code..."
)

const (
	// Lines inspected at the end of the buffer for the code override.
	codeTailLines = 3
	// The code override fires only for initial state or after this much
	// quiet, so it cannot churn against a fresh phase message.
	codeOverrideAfter = 2000 * time.Millisecond
)

// Config bounds candidate acceptance and pacing. All fields must be positive
// and MinLength must not exceed MaxLength.
type Config struct {
	MinLength    int
	MinWordCount int
	ThrottleMs   int
	MaxLength    int
}

// DefaultConfig returns the tuned production values.
func DefaultConfig() Config {
	return Config{
		MinLength:    15,
		MinWordCount: 3,
		ThrottleMs:   1500,
		MaxLength:    70,
	}
}

// State is the per-stream extraction state. Callers create one per reasoning
// stream, pass it by value into every extraction call, and keep the returned
// copy; nothing here is shared or global.
type State struct {
	LastText   string
	LastUpdate time.Time
	Phase      Phase
}

// NewState returns the state a fresh reasoning stream starts in.
func NewState() State {
	return State{LastText: msgThinking, Phase: PhaseStarting}
}

// Result is what one extraction call yields. Text always equals
// State.LastText, and Updated is true exactly when Text differs from the
// text of the state passed in.
type Result struct {
	Text    string
	Updated bool
	State   State
}

// Extract runs one extraction pass against the wall clock.
func Extract(raw string, st State, cfg Config) Result {
	return ExtractAt(raw, st, cfg, time.Now())
}

// ExtractAt is the clock-injected core of the engine. Decision order:
//
//  1. A phase transition wins outright and bypasses the throttle; phase
//     changes are rare and meaningful, so they are shown immediately.
//  2. Otherwise the throttle holds the previous text while the stream is
//     inside the quiet window, unless the state has never shown real
//     content.
//  3. A code-looking buffer tail overrides with a fixed coding message and
//     pins the phase at least at Implementing.
//  4. The default is the current phase's fixed message, which is what keeps
//     the display stable across token-by-token growth.
func ExtractAt(raw string, st State, cfg Config, now time.Time) Result {
	if next := DetectPhase(raw, st.Phase); next != st.Phase {
		return commit(st, next.Message(), next, now)
	}

	elapsed := now.Sub(st.LastUpdate)
	initial := st.LastText == msgThinking || st.LastText == msgProcessing
	if !initial && elapsed < time.Duration(cfg.ThrottleMs)*time.Millisecond {
		return Result{Text: st.LastText, Updated: false, State: st}
	}

	if tailLooksLikeCode(raw) && (initial || elapsed > codeOverrideAfter) {
		phase := st.Phase
		if phase < PhaseImplementing {
			phase = PhaseImplementing
		}
		return commit(st, msgCoding, phase, now)
	}

	return commit(st, st.Phase.Message(), st.Phase, now)
}

// commit folds a display decision into the next state. LastUpdate moves only
// when the visible text actually changed, so the throttle window measures
// time since the last change the user could see.
func commit(st State, text string, phase Phase, now time.Time) Result {
	updated := text != st.LastText
	next := State{LastText: text, LastUpdate: st.LastUpdate, Phase: phase}
	if updated {
		next.LastUpdate = now
	}
	return Result{Text: text, Updated: updated, State: next}
}

// tailLooksLikeCode checks the last few lines of the buffer against the code
// patterns. Only the tail matters: the stream may have discussed code pages
// ago and long since moved on.
func tailLooksLikeCode(raw string) bool {
	trimmed := strings.TrimRight(raw, " \t\r\n")
	if trimmed == "" {
		return false
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > codeTailLines {
		lines = lines[len(lines)-codeTailLines:]
	}
	for _, line := range lines {
		if LooksLikeCode(line) {
			return true
		}
	}
	return false
}
