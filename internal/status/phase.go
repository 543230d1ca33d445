package status

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// PHASE DETECTION - Forward-Only Lifecycle State Machine
// =============================================================================

// Phase is a coarse stage in the lifecycle of one reasoning stream. Phases are
// totally ordered and a stream's phase never moves backwards.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseAnalyzing
	PhasePlanning
	PhaseImplementing
	PhaseStyling
	PhaseFinalizing
)

// String returns the lowercase phase name for logs and persistence.
func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseAnalyzing:
		return "analyzing"
	case PhasePlanning:
		return "planning"
	case PhaseImplementing:
		return "implementing"
	case PhaseStyling:
		return "styling"
	case PhaseFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// Message returns the fixed display text shown while the stream sits in p.
func (p Phase) Message() string {
	for _, def := range phaseDefs {
		if def.phase == p {
			return def.message
		}
	}
	return msgThinking
}

// ParsePhase maps a stored phase name back to its Phase. Unknown names come
// back as PhaseStarting.
func ParsePhase(name string) Phase {
	for _, def := range phaseDefs {
		if def.phase.String() == name {
			return def.phase
		}
	}
	return PhaseStarting
}

// MarshalJSON encodes the phase by name so persisted records stay readable.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase name written by MarshalJSON.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*p = ParsePhase(name)
	return nil
}

// DetectPhase classifies the full accumulated buffer against the phase
// definitions. Only phases strictly after current are considered, so the
// result can never regress; among the qualifying phases the furthest one
// wins. A phase qualifies when the buffer has reached its minChars and any
// of its keywords appears case-insensitively anywhere in the buffer.
func DetectPhase(buffer string, current Phase) Phase {
	if buffer == "" {
		return current
	}
	lower := strings.ToLower(buffer)
	detected := current
	for _, def := range phaseDefs {
		if def.phase <= current {
			continue
		}
		if len(buffer) < def.minChars {
			continue
		}
		for _, kw := range def.keywords {
			if strings.Contains(lower, kw) {
				detected = def.phase
				break
			}
		}
	}
	return detected
}
