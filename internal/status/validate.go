package status

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// CANDIDATE VALIDATION - Ordered Rejection Pipeline
// =============================================================================

// RejectReason names why a candidate was refused. Closed set; the zero value
// means accepted.
type RejectReason string

const (
	ReasonTooShort            RejectReason = "too_short"
	ReasonTooFewWords         RejectReason = "too_few_words"
	ReasonNoCapital           RejectReason = "no_capital"
	ReasonLooksLikeCode       RejectReason = "looks_like_code"
	ReasonFillerPhrase        RejectReason = "filler_phrase"
	ReasonNegativeInstruction RejectReason = "negative_instruction"
	ReasonStateSentence       RejectReason = "state_sentence"
	ReasonEndsWithColon       RejectReason = "ends_with_colon"
	ReasonNumberedList        RejectReason = "numbered_list"
	ReasonQuoted              RejectReason = "quoted"
	ReasonLooksLikeData       RejectReason = "looks_like_data"
	ReasonShortBullet         RejectReason = "short_bullet"
)

// Verdict is the outcome of validating one candidate. Cleaned carries the
// best text the pipeline produced even on rejection, so callers can see what
// would have been shown.
type Verdict struct {
	Valid   bool
	Cleaned string
	Reason  RejectReason
}

// Bullet fragments shorter than this are list scaffolding, not status text.
const shortBulletChars = 40

// ValidateCandidate decides whether a text fragment is acceptable as a
// user-visible status phrase. The checks run in a fixed order and the order
// carries meaning: cheap structural rejections come first, the gerund
// transform runs before the filler check so that "I am checking the schema"
// is laundered into "Checking the schema" while "Let me think about it"
// stays filler, and cosmetic cleanup happens only on accepted text.
func ValidateCandidate(text string, cfg Config) Verdict {
	raw := strings.TrimSpace(text)

	if numberedListPattern.MatchString(raw) {
		return reject(raw, ReasonNumberedList)
	}
	if r, _ := utf8.DecodeRuneInString(raw); strings.ContainsRune(quoteRunes, r) {
		return reject(raw, ReasonQuoted)
	}

	fromBullet := bulletPattern.MatchString(raw)
	cleaned := StripPrefix(raw)
	transformed, didTransform := transformGerund(cleaned)
	t := strings.TrimSpace(transformed)

	if utf8.RuneCountInString(t) < cfg.MinLength {
		return reject(t, ReasonTooShort)
	}
	if len(strings.Fields(t)) < cfg.MinWordCount {
		return reject(t, ReasonTooFewWords)
	}
	if r, _ := utf8.DecodeRuneInString(t); !unicode.IsUpper(r) {
		return reject(t, ReasonNoCapital)
	}
	if StartsWithFiller(t) && !didTransform {
		return reject(t, ReasonFillerPhrase)
	}
	if IsNegativeInstruction(t) {
		return reject(t, ReasonNegativeInstruction)
	}
	if strings.HasSuffix(t, ":") {
		return reject(t, ReasonEndsWithColon)
	}
	if LooksLikeCode(t) {
		return reject(t, ReasonLooksLikeCode)
	}
	if IsStateSentence(t) {
		return reject(t, ReasonStateSentence)
	}
	if LooksLikeData(t) {
		return reject(t, ReasonLooksLikeData)
	}
	if fromBullet && utf8.RuneCountInString(t) < shortBulletChars {
		return reject(t, ReasonShortBullet)
	}

	return Verdict{Valid: true, Cleaned: Truncate(trimSentenceEnd(t), cfg.MaxLength)}
}

func reject(cleaned string, reason RejectReason) Verdict {
	return Verdict{Valid: false, Cleaned: cleaned, Reason: reason}
}

// BestCandidate scans a raw buffer for the most recent displayable sentence:
// lines from last to first, sentences within a line from last to first, first
// accepted candidate wins. Retained for callers that want fine-grained
// extraction instead of the fixed phase messages.
func BestCandidate(raw string, cfg Config) (string, bool) {
	lines := strings.Split(raw, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		sentences := sentenceEndPattern.Split(line, -1)
		for j := len(sentences) - 1; j >= 0; j-- {
			candidate := strings.TrimSpace(sentences[j])
			if candidate == "" {
				continue
			}
			if v := ValidateCandidate(candidate, cfg); v.Valid {
				return v.Cleaned, true
			}
		}
	}
	return "", false
}

// =============================================================================
// PREDICATE HELPERS
// =============================================================================

// LooksLikeCode reports whether any code-likeness pattern matches.
func LooksLikeCode(text string) bool {
	for _, p := range codePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// StartsWithFiller reports whether the text opens with a hedge, modal, or
// discourse marker from the filler list.
func StartsWithFiller(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, f := range fillerPhrases {
		if strings.HasPrefix(lower, f) {
			return true
		}
	}
	return false
}

// IsNegativeInstruction reports whether the text reads as a prohibition,
// HTML boilerplate, or a comment line.
func IsNegativeInstruction(text string) bool {
	for _, p := range negativePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// IsStateSentence reports whether the text describes how things are rather
// than what is being done: it carries a state verb, does not lead with an
// action, and is not a question.
func IsStateSentence(text string) bool {
	t := strings.TrimSpace(text)
	return statePattern.MatchString(t) &&
		!actionPattern.MatchString(t) &&
		!strings.HasSuffix(t, "?")
}

// LooksLikeData reports whether the text carries JSON or dict-like
// punctuation signatures.
func LooksLikeData(text string) bool {
	for _, p := range dataPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// StripPrefix removes label, step, phase, and numbered-list prefixes plus a
// leading bullet marker: "Step 1: Analyze requirements" becomes "Analyze
// requirements".
func StripPrefix(text string) string {
	t := strings.TrimSpace(text)
	t = stepPrefixPattern.ReplaceAllString(t, "")
	t = labelPrefixPattern.ReplaceAllString(t, "")
	t = numberPrefixPattern.ReplaceAllString(t, "")
	t = bulletPrefixPattern.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// Truncate caps text at max runes. Overlong text is cut three short, trimmed
// of trailing whitespace, and finished with "..."; text at or under the cap
// is returned unmodified.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := max - 3
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(string(runes[:cut]), " \t") + "..."
}

// trimSentenceEnd drops trailing sentence punctuation from accepted text. A
// trailing ellipsis survives so truncated output revalidates to itself.
func trimSentenceEnd(text string) string {
	if strings.HasSuffix(text, "...") {
		return text
	}
	return strings.TrimRight(text, ".!?,;:")
}
