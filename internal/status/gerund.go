package status

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// GERUND TRANSFORMER - Verb Phrase Rewriting
// =============================================================================
// Rewrites future-tense and imperative openers into gerund-led phrases:
// "I will analyze the data" becomes "Analyzing the data". Rules run in a
// fixed order and may compose; a meta-verb match aborts the whole transform
// so vague phrases stay recognizable as filler. Best-effort English
// morphology, not a parser.

var (
	// "(I|We) (will|should|need to|have to|want to|going to) <verb> ..."
	modalRule = regexp.MustCompile(`(?i)^(?:(?:i|we)'ll|(?:i|we)(?:'m|'re)?\s+(?:will|should|need\s+to|have\s+to|want\s+to|(?:am\s+|are\s+)?going\s+to))\s+([a-zA-Z]+)(.*)$`)
	// "(I|We) (am|are) <verb>ing ..."
	copulaIngRule = regexp.MustCompile(`(?i)^(?:(?:i|we)\s+(?:am|are)|i'm|we're)\s+([a-zA-Z]+ing)\b(.*)$`)
	// "(I|We) (am|are) <verb> ..."
	copulaBareRule = regexp.MustCompile(`(?i)^(?:(?:i|we)\s+(?:am|are)|i'm|we're)\s+([a-zA-Z]+)(.*)$`)
	// "(Let me|Let's|Lemme) <verb> ..."
	letRule = regexp.MustCompile(`(?i)^(?:let\s+me|let's|lemme)\s+([a-zA-Z]+)(.*)$`)
	// "<Verb> (the|a|an|...) ..." with a leading capital
	imperativeRule = regexp.MustCompile(`^([A-Z][a-zA-Z]+)\s+((?i:the|a|an|this|that|these|those|my|your|our|their|its)\s.*)$`)
)

// metaGerunds holds the -ing forms of the meta verbs so the copula rule can
// refuse "I am thinking ..." the same way the modal rule refuses
// "I will think ...".
var metaGerunds = make(map[string]struct{}, len(metaVerbs))

func init() {
	for v := range metaVerbs {
		metaGerunds[gerundOf(v)] = struct{}{}
	}
}

// ToGerund rewrites a verb-phrase opener into its gerund form, returning the
// input unchanged when no rule applies. Pure and deterministic.
func ToGerund(text string) string {
	out, _ := transformGerund(text)
	return out
}

// transformGerund applies the rewrite rules in order and reports whether any
// rule fired. A meta-verb hit returns the original input with false: the
// phrase is an opener, not an action, and must stay visible to the filler
// check.
func transformGerund(text string) (string, bool) {
	current := text
	changed := false

	if m := modalRule.FindStringSubmatch(current); m != nil {
		verb := strings.ToLower(m[1])
		if _, meta := metaVerbs[verb]; meta {
			return text, false
		}
		current = capitalizeFirst(gerundOf(verb)) + m[2]
		changed = true
	}
	if m := copulaIngRule.FindStringSubmatch(current); m != nil {
		ving := strings.ToLower(m[1])
		if _, meta := metaGerunds[ving]; meta {
			return text, false
		}
		current = capitalizeFirst(ving) + m[2]
		changed = true
	}
	if m := copulaBareRule.FindStringSubmatch(current); m != nil {
		verb := strings.ToLower(m[1])
		if _, meta := metaVerbs[verb]; meta {
			return text, false
		}
		current = capitalizeFirst(gerundOf(verb)) + m[2]
		changed = true
	}
	if m := letRule.FindStringSubmatch(current); m != nil {
		verb := strings.ToLower(m[1])
		if _, meta := metaVerbs[verb]; meta {
			return text, false
		}
		current = capitalizeFirst(gerundOf(verb)) + m[2]
		changed = true
	}
	// The imperative rule only fires for verbs in the conjugation map.
	// Auto-suffixing an arbitrary capitalized word would turn "Paris is
	// lovely" into nonsense, so unknown leading words are left alone.
	if m := imperativeRule.FindStringSubmatch(current); m != nil {
		if g, ok := gerundForms[strings.ToLower(m[1])]; ok {
			current = capitalizeFirst(g) + " " + m[2]
			changed = true
		}
	}
	return current, changed
}

// gerundOf resolves a verb to its -ing form, preferring the curated map over
// the morphological fallback.
func gerundOf(verb string) string {
	v := strings.ToLower(verb)
	if g, ok := gerundForms[v]; ok {
		return g
	}
	return autoGerund(v)
}

// autoGerund forms a gerund for verbs missing from the map: keep an existing
// -ing suffix, drop a single trailing e (but not a double e), double the
// final consonant of short consonant-vowel-consonant verbs, else append
// "ing".
func autoGerund(v string) string {
	switch {
	case strings.HasSuffix(v, "ing"):
		return v
	case len(v) > 1 && strings.HasSuffix(v, "e") && !strings.HasSuffix(v, "ee"):
		return v[:len(v)-1] + "ing"
	case len(v) <= 4 && endsCVC(v):
		return v + v[len(v)-1:] + "ing"
	default:
		return v + "ing"
	}
}

func endsCVC(v string) bool {
	if len(v) < 3 {
		return false
	}
	return !isVowel(v[len(v)-3]) && isVowel(v[len(v)-2]) && !isVowel(v[len(v)-1])
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
