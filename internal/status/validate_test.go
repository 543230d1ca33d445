package status

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateCandidate(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		input       string
		wantValid   bool
		wantReason  RejectReason
		wantCleaned string
	}{
		{
			name:        "future tense becomes gerund and passes",
			input:       "I will analyze the data",
			wantValid:   true,
			wantCleaned: "Analyzing the data",
		},
		{
			name:        "copula sentence is laundered before the filler check",
			input:       "I am checking the schema carefully",
			wantValid:   true,
			wantCleaned: "Checking the schema carefully",
		},
		{
			name:        "step prefix is stripped then transformed",
			input:       "Step 2: Create a fallback for the missing icons",
			wantValid:   true,
			wantCleaned: "Creating a fallback for the missing icons",
		},
		{
			name:        "trailing sentence punctuation is dropped",
			input:       "I am testing the dashboard.",
			wantValid:   true,
			wantCleaned: "Testing the dashboard",
		},
		{
			name:       "too short",
			input:      "Hi",
			wantValid:  false,
			wantReason: ReasonTooShort,
		},
		{
			name:       "too few words",
			input:      "Internationalizing",
			wantValid:  false,
			wantReason: ReasonTooFewWords,
		},
		{
			name:       "no leading capital",
			input:      "lowercase words everywhere in here",
			wantValid:  false,
			wantReason: ReasonNoCapital,
		},
		{
			name:       "meta verb keeps filler visible",
			input:      "Let me think about this problem",
			wantValid:  false,
			wantReason: ReasonFillerPhrase,
		},
		{
			name:       "hedge opener is filler",
			input:      "Maybe the parser needs a different entry point",
			wantValid:  false,
			wantReason: ReasonFillerPhrase,
		},
		{
			name:       "prohibition is rejected",
			input:      "Do not modify the generated files",
			wantValid:  false,
			wantReason: ReasonNegativeInstruction,
		},
		{
			name:       "trailing colon is rejected",
			input:      "Here are the steps we follow:",
			wantValid:  false,
			wantReason: ReasonEndsWithColon,
		},
		{
			name:       "method call reads as code",
			input:      "Calling setTimeout() with the handler",
			wantValid:  false,
			wantReason: ReasonLooksLikeCode,
		},
		{
			name:       "state sentence is rejected",
			input:      "The config file has three sections",
			wantValid:  false,
			wantReason: ReasonStateSentence,
		},
		{
			name:        "numbered list is rejected before cleaning",
			input:       "1. Build the user interface",
			wantValid:   false,
			wantReason:  ReasonNumberedList,
			wantCleaned: "1. Build the user interface",
		},
		{
			name:       "quoted text is rejected",
			input:      `"Building the solution" is what it said`,
			wantValid:  false,
			wantReason: ReasonQuoted,
		},
		{
			name:       "json fragment reads as data",
			input:      `Sending "status": active to the server`,
			wantValid:  false,
			wantReason: ReasonLooksLikeData,
		},
		{
			name:       "short bullet is rejected",
			input:      "- Review the authentication flow",
			wantValid:  false,
			wantReason: ReasonShortBullet,
		},
		{
			name:        "long bullet passes",
			input:       "- Review the authentication flow for the admin dashboard",
			wantValid:   true,
			wantCleaned: "Reviewing the authentication flow for the admin dashboard",
		},
		{
			name:       "empty input",
			input:      "",
			wantValid:  false,
			wantReason: ReasonTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCandidate(tt.input, cfg)
			if got.Valid != tt.wantValid {
				t.Fatalf("ValidateCandidate(%q).Valid = %v, want %v (reason %q)",
					tt.input, got.Valid, tt.wantValid, got.Reason)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("ValidateCandidate(%q).Reason = %q, want %q", tt.input, got.Reason, tt.wantReason)
			}
			if tt.wantCleaned != "" && got.Cleaned != tt.wantCleaned {
				t.Errorf("ValidateCandidate(%q).Cleaned = %q, want %q", tt.input, got.Cleaned, tt.wantCleaned)
			}
		})
	}
}

func TestValidateCandidateTruncation(t *testing.T) {
	cfg := DefaultConfig()
	input := "I will implement the new authentication system with refresh token rotation and session pinning"
	want := "Implementing the new authentication system with refresh token rotat..."

	got := ValidateCandidate(input, cfg)
	if !got.Valid {
		t.Fatalf("ValidateCandidate(%q) rejected with %q", input, got.Reason)
	}
	if got.Cleaned != want {
		t.Errorf("Cleaned = %q, want %q", got.Cleaned, want)
	}
	if n := utf8.RuneCountInString(got.Cleaned); n != cfg.MaxLength {
		t.Errorf("truncated length = %d, want %d", n, cfg.MaxLength)
	}
	if !strings.HasSuffix(got.Cleaned, "...") {
		t.Errorf("truncated text %q does not end with ellipsis", got.Cleaned)
	}
}

// Accepted output must be a fixed point: validating it again yields the same
// cleaned text. This is what lets the engine re-examine its own output
// without drift.
func TestValidateCandidateIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	inputs := []string{
		"I will analyze the data structures here",
		"Let me build the sidebar component now",
		"Step 2: Create a fallback for the missing icons",
		"I am testing the dashboard.",
		"I will implement the new authentication system with refresh token rotation and session pinning",
	}

	for _, in := range inputs {
		first := ValidateCandidate(in, cfg)
		if !first.Valid {
			t.Fatalf("ValidateCandidate(%q) rejected with %q", in, first.Reason)
		}
		second := ValidateCandidate(first.Cleaned, cfg)
		if !second.Valid {
			t.Errorf("revalidating %q rejected with %q", first.Cleaned, second.Reason)
			continue
		}
		if second.Cleaned != first.Cleaned {
			t.Errorf("revalidating %q changed it to %q", first.Cleaned, second.Cleaned)
		}
	}
}

func TestBestCandidate(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("most recent acceptable line wins", func(t *testing.T) {
		raw := "The data looks malformed here.\n" +
			"1. Parse the header\n" +
			"Let me think about it\n" +
			"I will update the retry logic now"
		got, ok := BestCandidate(raw, cfg)
		if !ok {
			t.Fatal("BestCandidate found nothing")
		}
		if want := "Updating the retry logic now"; got != want {
			t.Errorf("BestCandidate = %q, want %q", got, want)
		}
	})

	t.Run("later sentence in a line wins", func(t *testing.T) {
		raw := "We tried plan A. I am testing the fallback path now."
		got, ok := BestCandidate(raw, cfg)
		if !ok {
			t.Fatal("BestCandidate found nothing")
		}
		if want := "Testing the fallback path now"; got != want {
			t.Errorf("BestCandidate = %q, want %q", got, want)
		}
	})

	t.Run("nothing acceptable", func(t *testing.T) {
		raw := "Short.\n// comment line\n{ }"
		if got, ok := BestCandidate(raw, cfg); ok {
			t.Errorf("BestCandidate = %q, want no result", got)
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		if got, ok := BestCandidate("", cfg); ok {
			t.Errorf("BestCandidate = %q, want no result", got)
		}
	})
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Step 1: Analyze requirements", "Analyze requirements"},
		{"Phase 2: polish the layout", "polish the layout"},
		{"Building: the parser module", "the parser module"},
		{"3) Deploy the service", "Deploy the service"},
		{"- bullet item text", "bullet item text"},
		{"plain text stays", "plain text stays"},
	}
	for _, tt := range tests {
		if got := StripPrefix(tt.input); got != tt.want {
			t.Errorf("StripPrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeCode(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"function handleClick() { setState(...) }", true},
		{"const x = items.map(i => i.id)", true},
		{"</div>", true},
		{"res.send(payload)", true},
		{"value ${count} rendered", true},
		{"if (ready) launch()", true},
		{"Analyzing the request flow", false},
		{"Adding a fallback (just in case)", false},
	}
	for _, tt := range tests {
		if got := LooksLikeCode(tt.input); got != tt.want {
			t.Errorf("LooksLikeCode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStartsWithFiller(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"I think the cache is stale", true},
		{"Okay, moving on to the tests", true},
		{"Maybe a different approach", true},
		{"Let me check the imports", true},
		{"Sorting the entries by date", false},
		{"Nowhere near done yet", false},
		{"Analyzing the request", false},
	}
	for _, tt := range tests {
		if got := StartsWithFiller(tt.input); got != tt.want {
			t.Errorf("StartsWithFiller(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsNegativeInstruction(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Don't touch the generated files", true},
		{"Never commit secrets", true},
		{"This approach won't scale", true},
		{"<html lang=\"en\">", true},
		{"// wire up the handler", true},
		{"Adding the request handler", false},
	}
	for _, tt := range tests {
		if got := IsNegativeInstruction(tt.input); got != tt.want {
			t.Errorf("IsNegativeInstruction(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsStateSentence(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"The file has three sections", true},
		{"The tests are flaky on CI", true},
		{"Checking if the file has sections", false},
		{"Has the file changed?", false},
		{"Building the solution", false},
	}
	for _, tt := range tests {
		if got := IsStateSentence(tt.input); got != tt.want {
			t.Errorf("IsStateSentence(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLooksLikeData(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{`{"key": 1}`, true},
		{`payload with "count": 42 inside`, true},
		{"items: [1, 2, 3]", true},
		{"Counting the results", false},
	}
	for _, tt := range tests {
		if got := LooksLikeData(tt.input); got != tt.want {
			t.Errorf("LooksLikeData(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short text unchanged", "Analyzing the data", 70, "Analyzing the data"},
		{"exactly at limit unchanged", strings.Repeat("a", 70), 70, strings.Repeat("a", 70)},
		{"cut and trimmed", "Hello world this is a longer sentence", 20, "Hello world this..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
