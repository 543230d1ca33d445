package status

import "regexp"

// =============================================================================
// PATTERN LIBRARY - Static Lookup Tables
// =============================================================================
// Pure data, initialized once and never mutated. Matching is case-insensitive;
// map keys are lowercase and callers lowercase before lookup. Nothing in this
// file can fail: a missing verb falls back to auto-suffixing, an unmatched
// pattern means "not detected".

// gerundForms maps base verbs to their -ing forms. Covers the verbs that show
// up in model reasoning about software work; anything absent goes through
// autoGerund instead.
var gerundForms = map[string]string{
	// Development
	"analyze":     "analyzing",
	"build":       "building",
	"create":      "creating",
	"implement":   "implementing",
	"write":       "writing",
	"code":        "coding",
	"develop":     "developing",
	"design":      "designing",
	"test":        "testing",
	"debug":       "debugging",
	"fix":         "fixing",
	"refactor":    "refactoring",
	"optimize":    "optimizing",
	"compile":     "compiling",
	"deploy":      "deploying",
	"integrate":   "integrating",
	"configure":   "configuring",
	"install":     "installing",
	"run":         "running",
	"execute":     "executing",
	"generate":    "generating",
	"render":      "rendering",
	"parse":       "parsing",
	"format":      "formatting",
	"lint":        "linting",
	"review":      "reviewing",
	"merge":       "merging",
	"commit":      "committing",
	"push":        "pushing",
	"pull":        "pulling",
	"clone":       "cloning",
	"release":     "releasing",
	"package":     "packaging",
	"bundle":      "bundling",
	"patch":       "patching",
	"upgrade":     "upgrading",
	"migrate":     "migrating",
	"refine":      "refining",
	"rewrite":     "rewriting",
	"document":    "documenting",
	"annotate":    "annotating",
	"profile":     "profiling",
	"benchmark":   "benchmarking",
	"trace":       "tracing",
	"log":         "logging",
	"monitor":     "monitoring",
	"inspect":     "inspecting",
	"prototype":   "prototyping",
	"scaffold":    "scaffolding",
	"mock":        "mocking",
	// Data and CRUD
	"add":         "adding",
	"remove":      "removing",
	"delete":      "deleting",
	"update":      "updating",
	"insert":      "inserting",
	"select":      "selecting",
	"query":       "querying",
	"fetch":       "fetching",
	"retrieve":    "retrieving",
	"store":       "storing",
	"save":        "saving",
	"load":        "loading",
	"read":        "reading",
	"scan":        "scanning",
	"search":      "searching",
	"find":        "finding",
	"filter":      "filtering",
	"sort":        "sorting",
	"group":       "grouping",
	"join":        "joining",
	"map":         "mapping",
	"reduce":      "reducing",
	"transform":   "transforming",
	"convert":     "converting",
	"serialize":   "serializing",
	"deserialize": "deserializing",
	"encode":      "encoding",
	"decode":      "decoding",
	"compress":    "compressing",
	"cache":       "caching",
	"index":       "indexing",
	"validate":    "validating",
	"sanitize":    "sanitizing",
	"normalize":   "normalizing",
	"aggregate":   "aggregating",
	"count":       "counting",
	"calculate":   "calculating",
	"compute":     "computing",
	"process":     "processing",
	"batch":       "batching",
	"stream":      "streaming",
	"export":      "exporting",
	"import":      "importing",
	"copy":        "copying",
	"move":        "moving",
	"rename":      "renaming",
	"replace":     "replacing",
	"extract":     "extracting",
	"collect":     "collecting",
	"gather":      "gathering",
	"populate":    "populating",
	"seed":        "seeding",
	"prune":       "pruning",
	"archive":     "archiving",
	"restore":     "restoring",
	"sync":        "syncing",
	"mix":         "mixing",
	// Networking
	"connect":      "connecting",
	"disconnect":   "disconnecting",
	"send":         "sending",
	"receive":      "receiving",
	"request":      "requesting",
	"respond":      "responding",
	"upload":       "uploading",
	"download":     "downloading",
	"publish":      "publishing",
	"subscribe":    "subscribing",
	"broadcast":    "broadcasting",
	"route":        "routing",
	"proxy":        "proxying",
	"forward":      "forwarding",
	"listen":       "listening",
	"bind":         "binding",
	"dial":         "dialing",
	"ping":         "pinging",
	"poll":         "polling",
	"resolve":      "resolving",
	"authenticate": "authenticating",
	"authorize":    "authorizing",
	"redirect":     "redirecting",
	"throttle":     "throttling",
	"retry":        "retrying",
	"queue":        "queuing",
	"dispatch":     "dispatching",
	// Security
	"encrypt":  "encrypting",
	"decrypt":  "decrypting",
	"hash":     "hashing",
	"sign":     "signing",
	"verify":   "verifying",
	"audit":    "auditing",
	"harden":   "hardening",
	"mask":     "masking",
	"redact":   "redacting",
	"rotate":   "rotating",
	"revoke":   "revoking",
	"grant":    "granting",
	"secure":   "securing",
	"protect":  "protecting",
	"isolate":  "isolating",
	"sandbox":  "sandboxing",
	// Interface and layout
	"style":     "styling",
	"animate":   "animating",
	"draw":      "drawing",
	"paint":     "painting",
	"display":   "displaying",
	"show":      "showing",
	"hide":      "hiding",
	"toggle":    "toggling",
	"resize":    "resizing",
	"scale":     "scaling",
	"position":  "positioning",
	"align":     "aligning",
	"center":    "centering",
	"arrange":   "arranging",
	"adjust":    "adjusting",
	"tweak":     "tweaking",
	"polish":    "polishing",
	"highlight": "highlighting",
	"scroll":    "scrolling",
	"navigate":  "navigating",
	"preview":   "previewing",
	"refresh":   "refreshing",
	"reload":    "reloading",
	"mount":     "mounting",
	"attach":    "attaching",
	"detach":    "detaching",
	"wire":      "wiring",
	"hook":      "hooking",
	"compose":   "composing",
	// Lifecycle and control
	"structure":  "structuring",
	"organize":   "organizing",
	"simplify":   "simplifying",
	"clarify":    "clarifying",
	"improve":    "improving",
	"enhance":    "enhancing",
	"extend":     "extending",
	"expand":     "expanding",
	"trim":       "trimming",
	"clean":      "cleaning",
	"finish":     "finishing",
	"complete":   "completing",
	"finalize":   "finalizing",
	"prepare":    "preparing",
	"initialize": "initializing",
	"construct":  "constructing",
	"terminate":  "terminating",
	"stop":       "stopping",
	"pause":      "pausing",
	"resume":     "resuming",
	"restart":    "restarting",
	"launch":     "launching",
	"boot":       "booting",
	"cancel":     "canceling",
	"schedule":   "scheduling",
	"plan":       "planning",
	"outline":    "outlining",
	"draft":      "drafting",
	"sketch":     "sketching",
	"model":      "modeling",
	"simulate":   "simulating",
	"measure":    "measuring",
	"evaluate":   "evaluating",
	"assess":     "assessing",
	"compare":    "comparing",
	"determine":  "determining",
	"identify":   "identifying",
	"locate":     "locating",
	"detect":     "detecting",
	"classify":   "classifying",
	"label":      "labeling",
	"tag":        "tagging",
	"mark":       "marking",
	"flag":       "flagging",
	"record":     "recording",
	"track":      "tracking",
	"handle":     "handling",
	"manage":     "managing",
	"coordinate": "coordinating",
	"delegate":   "delegating",
	"assign":     "assigning",
	"allocate":   "allocating",
	"acquire":    "acquiring",
	"establish":  "establishing",
	"define":     "defining",
	"declare":    "declaring",
	"register":   "registering",
	"expose":     "exposing",
	"wrap":       "wrapping",
	"fold":       "folding",
	"flatten":    "flattening",
	"split":      "splitting",
	"combine":    "combining",
	"append":     "appending",
	"inject":     "injecting",
	"embed":      "embedding",
	// Analysis and thinking
	"think":       "thinking",
	"consider":    "considering",
	"explore":     "exploring",
	"investigate": "investigating",
	"research":    "researching",
	"study":       "studying",
	"learn":       "learning",
	"understand":  "understanding",
	"figure":      "figuring",
	"try":         "trying",
	"start":       "starting",
	"begin":       "beginning",
	"continue":    "continuing",
	"proceed":     "proceeding",
	"work":        "working",
	"look":        "looking",
	"see":         "seeing",
	"know":        "knowing",
	"wonder":      "wondering",
	"decide":      "deciding",
	"choose":      "choosing",
	"pick":        "picking",
	"weigh":       "weighing",
	"reason":      "reasoning",
	"infer":       "inferring",
	"conclude":    "concluding",
	"summarize":   "summarizing",
	"explain":     "explaining",
	"describe":    "describing",
	"illustrate":  "illustrating",
	"demonstrate": "demonstrating",
	"confirm":     "confirming",
	"ensure":      "ensuring",
	"check":       "checking",
	"examine":     "examining",
	"revisit":     "revisiting",
	"rethink":     "rethinking",
}

// metaVerbs are never rewritten into gerunds. Transforming "let me think" into
// "Thinking" would launder a vague opener into fake action text; leaving it
// alone lets the filler check reject the whole phrase instead. This list is
// tuned product behavior, not grammar.
var metaVerbs = map[string]struct{}{
	"think":      {},
	"see":        {},
	"look":       {},
	"know":       {},
	"understand": {},
	"consider":   {},
	"wonder":     {},
	"figure":     {},
	"try":        {},
	"start":      {},
}

// fillerPhrases are prefixes that mark thinking-out-loud rather than a
// concrete action. Checked case-insensitively against the transformed
// candidate; entries carrying trailing spaces or commas avoid clipping
// ordinary words ("so " must not match "Sorting").
var fillerPhrases = []string{
	// Pronoun + modal openers
	"i will", "i'll", "i would", "i'd", "i should", "i could", "i can",
	"i need to", "i have to", "i want to", "i am going to", "i'm going to",
	"i am", "i'm", "we will", "we'll", "we should", "we need", "we can",
	"we are", "we're", "let me", "let's", "lemme",
	// Hedges
	"maybe", "perhaps", "probably", "possibly", "it seems", "it looks like",
	"it appears", "it might", "i think", "i believe", "i guess", "i suppose",
	"i wonder", "i see", "i feel",
	// Discourse markers
	"okay", "ok,", "ok ", "alright", "so,", "so ", "well,", "well ",
	"now,", "now ", "hmm", "ah,", "oh,", "right,", "yes,", "no,",
	"actually", "basically", "essentially", "anyway", "also,",
	"first,", "first of all", "next,", "then,", "finally,",
	"wait", "hold on", "note that", "of course", "to be clear",
	"in other words", "that said", "good,", "great,", "sure,",
}

// negativePatterns catch sentences that tell the reader what NOT to do, plus
// HTML document boilerplate and comment markers that sometimes leak into
// reasoning streams.
var negativePatterns = []*regexp.Regexp{
	// Prohibitions
	regexp.MustCompile(`(?i)^(do\s+not|don'?t|never|avoid|stop|no\s+need\s+to)\b`),
	regexp.MustCompile(`(?i)\b(should\s+not|shouldn'?t|must\s+not|mustn'?t|cannot|can'?t|won'?t|will\s+not)\b`),
	// HTML document boilerplate
	regexp.MustCompile(`(?i)<!DOCTYPE`),
	regexp.MustCompile(`(?i)<(html|head|body|meta|script|style)\b`),
	// Comment markers
	regexp.MustCompile(`^\s*(//|#|/\*|\*\s|--\s|<!--)`),
	regexp.MustCompile(`-->\s*$`),
}

// codePatterns detect fragments that are source code rather than prose. Plain
// parentheses are deliberately absent: "Analyzing the request (again)" is
// prose, "handleClick()" is not.
var codePatterns = []*regexp.Regexp{
	// Braces and line-terminating semicolons
	regexp.MustCompile(`[{}]`),
	regexp.MustCompile(`;\s*$`),
	// Reserved keywords that rarely appear in prose
	regexp.MustCompile(`\b(const|var|let|func|def|elif|lambda|struct|typedef|nil|null|undefined|instanceof|typeof)\b`),
	regexp.MustCompile(`\bfunction\s+\w+\s*\(`),
	regexp.MustCompile(`\b(if|for|while|switch)\s*\(`),
	// Arrow syntax
	regexp.MustCompile(`=>|->`),
	// Closing and self-closing tags
	regexp.MustCompile(`</\w+>|/>`),
	// Method calls and empty calls
	regexp.MustCompile(`\b\w+\.\w+\s*\(`),
	regexp.MustCompile(`\b\w+\(\)`),
	// Assignment and comparison operators
	regexp.MustCompile(`==|!=|:=|<=|>=`),
	// Template interpolation
	regexp.MustCompile(`\$\{[^}]*\}`),
	regexp.MustCompile(`\{\{.*\}\}`),
}

// statePattern and actionPattern decide state-vs-action. A sentence that
// describes how things are ("The config has three sections") is not worth
// showing; one that leads with an -ing verb is.
var (
	statePattern  = regexp.MustCompile(`(?i)\b(is|are|was|were|has|have|had|will\s+be|isn'?t|aren'?t|doesn'?t|don'?t|seems|appears)\b`)
	actionPattern = regexp.MustCompile(`(?i)^\w+ing\b`)
)

// dataPatterns catch JSON and dict-like fragments by punctuation signature.
var dataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[\[{]`),
	regexp.MustCompile(`"[\w-]+"\s*:`),
	regexp.MustCompile(`'[\w-]+'\s*:`),
	regexp.MustCompile(`:\s*[\[{]`),
	regexp.MustCompile(`\b(true|false|null)\s*[,}\]]`),
}

// Candidate cleaning and list detection.
var (
	numberedListPattern = regexp.MustCompile(`^\d+[.)]\s`)
	bulletPattern       = regexp.MustCompile(`^[-*•>]\s`)
	stepPrefixPattern   = regexp.MustCompile(`(?i)^(step|phase|part|stage|task)\s*\d*\s*[:.)\-]\s*`)
	labelPrefixPattern  = regexp.MustCompile(`^[A-Za-z][\w-]*:\s+`)
	numberPrefixPattern = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletPrefixPattern = regexp.MustCompile(`^[-*•>]+\s*`)
	sentenceEndPattern  = regexp.MustCompile(`[.!?]+\s+`)
)

// quoteRunes are the characters that mark a candidate as quoted material.
const quoteRunes = "\"'`“”‘’«»"

// phaseDef ties a lifecycle phase to its display message, the minimum buffer
// size at which it becomes reachable, and the keywords that trigger it.
// Keywords are lowercase substrings; several are stems ("analyz" covers
// analyze/analyzing/analysis). minChars thresholds step up through the
// definitions so early chatter cannot jump the stream to a late phase.
type phaseDef struct {
	phase    Phase
	message  string
	minChars int
	keywords []string
}

var phaseDefs = []phaseDef{
	{
		phase:    PhaseStarting,
		message:  "Thinking...",
		minChars: 0,
		keywords: nil,
	},
	{
		phase:    PhaseAnalyzing,
		message:  "Analyzing the request...",
		minChars: 50,
		keywords: []string{
			"understand", "analyz", "looking at", "look at", "examin",
			"requirement", "review", "the user is asking", "what the user wants",
		},
	},
	{
		phase:    PhasePlanning,
		message:  "Planning the approach...",
		minChars: 200,
		keywords: []string{
			"plan", "approach", "structur", "strategy", "outline",
			"organiz", "break this down", "step by step",
		},
	},
	{
		phase:    PhaseImplementing,
		message:  "Building the solution...",
		minChars: 400,
		keywords: []string{
			"implement", "creat", "build", "writ", "code",
			"function", "component", "develop", "construct",
		},
	},
	{
		phase:    PhaseStyling,
		message:  "Styling the interface...",
		minChars: 600,
		keywords: []string{
			"styl", "css", "layout", "color", "theme",
			"font", "animat", "visual", "polish",
		},
	},
	{
		phase:    PhaseFinalizing,
		message:  "Finalizing the details...",
		minChars: 800,
		keywords: []string{
			"finaliz", "final touch", "complet", "finish",
			"wrap up", "clean up", "summariz", "last step",
		},
	},
}
