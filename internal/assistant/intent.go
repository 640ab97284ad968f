package assistant

import "strings"

// Intent is the category of what a question asks for.
type Intent string

const (
	IntentSummary        Intent = "summary"
	IntentRecommendation Intent = "recommendation"
	IntentComparison     Intent = "comparison"
	IntentCharacterInfo  Intent = "characterInfo"
	IntentStudioInfo     Intent = "studioInfo"
	IntentReleaseInfo    Intent = "releaseInfo"
	IntentGenreList      Intent = "genreList"
	IntentCreative       Intent = "creative"
	IntentUnknown        Intent = "unknown"
)

var allIntents = []Intent{
	IntentSummary,
	IntentRecommendation,
	IntentComparison,
	IntentCharacterInfo,
	IntentStudioInfo,
	IntentReleaseInfo,
	IntentGenreList,
	IntentCreative,
	IntentUnknown,
}

var intentsByKey = func() map[string]Intent {
	m := make(map[string]Intent, len(allIntents))
	for _, intent := range allIntents {
		m[intentKey(string(intent))] = intent
	}
	return m
}()

// AllIntents lists every intent in dispatch order.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

// ParseIntent maps a label onto an Intent. Matching ignores case and treats
// underscores, hyphens, and spaces as absent, so "character_info" parses as
// IntentCharacterInfo.
func ParseIntent(label string) (Intent, bool) {
	intent, ok := intentsByKey[intentKey(label)]
	return intent, ok
}

func (i Intent) String() string { return string(i) }

// consumesTitle reports whether the intent's handler reads the title extraction.
func (i Intent) consumesTitle() bool {
	switch i {
	case IntentSummary, IntentRecommendation, IntentCharacterInfo, IntentStudioInfo:
		return true
	default:
		return false
	}
}

func intentKey(label string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(label)))
}

// Usage describes how a mentioned title should be treated downstream.
type Usage string

const (
	UsageSubject   Usage = "subject"
	UsageReference Usage = "reference"
	UsageCompare   Usage = "compare"
	UsageNone      Usage = "none"
)

func parseUsage(raw string, hasTitle bool) Usage {
	if !hasTitle {
		return UsageNone
	}
	switch Usage(strings.ToLower(strings.TrimSpace(raw))) {
	case UsageReference:
		return UsageReference
	case UsageCompare:
		return UsageCompare
	default:
		return UsageSubject
	}
}

// TitleExtraction is the structured reading of a single title mention.
// Title is empty unless HasTitle is set.
type TitleExtraction struct {
	HasTitle bool   `json:"hasTitle"`
	Title    string `json:"title,omitempty"`
	Usage    Usage  `json:"usage"`
}
