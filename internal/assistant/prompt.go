package assistant

import (
	"strconv"
	"strings"

	"animebuddy/internal/anime"
)

const (
	noRecordsSentinel  = "(No specific anime data available)"
	defaultInstruction = "Answer conversationally and accurately using the data above."
)

var instructionClauses = map[Intent]string{
	IntentSummary:        "Give the user a short, engaging summary of this anime using the data above.",
	IntentRecommendation: "Recommend anime that fit what the user is looking for, drawing on the data above.",
	IntentComparison:     "Compare these anime for the user and answer their question using the data above.",
}

// PromptInput carries everything the closing LLM call needs to know.
type PromptInput struct {
	Question string
	Intent   Intent
	Titles   []string
	Records  []anime.Record
	Genre    string
	Year     int
}

// BuildPrompt renders the enriched prompt. Output depends only on in.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString(`User asked: "`)
	b.WriteString(in.Question)
	b.WriteString("\"\n")
	b.WriteString("Detected intent: ")
	b.WriteString(string(in.Intent))
	b.WriteByte('\n')

	if titles := nonBlank(in.Titles); len(titles) > 0 {
		b.WriteString("Detected titles: ")
		b.WriteString(strings.Join(titles, ", "))
		b.WriteByte('\n')
	}
	if genre := strings.TrimSpace(in.Genre); genre != "" && !strings.EqualFold(genre, anime.GeneralGenre) {
		b.WriteString("Genre filter: ")
		b.WriteString(genre)
		b.WriteByte('\n')
	}
	if in.Year > 0 {
		b.WriteString("Year filter: ")
		b.WriteString(strconv.Itoa(in.Year))
		b.WriteByte('\n')
	}

	b.WriteString("\nHere's what we know:\n")
	if len(in.Records) == 0 {
		b.WriteString(noRecordsSentinel)
		b.WriteByte('\n')
	}
	for _, rec := range in.Records {
		writeRecord(&b, rec)
	}

	b.WriteByte('\n')
	b.WriteString(instructionFor(in.Intent))
	return b.String()
}

func writeRecord(b *strings.Builder, rec anime.Record) {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = "Unknown"
	}
	b.WriteString("- Title: ")
	b.WriteString(title)
	b.WriteString("\n  Score: ")
	b.WriteString(strconv.FormatFloat(rec.ScoreOrZero(), 'f', -1, 64))
	b.WriteString("\n  Episodes: ")
	b.WriteString(strconv.Itoa(rec.EpisodesOrZero()))
	b.WriteString("\n  Synopsis: ")
	b.WriteString(rec.SynopsisOr("N/A"))
	b.WriteByte('\n')
}

func instructionFor(intent Intent) string {
	if clause, ok := instructionClauses[intent]; ok {
		return clause
	}
	return defaultInstruction
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
