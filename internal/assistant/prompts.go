package assistant

import (
	"fmt"

	"animebuddy/internal/services/llm"
)

const titleExtractionPrompt = `Identify whether the following text mentions the name of ANY anime title, even if it is only used for comparison or as a point of reference.
Classify how the title is used:
- "subject": the user is asking about this anime itself
- "reference": the user likes this anime and wants something similar
- "compare": the anime is one side of a comparison
- "none": no anime title is mentioned
Respond only in valid JSON:
{"hasTitle": true/false, "title": "<anime title or null>", "usage": "subject|reference|compare|none"}
Text: "%s"`

const genreExtractionPrompt = `Identify the anime genre or theme the following text asks about (for example action, romance, isekai, slice of life).
Respond only in valid JSON:
{"genre": "<genre or null>"}
Text: "%s"`

const yearExtractionPrompt = `Identify the release year the following text asks about, if any.
Respond only in valid JSON:
{"year": <four digit year or null>}
Text: "%s"`

const multipleTitlesPrompt = `List every anime title mentioned in the following text, in the order they appear.
Respond only in valid JSON:
{"titles": ["<anime title>", "..."]}
Text: "%s"`

const intentPrompt = `Classify the intent of the following anime question. Choose exactly one label:
- summary: wants an overview of a specific anime
- recommendation: wants suggestions of what to watch
- comparison: wants two anime compared
- characterInfo: asks about characters in an anime
- studioInfo: asks which studio made an anime
- releaseInfo: asks about release dates or upcoming seasons
- genreList: wants a list of anime in a genre
- creative: wants something written, such as a story, poem, or fan theory
- unknown: none of the above
Respond only in valid JSON:
{"intent": "<label>"}
Question: "%s"`

func renderPrompt(template, question string) string {
	return fmt.Sprintf(template, question)
}

var (
	titleSchema = llm.MustCompileSchema("title extraction", `{
  "type": "object",
  "required": ["hasTitle"],
  "properties": {
    "hasTitle": {"type": "boolean"},
    "title": {"type": ["string", "null"]},
    "usage": {"type": ["string", "null"]}
  }
}`)

	genreSchema = llm.MustCompileSchema("genre extraction", `{
  "type": "object",
  "properties": {
    "genre": {"type": ["string", "null"]}
  }
}`)

	yearSchema = llm.MustCompileSchema("year extraction", `{
  "type": "object",
  "properties": {
    "year": {"type": ["integer", "string", "null"]}
  }
}`)

	titlesSchema = llm.MustCompileSchema("titles extraction", `{
  "type": "object",
  "required": ["titles"],
  "properties": {
    "titles": {
      "type": "array",
      "items": {"type": ["string", "null"]}
    }
  }
}`)

	intentSchema = llm.MustCompileSchema("intent", `{
  "type": "object",
  "required": ["intent"],
  "properties": {
    "intent": {"type": "string"}
  }
}`)
)
