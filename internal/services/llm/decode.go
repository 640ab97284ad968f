package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"animebuddy/internal/services"
)

// Schema validates a decoded reply before it is mapped onto a Go type.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// CompileSchema parses a JSON Schema document.
func CompileSchema(name, source string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustCompileSchema is CompileSchema for package-level constant schemas.
func MustCompileSchema(name, source string) *Schema {
	s, err := CompileSchema(name, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the label used in error messages.
func (s *Schema) Name() string {
	if s == nil {
		return "reply"
	}
	return s.name
}

func (s *Schema) validate(payload string) error {
	if s == nil || s.schema == nil {
		return nil
	}
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(problems, "; "))
}

// DecodeJSON sanitizes an LLM reply, validates it against schema (when not
// nil), and unmarshals it into target. Every failure wraps
// services.ErrMalformedResponse.
func DecodeJSON(content string, schema *Schema, target any) error {
	payload := Sanitize(content)
	if payload == "" {
		return services.Wrap(services.ErrMalformedResponse, "llm", "decode "+schema.Name(), "empty payload", nil)
	}
	if err := schema.validate(payload); err != nil {
		return services.Wrap(
			services.ErrMalformedResponse,
			"llm",
			"decode "+schema.Name(),
			"payload snippet: "+summarizePayloadSnippet(payload),
			err,
		)
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return services.Wrap(
			services.ErrMalformedResponse,
			"llm",
			"decode "+schema.Name(),
			"payload snippet: "+summarizePayloadSnippet(payload),
			err,
		)
	}
	return nil
}

// Sanitize strips fenced-code markers and surrounding whitespace, then isolates
// the first complete JSON value when prose surrounds it. Text after that value
// is ignored even when it contains braces.
func Sanitize(content string) string {
	trimmed := strings.TrimSpace(StripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '[' {
		if value, ok := firstJSONValue(trimmed); ok {
			return value
		}
		return trimmed
	}
	for offset := 0; offset < len(trimmed); {
		start := strings.IndexByte(trimmed[offset:], '{')
		if start < 0 {
			break
		}
		start += offset
		if value, ok := firstJSONValue(trimmed[start:]); ok {
			return value
		}
		offset = start + 1
	}
	return trimmed
}

func firstJSONValue(s string) (string, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&raw); err != nil {
		return "", false
	}
	return string(raw), true
}

// StripCodeFence removes a leading ``` fence (with optional language tag) and
// the matching closing fence.
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	if nl := strings.IndexAny(body, "\r\n"); nl >= 0 {
		tag := strings.TrimSpace(body[:nl])
		if tag == "" || isFenceTag(tag) {
			body = body[nl:]
		}
	} else if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	body = strings.TrimLeft(body, " \t\r\n")
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
