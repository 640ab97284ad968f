package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"animebuddy/internal/anime"
	"animebuddy/internal/logging"
	"animebuddy/internal/services"
	"animebuddy/internal/services/llm"
)

const (
	minYear = 1900
	maxYear = 2100
)

// Extractor pulls structured signals out of free text with engineered prompts.
// Every reply is treated as untrusted: it is sanitized and schema-checked
// before decoding.
type Extractor struct {
	gateway Gateway
	logger  *slog.Logger
	metrics *Metrics
}

// NewExtractor builds an Extractor. logger and metrics may be nil.
func NewExtractor(gateway Gateway, logger *slog.Logger, metrics *Metrics) *Extractor {
	return &Extractor{
		gateway: gateway,
		logger:  logging.NewComponentLogger(logger, "extractor"),
		metrics: metrics,
	}
}

// ExtractTitleAndUsage reports whether the question names an anime and how
// that title is used.
func (e *Extractor) ExtractTitleAndUsage(ctx context.Context, question string) (TitleExtraction, error) {
	var reply struct {
		HasTitle bool    `json:"hasTitle"`
		Title    *string `json:"title"`
		Usage    *string `json:"usage"`
	}
	if err := e.askJSON(ctx, "extract_title", renderPrompt(titleExtractionPrompt, question), titleSchema, &reply); err != nil {
		return TitleExtraction{Usage: UsageNone}, err
	}

	var title string
	if reply.Title != nil {
		title = placeholderFree(*reply.Title)
	}
	hasTitle := reply.HasTitle && title != ""
	if !hasTitle {
		title = ""
	}
	var usage string
	if reply.Usage != nil {
		usage = *reply.Usage
	}
	return TitleExtraction{
		HasTitle: hasTitle,
		Title:    title,
		Usage:    parseUsage(usage, hasTitle),
	}, nil
}

// ExtractGenre returns the lowercased genre the question asks about, or
// anime.GeneralGenre when none is named.
func (e *Extractor) ExtractGenre(ctx context.Context, question string) (string, error) {
	var reply struct {
		Genre *string `json:"genre"`
	}
	if err := e.askJSON(ctx, "extract_genre", renderPrompt(genreExtractionPrompt, question), genreSchema, &reply); err != nil {
		return anime.GeneralGenre, err
	}
	if reply.Genre == nil {
		return anime.GeneralGenre, nil
	}
	genre := strings.ToLower(placeholderFree(*reply.Genre))
	if genre == "" {
		return anime.GeneralGenre, nil
	}
	return genre, nil
}

// ExtractYear returns the release year the question asks about. Years outside
// 1900..2100 and non-numeric values are reported as absent.
func (e *Extractor) ExtractYear(ctx context.Context, question string) (int, bool, error) {
	var reply struct {
		Year json.RawMessage `json:"year"`
	}
	if err := e.askJSON(ctx, "extract_year", renderPrompt(yearExtractionPrompt, question), yearSchema, &reply); err != nil {
		return 0, false, err
	}
	year, ok := parseYear(reply.Year)
	return year, ok, nil
}

func parseYear(raw json.RawMessage) (int, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		trimmed = strings.TrimSpace(text)
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil || year < minYear || year > maxYear {
		return 0, false
	}
	return year, true
}

// ExtractMultipleTitles lists the titles named in the question in order of
// appearance. Blank entries and case-insensitive duplicates are dropped.
func (e *Extractor) ExtractMultipleTitles(ctx context.Context, question string) ([]string, error) {
	var reply struct {
		Titles []*string `json:"titles"`
	}
	if err := e.askJSON(ctx, "extract_titles", renderPrompt(multipleTitlesPrompt, question), titlesSchema, &reply); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(reply.Titles))
	titles := make([]string, 0, len(reply.Titles))
	for _, t := range reply.Titles {
		if t == nil {
			continue
		}
		title := placeholderFree(*t)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

// placeholderFree trims s and maps a literal "null" (models sometimes quote
// it) to the empty string.
func placeholderFree(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "null") {
		return ""
	}
	return trimmed
}

// askJSON runs one gateway round trip and decodes the reply into target.
func (e *Extractor) askJSON(ctx context.Context, stage, prompt string, schema *llm.Schema, target any) error {
	raw, err := e.gateway.Ask(ctx, prompt)
	if err != nil {
		e.metrics.llmCall(stage, outcomeError)
		return fmt.Errorf("%s: %w", stage, err)
	}
	if err := llm.DecodeJSON(raw, schema, target); err != nil {
		e.metrics.llmCall(stage, outcomeMalformed)
		e.logger.Debug("extraction reply rejected",
			logging.String("stage", stage),
			logging.Error(err),
		)
		return fmt.Errorf("%s: %w", stage, err)
	}
	e.metrics.llmCall(stage, outcomeOK)
	return nil
}

// IsMalformed reports whether err came from an unparseable LLM reply.
func IsMalformed(err error) bool {
	return errors.Is(err, services.ErrMalformedResponse)
}
