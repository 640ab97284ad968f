package assistant

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"animebuddy/internal/anime"
	"animebuddy/internal/logging"
)

func (o *Orchestrator) handleSummary(ctx context.Context, question string, ex TitleExtraction) (string, error) {
	if !ex.HasTitle {
		return clarificationMessage, nil
	}
	rec, ok := o.fetchRecord(ctx, ex.Title)
	if !ok {
		return notFoundMessage(ex.Title), nil
	}
	prompt := BuildPrompt(PromptInput{
		Question: question,
		Intent:   IntentSummary,
		Titles:   []string{ex.Title},
		Records:  []anime.Record{rec},
	})
	return o.closingAsk(ctx, prompt)
}

func (o *Orchestrator) handleRecommendation(ctx context.Context, question string, ex TitleExtraction) (string, error) {
	if ex.HasTitle && ex.Usage == UsageReference {
		recs, ok := o.fetchRecommendations(ctx, ex.Title)
		names := anime.Titles(recs, maxListedTitles)
		if !ok || len(names) == 0 {
			return referenceRecommendationFailure(ex.Title), nil
		}
		return referenceRecommendationMessage(ex.Title, names), nil
	}

	var (
		genre string
		year  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = o.extractor.ExtractGenre(gctx, question)
		return err
	})
	g.Go(func() error {
		y, ok, err := o.extractor.ExtractYear(gctx, question)
		if ok {
			year = y
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return o.topListAnswer(ctx, anime.TopFilter{Genre: genre, Year: year}), nil
}

func (o *Orchestrator) handleComparison(ctx context.Context, question string) (string, error) {
	titles, err := o.extractor.ExtractMultipleTitles(ctx, question)
	if err != nil {
		return "", err
	}
	if len(titles) != 2 {
		return comparisonClarificationMessage, nil
	}

	var (
		records [2]anime.Record
		found   [2]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	for i, title := range titles {
		g.Go(func() error {
			records[i], found[i] = o.fetchRecord(gctx, title)
			return nil
		})
	}
	_ = g.Wait()

	for i, title := range titles {
		if !found[i] {
			return notFoundMessage(title), nil
		}
	}
	prompt := BuildPrompt(PromptInput{
		Question: question,
		Intent:   IntentComparison,
		Titles:   titles,
		Records:  records[:],
	})
	return o.closingAsk(ctx, prompt)
}

func (o *Orchestrator) handleCharacterInfo(ex TitleExtraction) string {
	if !ex.HasTitle {
		return clarificationMessage
	}
	return characterComingSoonMessage(ex.Title)
}

func (o *Orchestrator) handleStudioInfo(ctx context.Context, ex TitleExtraction) string {
	if !ex.HasTitle {
		return clarificationMessage
	}
	rec, ok := o.fetchRecord(ctx, ex.Title)
	if !ok || !rec.HasStudios() {
		return studioNotFoundMessage(ex.Title)
	}
	title := rec.Title
	if title == "" {
		title = ex.Title
	}
	return studioMessage(title, rec.StudioNames())
}

func (o *Orchestrator) handleGenreList(ctx context.Context, question string) (string, error) {
	genre, err := o.extractor.ExtractGenre(ctx, question)
	if err != nil {
		return "", err
	}
	return o.topListAnswer(ctx, anime.TopFilter{Genre: genre}), nil
}

func (o *Orchestrator) topListAnswer(ctx context.Context, filter anime.TopFilter) string {
	filter.Limit = maxListedTitles
	recs, ok := o.fetchTop(ctx, filter)
	names := anime.Titles(recs, maxListedTitles)
	if !ok || len(names) == 0 {
		return topListFailure(filter.Genre, filter.Year)
	}
	return topListMessage(filter.Genre, filter.Year, names)
}

// closingAsk issues the final LLM call that produces the user-facing answer.
func (o *Orchestrator) closingAsk(ctx context.Context, prompt string) (string, error) {
	logging.WithContext(ctx, o.logger).Debug("closing prompt", logging.String("prompt", prompt))
	answer, err := o.gateway.Ask(ctx, prompt)
	if err != nil {
		o.metrics.llmCall("answer", outcomeError)
		return "", fmt.Errorf("answer: %w", err)
	}
	o.metrics.llmCall("answer", outcomeOK)
	return answer, nil
}

func (o *Orchestrator) fetchRecord(ctx context.Context, title string) (anime.Record, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()
	rec, err := o.catalog.FetchByTitle(fetchCtx, title)
	if err != nil {
		o.fetchFailed(ctx, "fetch_by_title", title, err)
		return anime.Record{}, false
	}
	return rec, true
}

func (o *Orchestrator) fetchRecommendations(ctx context.Context, title string) ([]anime.Record, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()
	recs, err := o.catalog.FetchRecommendations(fetchCtx, title)
	if err != nil {
		o.fetchFailed(ctx, "fetch_recommendations", title, err)
		return nil, false
	}
	return recs, true
}

func (o *Orchestrator) fetchTop(ctx context.Context, filter anime.TopFilter) ([]anime.Record, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()
	recs, err := o.catalog.FetchTop(fetchCtx, filter)
	if err != nil {
		o.fetchFailed(ctx, "fetch_top", fmt.Sprintf("genre=%s year=%d", filter.Genre, filter.Year), err)
		return nil, false
	}
	return recs, true
}

func (o *Orchestrator) fetchFailed(ctx context.Context, operation, subject string, err error) {
	o.metrics.fetchFailed(operation)
	logging.WarnWithContext(logging.WithContext(ctx, o.logger), "catalog fetch failed", "metadata_fetch_failed",
		logging.String("operation", operation),
		logging.String("subject", subject),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check Jikan availability and rate limits"),
		logging.String(logging.FieldImpact, "answer falls back to an apology"),
	)
}
