package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"animebuddy/internal/anime"
	"animebuddy/internal/logging"
	"animebuddy/internal/services"
)

const defaultFetchTimeout = 20 * time.Second

// Gateway issues a single chat completion and returns the reply text.
type Gateway interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Catalog is the subset of the metadata client the assistant needs.
type Catalog interface {
	FetchByTitle(ctx context.Context, title string) (anime.Record, error)
	FetchRecommendations(ctx context.Context, seedTitle string) ([]anime.Record, error)
	FetchTop(ctx context.Context, filter anime.TopFilter) ([]anime.Record, error)
}

// Orchestrator turns a free-form question into an answer. It holds no
// per-request state and is safe for concurrent use.
type Orchestrator struct {
	gateway      Gateway
	catalog      Catalog
	extractor    *Extractor
	classifier   *Classifier
	fetchTimeout time.Duration
	logger       *slog.Logger
	metrics      *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records activity on m.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithFetchTimeout bounds each catalog fetch. Expiry counts as a failed fetch.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.fetchTimeout = timeout
		}
	}
}

// New wires an Orchestrator around the two network capabilities.
func New(gateway Gateway, catalog Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gateway:      gateway,
		catalog:      catalog,
		fetchTimeout: defaultFetchTimeout,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.extractor = NewExtractor(gateway, o.logger, o.metrics)
	o.classifier = NewClassifier(o.extractor, o.logger)
	o.logger = logging.NewComponentLogger(o.logger, "assistant")
	return o
}

// HandleUserQuestion classifies question, gathers catalog data for its intent,
// and produces the user-facing answer. Catalog failures never surface as
// errors; extraction failures for title-driven intents and closing LLM call
// failures do.
func (o *Orchestrator) HandleUserQuestion(ctx context.Context, question string) (string, error) {
	start := time.Now()
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}

	var (
		intent     Intent
		extraction TitleExtraction
		extractErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		intent = o.classifier.DetectIntent(gctx, question)
		return nil
	})
	g.Go(func() error {
		extraction, extractErr = o.extractor.ExtractTitleAndUsage(gctx, question)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx = services.WithIntent(ctx, string(intent))
	logger := logging.WithContext(ctx, o.logger)
	defer func() {
		o.metrics.observeQuestion(intent, time.Since(start))
	}()

	if extractErr != nil {
		if intent.consumesTitle() {
			return "", fmt.Errorf("handle question: %w", extractErr)
		}
		logger.Debug("title extraction ignored", logging.Error(extractErr))
		extraction = TitleExtraction{Usage: UsageNone}
	}

	logger.Info("question classified",
		logging.Bool("has_title", extraction.HasTitle),
		logging.String("title", extraction.Title),
		logging.String("usage", string(extraction.Usage)),
	)

	answer, err := o.dispatch(ctx, intent, question, extraction)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("handle %s question: %w", intent, err)
	}
	return answer, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, intent Intent, question string, ex TitleExtraction) (string, error) {
	switch intent {
	case IntentSummary:
		return o.handleSummary(ctx, question, ex)
	case IntentRecommendation:
		return o.handleRecommendation(ctx, question, ex)
	case IntentComparison:
		return o.handleComparison(ctx, question)
	case IntentCharacterInfo:
		return o.handleCharacterInfo(ex), nil
	case IntentStudioInfo:
		return o.handleStudioInfo(ctx, ex), nil
	case IntentReleaseInfo:
		return releaseInfoMessage, nil
	case IntentGenreList:
		return o.handleGenreList(ctx, question)
	case IntentCreative:
		return o.closingAsk(ctx, question)
	case IntentUnknown:
		return unknownMessage, nil
	default:
		return unknownMessage, nil
	}
}
