package assistant

import (
	"context"
	"log/slog"

	"animebuddy/internal/logging"
)

// Classifier assigns one Intent per question. It never fails: gateway errors,
// malformed replies, and unrecognised labels all resolve to IntentUnknown.
type Classifier struct {
	extractor *Extractor
	logger    *slog.Logger
}

// NewClassifier builds a Classifier sharing the gateway discipline of extractor.
func NewClassifier(extractor *Extractor, logger *slog.Logger) *Classifier {
	return &Classifier{
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "classifier"),
	}
}

// DetectIntent classifies question.
func (c *Classifier) DetectIntent(ctx context.Context, question string) Intent {
	var reply struct {
		Intent string `json:"intent"`
	}
	if err := c.extractor.askJSON(ctx, "classify", renderPrompt(intentPrompt, question), intentSchema, &reply); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "intent classification failed", "intent_classification_failed",
			logging.Error(err),
			logging.Bool("malformed", IsMalformed(err)),
			logging.String(logging.FieldErrorHint, "check LLM availability and reply format"),
			logging.String(logging.FieldImpact, "question treated as unknown"),
		)
		return IntentUnknown
	}
	intent, ok := ParseIntent(reply.Intent)
	if !ok {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "unrecognised intent label", "intent_label_unknown",
			logging.String("label", reply.Intent),
			logging.String(logging.FieldImpact, "question treated as unknown"),
		)
		return IntentUnknown
	}
	return intent
}
