package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	intentKey    contextKey = "intent"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithIntent annotates context with the classified intent label.
func WithIntent(ctx context.Context, intent string) context.Context {
	if intent == "" {
		return ctx
	}
	return context.WithValue(ctx, intentKey, intent)
}

// IntentFromContext returns the intent label if present.
func IntentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(intentKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
