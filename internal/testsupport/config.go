package testsupport

import (
	"path/filepath"
	"testing"

	"animebuddy/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	cfg *config.Config
}

// NewConfig produces a config with a test API key, a per-test log directory,
// and a rate limit high enough not to throttle tests. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.LLM.APIKey = "test"
	cfgVal.Jikan.RequestsPerSecond = 1000
	cfgVal.Jikan.Burst = 100
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{cfg: &cfgVal}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLLMKey sets the LLM API key on the test config.
func WithLLMKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = key
	}
}

// WithLLMServer points the LLM client at a fake server.
func WithLLMServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithJikanServer points the catalog client at a fake server.
func WithJikanServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Jikan.BaseURL = baseURL
	}
}
