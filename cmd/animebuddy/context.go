package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"animebuddy/internal/assistant"
	"animebuddy/internal/config"
	"animebuddy/internal/logging"
	"animebuddy/internal/services/jikan"
	"animebuddy/internal/services/llm"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// catalog builds a Jikan client. Catalog commands do not need an LLM key.
func (c *commandContext) catalog() (*jikan.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return jikan.New(cfg.Jikan.BaseURL,
		jikan.WithRateLimit(cfg.Jikan.RequestsPerSecond, cfg.Jikan.Burst),
		jikan.WithTimeout(cfg.JikanTimeout()),
		jikan.WithLogger(logger),
	)
}

// assistant wires the orchestrator over the LLM and catalog clients. reg may
// be nil when metrics are not exposed.
func (c *commandContext) assistant(reg prometheus.Registerer) (*assistant.Orchestrator, *jikan.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireLLMKey(); err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := c.catalog()
	if err != nil {
		return nil, nil, err
	}
	gateway := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		MaxTokens:      cfg.LLM.MaxTokens,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	opts := []assistant.Option{
		assistant.WithLogger(logger),
		assistant.WithFetchTimeout(cfg.FetchTimeout()),
	}
	if reg != nil {
		opts = append(opts, assistant.WithMetrics(assistant.NewMetrics(reg)))
	}
	return assistant.New(gateway, catalog, opts...), catalog, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
