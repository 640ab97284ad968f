package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. The LLM API key is checked
// separately by RequireLLMKey so catalog-only commands can run without one.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateJikan(); err != nil {
		return err
	}
	if err := c.validateAssistant(); err != nil {
		return err
	}
	return c.validateLogging()
}

// RequireLLMKey reports a descriptive error when no LLM credential is configured.
func (c *Config) RequireLLMKey() error {
	if c.LLM.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("llm.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'animebuddy config init')", defaultPath)
}

func (c *Config) validateLLM() error {
	if err := validateURL("llm.base_url", c.LLM.BaseURL); err != nil {
		return err
	}
	if c.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateJikan() error {
	if err := validateURL("jikan.base_url", c.Jikan.BaseURL); err != nil {
		return err
	}
	if c.Jikan.RequestsPerSecond < 0 {
		return errors.New("jikan.requests_per_second must be positive")
	}
	if c.Jikan.Burst < 0 {
		return errors.New("jikan.burst must be positive")
	}
	if c.Jikan.TimeoutSeconds < 0 {
		return errors.New("jikan.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAssistant() error {
	if c.Assistant.RequestTimeoutSeconds < 0 {
		return errors.New("assistant.request_timeout_seconds must be positive")
	}
	if c.Assistant.FetchTimeoutSeconds < 0 {
		return errors.New("assistant.fetch_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, value)
	}
	return nil
}
