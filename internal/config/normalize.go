package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	c.normalizeLLM()
	c.normalizeJikan()
	c.normalizeAssistant()
	c.normalizeAPI()
	return c.normalizeLogging()
}

// applyEnv lets the hosting environment supply credentials and endpoints
// without editing the config file. Environment values win over file values.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.LLM.APIKey = value
	}
	if value, ok := os.LookupEnv("ANIMEBUDDY_LLM_MODEL"); ok && strings.TrimSpace(value) != "" {
		c.LLM.Model = value
	}
	if value, ok := os.LookupEnv("JIKAN_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Jikan.BaseURL = value
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeJikan() {
	c.Jikan.BaseURL = strings.TrimRight(strings.TrimSpace(c.Jikan.BaseURL), "/")
	if c.Jikan.BaseURL == "" {
		c.Jikan.BaseURL = defaultJikanBaseURL
	}
	if c.Jikan.RequestsPerSecond == 0 {
		c.Jikan.RequestsPerSecond = defaultJikanRequestsPerSec
	}
	if c.Jikan.Burst == 0 {
		c.Jikan.Burst = defaultJikanBurst
	}
	if c.Jikan.TimeoutSeconds == 0 {
		c.Jikan.TimeoutSeconds = defaultJikanTimeoutSeconds
	}
}

func (c *Config) normalizeAssistant() {
	if c.Assistant.RequestTimeoutSeconds == 0 {
		c.Assistant.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	if c.Assistant.FetchTimeoutSeconds == 0 {
		c.Assistant.FetchTimeoutSeconds = defaultFetchTimeoutSeconds
	}
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
	origins := c.API.CORSAllowedOrigins[:0]
	for _, origin := range c.API.CORSAllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.API.CORSAllowedOrigins = origins
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
