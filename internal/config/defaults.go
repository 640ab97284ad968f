package config

const (
	defaultConfigPath            = "~/.config/animebuddy/config.toml"
	projectConfigName            = "animebuddy.toml"
	defaultLLMBaseURL            = "https://api.openai.com/v1"
	defaultLLMModel              = "gpt-3.5-turbo"
	defaultLLMMaxTokens          = 300
	defaultLLMTimeoutSeconds     = 30
	defaultJikanBaseURL          = "https://api.jikan.moe/v4"
	defaultJikanRequestsPerSec   = 3
	defaultJikanBurst            = 3
	defaultJikanTimeoutSeconds   = 15
	defaultRequestTimeoutSeconds = 90
	defaultFetchTimeoutSeconds   = 20
	defaultAPIBind               = "127.0.0.1:8787"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			MaxTokens:      defaultLLMMaxTokens,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Jikan: Jikan{
			BaseURL:           defaultJikanBaseURL,
			RequestsPerSecond: defaultJikanRequestsPerSec,
			Burst:             defaultJikanBurst,
			TimeoutSeconds:    defaultJikanTimeoutSeconds,
		},
		Assistant: Assistant{
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			FetchTimeoutSeconds:   defaultFetchTimeoutSeconds,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
