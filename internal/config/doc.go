// Package config loads, normalizes, and validates Anime Buddy configuration.
//
// It supplies repository defaults, reads TOML files, and honours environment
// fallbacks such as OPENAI_API_KEY so the hosting environment can provide the
// LLM credential without touching disk. The Config type centralizes every knob
// the CLI and HTTP API need: LLM connection, Jikan catalog access, orchestrator
// timeouts, API bind address, and logging.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
