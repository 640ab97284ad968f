// Package main hosts the Anime Buddy CLI entrypoint and command graph.
//
// The Cobra command tree covers one-shot questions (ask), an interactive
// loop (chat), catalog browsing (top, show), the HTTP API (serve), and
// configuration scaffolding. Configuration is resolved lazily once per
// process and clients are built only for the commands that need them, so
// catalog browsing works without an LLM key.
package main
