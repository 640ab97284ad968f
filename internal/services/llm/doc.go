// Package llm provides the chat completion gateway used by the assistant.
//
// # Entry Points
//
// NewClient: construct a client from Config.
// Client.Ask: send one prompt under the fixed anime-expert system instruction
// and return the trimmed content of the first choice.
// DecodeJSON: sanitize a reply, validate it against a Schema, and decode it.
//
// # Failure Modes
//
// Non-2xx responses surface as *services.HTTPStatusError. Transport failures
// wrap services.ErrNetwork. Empty replies and replies that do not satisfy
// their schema wrap services.ErrMalformedResponse. The client never retries.
package llm
