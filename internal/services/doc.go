// Package services defines shared utilities consumed by the assistant core and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and the classified
//     intent for logging.
//   - Sentinel error markers (malformed response, no match, network failure,
//     bad status) plus the Wrap helper and HTTPStatusError, so callers can
//     decide with errors.Is whether a failure is absorbed or surfaced.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the assistant.
package services
