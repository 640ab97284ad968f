// Package jikan wraps the Jikan v4 REST API, an unofficial MyAnimeList catalog.
//
// The client covers title search (first match wins), full record lookup,
// recommendations seeded by a title, top lists filtered by genre and year,
// paginated top-list browsing, and the genre directory used to turn genre
// names into ids. Requests share a client-side token bucket so the public
// three-requests-per-second limit is respected; waiting honours context
// cancellation.
//
// Failures are classified with the services sentinels: non-2xx responses are
// *services.HTTPStatusError (404 also matches services.ErrNoMatch), transport
// failures wrap services.ErrNetwork, and undecodable bodies wrap
// services.ErrMalformedResponse.
package jikan
