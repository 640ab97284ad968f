// Package api exposes the assistant and the catalog browser over HTTP.
//
// Routes:
//
//	GET  /health
//	POST /api/v1/ask             {"question": "..."} -> {"answer": "..."}
//	GET  /api/v1/anime/top       ?page=N -> anime.Page
//	GET  /api/v1/anime/{id}      -> anime.Record
//	GET  /metrics                Prometheus exposition
//
// Errors are returned as {"error": "..."}. Assistant failures map to 502;
// catalog misses map to 404 and other catalog failures to 502.
package api
