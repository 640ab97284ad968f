// Package assistant answers anime questions by combining an LLM gateway with
// the catalog.
//
// A question flows through four stages. The Classifier assigns one Intent and
// the Extractor reads title mentions; both run concurrently. The Orchestrator
// then dispatches on the intent, fetching catalog records as the handler
// requires, and either renders a templated sentence directly or assembles an
// enriched prompt with BuildPrompt for one closing LLM call.
//
// Catalog failures degrade to apology strings and are never returned as
// errors. Malformed extraction replies for intents that need them, and
// failures of the closing LLM call, are returned to the caller.
package assistant
