// Package intent classifies free-form instruction strings into structured
// intents with typed payloads. Classification is deterministic, offline and
// synchronous: an ordered table of pattern rules is scanned first-match-wins,
// each match running a pure extractor over the raw input. The rule table is
// built once at init and never mutated, so Route is safe to call from any
// number of goroutines.
package intent

import "strings"

// FallbackMaxLen is the input length below which an unmatched instruction is
// still classified as a knowledge search. The threshold is historical and
// carries no deeper meaning; override it before the first call to Route if a
// different cutoff is needed.
var FallbackMaxLen = 80

// Route classifies input and returns the intent with its extracted payload.
//
// When no rule matches, short inputs and inputs ending in a question mark are
// classified as KnowledgeSearch; everything else returns ErrUnresolved. Route
// never fails for any other reason, since extraction degrades to documented
// defaults instead of erroring, and calling it twice with the same input
// always yields the same result.
func Route(input string) (*Result, error) {
	trimmed := strings.TrimSpace(input)
	norm := strings.ToLower(trimmed)
	if norm == "" {
		return nil, ErrUnresolved
	}

	for _, r := range rules {
		if r.match(norm) {
			return &Result{Intent: r.intent, Payload: r.extract(trimmed)}, nil
		}
	}

	// Fallback: question-shaped or short input reads as a search.
	if strings.HasSuffix(trimmed, "?") || len(trimmed) < FallbackMaxLen {
		q := strings.TrimSuffix(trimmed, "?")
		return &Result{Intent: KnowledgeSearch, Payload: extractKnowledgeSearch(q)}, nil
	}

	return nil, ErrUnresolved
}
