package agent

import (
	"regexp"
	"strings"
)

// Intent is the router's classification of a single utterance.
type Intent string

const (
	IntentLookup  Intent = "lookup"
	IntentQuery   Intent = "query"
	IntentCollect Intent = "collect"
)

// lookupTriggers are the phrases that mark an utterance as a lookup request.
// Matched case-insensitively; first match wins over the other intents.
var lookupTriggers = []string{"check", "look up", "lookup", "my details", "request id"}

var requestIDPattern = regexp.MustCompile(`\b\d{6}\b`)

// Classify picks the intent for an utterance. complete is whether the record
// bound to the current session already satisfies the completeness check:
// with no lookup trigger present, a complete record means the utterance is a
// general query, otherwise field collection continues.
func Classify(utterance string, complete bool) Intent {
	if hasLookupTrigger(utterance) {
		return IntentLookup
	}
	if complete {
		return IntentQuery
	}
	return IntentCollect
}

func hasLookupTrigger(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, trigger := range lookupTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// ExtractRequestID pulls the first 6-digit token out of an utterance.
func ExtractRequestID(utterance string) (string, bool) {
	id := requestIDPattern.FindString(utterance)
	return id, id != ""
}
