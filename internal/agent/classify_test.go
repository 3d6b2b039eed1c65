package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLookupTriggers(t *testing.T) {
	cases := []string{
		"can you check my details, request id is 482913",
		"check my details",
		"CHECK my request",
		"please look up my move",
		"lookup 123456",
		"here is my request id",
		"I want to see my details",
	}
	for _, utterance := range cases {
		// Lookup wins regardless of record completeness.
		assert.Equal(t, IntentLookup, Classify(utterance, true), utterance)
		assert.Equal(t, IntentLookup, Classify(utterance, false), utterance)
	}
}

func TestClassifyQueryRequiresCompleteRecord(t *testing.T) {
	assert.Equal(t, IntentQuery, Classify("what's your refund policy", true))
	assert.Equal(t, IntentCollect, Classify("what's your refund policy", false))
}

func TestClassifyCollect(t *testing.T) {
	assert.Equal(t, IntentCollect, Classify("my name is John Smith", false))
	assert.Equal(t, IntentCollect, Classify("", false))
}

func TestExtractRequestID(t *testing.T) {
	id, ok := ExtractRequestID("can you check my details, request id is 482913")
	assert.True(t, ok)
	assert.Equal(t, "482913", id)

	_, ok = ExtractRequestID("check my details")
	assert.False(t, ok)

	// Longer digit runs are not request ids.
	_, ok = ExtractRequestID("my phone is 5551234567")
	assert.False(t, ok)

	id, ok = ExtractRequestID("ids 12345 and 654321 and 99")
	assert.True(t, ok)
	assert.Equal(t, "654321", id)
}

func TestFlattenParts(t *testing.T) {
	got := FlattenParts([]ContentPart{
		{Text: "look at this"},
		{Image: true},
		{Text: "can you check it"},
	})
	assert.Equal(t, "look at this\n[image]\ncan you check it", got)
}
