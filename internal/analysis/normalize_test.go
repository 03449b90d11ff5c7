package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StrictJSON(t *testing.T) {
	raw := `{"timeComplexity":"O(n)","spaceComplexity":"O(1)","explanation":"linear scan"}`

	got := Normalize(raw)

	assert.Equal(t, "O(n)", got.TimeComplexity)
	assert.Equal(t, "O(1)", got.SpaceComplexity)
	assert.Equal(t, "linear scan", got.Explanation)
}

func TestNormalize_FencedJSON(t *testing.T) {
	raw := "```json\n{\"timeComplexity\":\"O(n)\",\"spaceComplexity\":\"O(1)\",\"explanation\":\"linear scan\"}\n```"

	got := Normalize(raw)

	assert.Equal(t, "O(n)", got.TimeComplexity)
	assert.Equal(t, "O(1)", got.SpaceComplexity)
	assert.Equal(t, "linear scan", got.Explanation)
}

func TestNormalize_LabelledText(t *testing.T) {
	raw := "Time Complexity: O(n log n)\nSpace Complexity: O(n)\nExplanation: merge sort"

	got := Normalize(raw)

	assert.Equal(t, "O(n log n)", got.TimeComplexity)
	assert.Equal(t, "O(n)", got.SpaceComplexity)
	assert.Equal(t, "merge sort", got.Explanation)
}

func TestNormalize_LabelledTextCaseInsensitive(t *testing.T) {
	raw := "time complexity: O(1)\nSPACE COMPLEXITY: O(1)\nexplanation: constant lookup"

	got := Normalize(raw)

	assert.Equal(t, "O(1)", got.TimeComplexity)
	assert.Equal(t, "O(1)", got.SpaceComplexity)
	assert.Equal(t, "constant lookup", got.Explanation)
}

func TestNormalize_Gibberish(t *testing.T) {
	got := Normalize("I am sorry, I cannot help with that.")

	assert.Equal(t, FallbackComplexity, got.TimeComplexity)
	assert.Equal(t, FallbackComplexity, got.SpaceComplexity)
	assert.Equal(t, FallbackExplanation, got.Explanation)
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize("")

	assert.Equal(t, FallbackComplexity, got.TimeComplexity)
	assert.Equal(t, FallbackComplexity, got.SpaceComplexity)
	assert.Equal(t, FallbackExplanation, got.Explanation)
}

func TestNormalize_JSONWithMissingKeys(t *testing.T) {
	// Missing keys fall through to pattern extraction and then to
	// fallbacks; present keys are kept.
	raw := `{"timeComplexity":"O(n^2)"}`

	got := Normalize(raw)

	assert.Equal(t, "O(n^2)", got.TimeComplexity)
	assert.Equal(t, FallbackComplexity, got.SpaceComplexity)
	assert.Equal(t, FallbackExplanation, got.Explanation)
}

func TestNormalize_JSONNonStringValues(t *testing.T) {
	raw := `{"timeComplexity":42,"spaceComplexity":null,"explanation":"still fine"}`

	got := Normalize(raw)

	assert.Equal(t, FallbackComplexity, got.TimeComplexity)
	assert.Equal(t, FallbackComplexity, got.SpaceComplexity)
	assert.Equal(t, "still fine", got.Explanation)
}

func TestNormalize_LabelledTextAcrossNewlines(t *testing.T) {
	// Embedded newlines inside the reply collapse to spaces before
	// pattern extraction.
	raw := "Here is my analysis.\n\nTime Complexity:\nO(n)\nSpace Complexity: O(1)\nExplanation: single pass over the input"

	got := Normalize(raw)

	assert.Equal(t, "O(n)", got.TimeComplexity)
	assert.Equal(t, "O(1)", got.SpaceComplexity)
	assert.Equal(t, "single pass over the input", got.Explanation)
}

func TestNormalize_FencedLabelledText(t *testing.T) {
	raw := "```\nTime Complexity: O(2^n)\nSpace Complexity: O(n)\nExplanation: naive fibonacci recursion\n```"

	got := Normalize(raw)

	assert.Equal(t, "O(2^n)", got.TimeComplexity)
	assert.Equal(t, "O(n)", got.SpaceComplexity)
	assert.Equal(t, "naive fibonacci recursion", got.Explanation)
}
