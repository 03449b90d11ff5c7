package llm

import (
	"fmt"
	"strings"
)

// Prompt templates for complexity analysis

const SystemPromptComplexity = `You are an expert algorithm analyst. Given source code, estimate its
time and space complexity in Big-O notation and explain your reasoning briefly.

Respond with EXACTLY one JSON object and nothing else:
{"timeComplexity": "O(...)", "spaceComplexity": "O(...)", "explanation": "one or two sentences"}

Do not wrap the JSON in markdown fences. Do not add extra keys.`

// ComplexityPrompt creates the user prompt for analyzing a code snippet
func ComplexityPrompt(language, code string) string {
	return fmt.Sprintf("Analyze the following %s code:\n\n```%s\n%s\n```\n\n"+
		"Return the JSON object described in the system prompt.",
		language, language, code)
}

// PingPrompt is a minimal prompt used to verify provider connectivity.
func PingPrompt() string {
	return "Reply with the single word: ok"
}

// StripCodeFences removes leading/trailing markdown code fence markers
// from an LLM response
func StripCodeFences(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		// Drop the whole opening fence line, it may carry a language tag
		if idx := strings.IndexByte(response, '\n'); idx >= 0 {
			response = response[idx+1:]
		} else {
			response = strings.TrimPrefix(response, "```")
		}
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	return strings.TrimSpace(response)
}
