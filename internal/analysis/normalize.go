package analysis

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
)

// Fallback literals substituted when the model reply cannot be parsed.
const (
	FallbackComplexity  = "O(?)"
	FallbackExplanation = "Analysis unavailable"
)

// Normalized is the complete triple extracted from a model reply.
type Normalized struct {
	TimeComplexity  string
	SpaceComplexity string
	Explanation     string
}

var (
	timeRe        = regexp.MustCompile(`(?i)time\s*complexity:\s*(O\([^)]+\))`)
	spaceRe       = regexp.MustCompile(`(?i)space\s*complexity:\s*(O\([^)]+\))`)
	explanationRe = regexp.MustCompile(`(?i)explanation:\s*(.+)`)
)

// Normalize extracts the complexity triple from raw model text. It
// tolerates strict JSON (optionally fenced) and loosely labelled free
// text, and never fails: unresolved fields get fallback literals. The
// model's output format is not contractually guaranteed even when
// requested explicitly, so degrading beats propagating a parse error.
func Normalize(raw string) Normalized {
	cleaned := llm.StripCodeFences(raw)

	var out Normalized

	// JSON path first; missing keys fall through to pattern extraction.
	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		out.TimeComplexity = jsonString(obj, "timeComplexity")
		out.SpaceComplexity = jsonString(obj, "spaceComplexity")
		out.Explanation = jsonString(obj, "explanation")
	}

	if out.TimeComplexity == "" || out.SpaceComplexity == "" || out.Explanation == "" {
		// Lenient text path works on a single line.
		flat := strings.Join(strings.Fields(cleaned), " ")
		if out.TimeComplexity == "" {
			out.TimeComplexity = firstGroup(timeRe, flat)
		}
		if out.SpaceComplexity == "" {
			out.SpaceComplexity = firstGroup(spaceRe, flat)
		}
		if out.Explanation == "" {
			out.Explanation = strings.TrimSpace(firstGroup(explanationRe, flat))
		}
	}

	if out.TimeComplexity == "" {
		out.TimeComplexity = FallbackComplexity
	}
	if out.SpaceComplexity == "" {
		out.SpaceComplexity = FallbackComplexity
	}
	if out.Explanation == "" {
		out.Explanation = FallbackExplanation
	}

	return out
}

func jsonString(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
