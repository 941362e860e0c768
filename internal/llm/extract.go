package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Models are prompted for strict JSON but frequently wrap the object in
// markdown fences or append line comments that break a strict parse.
var lineComment = regexp.MustCompile(`(?m)//.*$`)

// Extract recovers a JSON object embedded in free-form model output.
// It slices from the first '{' to the last '}' (assuming surrounding
// commentary contains no stray braces), strips line comments, and
// attempts a strict parse. Returns false when nothing parseable remains;
// callers degrade per feature kind.
func Extract(raw string) (map[string]interface{}, bool) {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		first := strings.Index(cleaned, "{")
		last := strings.LastIndex(cleaned, "}")
		if first != -1 && last != -1 && first < last {
			cleaned = cleaned[first : last+1]
		}
	}

	cleaned = lineComment.ReplaceAllString(cleaned, "")

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	candidate := cleaned
	if first != -1 && last != -1 && first < last {
		candidate = cleaned[first : last+1]
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil || parsed == nil {
		return nil, false
	}
	return parsed, true
}
