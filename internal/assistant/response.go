package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// fencePattern matches a response wrapped in a markdown code fence,
// with or without a json language tag.
var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// parseResponse strips an optional code-fence wrapper and parses the
// payload strictly as a JSON object.
func parseResponse(raw string) (map[string]any, error) {
	payload := stripFence(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, &FormatError{Err: err, Raw: truncate(raw, 512)}
	}
	return parsed, nil
}

// stripFence removes leading/trailing markdown fence syntax, returning
// the inner payload untouched when no fence is present.
func stripFence(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
