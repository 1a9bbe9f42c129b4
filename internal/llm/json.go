package llm

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/callqa-cli/internal/resilience"
)

// ExtractJSON pulls the first JSON object out of free-form model output.
// Markdown code fences are stripped first, then the first balanced {...}
// block is located and validated. Models are told to return only JSON but
// routinely wrap it in prose or fences anyway.
func ExtractJSON(text string) (json.RawMessage, error) {
	if block, ok := firstJSONObject(stripFences(text)); ok {
		return json.RawMessage(block), nil
	}

	// Fences sometimes truncate the object; scan the unstripped text too.
	if block, ok := firstJSONObject(text); ok {
		return json.RawMessage(block), nil
	}

	return nil, resilience.NewTransientError(&MalformedOutputError{Raw: text}, 0)
}

// stripFences removes a leading markdown code fence (``` or ```json) and
// its closing fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}

// firstJSONObject scans for the first balanced top-level {...} block that
// parses as valid JSON.
func firstJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	for start >= 0 {
		if end, ok := matchBrace(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}

		next := strings.Index(text[start+1:], "{")
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

// matchBrace returns the index of the brace closing the block opened at
// start. Depth is tracked outside string literals so braces inside quoted
// values don't terminate the block early.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
