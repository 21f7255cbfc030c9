package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON unmarshals LLM output into v, tolerating the usual wrappers:
// markdown code fences and leading/trailing prose around the JSON body.
func DecodeJSON(content string, v interface{}) error {
	cleaned := StripFences(content)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	// Fall back to the outermost JSON value embedded in the text
	extracted := extractJSONBody(cleaned)
	if extracted == "" {
		return fmt.Errorf("no JSON found in LLM output")
	}

	if err := json.Unmarshal([]byte(extracted), v); err != nil {
		return fmt.Errorf("parse LLM JSON: %w", err)
	}
	return nil
}

// StripFences removes markdown code fences around a JSON body
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}

	return strings.TrimSpace(trimmed)
}

// extractJSONBody finds the outermost {...} or [...] region in the text
func extractJSONBody(text string) string {
	start := -1
	var open, close byte

	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start, open, close = i, '{', '}'
			break
		}
		if text[i] == '[' {
			start, open, close = i, '[', ']'
			break
		}
	}
	if start < 0 {
		return ""
	}

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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
