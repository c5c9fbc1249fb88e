package matching

import (
	"encoding/json"
	"fmt"
)

// ExtractJSONArray locates the first balanced top-level JSON array literal in
// free text. The model's answer is expected to contain a JSON array but may
// include surrounding commentary, so naive first-`[`/last-`]` matching is not
// enough: nested arrays inside key_matches/concerns and brackets inside string
// values must not terminate the scan early.
//
// The scan starts at the first `[` and tracks bracket depth, treating
// everything inside double-quoted strings (including escaped quotes) as
// opaque. Returns the exact array substring, or an error if no `[` exists or
// the array never closes.
func ExtractJSONArray(text string) (string, error) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("no array literal found in text")
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
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("array literal starting at offset %d is never closed", start)
}

// ExtractArrayElements extracts the first balanced array from text and splits
// it into raw elements, preserving the model's ordering.
func ExtractArrayElements(text string) ([]json.RawMessage, error) {
	arrayText, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(arrayText), &elements); err != nil {
		return nil, fmt.Errorf("located array is not valid JSON: %w", err)
	}

	return elements, nil
}
