package suggestions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONArray locates the first array-shaped substring in the model's raw
// text (first '[' through the last ']') and parses it into individual
// elements. The two failure modes are reported distinctly: ErrNoJSONArray
// when no such substring exists, ErrInvalidJSON when it exists but does not
// parse. Elements are returned raw so one malformed element cannot poison the
// whole batch.
func ExtractJSONArray(raw string) ([]json.RawMessage, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, ErrNoJSONArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return items, nil
}
