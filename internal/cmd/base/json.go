package base

import (
	"encoding/json"
	"fmt"
)

// ParseJSONObject decodes a JSON object given on the command line. An empty
// string yields nil.
func ParseJSONObject(name, s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}

	var v map[string]any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("-%s must be a JSON object: %w", name, err)
	}
	return v, nil
}
