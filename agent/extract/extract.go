// Package extract recovers structured results from free-form model output.
//
// Every agent shares the same recovery policy: try the whole output as JSON,
// then try the substring between the outermost braces, and only then let the
// caller synthesize a deterministic answer from store state. The third stage
// lives with the caller because only it knows what a coherent answer looks
// like for its operation.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoStructuredPayload reports that both parse stages failed and the
// caller must fall back to a locally computed answer.
var ErrNoStructuredPayload = errors.New("no structured payload in model output")

// Structured parses raw into T. Stage one parses the trimmed output as a
// complete JSON document. Stage two retries on the substring spanning the
// first '{' through the last '}' (newlines included), which strips prose
// and markdown fences the model wrapped around the object.
func Structured[T any](raw string) (T, error) {
	var zero T

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return zero, fmt.Errorf("%w: empty output", ErrNoStructuredPayload)
	}

	var direct T
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil {
		return direct, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return zero, fmt.Errorf("%w: no object boundaries", ErrNoStructuredPayload)
	}

	var embedded T
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &embedded); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrNoStructuredPayload, err)
	}
	return embedded, nil
}
