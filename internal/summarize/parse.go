package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

// ParseBatchSummary decodes a provider response into a BatchSummary. Any
// response that does not parse into the expected shape is rejected whole; a
// partially-parsed structure never reaches the meta step.
func ParseBatchSummary(raw string) (*thread.BatchSummary, error) {
	cleaned := cleanJSON(raw)

	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("invalid json in provider response")
	}

	var summary thread.BatchSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	if summary.Topic == "" {
		return nil, fmt.Errorf("provider response missing topic")
	}

	return &summary, nil
}

// cleanJSON removes markdown code blocks if present.
// LLMs sometimes wrap output in ```json ... ```
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
