package check

import (
	"encoding/json"
	"fmt"
	"time"
)

// recordedTimestamp extracts the generated_at field from an on-disk
// citation index so the expected index can be re-derived with the same
// timestamp.
func recordedTimestamp(content string) (time.Time, error) {
	var head struct {
		GeneratedAt string `json:"generated_at"`
	}
	if err := json.Unmarshal([]byte(content), &head); err != nil {
		return time.Time{}, fmt.Errorf("parse citation index: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, head.GeneratedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse generated_at: %w", err)
	}
	return ts, nil
}
