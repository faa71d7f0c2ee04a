package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable identifier for one CLI run.
// Format: {command}-{8charHexUUID}
//
// Example:
//   - Input: command="report"
//   - Output: "report-a3f8e2b1"
//
// The command name is lower-cased and spaces become hyphens, so
// "config show" yields "config-show-…".
func GenerateRunID(command string) string {
	name := strings.ToLower(strings.Join(strings.Fields(command), "-"))
	if name == "" {
		name = "run"
	}
	return name + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
