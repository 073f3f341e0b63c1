package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionID creates a human-readable session identifier.
// Format: {label}-{8charHexUUID}
//
// Example:
//   - Input: label="Bakery Run"
//   - Output: "bakery-run-a3f8e2b1"
//
// An empty label yields "session-{8charHexUUID}".
func GenerateSessionID(label string) string {
	slug := slugify(label)
	if slug == "" {
		slug = "session"
	}
	return slug + "-" + generateShortUUID()
}

// slugify lowercases ASCII letters and digits, turning every other rune run into one hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
