package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, err := range v {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Field)
		b.WriteString(": ")
		b.WriteString(err.Message)
	}
	return b.String()
}

// ToMap flattens the errors into field-to-message pairs for the
// response envelope. Later errors on the same field win.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty reports whether s is blank after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Event and user IDs are UUIDv7, so the version nibble must be 7.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func IsValidUUID(id string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(id))
}

// IsValidTimestamp parses an RFC 3339 timestamp.
func IsValidTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// IsValidClockTime parses a HH:MM time of day.
func IsValidClockTime(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", s)
	return t, err == nil
}
