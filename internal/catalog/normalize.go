package catalog

import (
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// dateLayouts are tried in order by NormalizeDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IsUsable reports whether s is present and non-blank.
func IsUsable(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// TagsUsable reports whether tags carries at least one element.
func TagsUsable(tags []string) bool {
	return len(tags) > 0
}

// IsKnownType reports whether t is a valid certificate type.
func IsKnownType(t *string) bool {
	return t != nil && (*t == TypeEducation || *t == TypeCertification)
}

// NormalizeDate returns the canonical ISO-8601 form of a date-like value.
// Date-only values stay date-only; timestamps become UTC with milliseconds.
// The second result is false when the value does not parse.
func NormalizeDate(s *string) (string, bool) {
	if !IsUsable(s) {
		return "", false
	}
	v := strings.TrimSpace(*s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if layout == time.DateOnly {
			return t.Format(time.DateOnly), true
		}
		return NormalizeTime(t), true
	}
	return "", false
}

// NormalizeTime renders t in the canonical timestamp form.
func NormalizeTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// pick returns the trimmed incoming value when usable, else fallback.
func pick(incoming *string, fallback string) string {
	if IsUsable(incoming) {
		return strings.TrimSpace(*incoming)
	}
	return fallback
}
