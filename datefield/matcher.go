package datefield

import (
	"strings"
	"time"

	"github.com/iancoleman/strcase"
)

// NormalizeKey lowercases key into snake_case and splits the common
// concatenated timestamp names, so "CreatedAt", "createdat" and
// "CREATED_AT" all normalize to "created_at".
func NormalizeKey(key string) string {
	k := strcase.ToSnake(key)
	k = strings.ReplaceAll(k, "createdat", "created_at")
	k = strings.ReplaceAll(k, "updatedat", "updated_at")
	k = strings.ReplaceAll(k, "releasedat", "released_at")
	return k
}

// Matcher classifies bare JSON keys as date-like using a seeded key set
// with fallback name heuristics. The zero value uses heuristics only.
type Matcher struct {
	keys map[string]struct{}
}

// NewMatcher builds a Matcher whose key set holds the normalized forms of
// keys. Collect output is the usual seed, so downstream consumers match the
// live schema vocabulary rather than a hardcoded list.
func NewMatcher(keys ...string) *Matcher {
	m := &Matcher{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		m.keys[NormalizeKey(k)] = struct{}{}
	}
	return m
}

// IsDateKey reports whether key names a date-valued field.
func (m *Matcher) IsDateKey(key string) bool {
	k := NormalizeKey(key)
	if m.keys != nil {
		if _, ok := m.keys[k]; ok {
			return true
		}
	}
	return isHeuristicDateKey(k)
}

func isHeuristicDateKey(k string) bool {
	return strings.HasSuffix(k, "_at") ||
		strings.HasSuffix(k, "_on") ||
		strings.HasSuffix(k, "_date") ||
		k == "created" || k == "updated" || k == "released"
}

// dateLayouts are tried in order when formatting a value for display.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006/01/02"}

// FormatMMDDYYYY renders a date or timestamp string as MM/DD/YYYY. The
// second return is false when value matches none of the supported layouts,
// leaving the caller to show the raw value.
func FormatMMDDYYYY(value string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("01/02/2006"), true
		}
	}
	return "", false
}
