// Package datefield detects date-valued fields in a hyper-schema document.
//
// Detection has two layers. Collect walks a decoded document and classifies
// each named property by its schema (format annotations and ISO-looking
// example strings). Matcher classifies bare JSON keys by name, seeded with
// Collect's output, for consumers that only see response data.
package datefield

import (
	"regexp"
	"sort"
	"strings"
)

// isoDatePattern accepts YYYY-MM-DD or YYYY/MM/DD, optionally followed by
// Thh:mm[:ss][Z|±hh:mm].
var isoDatePattern = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}(T\d{2}:\d{2}(:\d{2})?(Z|[+-]\d{2}:?\d{2})?)?$`)

// LooksLikeISODate reports whether s is shaped like an ISO-8601 date or
// timestamp. Month 13 passes: this classifies schema annotations, it does
// not validate calendars.
func LooksLikeISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// combinatorKeys in the order HasIndicator checks them.
var combinatorKeys = []string{"anyOf", "oneOf", "allOf"}

// HasIndicator reports whether a schema node declares a date/date-time
// value: format "date-time" or "date", an ISO-looking example string, or an
// indicator anywhere under anyOf/oneOf/allOf/items. Non-object nodes never
// carry the indicator. The combinator descent has no cycle guard; on these
// paths the supported documents are plain trees.
func HasIndicator(node any) bool {
	m, ok := node.(map[string]any)
	if !ok {
		return false
	}
	if f, ok := m["format"].(string); ok && (f == "date-time" || f == "date") {
		return true
	}
	if ex, ok := m["example"].(string); ok && LooksLikeISODate(ex) {
		return true
	}
	for _, key := range combinatorKeys {
		arr, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, el := range arr {
			if HasIndicator(el) {
				return true
			}
		}
	}
	if items, ok := m["items"]; ok && HasIndicator(items) {
		return true
	}
	return false
}

// namedContainerKeys hold name→schema maps whose names are eligible fields.
var namedContainerKeys = []string{"properties", "definitions"}

// passThroughKeys are descended without collecting names.
var passThroughKeys = []string{
	"items", "anyOf", "oneOf", "allOf", "not",
	"additionalProperties", "patternProperties", "targetSchema", "schema",
}

// Collect walks doc and returns the lowercased names of every field whose
// schema carries a date indicator, sorted ascending. Names come from two
// places: keys under properties maps and entry names under definitions. The
// walk is a plain tree descent of the decoded document.
func Collect(doc any) []string {
	seen := make(map[string]struct{})
	collect(doc, seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collect(node any, out map[string]struct{}) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range namedContainerKeys {
			named, ok := n[key].(map[string]any)
			if !ok {
				continue
			}
			for name, sub := range named {
				if HasIndicator(sub) {
					out[strings.ToLower(name)] = struct{}{}
				}
				collect(sub, out)
			}
		}
		for _, key := range passThroughKeys {
			if val, ok := n[key]; ok {
				collect(val, out)
			}
		}
	case []any:
		for _, el := range n {
			collect(el, out)
		}
	}
}
