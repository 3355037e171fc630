// Package hyperschema analyzes the links of a Heroku-style JSON
// hyper-schema document.
//
// The document is the untyped node tree produced by the root package. Every
// definitions.<name>.links[] entry may carry a targetSchema payload;
// CountProperties walks each payload independently and tallies how often
// each property name appears, following local $ref pointers with an
// identity-based cycle guard. ResolveProperty turns one payload into a
// display tree, and Lint compiles payloads against JSON Schema draft-04.
package hyperschema

import (
	"reflect"
	"sort"
	"strings"

	oatty "github.com/oattyio/oatty"
)

// TargetSchema is one link payload schema with its location.
type TargetSchema struct {
	Definition string
	LinkIndex  int
	Schema     any
}

// TargetSchemas returns every definitions.<name>.links[i].targetSchema
// whose value is an object or array, ordered by definition name then link
// index. Counting does not depend on this order; diagnostics do.
func TargetSchemas(doc map[string]any) []TargetSchema {
	defs, ok := doc["definitions"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []TargetSchema
	for _, name := range names {
		def, ok := defs[name].(map[string]any)
		if !ok {
			continue
		}
		links, ok := def["links"].([]any)
		if !ok {
			continue
		}
		for i, l := range links {
			link, ok := l.(map[string]any)
			if !ok {
				continue
			}
			ts, ok := link["targetSchema"]
			if !ok {
				continue
			}
			switch ts.(type) {
			case map[string]any, []any:
				out = append(out, TargetSchema{Definition: name, LinkIndex: i, Schema: ts})
			}
		}
	}
	return out
}

// PropertyCount is one row of the frequency table.
type PropertyCount struct {
	Name  string
	Count int
}

// PropertyCounts is the frequency table keyed by property name, case
// preserved as in the source document.
type PropertyCounts map[string]int

// Top returns the n most frequent names, count descending, ties by name
// ascending. n < 0 returns all rows.
func (pc PropertyCounts) Top(n int) []PropertyCount {
	rows := make([]PropertyCount, 0, len(pc))
	for name, count := range pc {
		rows = append(rows, PropertyCount{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// CountProperties aggregates property-name occurrences across every link
// payload schema in doc. All payloads share one table; each payload walks
// with its own visited set, so a node shared between two payloads counts
// once per payload but at most once within a single payload's walk.
func CountProperties(doc map[string]any) PropertyCounts {
	tally := make(PropertyCounts)
	for _, ts := range TargetSchemas(doc) {
		walk(ts.Schema, doc, make(map[uintptr]struct{}), tally)
	}
	return tally
}

// walkKeys always descend during the counting walk, whatever their value.
var walkKeys = map[string]struct{}{
	"items": {}, "additionalItems": {}, "additionalProperties": {},
	"propertyNames": {}, "definitions": {}, "dependencies": {},
	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {},
	"if": {}, "then": {}, "else": {}, "contains": {},
}

func walk(node any, root map[string]any, visited map[uintptr]struct{}, tally PropertyCounts) {
	id, ok := nodeID(node)
	if !ok {
		return
	}
	if _, seen := visited[id]; seen {
		return
	}
	visited[id] = struct{}{}

	switch n := node.(type) {
	case []any:
		for _, el := range n {
			walk(el, root, visited, tally)
		}
	case map[string]any:
		// Resolution failures skip the branch; sibling keys still count.
		if ref, ok := n["$ref"].(string); ok && (strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "/")) {
			if target, err := oatty.Resolve(root, ref); err == nil {
				walk(target, root, visited, tally)
			}
		}
		if props, ok := n["properties"].(map[string]any); ok {
			for name, sub := range props {
				tally[name]++
				walk(sub, root, visited, tally)
			}
		}
		for key, val := range n {
			switch {
			case key == "properties":
				// counted above
			case key == "patternProperties":
				// Walked only in object form; any other shape is skipped.
				if pp, ok := val.(map[string]any); ok {
					for _, sub := range pp {
						walk(sub, root, visited, tally)
					}
				}
			default:
				if _, always := walkKeys[key]; always {
					walk(val, root, visited, tally)
					continue
				}
				walkContainer(val, root, visited, tally)
			}
		}
	}
}

// walkContainer walks val only when it is an object or array.
func walkContainer(val any, root map[string]any, visited map[uintptr]struct{}, tally PropertyCounts) {
	switch val.(type) {
	case map[string]any, []any:
		walk(val, root, visited, tally)
	}
}

// nodeID returns the traversal identity of a container node. Two
// structurally equal but distinct containers have distinct identities; the
// same container reached twice (via $ref aliasing) has the same one.
// Scalars carry no identity and are never guarded.
func nodeID(node any) (uintptr, bool) {
	switch node.(type) {
	case map[string]any, []any:
		return reflect.ValueOf(node).Pointer(), true
	default:
		return 0, false
	}
}
