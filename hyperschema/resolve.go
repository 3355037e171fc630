package hyperschema

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	oatty "github.com/oattyio/oatty"
)

// maxResolutionDepth bounds recursive schemas that the visited-reference
// guard alone cannot (deeply nested inline definitions).
const maxResolutionDepth = 128

// Property describes the resolved shape of a payload schema node for
// display: a type name, joined descriptions, and the nested property tree.
type Property struct {
	Type        string
	Description string
	Format      string
	Properties  map[string]*Property
	Required    []string
	Items       *Property
	Enum        []string
}

type resolution struct {
	depth   int
	visited map[string]struct{}
}

func newResolution() *resolution {
	return &resolution{visited: make(map[string]struct{})}
}

// enter registers a resolution frame for ref (empty means no reference).
// The release func unwinds it; ok is false when the frame would recurse.
func (rc *resolution) enter(ref string) (release func(), ok bool) {
	if rc.depth >= maxResolutionDepth {
		return nil, false
	}
	key := ""
	if ref != "" {
		key = strings.TrimPrefix(ref, "#")
		if _, seen := rc.visited[key]; seen {
			return nil, false
		}
		rc.visited[key] = struct{}{}
	}
	rc.depth++
	return func() {
		rc.depth--
		if key != "" {
			delete(rc.visited, key)
		}
	}, true
}

// ResolveProperty resolves a payload schema node into a Property tree.
// Recursive schemas are handled by bounding depth and short-circuiting
// repeated $ref pointers on the active resolution path; both cases fall
// back to a bare "string" property. A nil node resolves to nil.
func ResolveProperty(schema any, root map[string]any) *Property {
	if schema == nil {
		return nil
	}
	return resolveProperty(schema, root, newResolution())
}

func resolveProperty(schema any, root map[string]any, rc *resolution) *Property {
	ref, _ := schemaReference(schema)
	release, ok := rc.enter(ref)
	if !ok {
		return unresolvedProperty()
	}
	defer release()

	p := &Property{
		Type:        TypeOf(schema, root),
		Description: DescriptionOf(schema, root),
	}
	rm := resolvedMap(schema, root)

	if props, ok := rm["properties"].(map[string]any); ok && len(props) > 0 {
		collected := make(map[string]*Property, len(props))
		for name, sub := range props {
			collected[name] = resolveProperty(sub, root, rc)
		}
		p.Properties = collected
	}
	if p.Type == "array" {
		p.Items = resolveItems(schema, rm, root, rc)
	}
	if req, ok := rm["required"].([]any); ok {
		p.Required = scalarStrings(req)
	}
	p.Enum = enumValues(schema, rm)
	p.Format = formatOf(schema, rm)
	return p
}

func unresolvedProperty() *Property {
	return &Property{Type: "string"}
}

// schemaReference extracts the reference a node carries: a bare string node
// is itself a pointer, an object node may carry $ref.
func schemaReference(schema any) (string, bool) {
	switch t := schema.(type) {
	case string:
		return t, true
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok {
			return ref, true
		}
	}
	return "", false
}

// resolvedMap dereferences one level of indirection: a bare string node or
// a $ref field resolves against root, anything else is the node itself.
// Unresolvable references yield nil.
func resolvedMap(schema any, root map[string]any) map[string]any {
	if s, ok := schema.(string); ok {
		return derefMap(root, s)
	}
	m, ok := schema.(map[string]any)
	if !ok {
		return nil
	}
	if ref, ok := m["$ref"].(string); ok {
		return derefMap(root, ref)
	}
	return m
}

func derefMap(root map[string]any, ref string) map[string]any {
	target, err := oatty.Resolve(root, ref)
	if err != nil {
		return nil
	}
	m, _ := target.(map[string]any)
	return m
}

// TypeOf resolves the display type of a schema node. A type array collapses
// to its single non-"null" entry; anyOf/oneOf collapse when every branch
// agrees; everything else defaults to "string".
func TypeOf(schema any, root map[string]any) string {
	return typeOf(schema, root, newResolution())
}

func typeOf(schema any, root map[string]any, rc *resolution) string {
	m, _ := schema.(map[string]any)
	ref := ""
	hasRef := false
	if m != nil {
		ref, hasRef = stringKey(m, "$ref")
	}
	release, ok := rc.enter(ref)
	if !ok {
		return "string"
	}
	defer release()

	if hasRef {
		target, err := oatty.Resolve(root, ref)
		if err != nil {
			return "string"
		}
		return typeOf(target, root, rc)
	}
	if m == nil {
		return "string"
	}
	switch t := m["type"].(type) {
	case string:
		return t
	case []any:
		if name, ok := singleton(nonNullTypeNames(t)); ok {
			return name
		}
	}
	for _, key := range []string{"anyOf", "oneOf"} {
		arr, ok := m[key].([]any)
		if !ok {
			continue
		}
		branches := make(map[string]struct{}, len(arr))
		for _, el := range arr {
			branches[typeOf(el, root, rc)] = struct{}{}
		}
		if name, ok := singleton(branches); ok {
			return name
		}
	}
	return "string"
}

func nonNullTypeNames(arr []any) map[string]struct{} {
	set := make(map[string]struct{}, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok && s != "null" {
			set[s] = struct{}{}
		}
	}
	return set
}

func singleton(set map[string]struct{}) (string, bool) {
	if len(set) != 1 {
		return "", false
	}
	for s := range set {
		return s, true
	}
	return "", false
}

// DescriptionOf resolves the description of a schema node, following $ref
// and joining anyOf/oneOf branch descriptions with " or " and allOf
// branches with " and ". Missing descriptions resolve to "".
func DescriptionOf(schema any, root map[string]any) string {
	d, _ := descriptionOf(schema, root, newResolution())
	return d
}

func descriptionOf(schema any, root map[string]any, rc *resolution) (string, bool) {
	m, _ := schema.(map[string]any)
	ref := ""
	hasRef := false
	if m != nil {
		ref, hasRef = stringKey(m, "$ref")
	}
	release, ok := rc.enter(ref)
	if !ok {
		return "", false
	}
	defer release()

	if hasRef {
		target, err := oatty.Resolve(root, ref)
		if err != nil {
			return "", false
		}
		return descriptionOf(target, root, rc)
	}
	if m == nil {
		return "", false
	}
	if d, ok := m["description"].(string); ok {
		return d, true
	}
	for _, key := range []string{"anyOf", "oneOf"} {
		if joined, ok := joinedDescriptions(m[key], " or ", root, rc); ok {
			return joined, true
		}
	}
	if joined, ok := joinedDescriptions(m["allOf"], " and ", root, rc); ok {
		return joined, true
	}
	return "", false
}

func joinedDescriptions(val any, sep string, root map[string]any, rc *resolution) (string, bool) {
	arr, ok := val.([]any)
	if !ok {
		return "", false
	}
	var parts []string
	for _, el := range arr {
		if d, ok := descriptionOf(el, root, rc); ok {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, sep), true
}

// resolveItems resolves the element schema of an array-typed node. Inline
// items win over items behind a reference; tuple-form items resolve their
// first element.
func resolveItems(schema any, rm map[string]any, root map[string]any, rc *resolution) *Property {
	item, ok := lookupEither(schema, rm, "items")
	if !ok {
		return nil
	}
	if arr, isArr := item.([]any); isArr {
		if len(arr) == 0 {
			return nil
		}
		return resolveProperty(arr[0], root, rc)
	}
	return resolveProperty(item, root, rc)
}

func enumValues(schema any, rm map[string]any) []string {
	raw, ok := lookupEither(schema, rm, "enum")
	if !ok {
		return nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	return scalarStrings(arr)
}

func formatOf(schema any, rm map[string]any) string {
	raw, ok := lookupEither(schema, rm, "format")
	if !ok {
		return ""
	}
	f, _ := raw.(string)
	return f
}

// lookupEither reads key from the inline schema node when present there,
// falling back to the resolved map otherwise.
func lookupEither(schema any, rm map[string]any, key string) (any, bool) {
	if m, ok := schema.(map[string]any); ok {
		if v, present := m[key]; present {
			return v, true
		}
	}
	v, present := rm[key]
	return v, present
}

// scalarStrings renders string, number, and bool elements; containers and
// nulls are dropped.
func scalarStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case json.Number:
			out = append(out, t.String())
		case bool:
			out = append(out, strconv.FormatBool(t))
		}
	}
	return out
}

func stringKey(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}
