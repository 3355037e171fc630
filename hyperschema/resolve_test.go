package hyperschema_test

import (
	"reflect"
	"testing"

	"github.com/oattyio/oatty/hyperschema"
)

func TestResolveProperty_ObjectShape(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"app": {
				"type": "object",
				"description": "An app.",
				"properties": {
					"id": {"type": "string", "format": "uuid"},
					"size": {"type": ["integer", "null"], "description": "Dyno size."},
					"state": {"enum": ["up", "down", 7, true]},
					"tags": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["id"]
			}
		}
	}`)
	p := hyperschema.ResolveProperty(map[string]any{"$ref": "#/definitions/app"}, doc)
	if p == nil {
		t.Fatalf("expected property")
	}
	if p.Type != "object" || p.Description != "An app." {
		t.Fatalf("unexpected root: %+v", p)
	}
	if !reflect.DeepEqual(p.Required, []string{"id"}) {
		t.Fatalf("required: %v", p.Required)
	}
	id := p.Properties["id"]
	if id == nil || id.Type != "string" || id.Format != "uuid" {
		t.Fatalf("id: %+v", id)
	}
	size := p.Properties["size"]
	if size == nil || size.Type != "integer" || size.Description != "Dyno size." {
		t.Fatalf("size: %+v", size)
	}
	state := p.Properties["state"]
	if state == nil || !reflect.DeepEqual(state.Enum, []string{"up", "down", "7", "true"}) {
		t.Fatalf("state: %+v", state)
	}
	tags := p.Properties["tags"]
	if tags == nil || tags.Type != "array" || tags.Items == nil || tags.Items.Type != "string" {
		t.Fatalf("tags: %+v", tags)
	}
}

func TestResolveProperty_BareStringPointer(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"app": {"type": "object", "properties": {"id": {"type": "string"}}, "required": ["id"]}
		}
	}`)
	p := hyperschema.ResolveProperty("#/definitions/app", doc)
	if p == nil {
		t.Fatalf("expected property")
	}
	// A bare string node has no type of its own; only its target's members
	// are pulled in.
	if p.Type != "string" {
		t.Fatalf("type: %s", p.Type)
	}
	if p.Properties["id"] == nil {
		t.Fatalf("target properties should be resolved: %+v", p)
	}
	if !reflect.DeepEqual(p.Required, []string{"id"}) {
		t.Fatalf("required: %v", p.Required)
	}
}

func TestResolveProperty_SelfReferentialRef(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"node": {
				"type": "object",
				"properties": {"next": {"$ref": "#/definitions/node"}}
			}
		}
	}`)
	p := hyperschema.ResolveProperty(map[string]any{"$ref": "#/definitions/node"}, doc)
	if p == nil || p.Type != "object" {
		t.Fatalf("unexpected root: %+v", p)
	}
	next := p.Properties["next"]
	if next == nil {
		t.Fatalf("next missing: %+v", p.Properties)
	}
	if next.Type != "string" {
		t.Fatalf("repeated ref should fall back to string, got: %+v", next)
	}
	if next.Properties != nil {
		t.Fatalf("fallback should not expand: %+v", next)
	}
}

func TestResolveProperty_MutuallyRecursiveRefs(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"a": {"type": "object", "properties": {"b": {"$ref": "#/definitions/b"}}},
			"b": {"type": "object", "properties": {"a": {"$ref": "#/definitions/a"}}}
		}
	}`)
	p := hyperschema.ResolveProperty(map[string]any{"$ref": "#/definitions/a"}, doc)
	if p == nil || p.Type != "object" {
		t.Fatalf("unexpected root: %+v", p)
	}
	b := p.Properties["b"]
	if b == nil || b.Type != "object" {
		t.Fatalf("b: %+v", b)
	}
	back := b.Properties["a"]
	if back == nil || back.Type != "string" {
		t.Fatalf("cycle back to a should fall back to string, got: %+v", back)
	}
}

func TestResolveProperty_ItemsTupleAndInlineWin(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"arr": {"type": "array", "items": {"type": "string"}}
		}
	}`)

	tuple := mustDoc(t, `{"type": "array", "items": [{"type": "integer"}, {"type": "string"}]}`)
	p := hyperschema.ResolveProperty(tuple, doc)
	if p.Items == nil || p.Items.Type != "integer" {
		t.Fatalf("tuple items should resolve to first element: %+v", p.Items)
	}

	inline := mustDoc(t, `{"$ref": "#/definitions/arr", "items": {"type": "boolean"}}`)
	p = hyperschema.ResolveProperty(inline, doc)
	if p.Type != "array" {
		t.Fatalf("type should follow the reference: %s", p.Type)
	}
	if p.Items == nil || p.Items.Type != "boolean" {
		t.Fatalf("inline items should win over referenced items: %+v", p.Items)
	}

	empty := mustDoc(t, `{"type": "array", "items": []}`)
	if p = hyperschema.ResolveProperty(empty, doc); p.Items != nil {
		t.Fatalf("empty tuple should have no items: %+v", p.Items)
	}
}

func TestResolveProperty_NilAndScalarNodes(t *testing.T) {
	doc := mustDoc(t, `{"definitions": {}}`)
	if p := hyperschema.ResolveProperty(nil, doc); p != nil {
		t.Fatalf("nil schema: %+v", p)
	}
	if p := hyperschema.ResolveProperty(true, doc); p == nil || p.Type != "string" {
		t.Fatalf("scalar schema: %+v", p)
	}
}

func TestTypeOf(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"app": {"type": "object"},
			"cycle": {"$ref": "#/definitions/cycle"}
		}
	}`)
	cases := []struct {
		name   string
		schema any
		want   string
	}{
		{"plain", mustDoc(t, `{"type": "integer"}`), "integer"},
		{"nullable array form", mustDoc(t, `{"type": ["string", "null"]}`), "string"},
		{"ambiguous array form", mustDoc(t, `{"type": ["string", "integer"]}`), "string"},
		{"ref", mustDoc(t, `{"$ref": "#/definitions/app"}`), "object"},
		{"ref cycle", mustDoc(t, `{"$ref": "#/definitions/cycle"}`), "string"},
		{"agreeing anyOf", mustDoc(t, `{"anyOf": [{"type": "number"}, {"type": "number"}]}`), "number"},
		{"mixed anyOf", mustDoc(t, `{"anyOf": [{"type": "number"}, {"type": "string"}]}`), "string"},
		{"agreeing oneOf", mustDoc(t, `{"oneOf": [{"type": "boolean"}, {"type": "boolean"}]}`), "boolean"},
		{"empty", map[string]any{}, "string"},
		{"bare string", "#/definitions/app", "string"},
		{"bad ref", mustDoc(t, `{"$ref": "#/definitions/missing"}`), "string"},
	}
	for _, tc := range cases {
		if got := hyperschema.TypeOf(tc.schema, doc); got != tc.want {
			t.Fatalf("TypeOf(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDescriptionOf(t *testing.T) {
	doc := mustDoc(t, `{
		"definitions": {
			"common": {"description": "shared"}
		}
	}`)
	cases := []struct {
		name   string
		schema any
		want   string
	}{
		{"direct", mustDoc(t, `{"description": "direct"}`), "direct"},
		{"ref", mustDoc(t, `{"$ref": "#/definitions/common"}`), "shared"},
		{"anyOf join", mustDoc(t, `{"anyOf": [{"description": "a"}, {"description": "b"}]}`), "a or b"},
		{"oneOf join", mustDoc(t, `{"oneOf": [{"description": "a"}, {"type": "null"}]}`), "a"},
		{"allOf join", mustDoc(t, `{"allOf": [{"description": "a"}, {"description": "b"}]}`), "a and b"},
		{"missing", mustDoc(t, `{"type": "string"}`), ""},
	}
	for _, tc := range cases {
		if got := hyperschema.DescriptionOf(tc.schema, doc); got != tc.want {
			t.Fatalf("DescriptionOf(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
