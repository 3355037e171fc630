package oatty_test

import (
	"strings"
	"testing"

	oatty "github.com/oattyio/oatty"
)

func TestDetectDuplicateKeys_CleanDocument(t *testing.T) {
	iss := oatty.DetectDuplicateKeys([]byte(`{"a": 1, "b": {"a": 2}}`), -1)
	if len(iss) != 0 {
		t.Fatalf("expected no issues, got: %v", iss)
	}
}

func TestDetectDuplicateKeys_TopLevel(t *testing.T) {
	iss := oatty.DetectDuplicateKeys([]byte(`{"a":1,"a":2}`), -1)
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got: %v", iss)
	}
	if iss[0].Code != oatty.CodeDuplicateKey {
		t.Fatalf("unexpected code: %s", iss[0].Code)
	}
	if iss[0].Path != "/a" {
		t.Fatalf("unexpected path: %s", iss[0].Path)
	}
}

func TestDetectDuplicateKeys_NestedPathThroughArrays(t *testing.T) {
	src := `{"definitions": {"app": [{"x": 1, "x": 2}]}}`
	iss := oatty.DetectDuplicateKeys([]byte(src), -1)
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got: %v", iss)
	}
	if iss[0].Path != "/definitions/app/0/x" {
		t.Fatalf("unexpected path: %s", iss[0].Path)
	}
}

func TestDetectDuplicateKeys_EscapesPathTokens(t *testing.T) {
	src := `{"a/b": {"x": 1, "x": 2}}`
	iss := oatty.DetectDuplicateKeys([]byte(src), -1)
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got: %v", iss)
	}
	if iss[0].Path != "/a~1b/x" {
		t.Fatalf("unexpected path: %s", iss[0].Path)
	}
}

func TestDetectDuplicateKeys_MaxIssuesAddsTruncatedMarker(t *testing.T) {
	src := `{"a":1,"a":2,"a":3,"b":1,"b":2}`
	iss := oatty.DetectDuplicateKeys([]byte(src), 2)
	if len(iss) != 3 {
		t.Fatalf("expected 2 issues plus marker, got: %v", iss)
	}
	if iss[0].Code != oatty.CodeDuplicateKey || iss[1].Code != oatty.CodeDuplicateKey {
		t.Fatalf("unexpected codes: %v", iss)
	}
	if iss[2].Code != oatty.CodeTruncated {
		t.Fatalf("expected truncated marker, got: %s", iss[2].Code)
	}
}

func TestDetectDuplicateKeys_ZeroBudgetDisablesScan(t *testing.T) {
	if iss := oatty.DetectDuplicateKeys([]byte(`{"a":1,"a":2}`), 0); len(iss) != 0 {
		t.Fatalf("expected scan disabled, got: %v", iss)
	}
}

func TestDetectDuplicateKeys_MalformedInput(t *testing.T) {
	cases := []string{
		`{`,
		`{"a`,
		`{"a":`,
		`{"a": {"b": 1}`,
		`[1, 2`,
		`xyz`,
	}
	for _, src := range cases {
		iss := oatty.DetectDuplicateKeys([]byte(src), -1)
		if len(iss) == 0 {
			t.Fatalf("%q: expected parse issue", src)
		}
		if iss[0].Code != oatty.CodeParseError {
			t.Fatalf("%q: unexpected code: %s", src, iss[0].Code)
		}
	}
}

func TestDetectDuplicateKeys_TruncatedInputKeepsEarlierFindings(t *testing.T) {
	iss := oatty.DetectDuplicateKeys([]byte(`{"a":1,"a":2`), -1)
	if len(iss) != 2 {
		t.Fatalf("expected duplicate plus parse issue, got: %v", iss)
	}
	if iss[0].Code != oatty.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("unexpected first issue: %+v", iss[0])
	}
	if iss[1].Code != oatty.CodeParseError {
		t.Fatalf("unexpected second issue: %+v", iss[1])
	}
}

func TestDetectDuplicateKeysReader(t *testing.T) {
	iss := oatty.DetectDuplicateKeysReader(strings.NewReader(`{"a":1,"a":2}`), -1)
	if len(iss) != 1 || iss[0].Code != oatty.CodeDuplicateKey {
		t.Fatalf("unexpected issues: %v", iss)
	}
}
