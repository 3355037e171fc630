// Package jsonscan performs token-level scans over raw JSON that the decoded
// node tree cannot answer; currently duplicate object key detection.
package jsonscan

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// Codes produced by this package.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue is a minimal diagnostic used by scan helpers; the root package maps
// it onto its own issue model.
type Issue struct {
	Code    string
	Path    string
	Message string
}

const (
	kindObject = iota
	kindArray
)

// frame tracks one open container while streaming tokens. Object frames
// remember the key owning the value currently being parsed, array frames the
// number of elements started, so reports carry a full JSON Pointer.
type frame struct {
	kind         int
	keys         map[string]struct{}
	key          string
	elems        int
	expectingKey bool
}

// DetectBytes reports duplicated object keys in a JSON byte slice.
// maxIssues < 0 means unlimited; 0 disables the scan; > 0 caps the report
// and appends a truncated marker when the cap is hit.
func DetectBytes(data []byte, maxIssues int) []Issue {
	return detect(json.NewDecoder(bytes.NewReader(data)), maxIssues)
}

// DetectReader reports duplicated object keys from r, consuming it fully.
func DetectReader(r io.Reader, maxIssues int) []Issue {
	return detect(json.NewDecoder(r), maxIssues)
}

func detect(dec *json.Decoder, maxIssues int) []Issue {
	if maxIssues == 0 {
		return nil
	}
	dec.UseNumber()

	var issues []Issue
	var stack []frame
	full := false

	appendIssue := func(i Issue) {
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, Issue{Code: CodeTruncated, Path: "/", Message: "max issues reached"})
			full = true
		}
	}

	for !full {
		tok, err := dec.Token()
		if err == io.EOF {
			// The tokenizer reports a bare EOF at many truncation points;
			// containers still open mean the document was cut off.
			if len(stack) > 0 {
				appendIssue(Issue{Code: CodeParseError, Path: "/", Message: "unexpected end of JSON input"})
			}
			break
		}
		if err != nil {
			appendIssue(Issue{Code: CodeParseError, Path: "/", Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				if len(stack) > 0 {
					enterValue(&stack[len(stack)-1])
				}
				if v == '{' {
					stack = append(stack, frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
				} else {
					stack = append(stack, frame{kind: kindArray})
				}
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				if len(stack) > 0 {
					leaveValue(&stack[len(stack)-1])
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						appendIssue(Issue{Code: CodeDuplicateKey, Path: childPath(stack, v), Message: "key '" + v + "' duplicated"})
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
			scalarValue(stack)
		default:
			scalarValue(stack)
		}
	}

	return issues
}

// enterValue records that the top frame's next value is starting.
func enterValue(top *frame) {
	if top.kind == kindArray {
		top.elems++
	}
}

// leaveValue records that a child container of the top frame closed.
func leaveValue(top *frame) {
	if top.kind == kindObject && !top.expectingKey {
		top.expectingKey = true
	}
}

// scalarValue records a completed scalar value in the innermost frame.
func scalarValue(stack []frame) {
	if len(stack) == 0 {
		return
	}
	top := &stack[len(stack)-1]
	if top.kind == kindArray {
		top.elems++
		return
	}
	if !top.expectingKey {
		top.expectingKey = true
	}
}

// childPath renders the JSON Pointer of key inside the innermost open
// object. Every frame above it contributes the segment of the value in
// progress: its current key for objects, the last started index for arrays.
func childPath(stack []frame, key string) string {
	var b strings.Builder
	for i := 0; i+1 < len(stack); i++ {
		b.WriteByte('/')
		if stack[i].kind == kindArray {
			b.WriteString(strconv.Itoa(stack[i].elems - 1))
		} else {
			b.WriteString(escapeToken(stack[i].key))
		}
	}
	b.WriteByte('/')
	b.WriteString(escapeToken(key))
	return b.String()
}

func escapeToken(tok string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1")
}
