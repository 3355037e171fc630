package oatty

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issuef(code, format string, a ...any) Issue
}

// Root returns a PathRef addressing the document root.
func Root() PathRef { return &pathRef{parts: nil} }

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issuef(code, format string, a ...any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: fmt.Sprintf(format, a...)}
}

// Resolve resolves an RFC 6901 JSON Pointer against doc and returns the
// addressed value. A leading '#' is stripped, so "#/definitions/app" and
// "/definitions/app" are equivalent; the empty pointer returns doc itself.
// References that do not start with '/' after stripping (remote URLs,
// bare anchors) are rejected with CodeNonLocalRef. Failures report the
// pointer of the container that could not be indexed.
func Resolve(doc any, pointer string) (any, error) {
	ptr := strings.TrimPrefix(pointer, "#")
	if ptr == "" {
		return doc, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, Issues{Root().Issuef(CodeNonLocalRef, "unsupported non-local reference %q", pointer)}
	}
	cur := doc
	at := Root()
	for _, raw := range strings.Split(ptr[1:], "/") {
		// '~1' before '~0' so "~01" decodes to "~1", not "/"
		token := strings.ReplaceAll(strings.ReplaceAll(raw, "~1", "/"), "~0", "~")
		switch node := cur.(type) {
		case []any:
			idx, err := strconv.Atoi(token)
			if err != nil {
				return nil, Issues{at.Issuef(CodeIndexInvalid, "array index %q is not an integer", token)}
			}
			if idx < 0 || idx >= len(node) {
				return nil, Issues{at.Issuef(CodeIndexOutOfRange, "array index %d out of range (len %d)", idx, len(node))}
			}
			cur = node[idx]
			at = at.Index(idx)
		case map[string]any:
			v, ok := node[token]
			if !ok {
				return nil, Issues{at.Issuef(CodePointerNotFound, "key %q not found", token)}
			}
			cur = v
			at = at.Field(token)
		default:
			return nil, Issues{at.Issuef(CodeNotContainer, "cannot dereference %q within a non-container value", token)}
		}
	}
	return cur, nil
}
