// Package oatty provides the shared primitives for the hyper-schema
// analysis tools in this repository:
//
//   - Loading a schema document into an untyped node tree
//     (DecodeDocument/ReadDocument, JSON or YAML input)
//   - RFC 6901 JSON Pointer resolution and path building (Resolve, PathRef)
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - Duplicate-key detection over raw JSON (DetectDuplicateKeys)
//
// Design policy:
//   - Keep only shared APIs in the root package; analysis passes live under
//     datefield/ and hyperschema/, the CLIs under cmd/.
//   - Documents are plain map[string]any trees; nothing here owns a schema
//     type system.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := oatty.ReadDocument("heroku-schema.json")
//	node, err := oatty.Resolve(doc, "#/definitions/app")
package oatty
