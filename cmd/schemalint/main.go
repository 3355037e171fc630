// Command schemalint checks a hyper-schema document for duplicated object
// keys and for link payload schemas that do not compile as JSON Schema
// draft-04. Findings go to stdout one per line; the exit code is 1 when
// anything was found, 0 when clean.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oatty "github.com/oattyio/oatty"
	"github.com/oattyio/oatty/hyperschema"
)

const defaultSchemaPath = "heroku-schema.json"

func main() {
	path := defaultSchemaPath
	switch len(os.Args) {
	case 1:
	case 2:
		path = os.Args[1]
	default:
		usage()
		os.Exit(2)
	}

	doc, err := oatty.ReadDocument(path)
	if err != nil {
		fatalf("%s: %v", path, err)
	}

	var findings []string

	// YAML mappings cannot carry duplicates past the decoder; scan JSON only.
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("%s: %v", path, err)
		}
		for _, is := range oatty.DetectDuplicateKeys(data, -1) {
			findings = append(findings, fmt.Sprintf("%s: %s", is.Path, is.Message))
		}
	}

	diag, err := hyperschema.Lint(doc)
	if err != nil {
		fatalf("lint: %v", err)
	}
	findings = append(findings, diag.Warnings()...)

	for _, f := range findings {
		fmt.Println(f)
	}
	if len(findings) > 0 {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "schemalint reports duplicated keys and link payload schemas that do not compile as draft-04.\n\nUsage:\n  schemalint [schema.json]\n\nThe schema path defaults to "+defaultSchemaPath+" in the current directory.")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
