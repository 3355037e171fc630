// Command datefields lists the date-like field names of a hyper-schema
// document: every property or definition name whose schema carries a
// date/date-time indicator, lowercased and sorted. The list goes to stdout
// and to a date_fields.json sidecar next to the input document.
package main

import (
	"fmt"
	"os"

	oatty "github.com/oattyio/oatty"
	"github.com/oattyio/oatty/datefield"
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

	names := datefield.Collect(doc)
	sidecar := datefield.SidecarPath(path)
	if err := datefield.Write(sidecar, names); err != nil {
		fatalf("%s: %v", sidecar, err)
	}
	out, err := datefield.Render(names)
	if err != nil {
		fatalf("render: %v", err)
	}
	fmt.Println(string(out))
}

func usage() {
	fmt.Fprintln(os.Stderr, "datefields lists the date-like field names of a hyper-schema document.\n\nUsage:\n  datefields [schema.json]\n\nThe schema path defaults to "+defaultSchemaPath+" in the current directory.\nThe sorted list is printed to stdout and written to date_fields.json next to the input.")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
