// Command topproperties prints the most frequent property names across all
// link payload schemas of a hyper-schema document, one "name\tcount" line
// per property, count descending, capped at 50 rows.
package main

import (
	"fmt"
	"os"

	oatty "github.com/oattyio/oatty"
	"github.com/oattyio/oatty/hyperschema"
)

const defaultSchemaPath = "heroku-schema.json"

const topRows = 50

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

	for _, row := range hyperschema.CountProperties(doc).Top(topRows) {
		fmt.Printf("%s\t%d\n", row.Name, row.Count)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "topproperties prints the 50 most frequent property names across all link payload schemas.\n\nUsage:\n  topproperties [schema.json]\n\nThe schema path defaults to "+defaultSchemaPath+" in the current directory.")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
