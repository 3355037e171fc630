package datefield

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	oatty "github.com/oattyio/oatty"
)

// SidecarName is the fixed output file written next to the input document.
const SidecarName = "date_fields.json"

// SidecarPath returns the sidecar path for the given schema document path.
func SidecarPath(schemaPath string) string {
	return filepath.Join(filepath.Dir(schemaPath), SidecarName)
}

// Render returns the serialized form of names: a two-space indented JSON
// array with no trailing newline. The sidecar holds exactly these bytes, so
// reruns over an unchanged document rewrite an identical file.
func Render(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	return json.MarshalIndent(names, "", "  ")
}

// Write renders names into the file at path, replacing any previous content.
func Write(path string, names []string) error {
	data, err := Render(names)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oatty.Issues{oatty.Issue{Path: "/", Code: oatty.CodeWriteError, Message: "write sidecar", Cause: err}}
	}
	return nil
}
