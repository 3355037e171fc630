package hyperschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	oatty "github.com/oattyio/oatty"
)

// Diag carries non-fatal warnings produced during lint.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// lintResourceURL names the in-memory compiler resource.
const lintResourceURL = "mem://schema.json"

// Lint compiles every link payload schema as JSON Schema draft-04 and
// reports the fragments that fail, one warning per payload. The document's
// own $schema URL is dropped before registration so the compiler never
// reaches for a remote meta-schema. The error return covers only document
// marshaling/registration failure, never individual payloads.
func Lint(doc map[string]any) (Diag, error) {
	diag := &simpleDiag{}
	payloads := TargetSchemas(doc)
	if len(payloads) == 0 {
		return diag, nil
	}

	stripped := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "$schema" {
			continue
		}
		stripped[k] = v
	}
	data, err := json.Marshal(stripped)
	if err != nil {
		return diag, fmt.Errorf("marshal document for lint: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft4
	if err := c.AddResource(lintResourceURL, bytes.NewReader(data)); err != nil {
		return diag, fmt.Errorf("register document for lint: %w", err)
	}

	for _, ts := range payloads {
		ptr := oatty.Root().
			Field("definitions").Field(ts.Definition).
			Field("links").Index(ts.LinkIndex).
			Field("targetSchema").Pointer()
		if _, err := c.Compile(lintResourceURL + "#" + ptr); err != nil {
			diag.warnf("definitions/%s/links/%d/targetSchema: %v", ts.Definition, ts.LinkIndex, err)
		}
	}
	return diag, nil
}
