package hyperschema

import "sort"

// Link is the flattened metadata of one hyper-schema link entry.
type Link struct {
	Definition      string
	Index           int
	Title           string
	Description     string
	HRef            string
	Rel             string
	Method          string
	HasTargetSchema bool
}

// Links flattens every definitions.<name>.links[] entry, ordered by
// definition name then index. Entries that are not objects are skipped.
func Links(doc map[string]any) []Link {
	defs, ok := doc["definitions"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Link
	for _, name := range names {
		def, ok := defs[name].(map[string]any)
		if !ok {
			continue
		}
		links, ok := def["links"].([]any)
		if !ok {
			continue
		}
		for i, l := range links {
			link, ok := l.(map[string]any)
			if !ok {
				continue
			}
			entry := Link{Definition: name, Index: i}
			entry.Title, _ = link["title"].(string)
			entry.Description, _ = link["description"].(string)
			entry.HRef, _ = link["href"].(string)
			entry.Rel, _ = link["rel"].(string)
			entry.Method, _ = link["method"].(string)
			_, entry.HasTargetSchema = link["targetSchema"]
			out = append(out, entry)
		}
	}
	return out
}
