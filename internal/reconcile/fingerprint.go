package reconcile

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"

	"github.com/keshon/commandsync/pkg/cmd"
)

// Fingerprint returns a deterministic SHA-1 over the stable fields of a
// manifest, in manifest order. Handlers and metadata are excluded.
func Fingerprint(defs []*cmd.Definition) string {
	stable := make([]map[string]any, len(defs))
	for i, d := range defs {
		entry := map[string]any{
			"name":        d.Name,
			"description": d.Description,
			"deleted":     d.Deleted,
		}
		if len(d.Options) > 0 {
			entry["options"] = normalizeOptions(d.Options)
		}
		stable[i] = entry
	}
	data, _ := json.Marshal(stable)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeOptions(opts []cmd.Option) []map[string]any {
	out := make([]map[string]any, len(opts))
	for i, o := range opts {
		entry := map[string]any{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
		}
		if o.Required != nil {
			entry["required"] = *o.Required
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]any, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]any{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	return out
}
