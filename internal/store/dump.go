package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Dump returns every entry in kv, JSON-decoded where the value parses and
// as the raw string otherwise. Used by the debug export.
func Dump(ctx context.Context, kv KV) (map[string]any, error) {
	entries, err := kv.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("dump entries: %w", err)
	}

	out := make(map[string]any, len(entries))
	for k, v := range entries {
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			out[k] = v
			continue
		}
		out[k] = decoded
	}
	return out, nil
}
