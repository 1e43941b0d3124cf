package rules

import (
	"fmt"

	"github.com/Jeffail/gabs/v2"
)

// ContextFromJSON builds an evaluation variable map from a JSON payload.
// Top-level object keys become variables; nested structures stay nested so
// expressions can reach into them with dotted access.
func ContextFromJSON(payload []byte) (map[string]any, error) {
	parsed, err := gabs.ParseJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing context payload: %w", err)
	}
	obj, ok := parsed.Data().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("context payload must be a JSON object, got %T", parsed.Data())
	}
	return obj, nil
}

// MergeContext overlays extra variables onto a base context. Keys in extra
// win. Neither input map is modified.
func MergeContext(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
