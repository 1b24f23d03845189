// Package utils contains small JSON helpers shared by response shaping.
package utils

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ToObject converts v into a generic JSON object.
func ToObject(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal value")
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrap(err, "value is not a JSON object")
	}
	return obj, nil
}

// RemovePath deletes the dot separated property path from obj. Arrays along
// the path are descended element by element. It reports whether anything
// was removed.
func RemovePath(obj map[string]any, path string) bool {
	if path == "" {
		return false
	}
	return removeParts(obj, strings.Split(path, "."))
}

func removeParts(node any, parts []string) bool {
	switch n := node.(type) {
	case map[string]any:
		child, ok := n[parts[0]]
		if !ok {
			return false
		}
		if len(parts) == 1 {
			delete(n, parts[0])
			return true
		}
		return removeParts(child, parts[1:])
	case []any:
		removed := false
		for _, item := range n {
			if removeParts(item, parts) {
				removed = true
			}
		}
		return removed
	default:
		return false
	}
}

// Merge copies extra's properties into obj. Nested objects merge
// recursively; any other value replaces what obj holds.
func Merge(obj, extra map[string]any) {
	for k, v := range extra {
		src, srcIsObj := v.(map[string]any)
		dst, dstIsObj := obj[k].(map[string]any)
		if srcIsObj && dstIsObj {
			Merge(dst, src)
			continue
		}
		obj[k] = v
	}
}
