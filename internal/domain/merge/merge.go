// Package merge implements the non-destructive deep merge used to splice
// generated configuration fragments into existing configuration.
//
// Values are YAML-shaped: scalars, []any, and map[string]any. On a conflict
// that is not map-against-map the base value is kept.
package merge

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/mohae/deepcopy"

	"github.com/archgen/archgen/internal/domain"
)

// Merge deep-merges overlay into base. The result starts as a copy of
// overlay; every base key is then applied, recursing where both sides hold
// maps and keeping base's value otherwise. Neither input is modified.
func Merge(base, overlay map[string]any) map[string]any {
	return merge(base, overlay, "", nil)
}

// MergeWithReport is Merge plus the dotted paths of overlay values that were
// not applied and of keys that only the overlay contributed.
func MergeWithReport(base, overlay map[string]any) domain.MergeResult {
	rep := &report{}
	merged := merge(base, overlay, "", rep)
	return domain.MergeResult{
		Merged:    merged,
		Conflicts: rep.conflicts,
		AddedKeys: rep.added,
	}
}

// HasConflict reports whether merging overlay into base would discard an
// overlay value at key, looking through nested maps.
func HasConflict(base, overlay map[string]any, key string) bool {
	bv, inBase := base[key]
	ov, inOverlay := overlay[key]
	if !inBase || !inOverlay {
		return false
	}
	bm, bIsMap := asMap(bv)
	om, oIsMap := asMap(ov)
	if bIsMap && oIsMap {
		for k := range om {
			if HasConflict(bm, om, k) {
				return true
			}
		}
		return false
	}
	return !reflect.DeepEqual(bv, ov)
}

type report struct {
	conflicts []domain.Conflict
	added     []string
}

func merge(base, overlay map[string]any, prefix string, rep *report) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for k, v := range overlay {
		result[k] = copyValue(v)
	}

	for _, k := range sortedKeys(overlay) {
		if _, ok := base[k]; !ok && rep != nil {
			rep.added = append(rep.added, join(prefix, k))
		}
	}

	for _, k := range sortedKeys(base) {
		bv := base[k]
		ov, inOverlay := overlay[k]
		if !inOverlay {
			result[k] = copyValue(bv)
			continue
		}
		bm, bIsMap := asMap(bv)
		om, oIsMap := asMap(ov)
		if bIsMap && oIsMap {
			if bm == nil && om == nil {
				result[k] = bv
				continue
			}
			result[k] = merge(bm, om, join(prefix, k), rep)
			continue
		}
		if rep != nil && !reflect.DeepEqual(bv, ov) {
			rep.conflicts = append(rep.conflicts, domain.Conflict{
				Path:      join(prefix, k),
				Existing:  bv,
				Generated: ov,
			})
		}
		result[k] = copyValue(bv)
	}
	return result
}

// copyValue deep-copies v, converting any map[any]any into map[string]any.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = copyValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = copyValue(vv)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = copyValue(vv)
		}
		return out
	default:
		return deepcopy.Copy(v)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		m, _ := copyValue(t).(map[string]any)
		return m, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
