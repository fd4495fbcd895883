package merge_test

import (
	"maps"
	"slices"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/domain/merge"
	"github.com/archgen/archgen/internal/domain/propcheck"
)

func TestMerge_BaseWinsScalarConflict(t *testing.T) {
	base := map[string]any{"a": 1}
	overlay := map[string]any{"a": 2, "b": 3}

	got := merge.Merge(base, overlay)

	assert.Equal(t, map[string]any{"a": 1, "b": 3}, got)
}

func TestMerge_EmptyBaseTakesOverlay(t *testing.T) {
	overlay := map[string]any{"x": map[string]any{"y": 1}}

	got := merge.Merge(map[string]any{}, overlay)

	assert.Equal(t, map[string]any{"x": map[string]any{"y": 1}}, got)
}

func TestMerge_NestedBaseWinsAndNewKeySurvives(t *testing.T) {
	base := map[string]any{"x": map[string]any{"y": 1}}
	overlay := map[string]any{"x": map[string]any{"y": 2, "z": 3}}

	got := merge.Merge(base, overlay)

	assert.Equal(t, map[string]any{"x": map[string]any{"y": 1, "z": 3}}, got)
}

func TestMerge_MapAgainstScalarKeepsBase(t *testing.T) {
	tests := []struct {
		name    string
		base    map[string]any
		overlay map[string]any
		want    map[string]any
	}{
		{
			name:    "base map, overlay scalar",
			base:    map[string]any{"spring": map[string]any{"port": 8080}},
			overlay: map[string]any{"spring": "disabled"},
			want:    map[string]any{"spring": map[string]any{"port": 8080}},
		},
		{
			name:    "base scalar, overlay map",
			base:    map[string]any{"spring": "disabled"},
			overlay: map[string]any{"spring": map[string]any{"port": 8080}},
			want:    map[string]any{"spring": "disabled"},
		},
		{
			name:    "sequence conflict",
			base:    map[string]any{"hosts": []any{"a"}},
			overlay: map[string]any{"hosts": []any{"b", "c"}},
			want:    map[string]any{"hosts": []any{"a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge.Merge(tt.base, tt.overlay))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"x": map[string]any{"y": 1}, "l": []any{"a"}}
	overlay := map[string]any{"x": map[string]any{"z": 2}, "n": map[string]any{"k": "v"}}

	got := merge.Merge(base, overlay)
	got["x"].(map[string]any)["y"] = 99
	got["n"].(map[string]any)["k"] = "changed"

	assert.Equal(t, map[string]any{"y": 1}, base["x"])
	assert.Equal(t, map[string]any{"z": 2}, overlay["x"])
	assert.Equal(t, map[string]any{"k": "v"}, overlay["n"])
}

func TestMerge_KeepsNilMapsNil(t *testing.T) {
	m := map[string]any{"x": map[string]any(nil), "y": 1}

	got := merge.Merge(m, m)

	assert.Equal(t, m, got)
	assert.Nil(t, got["x"])
	assert.IsType(t, map[string]any(nil), got["x"])
}

func TestMerge_NormalizesAnyKeyedMaps(t *testing.T) {
	base := map[string]any{"x": map[any]any{"y": 1}}
	overlay := map[string]any{"x": map[string]any{"z": 2}}

	got := merge.Merge(base, overlay)

	assert.Equal(t, map[string]any{"x": map[string]any{"y": 1, "z": 2}}, got)
}

func TestMergeWithReport_ConflictsAndAddedKeys(t *testing.T) {
	base := map[string]any{
		"server": map[string]any{"port": 8080},
		"name":   "orders",
	}
	overlay := map[string]any{
		"server": map[string]any{"port": 9090, "timeout": "5s"},
		"name":   "orders",
		"redis":  map[string]any{"host": "localhost"},
	}

	res := merge.MergeWithReport(base, overlay)

	require.True(t, res.HasConflicts())
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "server.port", res.Conflicts[0].Path)
	assert.Equal(t, 8080, res.Conflicts[0].Existing)
	assert.Equal(t, 9090, res.Conflicts[0].Generated)
	assert.Equal(t, []string{"redis", "server.timeout"}, res.AddedKeys)
	assert.Equal(t, 8080, res.Merged["server"].(map[string]any)["port"])
	assert.Equal(t, "5s", res.Merged["server"].(map[string]any)["timeout"])
}

func TestMergeWithReport_EqualValuesAreNotConflicts(t *testing.T) {
	m := map[string]any{"a": 1, "b": map[string]any{"c": []any{"x"}}}

	res := merge.MergeWithReport(m, m)

	assert.False(t, res.HasConflicts())
	assert.Empty(t, res.AddedKeys)
}

func TestHasConflict(t *testing.T) {
	base := map[string]any{"a": 1, "n": map[string]any{"x": 1, "y": 2}}

	assert.True(t, merge.HasConflict(base, map[string]any{"a": 2}, "a"))
	assert.False(t, merge.HasConflict(base, map[string]any{"a": 1}, "a"))
	assert.False(t, merge.HasConflict(base, map[string]any{"b": 1}, "b"))
	assert.True(t, merge.HasConflict(base, map[string]any{"n": map[string]any{"y": 3}}, "n"))
	assert.False(t, merge.HasConflict(base, map[string]any{"n": map[string]any{"z": 3}}, "n"))
}

func TestMerge_YAMLRoundTripKeepsKeysAndScalars(t *testing.T) {
	var base, overlay map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("server:\n  port: 8080\nspring:\n  application:\n    name: orders\n"), &base))
	require.NoError(t, yaml.Unmarshal([]byte("server:\n  port: 9090\nspring:\n  data:\n    redis:\n      host: localhost\n"), &overlay))

	merged := merge.Merge(base, overlay)
	out, err := yaml.Marshal(merged)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	if diff := cmp.Diff(merged, back); diff != "" {
		t.Errorf("round trip mismatch (-merged +parsed):\n%s", diff)
	}
	assert.Equal(t, 8080, back["server"].(map[string]any)["port"])
}

func TestMergeProperties(t *testing.T) {
	cfg := propcheck.Default()

	t.Run("empty overlay returns base", func(t *testing.T) {
		f := func(m propcheck.Doc) bool {
			return cmp.Equal(map[string]any(m), merge.Merge(m, map[string]any{}))
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})

	t.Run("empty base returns overlay", func(t *testing.T) {
		f := func(m propcheck.Doc) bool {
			return cmp.Equal(map[string]any(m), merge.Merge(map[string]any{}, m))
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})

	t.Run("idempotent", func(t *testing.T) {
		f := func(m propcheck.Doc) bool {
			return cmp.Equal(map[string]any(m), merge.Merge(m, m))
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})

	t.Run("keeps every key", func(t *testing.T) {
		f := func(base, overlay propcheck.Doc) bool {
			got := merge.Merge(base, overlay)
			for k := range base {
				if _, ok := got[k]; !ok {
					return false
				}
			}
			for k := range overlay {
				if _, ok := got[k]; !ok {
					return false
				}
			}
			return true
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})

	t.Run("base wins non-map values", func(t *testing.T) {
		f := func(base, overlay propcheck.Doc) bool {
			got := merge.Merge(base, overlay)
			for k, bv := range base {
				if _, shared := overlay[k]; !shared {
					continue
				}
				if _, isMap := bv.(map[string]any); isMap {
					continue
				}
				if !cmp.Equal(bv, got[k]) {
					return false
				}
			}
			return true
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})

	t.Run("disjoint key sets are order independent", func(t *testing.T) {
		f := func(d propcheck.Disjoint) bool {
			ab := slices.Sorted(maps.Keys(merge.Merge(d.A, d.B)))
			ba := slices.Sorted(maps.Keys(merge.Merge(d.B, d.A)))
			return slices.Equal(ab, ba)
		}
		require.NoError(t, quick.Check(f, cfg.Quick()))
	})
}
