package value_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Wladim1r/xoconf/internal/value"
)

func TestFromAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Value{}},
		{"integral float", 2.0, value.Int(2)},
		{"fraction", 1.5, value.Float(1.5)},
		{"string list", []string{"a", "b"}, value.Seq(value.String("a"), value.String("b"))},
		{
			"nested",
			[]any{2, map[string]any{"SwitchCase": 1}},
			value.Seq(value.Int(2), value.Map(map[string]value.Value{"SwitchCase": value.Int(1)})),
		},
		{"yaml v2 style map", map[any]any{"a": true}, value.Map(map[string]value.Value{"a": value.Bool(true)})},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := value.FromAny(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := value.FromAny(struct{}{})
	assert.Error(t, err)

	_, err = value.FromAny([]any{1, make(chan int)})
	assert.ErrorContains(t, err, "[1]")
}

func TestMerge(t *testing.T) {
	t.Parallel()

	dst := value.MustFromAny(map[string]any{
		"list":  []any{1, 2},
		"inner": map[string]any{"a": 1, "b": 2},
		"keep":  "x",
	})
	src := value.MustFromAny(map[string]any{
		"list":  []any{3},
		"inner": map[string]any{"b": 20, "c": 30},
		"keep":  nil,
	})

	replaced := value.Merge(dst, src, value.Replace)
	assert.Equal(t, map[string]any{
		"list":  []any{3},
		"inner": map[string]any{"a": 1, "b": 20, "c": 30},
		"keep":  "x",
	}, replaced.Interface())

	appended := value.Merge(dst, src, value.Append)
	list, _ := appended.Field("list")
	assert.Equal(t, []any{1, 2, 3}, list.Interface())

	// Inputs are untouched.
	inner, _ := dst.Field("inner")
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, inner.Interface())
}

func TestMerge_ScalarOverMapping(t *testing.T) {
	t.Parallel()
	got := value.Merge(value.MustFromAny(map[string]any{"a": 1}), value.Int(0), value.Replace)
	assert.True(t, got.Equal(value.Int(0)))
}

func TestMergeMaps(t *testing.T) {
	t.Parallel()

	assert.Nil(t, value.MergeMaps(nil, nil, value.Replace))

	base := map[string]value.Value{"x": value.Int(1)}
	out := value.MergeMaps(base, map[string]value.Value{"y": value.Int(2)}, value.Replace)
	assert.Len(t, out, 2)
	assert.Len(t, base, 1, "dst must not be mutated")
}

func TestEncoding(t *testing.T) {
	t.Parallel()

	var v value.Value
	require.NoError(t, json.Unmarshal([]byte(`[2, "never"]`), &v))
	assert.Equal(t, value.Sequence, v.Kind())
	assert.True(t, v.Equal(value.Seq(value.Int(2), value.String("never"))))

	var fromYAML value.Value
	require.NoError(t, yaml.Unmarshal([]byte("[2, {before: false, after: true}]"), &fromYAML))
	assert.Equal(t, `[2,{"after":true,"before":false}]`, fromYAML.String())

	out, err := yaml.Marshal(map[string]value.Value{"semi": v})
	require.NoError(t, err)
	assert.Contains(t, string(out), "never")
}
