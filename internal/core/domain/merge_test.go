package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/loom/internal/core/domain"
)

func TestMerge_ConcatenatesNestedArrays(t *testing.T) {
	target := domain.Document{"a": map[string]any{"c": []any{1, 2}}}
	got := domain.Merge(target, domain.Document{"a": map[string]any{"c": []any{3, 4}}})

	want := domain.Document{"a": map[string]any{"c": []any{1, 2, 3, 4}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_MutatesAndReturnsTarget(t *testing.T) {
	target := domain.Document{"x": 1}
	got := domain.Merge(target, domain.Document{"y": 2})

	assert.Equal(t, 2, got["y"])
	assert.Equal(t, 2, target["y"], "target must be mutated in place")
}

func TestMerge_DisjointKeys(t *testing.T) {
	a := domain.Document{"a": 1, "nested": map[string]any{"k": "v"}}
	b := domain.Document{"b": true, "other": map[string]any{"z": "w"}}

	got := domain.Merge(domain.Clone(a), b)

	for k := range a {
		assert.Contains(t, got, k)
	}
	for k := range b {
		assert.Contains(t, got, k)
	}
	assert.NotContains(t, a, "b", "merging into a copy must leave the original alone")
}

func TestMerge_RepeatedMergeAccumulatesArrays(t *testing.T) {
	a := domain.Document{"list": []any{"x"}, "scalar": "s"}

	got := domain.Merge(domain.Clone(a), a, a)

	if diff := cmp.Diff([]any{"x", "x", "x"}, got["list"]); diff != "" {
		t.Errorf("arrays should accumulate on every merge (-want +got):\n%s", diff)
	}
	assert.Equal(t, "s", got["scalar"])
}

func TestMerge_LaterSourcesWin(t *testing.T) {
	got := domain.Merge(
		domain.Document{"k": "first", "list": []any{1}},
		domain.Document{"k": "second", "list": []any{2}},
		domain.Document{"k": "third", "list": []any{3}},
	)

	assert.Equal(t, "third", got["k"])
	assert.Equal(t, []any{1, 2, 3}, got["list"])
}

func TestMerge_MismatchedKindsAssign(t *testing.T) {
	tests := []struct {
		name   string
		target domain.Document
		source domain.Document
		want   any
	}{
		{"object over scalar", domain.Document{"k": 1}, domain.Document{"k": map[string]any{"a": 1}}, map[string]any{"a": 1}},
		{"scalar over object", domain.Document{"k": map[string]any{"a": 1}}, domain.Document{"k": "v"}, "v"},
		{"array over object", domain.Document{"k": map[string]any{"a": 1}}, domain.Document{"k": []any{1}}, []any{1}},
		{"object over missing", domain.Document{}, domain.Document{"k": map[string]any{"a": 1}}, map[string]any{"a": 1}},
		{"nil over value", domain.Document{"k": "v"}, domain.Document{"k": nil}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Merge(tt.target, tt.source)
			assert.Equal(t, tt.want, got["k"])
		})
	}
}

func TestMerge_NilTarget(t *testing.T) {
	got := domain.Merge(nil, domain.Document{"a": 1})
	assert.Equal(t, domain.Document{"a": 1}, got)
}

func TestClone_IsDeep(t *testing.T) {
	orig := domain.Document{
		"obj":  map[string]any{"list": []any{map[string]any{"k": "v"}}},
		"list": []any{1},
	}

	cp := domain.Clone(orig)
	cp["obj"].(map[string]any)["list"].([]any)[0].(map[string]any)["k"] = "changed"
	cp["list"] = append(cp["list"].([]any), 2)

	assert.Equal(t, "v", orig["obj"].(map[string]any)["list"].([]any)[0].(map[string]any)["k"])
	assert.Len(t, orig["list"], 1)
	assert.Nil(t, domain.Clone(nil))
}
