package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupPath(t *testing.T) {
	fm := map[string]any{
		"a": map[string]any{
			"b": map[any]any{
				"c": "deep",
			},
		},
		"scalar": 5,
	}

	v, ok := lookupPath(fm, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, "deep", v)

	_, ok = lookupPath(fm, "a.b.missing")
	assert.False(t, ok)

	_, ok = lookupPath(fm, "scalar.deeper")
	assert.False(t, ok)
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"string", "x", true},
		{"zero int", 0, false},
		{"int", 3, true},
		{"zero float", 0.0, false},
		{"false", false, false},
		{"true", true, true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"empty map", map[string]any{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usable(tt.v))
		})
	}
}

func TestAsPerson(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", asPerson("  Ada Lovelace "))
	assert.Equal(t, "A, B", asPerson([]any{"A", "B"}))
	assert.Equal(t, "A, B", asPerson([]string{"A", "B"}))
	assert.Empty(t, asPerson(42))
}

func TestAsKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, asKeywords("a , b ,"))
	assert.Equal(t, []string{"a", "b"}, asKeywords([]any{"a", " b "}))
	assert.Equal(t, []string{}, asKeywords(nil))
	assert.Equal(t, []string{}, asKeywords(map[string]any{"x": 1}))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-06-02T00:00:00Z", normalizeDate("2025-06-02"))
	assert.Equal(t, "2025-03-01T08:30:00Z", normalizeDate("2025-03-01T10:30:00+02:00"))
	assert.Empty(t, normalizeDate("yesterday"))
	assert.Empty(t, normalizeDate(12345))
}
