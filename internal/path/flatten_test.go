package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	rec := Record{
		"id": 1,
		"user": map[string]any{
			"name": "ann",
			"address": map[string]any{
				"city": "Oslo",
			},
			"tags": []any{"a", "b"},
		},
		"meta":  map[string]any{},
		"empty": nil,
	}

	flat := DefaultCodec().Flatten(rec)

	assert.Equal(t, map[string]any{
		"id":                1,
		"user.name":         "ann",
		"user.address.city": "Oslo",
		"user.tags":         []any{"a", "b"},
		"meta":              map[string]any{},
		"empty":             nil,
	}, flat)
}

func TestFlatten_CustomSeparator(t *testing.T) {
	codec := mustCodec(t, "/")

	flat := codec.Flatten(Record{"a": map[string]any{"b": map[string]any{"c": 5}}})

	assert.Equal(t, map[string]any{"a/b/c": 5}, flat)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, DefaultCodec().Flatten(nil))
	assert.Empty(t, DefaultCodec().Flatten(Record{}))
}

func TestClone_IsDeep(t *testing.T) {
	original := Record{
		"user": map[string]any{"name": "ann"},
		"tags": []any{"x", map[string]any{"k": 1}},
	}

	cp := Clone(original)
	cp["user"].(map[string]any)["name"] = "bob"
	cp["tags"].([]any)[1].(map[string]any)["k"] = 2

	assert.Equal(t, "ann", original["user"].(map[string]any)["name"])
	assert.Equal(t, 1, original["tags"].([]any)[1].(map[string]any)["k"])
	assert.Nil(t, Clone(nil))
}

func TestFlatten_EmptyTopLevelKeyKeepsSegment(t *testing.T) {
	flat := DefaultCodec().Flatten(Record{"": map[string]any{"x": 1}})

	assert.Equal(t, map[string]any{".x": 1}, flat)

	_, err := DefaultCodec().Split(".x")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
