package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrstore/internal/path"
)

func newAccessor() Accessor {
	return New(path.DefaultCodec())
}

func TestSetThenGet_Scenario(t *testing.T) {
	a := newAccessor()
	rec := path.Record{}

	require.NoError(t, a.Set(rec, "a.b.c", 5))
	assert.Equal(t, path.Record{"a": map[string]any{"b": map[string]any{"c": 5}}}, rec)

	v, ok, err := a.Get(rec, "a.b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	exists, err := a.Exists(rec, "a.b.x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGet_MissingDegradesToAbsent(t *testing.T) {
	a := newAccessor()
	rec := path.Record{
		"leaf":  5,
		"null":  nil,
		"inner": map[string]any{"k": "v"},
	}

	tests := []struct {
		path    string
		value   any
		present bool
	}{
		{path: "inner.k", value: "v", present: true},
		{path: "inner", value: map[string]any{"k": "v"}, present: true},
		{path: "null", value: nil, present: true},
		{path: "missing", present: false},
		{path: "missing.deep.path", present: false},
		{path: "null.child", present: false},
		{path: "leaf.child", present: false},
		{path: "inner.k.deeper", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok, err := a.Get(rec, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.value, v)

			exists, err := a.Exists(rec, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.present, exists)
		})
	}
}

func TestGet_NilRecord(t *testing.T) {
	v, ok, err := newAccessor().Get(nil, "a.b")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestInvalidPaths(t *testing.T) {
	a := newAccessor()
	rec := path.Record{}

	_, _, err := a.Get(rec, "")
	assert.ErrorIs(t, err, path.ErrInvalidPath)

	_, err = a.Exists(rec, "a..b")
	assert.ErrorIs(t, err, path.ErrInvalidPath)

	assert.ErrorIs(t, a.Set(rec, ".a", 1), path.ErrInvalidPath)
	assert.ErrorIs(t, a.Unset(rec, "a."), path.ErrInvalidPath)
	assert.Empty(t, rec)
}

func TestSet_ClobbersNonMapIntermediate(t *testing.T) {
	a := newAccessor()
	rec := path.Record{"user": "ann", "n": nil}

	require.NoError(t, a.Set(rec, "user.name", "ann"))
	require.NoError(t, a.Set(rec, "n.x", 1))

	assert.Equal(t, path.Record{
		"user": map[string]any{"name": "ann"},
		"n":    map[string]any{"x": 1},
	}, rec)
}

func TestSet_TypedNilMapIntermediate(t *testing.T) {
	a := newAccessor()
	rec := path.Record{"m": map[string]any(nil)}

	require.NoError(t, a.Set(rec, "m.k", true))
	assert.Equal(t, path.Record{"m": map[string]any{"k": true}}, rec)
}

func TestSet_NilRecordIsNoop(t *testing.T) {
	assert.NoError(t, newAccessor().Set(nil, "a.b", 1))
}

func TestSetGetConsistency(t *testing.T) {
	a := newAccessor()
	values := []any{0, "x", false, nil, []any{1, 2}, map[string]any{"k": 1}, 3.5}
	paths := []string{"a", "a.b", "x.y.z", "a.b.c.d"}

	for _, p := range paths {
		for _, v := range values {
			rec := path.Record{"a": map[string]any{"b": 1}}
			require.NoError(t, a.Set(rec, p, v))

			got, ok, err := a.Get(rec, p)
			require.NoError(t, err)
			assert.True(t, ok, p)
			assert.Equal(t, v, got, p)
		}
	}
}

func TestUnset(t *testing.T) {
	a := newAccessor()
	rec := path.Record{"user": map[string]any{"name": "ann", "age": 3}}

	require.NoError(t, a.Unset(rec, "user.name"))
	assert.Equal(t, path.Record{"user": map[string]any{"age": 3}}, rec)

	require.NoError(t, a.Unset(rec, "ghost.key"))
	assert.Equal(t, map[string]any{}, rec["ghost"])
}

func TestFlattenGetInvariant(t *testing.T) {
	a := newAccessor()
	rec := path.Record{
		"a": map[string]any{"b": map[string]any{"c": 1}, "d": []any{1}},
		"e": "f",
		"g": nil,
	}

	for p, want := range a.Codec().Flatten(rec) {
		got, ok, err := a.Get(rec, p)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got, p)
	}
}

func TestCustomSeparator(t *testing.T) {
	codec, err := path.NewCodec("/")
	require.NoError(t, err)

	a := New(codec)
	rec := path.Record{}

	require.NoError(t, a.Set(rec, "a/b.c", 1))
	assert.Equal(t, path.Record{"a": map[string]any{"b.c": 1}}, rec)

	v, ok, err := a.Get(rec, "a/b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
