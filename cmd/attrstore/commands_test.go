package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrstore/internal/codec"
	"attrstore/internal/config"
)

const testRecord = `
user:
  name: ann
  age: 3
  address: unknown
count: 1
`

func newTestApp() (*app, *bytes.Buffer) {
	var buf bytes.Buffer

	return &app{cfg: config.Default(), out: &buf}, &buf
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	return file
}

func TestGet(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, out := newTestApp()

	require.NoError(t, a.get(file, "user.name", false))
	assert.Equal(t, "\"ann\"\n", out.String())
}

func TestGet_Exists(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, out := newTestApp()

	require.NoError(t, a.get(file, "user.missing", true))
	require.NoError(t, a.get(file, "user.age", true))
	assert.Equal(t, "false\ntrue\n", out.String())
}

func TestGet_MissingSuggests(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, out := newTestApp()

	err := a.get(file, "user.nmae", false)
	require.ErrorIs(t, err, errNotFound)
	assert.Contains(t, out.String(), "did you mean: [user.name")
}

func TestGet_InvalidPath(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, _ := newTestApp()

	assert.Error(t, a.get(file, "user..name", false))
}

func TestFlatten(t *testing.T) {
	file := writeFile(t, "rec.json", `{"b":{"c":[1]},"a":"x"}`)
	a, out := newTestApp()

	require.NoError(t, a.flatten(file))
	assert.Equal(t, "a = \"x\"\nb.c = [1]\n", out.String())
}

func TestFlatten_CustomSeparator(t *testing.T) {
	file := writeFile(t, "rec.json", `{"b":{"c":1}}`)
	a, out := newTestApp()
	a.cfg.Separator = "/"

	require.NoError(t, a.flatten(file))
	assert.Equal(t, "b/c = 1\n", out.String())
}

func TestApply(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	script := writeFile(t, "script.yaml", `
steps:
  - set:
      user.name: bob
  - set:
      user.address.city: Oslo
  - unset: [user.agee]
  - set: {user.name: bob}
  - set: {draft: true}
    silent: true
`)
	outFile := filepath.Join(t.TempDir(), "out.json")
	a, out := newTestApp()

	require.NoError(t, a.apply(file, script, outFile, ""))

	text := out.String()
	assert.Contains(t, text, "step 1:\n  user.name = \"bob\"\n  user.* = \"bob\"\n")
	assert.Contains(t, text, "step 2:\n  user.address.city = \"Oslo\"\n  user.address.* = \"Oslo\"\n  user.* = \"Oslo\"\n")
	assert.Contains(t, text, "step 5: silent\n")
	assert.Contains(t, text, "changed:\n  draft = true\n  user.address.city = \"Oslo\"\n  user.name = \"bob\"\n")
	assert.Contains(t, text, "warning: [step 2] user.address.city: [clobber]")
	assert.Contains(t, text, "warning: [step 3] user.agee: [missing-path] unset of missing path (did you mean user.age")
	assert.Contains(t, text, "info: [step 3]: [no-change]")
	assert.Contains(t, text, "info: [step 4]: [no-change]")

	rec, err := codec.LoadRecord(outFile, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":    "bob",
		"age":     float64(3),
		"address": map[string]any{"city": "Oslo"},
	}, rec["user"])
}

func TestApply_InvalidPathIsError(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	script := writeFile(t, "script.yaml", "steps:\n  - set: {\"a..b\": 1}\n  - set: {count: 2}\n")
	a, out := newTestApp()

	err := a.apply(file, script, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[step 1] a..b: [invalid-path]")
	assert.Contains(t, out.String(), "step 2:\n  count = 2\n")
}

func TestApply_Watch(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	script := writeFile(t, "script.yaml", "steps:\n  - set: {user.name: bob, count: 2}\n  - unset: [user]\n")
	a, out := newTestApp()

	require.NoError(t, a.apply(file, script, "", "user.*"))

	text := out.String()
	assert.Contains(t, text, "step 1:\n  user.name = \"bob\"\n  user.* = \"bob\"\n  count = 2\n  notify user.*: user.* = \"bob\"\n")
	assert.Equal(t, 3, strings.Count(text, "notify user.*: user.* = null"))
	assert.NotContains(t, text, "notify user.*: count")
}

func TestApply_FormatFallback(t *testing.T) {
	file := writeFile(t, "record", `{"count": 1}`)
	script := writeFile(t, "script", `{"steps": [{"set": {"count": 2}}]}`)
	outFile := filepath.Join(t.TempDir(), "out")
	a, out := newTestApp()
	a.cfg.Format = "json"

	require.NoError(t, a.apply(file, script, outFile, ""))
	assert.Contains(t, out.String(), "changed:\n  count = 2\n")

	rec, err := codec.LoadRecord(outFile, codec.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, float64(2), rec["count"])

	a.cfg.Format = "yaml"
	_, err = a.open(file)
	require.NoError(t, err)

	a.cfg.Format = ""
	require.NoError(t, a.flatten(file))
}

func TestDiff(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	other := writeFile(t, "other.yaml", "user:\n  name: ann\n  age: 4\nextra: true\n")
	a, out := newTestApp()

	require.NoError(t, a.diff(file, other))
	assert.Equal(t, "extra = true\nuser.age = 4\n", out.String())
}

func TestDiff_NoDifferences(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, out := newTestApp()

	require.NoError(t, a.diff(file, file))
	assert.Equal(t, "no differences\n", out.String())
}

func TestDebugDump(t *testing.T) {
	file := writeFile(t, "rec.yaml", testRecord)
	a, out := newTestApp()
	a.debug = true

	require.NoError(t, a.get(file, "count", false))
	assert.True(t, strings.Contains(out.String(), "map[string]interface {}"))
}

func TestOpen_MissingFile(t *testing.T) {
	a, _ := newTestApp()

	_, err := a.open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
