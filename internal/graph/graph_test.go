package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, srcDir, relPath, content string) {
	t.Helper()
	full := filepath.Join(srcDir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestBuildScenarioS1StringLiteralRequire(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.lua", `local util = require("util")
return util
`)
	writeModule(t, dir, "util.lua", `return {}
`)

	eng := New(dir, "main", "lua")
	res, err := eng.Build(false)
	require.NoError(t, err)

	require.Equal(t, []string{"main", "util"}, res.Order)
	require.Len(t, res.LineIndex, 3)
	require.Equal(t, "[BUNDLER]", res.ModuleKeys[0])
	require.Contains(t, res.Bundle, `["main"](`)
}

func TestBuildScenarioS4DirectoryModule(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "ui/init.lua", `local button = require("./button")
return button
`)
	writeModule(t, dir, "ui/button.lua", `return {}
`)

	eng := New(dir, "ui", "lua")
	res, err := eng.Build(false)
	require.NoError(t, err)

	require.Contains(t, res.Order, "ui/button")
	require.Contains(t, res.Bundle, `__luabundle_dirs["ui"]=true`)
}

func TestBuildScenarioS5CyclicReference(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.lua", `local b = require("b")
return b
`)
	writeModule(t, dir, "b.lua", `local a = require("a")
return a
`)

	eng := New(dir, "a", "lua")
	res, err := eng.Build(false)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, res.Order)
	require.Equal(t, 1, countOccurrences(res.Bundle, `__luabundle_modules["a"]=function`))
	require.Equal(t, 1, countOccurrences(res.Bundle, `__luabundle_modules["b"]=function`))
}

func TestBuildIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.lua", `local util = require("util")
return util
`)
	writeModule(t, dir, "util.lua", `return {}
`)

	eng := New(dir, "main", "lua")
	first, err := eng.Build(false)
	require.NoError(t, err)
	second, err := eng.Build(false)
	require.NoError(t, err)

	require.Equal(t, first.Bundle, second.Bundle)
	require.Equal(t, first.LineIndex, second.LineIndex)
}

func TestBuildMissingModuleFails(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.lua", `local util = require("missing")
return util
`)

	eng := New(dir, "main", "lua")
	_, err := eng.Build(false)
	require.Error(t, err)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.lua", `return 1
`)
	eng := New(dir, "main", "lua")
	_, err := eng.Build(false)
	require.NoError(t, err)

	eng.Invalidate("main")
	_, stillCached := eng.importsMemo["main"]
	require.False(t, stillCached)

	eng.Invalidate("main")
	_, stillCachedAgain := eng.importsMemo["main"]
	require.False(t, stillCachedAgain)
}

func TestChangeKeyStripsConfiguredSuffixes(t *testing.T) {
	key, ok := ChangeKey("src", "lua", "/project/src/ui/button.lua")
	require.True(t, ok)
	require.Equal(t, "ui/button", key)

	key, ok = ChangeKey("src", "lua", "/project/src/ui/init.lua")
	require.True(t, ok)
	require.Equal(t, "ui", key)

	key, ok = ChangeKey("src", "lua", "/project/src/data/items.json")
	require.True(t, ok)
	require.Equal(t, "data/items", key)

	_, ok = ChangeKey("src", "lua", "/project/other/readme.md")
	require.False(t, ok)
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}
