package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocateScriptTakesPrecedenceOverDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ui/button.lua"), "return {}")
	writeFile(t, filepath.Join(dir, "ui/button/init.lua"), "return {}")

	loc, err := Locate(dir, "ui/button", "lua")
	require.NoError(t, err)
	require.Equal(t, Script, loc.Kind)
}

func TestLocateDirectoryBeforeJson(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ui/init.lua"), "return {}")
	writeFile(t, filepath.Join(dir, "ui.json"), "{}")

	loc, err := Locate(dir, "ui", "lua")
	require.NoError(t, err)
	require.Equal(t, Directory, loc.Kind)
}

func TestLocateJsonFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data/items.json"), "{}")

	loc, err := Locate(dir, "data/items", "lua")
	require.NoError(t, err)
	require.Equal(t, Json, loc.Kind)
}

func TestLocateMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Locate(dir, "nope", "lua")
	require.Error(t, err)
}
