package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	want := Config{EntryModule: "main", SrcDir: "src", OutDir: "dist", ScriptExt: "lua"}
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadDefaultsScriptExt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Write(path, Config{EntryModule: "main", SrcDir: "src", OutDir: "dist"}))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultScriptExt, got.ScriptExt)
}

func TestLoadMissingFileReportsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
}
