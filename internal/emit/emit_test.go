package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitBasicTwoModuleBundle(t *testing.T) {
	modules := []Module{
		{Key: "util", Body: "return {}\n"},
		{Key: "main", Body: "local util = " + requireName + "(\"util\")\nreturn util\n"},
	}
	res := Emit(modules, "main", "")

	require.Len(t, res.LineIndex, 3)
	require.Equal(t, []string{"[BUNDLER]", "util", "main"}, res.ModuleKeys)
	require.Contains(t, res.Bundle, fileRegistry+"[\"main\"]("+requireName+")\n")
	require.True(t, strings.HasSuffix(res.Bundle, fileRegistry+"[\"main\"]("+requireName+")\n"))
}

func TestEmitJSONModuleBody(t *testing.T) {
	modules := []Module{
		{Key: "data/items", IsJSON: true, Body: `return {["a"]=1,["b"]={true,nil,},}`},
	}
	res := Emit(modules, "data/items", "")
	require.Contains(t, res.Bundle, `return {["a"]=1,["b"]={true,nil,},}`)
}

func TestEmitDirectoryMarkerPrecedesBlock(t *testing.T) {
	modules := []Module{
		{Key: "ui", IsDirectory: true, Body: "return {}\n"},
	}
	res := Emit(modules, "ui", "")

	markerIdx := strings.Index(res.Bundle, dirRegistry+"[\"ui\"]=true")
	blockIdx := strings.Index(res.Bundle, fileRegistry+"[\"ui\"]=function")
	require.True(t, markerIdx >= 0 && blockIdx >= 0 && markerIdx < blockIdx)
}

func TestEmitLineIndexIsNonDecreasing(t *testing.T) {
	modules := []Module{
		{Key: "a", Body: "local x = 1\nlocal y = 2\nreturn x + y\n"},
		{Key: "b", Body: "return 1\n"},
	}
	res := Emit(modules, "a", "")
	for i := 1; i < len(res.LineIndex); i++ {
		require.GreaterOrEqual(t, res.LineIndex[i], res.LineIndex[i-1])
	}
}

func TestEmitDevTailPrecedesEntryInvocation(t *testing.T) {
	modules := []Module{
		{Key: "main", Body: "return {}\n"},
	}
	res := Emit(modules, "main", ".dev")

	devIdx := strings.Index(res.Bundle, fileRegistry+"[\".dev\"]("+requireName+")")
	entryIdx := strings.LastIndex(res.Bundle, fileRegistry+"[\"main\"]("+requireName+")")
	require.True(t, devIdx >= 0 && entryIdx >= 0 && devIdx < entryIdx)
}
