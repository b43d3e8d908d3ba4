package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteStringLiteralRequireIsRecordedAndUntouched(t *testing.T) {
	src := `local util = require("util")
return util
`
	out, imports, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Equal(t, []string{"util"}, imports)
	require.Contains(t, out, `require("util")`)
}

func TestRewriteScriptParentChain(t *testing.T) {
	src := `local helper = require(script.Parent.lib.helper)
return helper
`
	out, imports, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Equal(t, []string{"./../lib/helper"}, imports)
	require.Contains(t, out, `_require("./../lib/helper")`)
}

func TestRewriteNoArgumentRequireIsAnError(t *testing.T) {
	src := `local x = require()
`
	_, _, errs := Rewrite(src)
	require.Len(t, errs, 1)
}

func TestRewriteMethodColonIsNotStrippedAsType(t *testing.T) {
	src := `obj:method(1, 2)
`
	out, _, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Equal(t, src, out)
}

func TestRewritePreservesLineCountWithCommentsAndTypes(t *testing.T) {
	src := `-- a comment
local function add(a: number, b: number): number
	return a + b
end
type Point = { x: number, y: number }
export type Vector = Point
local p: Point = { x = 1, y = 2 }
`
	out, _, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
	require.NotContains(t, out, "a comment")
	require.NotContains(t, out, "number")
	require.NotContains(t, out, "Point")
}

func TestRewriteIgnoresFieldAccessNamedRequire(t *testing.T) {
	src := `local x = mymodule.require("ignored")
`
	out, imports, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Empty(t, imports)
	require.Equal(t, src, out)
}

func TestRewriteDoesNotConfuseTypeCallWithDeclaration(t *testing.T) {
	src := `local t = type(5)
local type = 5
return t, type
`
	out, _, errs := Rewrite(src)
	require.Empty(t, errs)
	require.Equal(t, src, out)
}
