// Package emit produces bundle text and a parallel source map from an
// ordered list of resolved modules (spec.md §4.F). It owns the runtime
// header asset and the identifiers (file registry, directory registry,
// require function) that the header and the emitted registration blocks
// must agree on. The two registries are globals; the require function is a
// local of the header, in scope for the invocations emitted after it.
package emit

import "strings"

// Identifier names shared between the runtime header and the emitted
// registration/invocation blocks. Both must be changed together.
const (
	fileRegistry = "_G.__luabundle_modules"
	dirRegistry  = "_G.__luabundle_dirs"
	requireName  = "_require"
)

// RuntimeHeader is the fixed preamble that defines the module registry, the
// directory-flag table, and the require function the emitted modules call
// into. It is emitted verbatim and is never parsed by the bundler itself.
const RuntimeHeader = `-- luabundle runtime
` + fileRegistry + ` = ` + fileRegistry + ` or {}
` + dirRegistry + ` = ` + dirRegistry + ` or {}
local __luabundle_cache = {}
local function ` + requireName + `(key)
	local cached = __luabundle_cache[key]
	if cached ~= nil then
		return cached
	end
	local loader = ` + fileRegistry + `[key]
	if loader == nil then
		error("luabundle: module not found: " .. tostring(key))
	end
	local result = loader(` + requireName + `)
	if result == nil then
		result = true
	end
	__luabundle_cache[key] = result
	return result
end
`

// Module is one resolved module ready for emission, in the final emission
// order.
type Module struct {
	Key         string
	IsDirectory bool
	IsJSON      bool
	Body        string // transformed source (Script/Directory) or "return <literal>" (JSON)
}

// Result is the emitter's output: the bundle text and its parallel source
// map.
type Result struct {
	Bundle     string
	LineIndex  []int
	ModuleKeys []string
}

// Emit lays out the runtime header, one registration block per module in
// order, an optional dev-tail invocation, and the entry invocation,
// tracking a source map alongside (spec.md §4.F).
func Emit(modules []Module, entryKey string, devModuleKey string) Result {
	var b strings.Builder
	b.WriteString(RuntimeHeader)

	lineCount := strings.Count(RuntimeHeader, "\n") + 1
	lineIndex := []int{lineCount}
	moduleKeys := []string{"[BUNDLER]"}

	emitLine := func(s string) {
		b.WriteString(s)
		lineCount += strings.Count(s, "\n")
	}

	for _, m := range modules {
		if m.IsDirectory {
			emitLine(dirRegistry + "[\"" + m.Key + "\"]=true\n")
		}
		emitLine(fileRegistry + "[\"" + m.Key + "\"]=function(" + requireName + ")\n")
		emitLine(m.Body)
		if !strings.HasSuffix(m.Body, "\n") {
			emitLine("\n")
		}
		emitLine("end\n")

		lineIndex = append(lineIndex, lineCount)
		moduleKeys = append(moduleKeys, m.Key)
	}

	if devModuleKey != "" {
		b.WriteString(fileRegistry + "[\"" + devModuleKey + "\"](" + requireName + ")\n")
	}

	b.WriteString(fileRegistry + "[\"" + entryKey + "\"](" + requireName + ")\n")

	return Result{
		Bundle:     b.String(),
		LineIndex:  lineIndex,
		ModuleKeys: moduleKeys,
	}
}
