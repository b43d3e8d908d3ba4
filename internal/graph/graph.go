// Package graph implements the bundler's dependency-graph engine: a
// memoized, first-encounter BFS from an entry module that drives the
// locator, JSON transcoder, and rewriter, then hands the ordered module
// list to the emitter (spec.md §4.E).
package graph

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/jxls/luabundle/internal/bundlererr"
	"github.com/jxls/luabundle/internal/emit"
	"github.com/jxls/luabundle/internal/locator"
	"github.com/jxls/luabundle/internal/luavalue"
	"github.com/jxls/luabundle/internal/modpath"
	"github.com/jxls/luabundle/internal/rewrite"
)

// Engine owns the memo tables and the in-progress traversal state for one
// source tree. It is single-threaded and non-reentrant: Build must not be
// called concurrently with itself or with Invalidate on the same instance.
type Engine struct {
	srcDir    string
	entryKey  string
	scriptExt string

	importsMemo     map[string][]string
	transformedMemo map[string]string
	jsonMemo        map[string]string
	isDirectory     map[string]bool

	currentModule  string
	currentImports []string
	currentErrors  []string
}

// New returns a fresh engine with empty memos.
func New(srcDir, entryKey, scriptExt string) *Engine {
	return &Engine{
		srcDir:          srcDir,
		entryKey:        entryKey,
		scriptExt:       scriptExt,
		importsMemo:     make(map[string][]string),
		transformedMemo: make(map[string]string),
		jsonMemo:        make(map[string]string),
		isDirectory:     make(map[string]bool),
	}
}

// Invalidate removes key from every memo table. It does not cascade to
// keys that import it; calling it twice in a row is equivalent to calling
// it once.
func (e *Engine) Invalidate(key string) {
	delete(e.importsMemo, key)
	delete(e.transformedMemo, key)
	delete(e.jsonMemo, key)
	delete(e.isDirectory, key)
}

// Result is a completed build: the emitted bundle, its source map, and the
// emission-ordered module list (useful for diagnostics and tests).
type Result struct {
	Bundle     string
	LineIndex  []int
	ModuleKeys []string
	Order      []string
}

// Build walks the dependency graph from the entry module and emits a
// bundle. In development mode, a sibling ".dev" module (if present in the
// source directory) is appended to the emission order ahead of the entry
// invocation.
func (e *Engine) Build(development bool) (Result, error) {
	e.currentImports = nil
	e.currentErrors = nil

	order, err := e.walk(e.entryKey)
	if err != nil {
		return Result{}, err
	}

	devKey := ""
	if development {
		if _, locErr := locator.Locate(e.srcDir, ".dev", e.scriptExt); locErr == nil {
			devKey = ".dev"
			if !contains(order, devKey) {
				devOrder, err := e.walk(devKey)
				if err != nil {
					return Result{}, err
				}
				for _, k := range devOrder {
					if !contains(order, k) {
						order = append(order, k)
					}
				}
			}
		}
	}

	modules := make([]emit.Module, 0, len(order))
	for _, key := range order {
		body, isDir, isJSON := e.bodyFor(key)
		modules = append(modules, emit.Module{
			Key:         key,
			IsDirectory: isDir,
			IsJSON:      isJSON,
			Body:        body,
		})
	}

	res := emit.Emit(modules, e.entryKey, devKey)
	return Result{
		Bundle:     res.Bundle,
		LineIndex:  res.LineIndex,
		ModuleKeys: res.ModuleKeys,
		Order:      order,
	}, nil
}

func (e *Engine) bodyFor(key string) (body string, isDirectory bool, isJSON bool) {
	if lit, ok := e.jsonMemo[key]; ok {
		return lit, false, true
	}
	return e.transformedMemo[key], e.isDirectory[key], false
}

// walk performs a first-encounter BFS from seed, populating the memos as it
// goes, and returns the emission order discovered from that seed.
func (e *Engine) walk(seed string) ([]string, error) {
	order := []string{seed}
	seen := map[string]bool{seed: true}

	for i := 0; i < len(order); i++ {
		key := order[i]

		loc, err := locator.Locate(e.srcDir, key, e.scriptExt)
		if err != nil {
			return nil, err
		}

		switch loc.Kind {
		case locator.Json:
			if _, ok := e.jsonMemo[key]; ok {
				continue
			}
			if err := e.loadJSON(key, loc.Path); err != nil {
				return nil, err
			}

		default:
			imports, cached := e.importsMemo[key]
			if !cached {
				var err error
				imports, err = e.loadScript(key, loc)
				if err != nil {
					return nil, err
				}
			}
			for _, imp := range imports {
				if !seen[imp] {
					seen[imp] = true
					order = append(order, imp)
				}
			}
		}
	}

	return order, nil
}

func (e *Engine) loadJSON(key, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return bundlererr.New(bundlererr.IOFailure, bundlererr.PhaseRead, key, err)
	}

	v, err := luavalue.DecodeJSON(raw)
	if err != nil {
		return bundlererr.New(bundlererr.JsonFailure, bundlererr.PhaseJSON, key, err)
	}

	e.jsonMemo[key] = luavalue.TranscodeReturn(v)
	return nil
}

func (e *Engine) loadScript(key string, loc locator.Location) ([]string, error) {
	src, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, bundlererr.New(bundlererr.IOFailure, bundlererr.PhaseRead, key, err)
	}

	e.currentModule = key
	e.currentImports = nil
	e.currentErrors = nil

	transformed, refs, errs := rewrite.Rewrite(string(src))
	if len(errs) > 0 {
		return nil, bundlererr.New(bundlererr.RewriteFailure, bundlererr.PhaseRewrite, key, errors.New(errs[0]))
	}

	callerKey := key
	if loc.Kind == locator.Directory {
		callerKey = key + "/init"
	}

	relImports := make([]string, 0, len(refs))
	uniq := make(map[string]bool, len(refs))
	for _, ref := range refs {
		resolved := modpath.Resolve(callerKey, ref)
		if !uniq[resolved] {
			uniq[resolved] = true
			relImports = append(relImports, resolved)
		}
	}

	e.importsMemo[key] = relImports
	e.transformedMemo[key] = transformed
	e.isDirectory[key] = loc.Kind == locator.Directory

	return relImports, nil
}

func contains(list []string, key string) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}

// ChangeKey normalizes a changed filesystem path into a module key by
// stripping the configured source-directory prefix and one of the module
// suffixes, in priority order: ".json", "/init.<ext>", ".<ext>" (spec.md
// §4.H). It reports ok=false if the path matches none of them.
func ChangeKey(srcDir, scriptExt, path string) (key string, ok bool) {
	p := filepath.ToSlash(path)
	prefix := strings.TrimSuffix(filepath.ToSlash(srcDir), "/") + "/"
	rel := p
	if idx := strings.Index(p, prefix); idx >= 0 {
		rel = p[idx+len(prefix):]
	} else {
		return "", false
	}

	switch {
	case strings.HasSuffix(rel, ".json"):
		return strings.TrimSuffix(rel, ".json"), true
	case strings.HasSuffix(rel, "/init."+scriptExt):
		return strings.TrimSuffix(rel, "/init."+scriptExt), true
	case strings.HasSuffix(rel, "."+scriptExt):
		return strings.TrimSuffix(rel, "."+scriptExt), true
	default:
		return "", false
	}
}
