// Package locator implements the module locator of spec.md §4.B: mapping a
// module key to one of {Script, Directory, Json} on disk, probing in that
// order so a script file shadows a same-named directory, and JSON is the
// fallback for non-script data modules.
package locator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jxls/luabundle/internal/bundlererr"
)

// Kind is the on-disk form a module was found in.
type Kind int

const (
	Script Kind = iota
	Directory
	Json
)

func (k Kind) String() string {
	switch k {
	case Script:
		return "script"
	case Directory:
		return "directory"
	case Json:
		return "json"
	default:
		return "unknown"
	}
}

// Location is the resolved on-disk path and kind for a module key.
type Location struct {
	Path string
	Kind Kind
}

// Locate probes srcDir for key in the order: <key>.<scriptExt>,
// <key>/init.<scriptExt>, <key>.json. The first existing path wins.
func Locate(srcDir, key, scriptExt string) (Location, error) {
	scriptPath := filepath.Join(srcDir, key+"."+scriptExt)
	if fileExists(scriptPath) {
		return Location{Path: scriptPath, Kind: Script}, nil
	}

	dirPath := filepath.Join(srcDir, key, "init."+scriptExt)
	if fileExists(dirPath) {
		return Location{Path: dirPath, Kind: Directory}, nil
	}

	jsonPath := filepath.Join(srcDir, key+".json")
	if fileExists(jsonPath) {
		return Location{Path: jsonPath, Kind: Json}, nil
	}

	return Location{}, bundlererr.NotFound(key, fmt.Errorf("module %q not found under %q", key, srcDir))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
