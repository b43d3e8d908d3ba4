// Package config loads the project configuration consumed (but not
// defined) by the bundler engine (spec.md §6): source directory, output
// directory, and entry module key, plus the project-wide script extension.
// It stays stdlib-only: encoding/json is
// already the exact right tool for a flat file of string fields with no
// sections, environments, or interpolation to justify a heavier config
// library (see DESIGN.md).
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is the project file's decoded contents.
type Config struct {
	EntryModule string `json:"entry_module"`
	SrcDir      string `json:"src_dir"`
	OutDir      string `json:"out_dir"`
	ScriptExt   string `json:"script_ext"`
}

// DefaultScriptExt is used when a project file omits script_ext, matching
// the original's assumption of a single project-wide script extension.
const DefaultScriptExt = "lua"

// FileName is the conventional project config file name.
const FileName = "project.luabundle.json"

// Load reads and decodes path, defaulting ScriptExt if the file omits it.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "config: %q not found; run `luabundle init` first", path)
		}
		return Config{}, errors.Wrapf(err, "config: reading %q", path)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parsing %q", path)
	}

	if cfg.ScriptExt == "" {
		cfg.ScriptExt = DefaultScriptExt
	}
	return cfg, nil
}

// Write serializes cfg to path with indentation, for `luabundle init`.
func Write(path string, cfg Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "config: encoding")
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "config: writing %q", path)
	}
	return nil
}
