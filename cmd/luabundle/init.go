package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jxls/luabundle/internal/config"
)

// runInit scaffolds a new project: the config file, the source and output
// directories, and a placeholder entry module — restoring the original
// `config.rs` init flow (spec.md §3 of the expanded spec).
func runInit(log *logrus.Entry) int {
	cfg := config.Config{
		EntryModule: opts.Init.EntryModule,
		SrcDir:      opts.Init.SrcDir,
		OutDir:      opts.Init.OutDir,
		ScriptExt:   opts.Init.ScriptExt,
	}

	if err := os.MkdirAll(cfg.SrcDir, 0o755); err != nil {
		log.WithError(err).Error("init: creating source directory")
		return 1
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.WithError(err).Error("init: creating output directory")
		return 1
	}

	entryPath := filepath.Join(cfg.SrcDir, cfg.EntryModule+"."+cfg.ScriptExt)
	if _, err := os.Stat(entryPath); os.IsNotExist(err) {
		if err := os.WriteFile(entryPath, []byte("print(\"Hello, world!\")\n"), 0o644); err != nil {
			log.WithError(err).Error("init: writing entry module")
			return 1
		}
	}

	if err := config.Write(config.FileName, cfg); err != nil {
		log.WithError(err).Error("init: writing config")
		return 1
	}

	log.WithField("config", config.FileName).Info("init: project scaffolded")
	return 0
}
