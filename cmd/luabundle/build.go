package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jxls/luabundle/internal/bundlererr"
	"github.com/jxls/luabundle/internal/config"
	"github.com/jxls/luabundle/internal/consolelog"
	"github.com/jxls/luabundle/internal/graph"
)

// runBuild loads the project config, runs a single release build, and
// writes the bundle and source map to disk. Exit codes follow spec.md §6:
// 0 on success, non-zero on missing config or bundle failure.
func runBuild(log *logrus.Entry) int {
	cfg, err := config.Load(opts.Build.Config)
	if err != nil {
		log.WithError(err).Error("build: loading config")
		return 1
	}

	eng := graph.New(cfg.SrcDir, cfg.EntryModule, cfg.ScriptExt)
	res, err := eng.Build(false)
	if err != nil {
		return reportBuildFailure(log, err)
	}

	if err := writeBundle(cfg, "build", res); err != nil {
		log.WithError(err).Error("build: writing bundle")
		return 1
	}

	log.WithField("modules", len(res.Order)).Info("build: bundle written")
	return 0
}

// reportBuildFailure prints the single formatted failure line spec.md §7
// requires: phase, module key when known, and the underlying message.
func reportBuildFailure(log *logrus.Entry, err error) int {
	if be, ok := bundlererr.AsBuildError(err); ok {
		consolelog.ForPhase(consolelog.ForModule(log, be.Module), string(be.Phase)).
			WithField("kind", string(be.Kind)).
			Error(be.Cause)
		return 1
	}
	log.Error(err)
	return 1
}

func writeBundle(cfg config.Config, variant string, res graph.Result) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	base := "bundle." + variant + "." + cfg.ScriptExt
	bundlePath := filepath.Join(cfg.OutDir, base)
	if err := os.WriteFile(bundlePath, []byte(res.Bundle), 0o644); err != nil {
		return err
	}

	mapPath := filepath.Join(cfg.OutDir, base+".map")
	return os.WriteFile(mapPath, []byte(encodeSourceMap(res)), 0o644)
}
