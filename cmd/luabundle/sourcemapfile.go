package main

import (
	"encoding/json"

	"github.com/jxls/luabundle/internal/graph"
)

// sourceMapFile is the on-disk JSON shape for a bundle's source map
// (spec.md §6): {"files": [module_keys...], "sources": [line_index...]}.
type sourceMapFile struct {
	Files   []string `json:"files"`
	Sources []int    `json:"sources"`
}

func encodeSourceMap(res graph.Result) string {
	raw, err := json.Marshal(sourceMapFile{Files: res.ModuleKeys, Sources: res.LineIndex})
	if err != nil {
		// ModuleKeys/LineIndex are always JSON-safe; a marshal failure here
		// would mean a programming error, not a runtime condition to recover.
		panic(err)
	}
	return string(raw)
}
