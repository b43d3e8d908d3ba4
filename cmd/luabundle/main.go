package main

import (
	"os"

	flags "github.com/thought-machine/go-flags"

	"github.com/jxls/luabundle/internal/consolelog"
)

var opts = struct {
	Usage string

	Init struct {
		EntryModule string `long:"entry" default:"main" description:"Entry module key"`
		SrcDir      string `long:"src-dir" default:"src" description:"Source directory to scaffold"`
		OutDir      string `long:"out-dir" default:"dist" description:"Output directory to scaffold"`
		ScriptExt   string `long:"script-ext" default:"lua" description:"Script file extension"`
	} `command:"init" description:"Create a project.luabundle.json and scaffold src/out directories"`

	Build struct {
		Config string `short:"c" long:"config" default:"project.luabundle.json" description:"Path to the project config file"`
	} `command:"build" description:"Emit a release bundle and exit"`

	Serve struct {
		Config string `short:"c" long:"config" default:"project.luabundle.json" description:"Path to the project config file"`
		Port   int    `short:"p" long:"port" default:"8081" description:"Push-server HTTP port"`
	} `command:"serve" description:"Run the watcher, push server, and an interactive rebuild console"`
}{
	Usage: `
luabundle packages a tree of script, directory, and JSON modules into a
single runtime-loadable bundle with a source map.

It provides these main operations:
  - init:  create project.luabundle.json and scaffold src/out directories
  - build: emit a release bundle and exit
  - serve: run the watcher, push server, and an interactive rebuild console
`,
}

func main() {
	log := consolelog.New()

	p := flags.NewParser(&opts, flags.Default)
	_, err := p.Parse()
	if err != nil {
		os.Exit(1)
	}
	if p.Active == nil {
		p.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	var code int
	switch p.Active.Name {
	case "init":
		code = runInit(log)
	case "build":
		code = runBuild(log)
	case "serve":
		code = runServe(log)
	}
	os.Exit(code)
}
