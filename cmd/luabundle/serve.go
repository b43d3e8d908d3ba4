package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jxls/luabundle/internal/config"
	"github.com/jxls/luabundle/internal/graph"
	"github.com/jxls/luabundle/internal/pushserver"
	"github.com/jxls/luabundle/internal/sourcemap"
	"github.com/jxls/luabundle/internal/watch"
)

// runServe runs the file watcher, the push server, and an interactive
// console, rebuilding the dev bundle on every change and pushing it to
// connected clients. The console accepts three commands: "e" pushes the
// last-built bundle again, "exit" quits, anything else is logged as
// invalid — restoring the original tool's REPL.
func runServe(log *logrus.Entry) int {
	cfg, err := config.Load(opts.Serve.Config)
	if err != nil {
		log.WithError(err).Error("serve: loading config")
		return 1
	}

	eng := graph.New(cfg.SrcDir, cfg.EntryModule, cfg.ScriptExt)

	var mu sync.Mutex
	var lastGood graph.Result
	haveGood := false

	var srv *pushserver.Server
	srv = pushserver.New(log, func(name, content string, locs []sourcemap.Location) {
		entry := log.WithField("client", name)
		for _, loc := range locs {
			entry = entry.WithField("at", fmt.Sprintf("%s:%d", loc.ModuleKey, loc.Line))
		}
		entry.Error(content)
	})

	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()

		res, err := eng.Build(true)
		if err != nil {
			reportBuildFailure(log, err)
			return
		}

		lastGood = res
		haveGood = true
		srv.SetSourceMap(sourcemap.Map{LineIndex: res.LineIndex, ModuleKeys: res.ModuleKeys})
		srv.Broadcast(res.Bundle)

		if writeErr := writeBundle(cfg, "dev", res); writeErr != nil {
			log.WithError(writeErr).Warn("serve: writing dev bundle to disk")
		}
		log.WithField("modules", len(res.Order)).Info("serve: rebuilt")
	}

	rebuild()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := watch.New(cfg.SrcDir, cfg.ScriptExt, log)
	if err != nil {
		log.WithError(err).Error("serve: starting watcher")
		return 1
	}
	defer w.Close()

	var g errgroup.Group
	g.Go(func() error {
		w.Run(ctx, func(key string) {
			eng.Invalidate(key)
			rebuild()
		})
		return nil
	})

	mux := http.NewServeMux()
	mux.Handle("/", srv)
	httpSrv := &http.Server{Addr: fmt.Sprintf(":%d", opts.Serve.Port), Handler: mux}
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	log.WithField("port", opts.Serve.Port).Info("serve: push server listening")
	runConsole(log, func() {
		mu.Lock()
		res, ok := lastGood, haveGood
		mu.Unlock()
		if ok {
			srv.Broadcast(res.Bundle)
		}
	})

	cancel()
	httpSrv.Close()
	g.Wait()
	return 0
}

// runConsole reads stdin lines until "exit", dispatching "e" to push and
// logging anything else as invalid.
func runConsole(log *logrus.Entry, push func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		switch cmd {
		case "e":
			push()
		case "exit":
			return
		default:
			log.WithField("command", cmd).Warn("serve: invalid command")
		}
	}
}
