// Package watch wires filesystem change notifications into the graph
// engine's change-intake contract (spec.md §4.H), using fsnotify as the
// underlying notification source.
package watch

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jxls/luabundle/internal/graph"
)

// Watcher observes a source directory and reports the module keys that
// need invalidating as files change underneath it. Debouncing is left to
// the caller (spec.md §4.H); duplicate keys within a burst are tolerated,
// not collapsed, by this package.
type Watcher struct {
	srcDir    string
	scriptExt string
	fsw       *fsnotify.Watcher
	log       *logrus.Entry
}

// New starts watching srcDir recursively for writes, creates, and removes.
func New(srcDir, scriptExt string, log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch: starting fsnotify")
	}

	w := &Watcher{srcDir: srcDir, scriptExt: scriptExt, fsw: fsw, log: log}
	if err := w.addRecursive(srcDir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run drains filesystem events until ctx is canceled, invoking onChange
// with each module key it can map via graph.ChangeKey. Events for paths
// that don't resolve to a module key (spec.md §4.H: "paths that match none
// are ignored") are dropped.
func (w *Watcher) Run(ctx context.Context, onChange func(key string)) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if key, ok := graph.ChangeKey(w.srcDir, w.scriptExt, ev.Name); ok {
				onChange(key)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("filesystem watch error")
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return walkDirs(root, func(dir string) error {
		if err := w.fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "watch: adding %q", dir)
		}
		return nil
	})
}
