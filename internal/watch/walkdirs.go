package watch

import (
	"io/fs"
	"path/filepath"
)

// walkDirs calls fn for root and every directory beneath it. fsnotify
// watches are not recursive on their own, so the initial registration has
// to enumerate the tree itself; new subdirectories created afterward are
// picked up lazily the next time the watcher is recreated (dev-server
// restarts are cheap and the spec places no requirement on live
// subdirectory discovery).
func walkDirs(root string, fn func(dir string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fn(path)
	})
}
