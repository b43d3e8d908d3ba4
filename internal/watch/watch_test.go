package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsModuleKeyOnWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte("return 1\n"), 0o644))

	w, err := New(dir, "lua", logrus.NewEntry(logrus.New()))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 8)
	go w.Run(ctx, func(key string) { changes <- key })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte("return 2\n"), 0o644))

	select {
	case key := <-changes:
		require.Equal(t, "main", key)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
