package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/snipsync/snipsync/config"
	"github.com/snipsync/snipsync/docsync"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStartStop(t *testing.T) {
	w, err := New([]string{t.TempDir()}, func() error { return nil }, nil)
	require.NoError(t, err)

	w.Start(context.Background())
	w.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	w, err := New([]string{t.TempDir()}, func() error { return nil }, nil)
	require.NoError(t, err)

	w.Stop()
	assert.NoError(t, w.watcher.Close())
}

func TestWriteTriggersResync(t *testing.T) {
	dir := t.TempDir()

	synced := make(chan struct{}, 1)
	w, err := New([]string{dir}, func() error {
		select {
		case synced <- struct{}{}:
		default:
		}
		return nil
	}, nil)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	w.Start(context.Background())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# hi\n"), 0644))

	select {
	case <-synced:
	case <-time.After(5 * time.Second):
		t.Fatal("resync was not triggered")
	}
}

func TestBurstIsDebounced(t *testing.T) {
	dir := t.TempDir()

	calls := make(chan struct{}, 16)
	w, err := New([]string{dir}, func() error {
		calls <- struct{}{}
		return nil
	}, nil)
	require.NoError(t, err)
	w.Debounce = 100 * time.Millisecond

	w.Start(context.Background())
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# hi\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("resync was not triggered")
	}

	// the burst collapses into a single run
	select {
	case <-calls:
		t.Fatal("resync ran more than once for one burst")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStartAfterStopIsNoOp(t *testing.T) {
	w, err := New([]string{t.TempDir()}, func() error { return nil }, nil)
	require.NoError(t, err)

	w.Start(context.Background())
	w.Stop()

	// single use: a second Start must not revive the loop
	w.Start(context.Background())
	w.Stop()
}

// A resync that rewrites a doc inside a watched directory must not feed
// the watcher forever: after one external edit the loop has to settle.
func TestResyncOwnWritesSettle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	contentPath := filepath.Join(root, "src", "main.go")
	require.NoError(t, os.WriteFile(contentPath,
		[]byte("//! [greet]\nfmt.Println(\"hi\")\n//! [greet]\n"), 0644))

	docPath := filepath.Join(root, "docs", "guide.md")
	require.NoError(t, os.WriteFile(docPath,
		[]byte("<!-- [snipsync] [src/main.go] [greet] -->\n```go\n```\n"), 0644))

	cfg := config.Default()
	cfg.ContentRoot = root

	var runs atomic.Int64
	resync := func() error {
		runs.Add(1)
		d, err := docsync.New(root, cfg, nil)
		if err != nil {
			return err
		}
		if err := d.Parse(context.Background()); err != nil {
			return err
		}
		return d.Sync(context.Background())
	}

	require.NoError(t, resync())
	runs.Store(0)

	d, err := docsync.New(root, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, d.Parse(context.Background()))

	w, err := New(d.WatchDirs(), resync, nil)
	require.NoError(t, err)
	w.Debounce = 30 * time.Millisecond

	w.Start(context.Background())
	defer w.Stop()

	require.NoError(t, os.WriteFile(contentPath,
		[]byte("//! [greet]\nfmt.Println(\"hello\")\n//! [greet]\n"), 0644))

	time.Sleep(600 * time.Millisecond)

	// the edit triggers one sync, the doc rewrite triggers one more
	// which writes nothing, and the loop goes quiet
	got := runs.Load()
	assert.GreaterOrEqual(t, got, int64(1), "edit did not trigger a resync")
	assert.LessOrEqual(t, got, int64(3), "resync keeps re-triggering itself")
}

func TestContextCancelStopsLoop(t *testing.T) {
	w, err := New([]string{t.TempDir()}, func() error { return nil }, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not exit on cancellation")
	}

	w.watcher.Close()
}
