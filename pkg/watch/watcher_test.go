package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestigehq/vestige/pkg/config"
)

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	w, err := NewWatcher(root, config.DefaultConfig(), 50*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestNewWatcherDefaults(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil, 0)
	require.NoError(t, err)
	defer w.Stop()

	assert.NotNil(t, w.config)
	assert.Equal(t, 500*time.Millisecond, w.debounce)
}

func TestHandleEventTracksTypeScriptWrites(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "app.ts")
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0o644))

	w := newTestWatcher(t, root)
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})

	w.mu.Lock()
	_, tracked := w.pending[path]
	w.mu.Unlock()
	assert.True(t, tracked)
}

func TestHandleEventIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# notes\n"), 0o644))

	w := newTestWatcher(t, root)
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})

	w.mu.Lock()
	count := len(w.pending)
	w.mu.Unlock()
	assert.Zero(t, count)
}

func TestTakeSettledHonorsDebounce(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())

	w.mu.Lock()
	w.pending["fresh.ts"] = time.Now()
	w.pending["stale.ts"] = time.Now().Add(-time.Second)
	w.mu.Unlock()

	ready := w.takeSettled()
	assert.Equal(t, []string{"stale.ts"}, ready)

	w.mu.Lock()
	_, stillPending := w.pending["fresh.ts"]
	w.mu.Unlock()
	assert.True(t, stillPending)
}

func TestStartDeliversChanges(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	var mu sync.Mutex
	var got []string
	w.SetCallback(func(changed []string) {
		mu.Lock()
		got = append(got, changed...)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// Give the watcher time to register the tree before writing.
	time.Sleep(200 * time.Millisecond)
	path := filepath.Join(root, "app.ts")
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, p := range got {
			if p == path {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}

func TestStartStopsOnCancel(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
