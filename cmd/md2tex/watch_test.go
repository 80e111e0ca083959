package main

// Notes:
// - watchLoop: we feed synthetic fsnotify events through channels, so no
//   real file system watcher is involved.
// - runWatch end-to-end is not tested: it blocks until a signal arrives.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const testDebounce = 20 * time.Millisecond

type watchHarness struct {
	events chan fsnotify.Event
	errs   chan error
	calls  atomic.Int32
	fired  chan struct{}
	out    bytes.Buffer
	done   chan error
	cancel context.CancelFunc
}

// startWatch runs watchLoop in the background for target.
func startWatch(t *testing.T, target string) *watchHarness {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	h := &watchHarness{
		events: make(chan fsnotify.Event),
		errs:   make(chan error),
		fired:  make(chan struct{}, 16),
		done:   make(chan error, 1),
		cancel: cancel,
	}
	onChange := func() {
		h.calls.Add(1)
		h.fired <- struct{}{}
	}
	go func() {
		h.done <- watchLoop(ctx, h.events, h.errs, target, testDebounce, onChange, &h.out)
	}()
	t.Cleanup(cancel)
	return h
}

func (h *watchHarness) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("watchLoop did not return")
		return nil
	}
}

// ---------------------------------------------------------------------------
// TestWatchLoop - Debounced change detection
// ---------------------------------------------------------------------------

func TestWatchLoop(t *testing.T) {
	t.Parallel()

	t.Run("burst of writes triggers once", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "notes.md")
		h := startWatch(t, target)

		for range 5 {
			h.events <- fsnotify.Event{Name: target, Op: fsnotify.Write}
		}

		select {
		case <-h.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("onChange not called")
		}
		time.Sleep(5 * testDebounce)
		if got := h.calls.Load(); got != 1 {
			t.Errorf("onChange called %d times, want 1", got)
		}

		h.cancel()
		if err := h.wait(t); err != nil {
			t.Errorf("watchLoop returned %v, want nil", err)
		}
	})

	t.Run("create counts as change", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "notes.md")
		h := startWatch(t, target)

		h.events <- fsnotify.Event{Name: target, Op: fsnotify.Create}

		select {
		case <-h.fired:
		case <-time.After(2 * time.Second):
			t.Fatal("onChange not called for create")
		}
	})

	t.Run("other files and ops ignored", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "notes.md")
		h := startWatch(t, target)

		h.events <- fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}
		h.events <- fsnotify.Event{Name: target, Op: fsnotify.Chmod}
		h.events <- fsnotify.Event{Name: target, Op: fsnotify.Remove}
		time.Sleep(5 * testDebounce)

		if got := h.calls.Load(); got != 0 {
			t.Errorf("onChange called %d times, want 0", got)
		}
	})

	t.Run("watcher errors are reported", func(t *testing.T) {
		t.Parallel()

		h := startWatch(t, filepath.Join(t.TempDir(), "notes.md"))
		h.errs <- errors.New("queue overflow")
		close(h.errs)

		if err := h.wait(t); err != nil {
			t.Errorf("watchLoop returned %v, want nil", err)
		}
		if !strings.Contains(h.out.String(), "watch error: queue overflow") {
			t.Errorf("output = %q", h.out.String())
		}
	})

	t.Run("closed events channel stops", func(t *testing.T) {
		t.Parallel()

		h := startWatch(t, filepath.Join(t.TempDir(), "notes.md"))
		close(h.events)

		if err := h.wait(t); err != nil {
			t.Errorf("watchLoop returned %v, want nil", err)
		}
	})
}
