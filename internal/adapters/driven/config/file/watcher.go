package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a single configuration file.
// It watches the containing directory so that atomic renames are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher starts watching path. Close releases the watch.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: filepath.Clean(path), debounce: debounce, fsw: fsw}, nil
}

// Run calls onChange after each settled change of the file until ctx is done.
// Watch errors are passed to onError when it is non-nil.
func (w *Watcher) Run(ctx context.Context, onChange func(), onError func(error)) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
