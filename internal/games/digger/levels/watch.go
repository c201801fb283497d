package levels

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long the watcher waits after the last write before
// reloading. Editors often emit several events per save.
const WatchDebounce = 200 * time.Millisecond

// Watch reloads the level file at p whenever it changes on disk and passes
// the result to onChange. It returns once the watch is established and
// stops when ctx is cancelled. onChange runs on the watcher goroutine.
//
// The parent directory is watched rather than the file so that editors
// which save by rename keep triggering reloads.
func Watch(ctx context.Context, p string, logger *log.Logger, onChange func(Level, error)) error {
	if logger == nil {
		logger = log.Default().WithPrefix("digger-watch")
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("levels: watch %s: %w", p, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levels: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("levels: watch %s: %w", p, err)
	}

	go watchLoop(ctx, w, abs, logger, onChange)
	return nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, logger *log.Logger, onChange func(Level, error)) {
	defer w.Close()

	// Timer fires are serialized through this loop so onChange never runs
	// concurrently with itself.
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.NewTimer(WatchDebounce)
				fire = debounce.C
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				logger.Debug("level file moved away, waiting for it to return", "path", target)
			}

		case <-fire:
			fire = nil
			lvl, err := LoadFile(target)
			if err != nil {
				logger.Warn("level reload failed", "path", target, "error", err)
			} else {
				logger.Info("level reloaded", "id", lvl.ID, "path", target)
			}
			onChange(lvl, err)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
