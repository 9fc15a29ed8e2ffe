package internal

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile calls onChange every time the file at path is written or
// replaced, until ctx is cancelled. Bursts of events are collapsed into a
// single call once the file has been quiet for the debounce duration.
func WatchFile(
	ctx context.Context, logger *slog.Logger,
	path string, debounce time.Duration,
	onChange func(),
) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	defer func() {
		err := w.Close()
		if err != nil {
			logger.Error("close file watcher", "err", err)
		}
	}()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}

	// Editors often replace files on save, watch the directory to not lose
	// track of the file.
	err = w.Add(filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("watch %q: %w", filepath.Dir(target), err)
	}

	logger.Debug("watching for changes", "file", target)

	timer := time.NewTimer(debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) {
				continue
			}

			logger.Debug("file changed",
				"file", event.Name,
				"op", event.Op.String())

			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Error("file watcher error", "err", err)
		case <-timer.C:
			onChange()
		}
	}
}
