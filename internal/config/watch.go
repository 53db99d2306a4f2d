package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the dashboard file for changes and calls onChange with the
// newly loaded Dashboard each time the file is written. It runs until ctx is
// cancelled.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous dashboard stays active; Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Dashboard)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("Watching dashboard config for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so catch Create as well as Write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			d, err := LoadDashboard(path)
			if err != nil {
				slog.Error("Dashboard config reload failed, keeping previous config",
					"path", path, "error", err)
				continue
			}

			slog.Info("Dashboard config reloaded", "path", path)
			onChange(d)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Dashboard config watcher error", "error", err)
		}
	}
}
