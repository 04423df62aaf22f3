package config

import (
	"context"
	"fmt"
	"path/filepath"

	"fbscene/hal"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written or replaced and delivers each
// valid result on the returned channel. Only the newest unread config is
// kept. Files that fail to load are logged and skipped.
func Watch(ctx context.Context, path string, log hal.Logger) (<-chan Config, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	// Editors often replace the file, so watch its directory.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan Config, 1)
	target := filepath.Clean(path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logLine(log, fmt.Sprintf("config: reload: %v", err))
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- cfg
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logLine(log, fmt.Sprintf("config: watch: %v", err))
			}
		}
	}()
	return out, nil
}

func logLine(log hal.Logger, s string) {
	if log != nil {
		log.WriteLineString(s)
	}
}
