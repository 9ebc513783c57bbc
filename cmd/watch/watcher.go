package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/depscope/depscope/internal/devlog"
)

const debounceInterval = 300 * time.Millisecond

// watchAndRebuild watches the project tree and rebuilds the analysis
// session after each debounced burst of filesystem changes.
func watchAndRebuild(ctx context.Context, root string, opts *watchOptions, b *broker, skipDir func(string) bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root, skipDir); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Newly created directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipDir(filepath.Base(event.Name)) {
						_ = addWatchDirs(watcher, event.Name, skipDir)
					}
				}
			}

			if !relevantEvent(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				rebuild(ctx, root, opts, b)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// relevantEvent reports whether an fsnotify event can change the graph.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Ext(event.Name) == ".py" {
		return true
	}
	// Directory-level events (create/remove/rename) matter too.
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir() || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, skipDir func(string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			// Unreadable directories are skipped, matching discovery.
			return nil
		}
		return nil
	})
}

func rebuild(ctx context.Context, root string, opts *watchOptions, b *broker) {
	payload, session, err := buildPayload(ctx, root, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		devlog.Error("watch rebuild failed", map[string]any{"root": root, "error": err.Error()})
		return
	}

	b.publish(payload)
	devlog.Debug("watch rebuild published", map[string]any{
		"session": session.ID,
		"files":   session.Report.FileCount,
	})
}
