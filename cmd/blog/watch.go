package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

const rebuildOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// watchPaths calls rebuild once per burst of changes under paths. Directories
// are watched recursively and new subdirectories are picked up as they
// appear. rebuild runs on the watching goroutine, so rebuilds never overlap.
func watchPaths(ctx context.Context, paths []string, debounce time.Duration, logger interfaces.Logger, rebuild func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range paths {
		addWatch(watcher, root, logger)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}
	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&rebuildOps == 0 {
				continue
			}
			logger.Debug("serve.watch.change", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				addWatch(watcher, event.Name, logger)
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case trigger <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}
		case <-trigger:
			rebuild(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("serve.watch.error", "error", err)
		}
	}
}

func addWatch(watcher *fsnotify.Watcher, root string, logger interfaces.Logger) {
	info, err := os.Stat(root)
	if err != nil {
		logger.Warn("serve.watch.skipped", "path", root, "error", err)
		return
	}
	if !info.IsDir() {
		if err := watcher.Add(root); err != nil {
			logger.Warn("serve.watch.add_failed", "path", root, "error", err)
		}
		return
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logger.Warn("serve.watch.add_failed", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("serve.watch.walk_failed", "path", root, "error", err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
