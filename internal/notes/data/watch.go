package data

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"keepnotes/internal/logs"
)

// DefaultWatchDelay coalesces the burst of events a single atomic write
// produces (create temp, write, chmod, rename).
const DefaultWatchDelay = 100 * time.Millisecond

// Watch reports changes to the file at path. The parent directory is watched
// rather than the file because atomic saves replace the file's inode.
// The returned stop func closes the watcher; the channel is left open and
// simply stops receiving.
func Watch(path string, delay time.Duration) (<-chan struct{}, func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return nil, nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(path)

	go func() {
		var debounceTimer *time.Timer
		defer func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(delay, func() {
					select {
					case changes <- struct{}{}:
					default:
						// A signal is already pending
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logs.Logger.Printf("Watcher error on %s: %v", dir, err)
			}
		}
	}()

	return changes, watcher.Close, nil
}
