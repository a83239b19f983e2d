package analyzecmder

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch re-runs runOnce every time one of paths changes on disk, debounced
// by debounce so a burst of writes (an editor's save-then-rename, an export
// tool re-writing the same file) only triggers one re-run.
func watch(ctx context.Context, out io.Writer, paths []string, debounce time.Duration, runOnce func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("analyze: creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("analyze: watching %s: %w", dir, err)
		}
	}

	targets := map[string]bool{}
	for _, p := range paths {
		targets[filepath.Clean(p)] = true
	}

	if err := runOnce(); err != nil {
		fmt.Fprintf(out, "analyze: %v\n", err)
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			fmt.Fprintln(out, "change detected, re-running analysis")
			if err := runOnce(); err != nil {
				fmt.Fprintf(out, "analyze: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("analyze: watcher error: %w", err)
		}
	}
}
