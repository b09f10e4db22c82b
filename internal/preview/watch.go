package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates the cache shortly after any of paths changes. Files are
// watched through their parent directory so atomic renames and SQLite WAL
// files are seen. Watching stops when ctx is done.
func (s *Server) Watch(ctx context.Context, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	var prefixes []string
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return fmt.Errorf("resolve watch path %q: %w", p, err)
		}
		prefixes = append(prefixes, abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs[abs] = true
			if sub := filepath.Join(abs, "versions"); isDir(sub) {
				dirs[sub] = true
			}
			continue
		}
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	s.logger.Info("watching storage for changes", "paths", prefixes)

	go s.watchLoop(ctx, watcher, prefixes)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, prefixes []string) {
	defer watcher.Close()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !matches(event.Name, prefixes) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					s.logger.Warn("watch new directory failed", "path", event.Name, "error", err)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.debounce, s.Invalidate)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("storage watcher error", "error", err)
		}
	}
}

func matches(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
