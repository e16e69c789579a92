// Package watch rebuilds source files when they change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Op describes what happened to a file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a single file system notification.
type Event struct {
	Path string
	Op   Op
}

// Watcher delivers file system events for the directories added to it.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

// Tracker remembers a content hash per path.
type Tracker struct {
	mu   sync.Mutex
	sums map[string]uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{sums: make(map[string]uint64)}
}

// Changed records content for path and reports whether it differs from
// what was recorded before. The first call for a path reports true.
func (t *Tracker) Changed(path string, content []byte) bool {
	sum := xxhash.Sum64(content)

	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.sums[path]
	t.sums[path] = sum
	return !ok || old != sum
}

// BuildFunc compiles one changed file.
type BuildFunc func(ctx context.Context, path string, content []byte) error

// Loop rebuilds watched files whose content changed.
type Loop struct {
	Watcher Watcher
	Build   BuildFunc
	Logger  *zap.Logger

	tracker *Tracker
}

// Run watches paths until ctx is done or the watcher is closed. The
// current contents are recorded first, so only later edits trigger a
// build; saves that leave the bytes unchanged are skipped. Build failures
// are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context, paths []string) error {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if l.tracker == nil {
		l.tracker = NewTracker()
	}

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		tracked[abs] = true

		if content, err := os.ReadFile(abs); err == nil {
			l.tracker.Changed(abs, content)
		}

		// Saving through a rename drops a watch placed on the file itself.
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := l.Watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Info("Watching for changes", zap.Int("files", len(tracked)), zap.Int("dirs", len(dirs)))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-l.Watcher.Events():
			if !ok {
				return nil
			}
			l.handle(ctx, log, tracked, ev)

		case err, ok := <-l.Watcher.Errors():
			if !ok {
				return nil
			}
			log.Warn("Watch error", zap.Error(err))
		}
	}
}

func (l *Loop) handle(ctx context.Context, log *zap.Logger, tracked map[string]bool, ev Event) {
	if ev.Op&(OpCreate|OpWrite) == 0 {
		return
	}
	path, err := filepath.Abs(ev.Path)
	if err != nil || !tracked[path] {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Failed to read changed file", zap.String("file", path), zap.Error(err))
		return
	}
	if !l.tracker.Changed(path, content) {
		log.Debug("Content unchanged, skipping rebuild", zap.String("file", path))
		return
	}

	log.Info("Rebuilding", zap.String("file", path))
	if err := l.Build(ctx, path, content); err != nil {
		log.Error("Rebuild failed", zap.String("file", path), zap.Error(err))
	}
}
