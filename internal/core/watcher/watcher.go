package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"importtree/internal/core/errors"
	"importtree/internal/shared/observability"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// DefaultIgnoredFiles are editor and OS artifacts that never change what a
// page can reach.
var DefaultIgnoredFiles = []string{"*~", "*.swp", "*.swx", ".#*", "4913", ".DS_Store"}

// Watcher reports debounced batches of changed paths below the watched roots.
// Every file kind counts because glob specifiers can reach any file.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	debounce     time.Duration
	excludeDirs  []glob.Glob
	ignoredFiles []glob.Glob
	logger       *slog.Logger
	onChange     func([]string)
	callbackMu   sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	closed    bool
}

func NewWatcher(debounce time.Duration, excludeDirs []string, logger *slog.Logger, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New(errors.CodeValidationError, "watcher callback is required")
	}
	if debounce < 0 {
		return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("negative debounce %s", debounce))
	}

	dirs, err := compileAll(excludeDirs)
	if err != nil {
		return nil, err
	}
	files, err := compileAll(DefaultIgnoredFiles)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create file watcher")
	}

	return &Watcher{
		fsWatcher:    fsw,
		debounce:     debounce,
		excludeDirs:  dirs,
		ignoredFiles: files,
		logger:       logger,
		onChange:     onChange,
		pending:      make(map[string]struct{}),
	}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid watch exclude pattern"), errors.CtxPattern, pattern)
		}
		out = append(out, g)
	}
	return out, nil
}

// Watch registers every directory below paths and starts delivering events.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if err := w.watchRecursive(path); err != nil {
			return errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "watch directory"), errors.CtxPath, path)
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldExcludeDir(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Has(fsnotify.Create) {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if w.shouldExcludeDir(event.Name) {
						continue
					}
					if err := w.watchRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
						continue
					}
					w.scheduleChange(event.Name)
					w.enqueueExistingFiles(event.Name)
					continue
				}
			}

			if w.shouldIgnoreFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.closed {
		return
	}

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

// flushChanges hands the pending batch to the callback. Callbacks never run
// concurrently with each other.
func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, g := range w.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldIgnoreFile(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.ignoredFiles {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) enqueueExistingFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.shouldIgnoreFile(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
