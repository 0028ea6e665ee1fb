// Package watcher drives watch mode: it monitors a directory tree with
// fsnotify and reports debounced batches of changed and removed Lua files.
package watcher

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler receives debounced batches of changed and removed paths.
type ChangeHandler func(changed, removed []string)

// Watcher monitors a root path for changes to matching files.
type Watcher struct {
	watcher   *fsnotify.Watcher
	rootPath  string
	matches   func(path string) bool
	handler   ChangeHandler
	debouncer *Debouncer
	done      chan struct{}
}

// New creates a watcher rooted at rootPath. matches filters the paths the
// handler will see; directories are always tracked so new subtrees get
// picked up.
func New(rootPath string, matches func(string) bool, handler ChangeHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		rootPath:  rootPath,
		matches:   matches,
		handler:   handler,
		debouncer: NewDebouncer(100),
		done:      make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins dispatching events.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name()) && path != w.rootPath {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("failed to watch %s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.eventLoop()

	log.Printf("watching %s", w.rootPath)
	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// A created directory extends the watch; every other event is a file
	// event and goes through the path matcher.
	if event.Has(fsnotify.Create) && isDir(path) {
		if !skipDir(filepath.Base(path)) {
			if err := w.watcher.Add(path); err != nil {
				log.Printf("failed to watch new directory %s: %v", path, err)
			}
		}
		return
	}

	if !w.matches(path) {
		return
	}

	w.debouncer.Add(path, event.Op)
	w.debouncer.Flush(func(changed, removed []string) {
		if len(changed) > 0 || len(removed) > 0 {
			w.handler(changed, removed)
		}
	})
}

func isDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules"
}
