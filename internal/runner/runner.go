// Package runner lints whole directory trees and caches per-file results so
// watch mode can update incrementally as files change.
package runner

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/lint"
)

// Runner holds the lint results for every Lua file under a root path.
type Runner struct {
	mu     sync.RWMutex
	byFile map[string][]diag.Diagnostic

	rootPath string
	cfg      lint.Config
	exts     map[string]bool
}

// New creates a runner for the given root path. exts lists the file
// extensions to lint; nil means ".lua" only.
func New(rootPath string, cfg lint.Config, exts []string) *Runner {
	if len(exts) == 0 {
		exts = []string{".lua"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[e] = true
	}
	return &Runner{
		byFile:   make(map[string][]diag.Diagnostic),
		rootPath: rootPath,
		cfg:      cfg,
		exts:     extSet,
	}
}

// Build lints every matching file under the root. Files are independent, so
// they are analyzed concurrently with bounded parallelism.
func (r *Runner) Build(ctx context.Context) error {
	var files []string
	err := filepath.WalkDir(r.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") && path != r.rootPath {
				return filepath.SkipDir
			}
			if name == "node_modules" || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}

		if r.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)

	for _, file := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := r.LintFile(path); err != nil {
				log.Printf("failed to lint %s: %v", path, err)
			}
		}(file)
	}

	wg.Wait()
	return nil
}

// LintFile reads and analyzes a single file, replacing any cached result.
func (r *Runner) LintFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ds := lint.Analyze(string(content), r.cfg)

	r.mu.Lock()
	r.byFile[path] = ds
	r.mu.Unlock()
	return nil
}

// RemoveFile drops the cached result for a file.
func (r *Runner) RemoveFile(path string) {
	r.mu.Lock()
	delete(r.byFile, path)
	r.mu.Unlock()
}

// Diagnostics returns the cached findings for a file.
func (r *Runner) Diagnostics(path string) []diag.Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds := r.byFile[path]
	out := make([]diag.Diagnostic, len(ds))
	copy(out, ds)
	return out
}

// Files returns every linted path in sorted order.
func (r *Runner) Files() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make([]string, 0, len(r.byFile))
	for path := range r.byFile {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// TotalFindings counts findings across all linted files.
func (r *Runner) TotalFindings() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, ds := range r.byFile {
		total += len(ds)
	}
	return total
}

// Matches reports whether a path has one of the configured extensions.
func (r *Runner) Matches(path string) bool {
	return r.exts[filepath.Ext(path)]
}
