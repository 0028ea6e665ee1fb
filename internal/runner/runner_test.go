package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensei-lua/lualint/internal/diag"
	"github.com/sensei-lua/lualint/internal/lint"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuild_LintsTree(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.lua", "print(1)\n")
	dirty := writeFile(t, dir, "sub/dirty.lua", "function f()\nprint(1)\n")
	writeFile(t, dir, "ignored.txt", "do\n")
	writeFile(t, dir, ".hidden/skipped.lua", "do\n")
	writeFile(t, dir, "node_modules/dep.lua", "do\n")

	r := New(dir, lint.DefaultConfig(), nil)
	require.NoError(t, r.Build(context.Background()))

	assert.Equal(t, []string{clean, dirty}, r.Files())
	assert.Empty(t, r.Diagnostics(clean))

	ds := r.Diagnostics(dirty)
	require.NotEmpty(t, ds)
	assert.Equal(t, diag.UnclosedBlock, ds[0].Kind)
	assert.Equal(t, r.TotalFindings(), len(ds))
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(t.TempDir(), lint.DefaultConfig(), nil)
	assert.Error(t, r.Build(ctx))
}

func TestLintFile_ReplacesCachedResult(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.lua", "do\n")

	r := New(dir, lint.DefaultConfig(), nil)
	require.NoError(t, r.LintFile(path))
	require.NotEmpty(t, r.Diagnostics(path))

	require.NoError(t, os.WriteFile(path, []byte("do\nend\n"), 0644))
	require.NoError(t, r.LintFile(path))
	assert.Empty(t, r.Diagnostics(path))
}

func TestLintFile_MissingFile(t *testing.T) {
	r := New(t.TempDir(), lint.DefaultConfig(), nil)
	assert.Error(t, r.LintFile(filepath.Join(t.TempDir(), "gone.lua")))
}

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.lua", "do\n")

	r := New(dir, lint.DefaultConfig(), nil)
	require.NoError(t, r.LintFile(path))
	require.NotZero(t, r.TotalFindings())

	r.RemoveFile(path)
	assert.Empty(t, r.Diagnostics(path))
	assert.Zero(t, r.TotalFindings())
}

func TestMatches(t *testing.T) {
	r := New(".", lint.DefaultConfig(), nil)
	assert.True(t, r.Matches("foo/bar.lua"))
	assert.False(t, r.Matches("foo/bar.txt"))

	custom := New(".", lint.DefaultConfig(), []string{".lua", ".luau"})
	assert.True(t, custom.Matches("game.luau"))
}
