package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/precache/internal/adapters/fs"
	"go.trai.ch/precache/internal/core/domain"
)

func newCopier() *fs.Copier {
	return fs.NewCopier(fs.NewWalker(), fs.NewHasher()).WithConcurrency(2)
}

func TestCopier_CopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dist")
	writeFile(t, src, "index.html", "<html></html>")
	writeFile(t, src, "css/site.css", "body{}")
	writeFile(t, src, "images/icons/logo.png", "png")

	copier := newCopier()

	stats, err := copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.CopyStats{Copied: 3, Bytes: 22}, stats)

	content, err := os.ReadFile(filepath.Join(dst, "css", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(content))

	_, err = os.Stat(filepath.Join(dst, "images", "icons", "logo.png"))
	require.NoError(t, err)
}

func TestCopier_CopyTree_SkipsUnchanged(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "a.js", "one")
	writeFile(t, src, "b.js", "two")

	copier := newCopier()

	_, err := copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{})
	require.NoError(t, err)

	stats, err := copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.CopyStats{Unchanged: 2}, stats)

	// Same size, different bytes.
	writeFile(t, src, "b.js", "owt")

	stats, err = copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.CopyStats{Copied: 1, Unchanged: 1, Bytes: 3}, stats)

	content, err := os.ReadFile(filepath.Join(dst, "b.js"))
	require.NoError(t, err)
	assert.Equal(t, "owt", string(content))
}

func TestCopier_CopyTree_PrunesStaleFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "css/a.css", "X")
	writeFile(t, src, "css/b.css", "Y")
	writeFile(t, src, "fonts/old/sans.woff", "woff")
	writeFile(t, dst, "service-worker.js", "generated")

	copier := newCopier()
	opts := domain.MirrorOptions{Keep: []string{"service-worker.js"}}

	_, err := copier.CopyTree(t.Context(), src, dst, opts)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(src, "css", "b.css")))
	require.NoError(t, os.RemoveAll(filepath.Join(src, "fonts")))

	stats, err := copier.CopyTree(t.Context(), src, dst, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.CopyStats{Unchanged: 1, Removed: 2}, stats)

	assert.FileExists(t, filepath.Join(dst, "css", "a.css"))
	assert.NoFileExists(t, filepath.Join(dst, "css", "b.css"))
	assert.NoDirExists(t, filepath.Join(dst, "fonts"))
	assert.FileExists(t, filepath.Join(dst, "service-worker.js"))
	assert.DirExists(t, dst)
}

func TestCopier_CopyTree_Ignore(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "js/app.js", "app")
	writeFile(t, src, "js/app.js.map", "map")
	writeFile(t, src, "node_modules/lib/index.js", "lib")
	// Left over from a build made before the ignore patterns were set.
	writeFile(t, dst, "js/app.js.map", "map")

	copier := newCopier()

	stats, err := copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{
		Ignore: []string{"*.map", "node_modules"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CopyStats{Copied: 1, Removed: 1, Bytes: 3}, stats)

	assert.FileExists(t, filepath.Join(dst, "js", "app.js"))
	assert.NoFileExists(t, filepath.Join(dst, "js", "app.js.map"))
	assert.NoDirExists(t, filepath.Join(dst, "node_modules"))
}

func TestCopier_CopyMatching(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "helpers")
	writeFile(t, src, "cache.js", "cache")
	writeFile(t, src, "fetch.js", "fetch")
	writeFile(t, src, "service-worker.tmpl", "tmpl")
	writeFile(t, src, "nested/skip.js", "nested")

	copier := newCopier()

	stats, err := copier.CopyMatching(t.Context(), src, "*.js", dst)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Copied)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"cache.js", "fetch.js"}, names)
}

func TestCopier_Errors(t *testing.T) {
	src := t.TempDir()
	file := writeFile(t, src, "plain.txt", "x")

	copier := newCopier()

	t.Run("missing source", func(t *testing.T) {
		_, err := copier.CopyTree(t.Context(), filepath.Join(src, "missing"), t.TempDir(), domain.MirrorOptions{})
		require.ErrorIs(t, err, domain.ErrCopyFailed)
	})

	t.Run("source is a file", func(t *testing.T) {
		_, err := copier.CopyTree(t.Context(), file, t.TempDir(), domain.MirrorOptions{})
		require.ErrorIs(t, err, domain.ErrCopyFailed)
	})

	t.Run("malformed pattern", func(t *testing.T) {
		_, err := copier.CopyMatching(t.Context(), src, "[", t.TempDir())
		require.ErrorIs(t, err, domain.ErrInvalidPattern)
	})

	t.Run("destination blocked by a file", func(t *testing.T) {
		dst := t.TempDir()
		writeFile(t, dst, "css", "not a directory")
		writeFile(t, src, "css/site.css", "body{}")

		_, err := copier.CopyTree(t.Context(), src, dst, domain.MirrorOptions{})
		require.ErrorIs(t, err, domain.ErrCopyFailed)
	})
}

func TestCopier_CanceledContext(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "a.js", "a")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	copier := newCopier()

	_, err := copier.CopyTree(ctx, src, dst, domain.MirrorOptions{})
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dst, "a.js"))
	assert.True(t, os.IsNotExist(statErr))
}
