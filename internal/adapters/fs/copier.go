package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Copier = (*Copier)(nil)

// Copier mirrors files from one tree into another.
// Destination files whose content already matches the source are left untouched.
type Copier struct {
	walker *Walker
	hasher *Hasher
	limit  int
}

// NewCopier creates a new Copier that copies up to runtime.NumCPU files at once.
func NewCopier(walker *Walker, hasher *Hasher) *Copier {
	return &Copier{
		walker: walker,
		hasher: hasher,
		limit:  runtime.NumCPU(),
	}
}

// WithConcurrency sets the maximum number of files copied at once.
func (c *Copier) WithConcurrency(n int) *Copier {
	if n > 0 {
		c.limit = n
	}
	return c
}

// CopyTree mirrors every regular file under src into dst, preserving relative paths.
// Source entries matching opts.Ignore are skipped. Once every file is copied, files under dst
// without a source counterpart are removed, except the paths in opts.Keep.
func (c *Copier) CopyTree(ctx context.Context, src, dst string, opts domain.MirrorOptions) (domain.CopyStats, error) {
	if err := requireDir(src); err != nil {
		return domain.CopyStats{}, err
	}

	var rels []string
	for rel, err := range c.walker.WalkFiles(src, opts.Ignore) {
		if err != nil {
			return domain.CopyStats{}, errors.Join(domain.ErrCopyFailed,
				zerr.With(zerr.Wrap(err, "failed to walk source tree"), "src", src))
		}
		rels = append(rels, rel)
	}

	stats, err := c.copyAll(ctx, src, dst, rels)
	if err != nil {
		return stats, err
	}

	wanted := make(map[string]struct{}, len(rels)+len(opts.Keep))
	for _, rel := range rels {
		wanted[rel] = struct{}{}
	}
	for _, rel := range opts.Keep {
		wanted[rel] = struct{}{}
	}

	removed, err := c.prune(dst, wanted)
	stats.Removed = removed
	if err != nil {
		return stats, errors.Join(domain.ErrCopyFailed, zerr.With(err, "dst", dst))
	}

	return stats, nil
}

// prune removes the regular files under dst that are not in wanted, then any directory
// emptied by the removal.
func (c *Copier) prune(dst string, wanted map[string]struct{}) (int, error) {
	dst = filepath.Clean(dst)
	if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}

	var stale []string
	for rel, err := range c.walker.WalkFiles(dst, nil) {
		if err != nil {
			return 0, zerr.Wrap(err, "failed to walk destination tree")
		}
		if _, ok := wanted[rel]; !ok {
			stale = append(stale, rel)
		}
	}

	removed := 0
	for _, rel := range stale {
		path := filepath.Join(dst, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, zerr.With(zerr.Wrap(err, "failed to remove stale file"), "path", path)
		}
		removed++
	}

	for _, rel := range stale {
		dir := filepath.Dir(filepath.Join(dst, filepath.FromSlash(rel)))
		for dir != dst && strings.HasPrefix(dir, dst) {
			// Fails on the first directory that still has entries.
			if err := os.Remove(dir); err != nil {
				break
			}
			dir = filepath.Dir(dir)
		}
	}

	return removed, nil
}

// CopyMatching copies the regular files under src whose relative path matches pattern into dst.
func (c *Copier) CopyMatching(ctx context.Context, src, pattern, dst string) (domain.CopyStats, error) {
	if !doublestar.ValidatePattern(pattern) {
		return domain.CopyStats{}, errors.Join(domain.ErrInvalidPattern,
			zerr.With(zerr.New("malformed glob"), "pattern", pattern))
	}
	if err := requireDir(src); err != nil {
		return domain.CopyStats{}, err
	}

	rels, err := doublestar.Glob(os.DirFS(src), pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return domain.CopyStats{}, errors.Join(domain.ErrCopyFailed,
			zerr.With(zerr.Wrap(err, "failed to match source files"), "src", src))
	}

	return c.copyAll(ctx, src, dst, rels)
}

// copyAll copies the given relative paths from src to dst using a bounded worker group.
func (c *Copier) copyAll(ctx context.Context, src, dst string, rels []string) (domain.CopyStats, error) {
	var (
		mu    sync.Mutex
		stats domain.CopyStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for _, rel := range rels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			from := filepath.Join(src, filepath.FromSlash(rel))
			to := filepath.Join(dst, filepath.FromSlash(rel))

			result, err := c.copyFile(from, to)
			if err != nil {
				return errors.Join(domain.ErrCopyFailed,
					zerr.With(zerr.With(err, "from", from), "to", to))
			}

			mu.Lock()
			stats = stats.Add(result)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	return stats, nil
}

// copyFile copies a single file, skipping the write when dst already holds identical bytes.
// The file is written to a temporary sibling and renamed into place.
func (c *Copier) copyFile(from, to string) (domain.CopyStats, error) {
	info, err := os.Stat(from)
	if err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to stat source file")
	}
	if !info.Mode().IsRegular() {
		return domain.CopyStats{}, nil
	}

	if c.unchanged(from, to, info.Size()) {
		return domain.CopyStats{Unchanged: 1}, nil
	}

	if err := os.MkdirAll(filepath.Dir(to), domain.DirPerm); err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to create destination directory")
	}

	in, err := os.Open(from) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to open source file")
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	tmp, err := os.CreateTemp(filepath.Dir(to), ".precache-*")
	if err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return domain.CopyStats{}, zerr.Wrap(err, "failed to write destination file")
	}
	if err := tmp.Close(); err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to close destination file")
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to set destination permissions")
	}
	if err := os.Rename(tmpName, to); err != nil {
		return domain.CopyStats{}, zerr.Wrap(err, "failed to move destination file into place")
	}

	return domain.CopyStats{Copied: 1, Bytes: info.Size()}, nil
}

// unchanged reports whether to exists with the given size and the same content hash as from.
// Any error is treated as changed.
func (c *Copier) unchanged(from, to string, size int64) bool {
	dstInfo, err := os.Stat(to)
	if err != nil || !dstInfo.Mode().IsRegular() || dstInfo.Size() != size {
		return false
	}

	srcSum, err := c.hasher.ComputeFileHash(from)
	if err != nil {
		return false
	}
	dstSum, err := c.hasher.ComputeFileHash(to)
	if err != nil {
		return false
	}

	return srcSum == dstSum
}

// requireDir returns ErrCopyFailed unless path is an existing directory.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Join(domain.ErrCopyFailed,
			zerr.With(zerr.Wrap(err, "source directory is not accessible"), "src", path))
	}
	if !info.IsDir() {
		return errors.Join(domain.ErrCopyFailed,
			zerr.With(zerr.New("source is not a directory"), "src", path))
	}
	return nil
}
