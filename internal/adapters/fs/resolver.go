package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileResolver = (*Resolver)(nil)

// Resolver implements the FileResolver interface using doublestar globbing over os.DirFS.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns every regular file under root matching pattern, sorted by relative path.
// Directories and other non-regular entries are excluded. No matches is not an error.
// Wildcards do not match dot-files or anything below a dot-directory unless the pattern
// itself names a dot-prefixed segment.
func (r *Resolver) Resolve(root, pattern string) ([]domain.ResolvedFile, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Join(domain.ErrInvalidPattern,
			zerr.With(zerr.New("malformed glob"), "pattern", pattern))
	}

	fsys, err := openRoot(root)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, errors.Join(domain.ErrInvalidPattern,
				zerr.With(zerr.Wrap(err, "malformed glob"), "pattern", pattern))
		}
		return nil, errors.Join(domain.ErrRootUnreadable,
			zerr.With(zerr.With(zerr.Wrap(err, "failed to traverse root"), "root", root), "pattern", pattern))
	}

	showHidden := hasDotSegment(pattern)

	files := make([]domain.ResolvedFile, 0, len(matches))
	for _, rel := range matches {
		if !showHidden && hasDotSegment(rel) {
			continue
		}

		// Stat follows symlinks, so a link to a regular file is kept and a link to a directory is not.
		info, err := iofs.Stat(fsys, rel)
		if err != nil {
			return nil, errors.Join(domain.ErrFileReadFailed,
				zerr.With(zerr.Wrap(err, "failed to stat matched file"), "path", rel))
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, domain.ResolvedFile{
			Path:    filepath.Join(root, filepath.FromSlash(rel)),
			RelPath: rel,
			Size:    info.Size(),
		})
	}

	slices.SortFunc(files, func(a, b domain.ResolvedFile) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})

	return files, nil
}

// hasDotSegment reports whether any slash-separated segment of path starts with a dot.
func hasDotSegment(path string) bool {
	for seg := range strings.SplitSeq(path, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// openRoot checks that root is a listable directory and returns a file system rooted at it.
func openRoot(root string) (iofs.FS, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Join(domain.ErrRootUnreadable,
			zerr.With(zerr.Wrap(err, "failed to stat root"), "root", root))
	}
	if !info.IsDir() {
		return nil, errors.Join(domain.ErrRootUnreadable,
			zerr.With(zerr.New("root is not a directory"), "root", root))
	}

	fsys := os.DirFS(root)
	if _, err := iofs.ReadDir(fsys, "."); err != nil {
		return nil, errors.Join(domain.ErrRootUnreadable,
			zerr.With(zerr.Wrap(err, "failed to list root"), "root", root))
	}

	return fsys, nil
}
