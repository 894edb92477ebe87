// Package fs provides file system adapters for resolving, hashing and copying files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the root-relative, forward-slash path of every regular file under root.
// Ignore patterns are doublestar globs matched against entry base names. Directories matching
// one are skipped entirely, matching files are not yielded.
// A traversal error is yielded once and ends the walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.ignored(d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if !yield(filepath.ToSlash(rel), nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// ignored reports whether an entry name is always skipped or matches one of the ignore patterns.
func (w *Walker) ignored(name string, ignores []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := doublestar.Match(ignore, name); matched {
			return true
		}
	}

	return false
}
