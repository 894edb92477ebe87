package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Limits holds the ceilings a group must stay within to be precached.
type Limits struct {
	MaxBytes int64
	MaxFiles int
}

// DefaultLimits returns the 1MB / 100 file ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes: DefaultMaxBytes,
		MaxFiles: DefaultMaxFiles,
	}
}

// Accept reports whether a group of fileCount files totalling totalBytes fits within the limits.
// Both ceilings are inclusive.
func (l Limits) Accept(totalBytes int64, fileCount int) bool {
	return totalBytes <= l.MaxBytes && fileCount <= l.MaxFiles
}

// Config is the immutable input to a pipeline run.
// All directory and file paths are absolute once produced by the config loader.
type Config struct {
	Root        string
	DevDir      string
	DistDir     string
	HelpersDir  string
	Template    string
	Output      string
	Placeholder string
	Limits      Limits
	Groups      []FileGroup
	// CopyIgnore holds base-name patterns excluded from the development tree mirror.
	CopyIgnore []string
}

// DefaultGroups returns the stock partitioning of a distribution tree by asset type.
func DefaultGroups() []FileGroup {
	return []FileGroup{
		{Name: "css", Pattern: "css/**.css"},
		{Name: "html", Pattern: "**.html"},
		{Name: "images", Pattern: "images/**.*"},
		{Name: "js", Pattern: "js/**.js"},
	}
}

// DefaultConfig returns the configuration used when no config file exists, rooted at root.
func DefaultConfig(root string) Config {
	return Config{
		Root:        root,
		DevDir:      filepath.Join(root, DefaultDevDirName),
		DistDir:     filepath.Join(root, DefaultDistDirName),
		HelpersDir:  filepath.Join(root, DefaultHelpersDirName),
		Template:    filepath.Join(root, DefaultTemplatePath()),
		Output:      DefaultOutputFileName,
		Placeholder: DefaultPlaceholder,
		Limits:      DefaultLimits(),
		Groups:      DefaultGroups(),
	}
}

// OutputPath returns the absolute path of the generated worker script.
func (c Config) OutputPath() string {
	return filepath.Join(c.DistDir, c.Output)
}

// MirrorOptions returns how the development tree is mirrored into the distribution tree.
// The generated worker script is kept when stale files are pruned.
func (c Config) MirrorOptions() MirrorOptions {
	return MirrorOptions{
		Ignore: c.CopyIgnore,
		Keep:   []string{filepath.ToSlash(filepath.Clean(c.Output))},
	}
}

// HelpersTarget returns the directory inside the development tree that helper scripts
// are mirrored into.
func (c Config) HelpersTarget() string {
	return filepath.Join(c.DevDir, filepath.Base(c.HelpersDir))
}

// SortedGroups returns a copy of the groups ordered by name.
func (c Config) SortedGroups() []FileGroup {
	groups := slices.Clone(c.Groups)
	slices.SortFunc(groups, func(a, b FileGroup) int {
		return strings.Compare(a.Name, b.Name)
	})
	return groups
}
