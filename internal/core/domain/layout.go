package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the pipeline configuration file.
	ConfigFileName = "precache.yaml"

	// DefaultDevDirName is the development tree copied into the distribution tree.
	DefaultDevDirName = "app"

	// DefaultDistDirName is the distribution tree the manifest is generated from.
	DefaultDistDirName = "dist"

	// DefaultHelpersDirName holds the worker template and helper scripts.
	DefaultHelpersDirName = "service-worker-helpers"

	// TemplateFileName is the name of the worker script template inside the helpers directory.
	TemplateFileName = "service-worker.tmpl"

	// DefaultOutputFileName is the generated worker script, written to the distribution root.
	DefaultOutputFileName = "service-worker.js"

	// DefaultPlaceholder is the token in the template replaced by the serialized manifest.
	DefaultPlaceholder = "<%= cacheOptions %>"

	// HelperScriptPattern selects the helper scripts mirrored into the development tree.
	HelperScriptPattern = "*.js"

	// DefaultMaxBytes is the default ceiling on a group's cumulative size (1MB).
	DefaultMaxBytes int64 = 1024 * 1024

	// DefaultMaxFiles is the default ceiling on a group's file count.
	DefaultMaxFiles = 100

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultTemplatePath returns the template path relative to the project root.
// It joins the helpers directory and the template file name.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultHelpersDirName, TemplateFileName)
}
