package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPattern is returned when a group's file-selection pattern is malformed.
	ErrInvalidPattern = zerr.New("invalid selection pattern")

	// ErrRootUnreadable is returned when the directory a pattern is resolved against
	// does not exist, is not a directory, or cannot be listed.
	ErrRootUnreadable = zerr.New("root directory is not readable")

	// ErrFileReadFailed is returned when a matched file cannot be stat'ed or read while hashing.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrTemplateNotFound is returned when the worker script template cannot be read.
	ErrTemplateNotFound = zerr.New("template not found")

	// ErrTemplateMalformed is returned when the template does not contain exactly one placeholder.
	ErrTemplateMalformed = zerr.New("template must contain exactly one placeholder")

	// ErrOutputWriteFailed is returned when the generated script cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write generated script")

	// ErrManifestEncodeFailed is returned when the manifest cannot be serialized.
	ErrManifestEncodeFailed = zerr.New("failed to serialize manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidLimits is returned when a configured ceiling is negative.
	ErrInvalidLimits = zerr.New("limits must not be negative")

	// ErrInvalidGroupName is returned when a group name is empty or contains characters
	// other than letters, digits, '.', '_' and '-'.
	ErrInvalidGroupName = zerr.New("invalid group name")

	// ErrInvalidOutput is returned when the output path is absolute or escapes the distribution tree.
	ErrInvalidOutput = zerr.New("output must be a path inside the distribution directory")

	// ErrCopyFailed is returned when the copy stage fails to mirror a file.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrCleanFailed is returned when a generated directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean directory")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)
