package domain

// FileGroup is a named partition of distribution files sharing one cache fingerprint.
type FileGroup struct {
	Name    string
	Pattern string
}

// ResolvedFile is a regular file matched by a group's pattern.
type ResolvedFile struct {
	// Path is the host path used to read the file.
	Path string
	// RelPath is relative to the resolution root and always uses forward slashes.
	RelPath string
	// Size is the file size in bytes.
	Size int64
	// Digest is the 32 character lowercase hex content digest.
	Digest string
}

// GroupResult is the outcome of evaluating one group against the limits.
type GroupResult struct {
	Name        string
	Fingerprint string
	Files       []ResolvedFile
	TotalSize   int64
	Accepted    bool
}

// FileCount returns the number of files in the group.
func (r GroupResult) FileCount() int {
	return len(r.Files)
}

// RelPaths returns the relative paths of the group's files, in the order they are held.
func (r GroupResult) RelPaths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.RelPath
	}
	return paths
}
