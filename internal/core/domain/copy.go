package domain

// CopyStats summarizes a copy stage run.
type CopyStats struct {
	// Copied is the number of files written to the destination.
	Copied int
	// Unchanged is the number of files skipped because the destination already held identical bytes.
	Unchanged int
	// Removed is the number of destination files deleted because their source is gone.
	Removed int
	// Bytes is the total size of the copied files.
	Bytes int64
}

// Add returns the sum of two stats.
func (s CopyStats) Add(other CopyStats) CopyStats {
	return CopyStats{
		Copied:    s.Copied + other.Copied,
		Unchanged: s.Unchanged + other.Unchanged,
		Removed:   s.Removed + other.Removed,
		Bytes:     s.Bytes + other.Bytes,
	}
}

// MirrorOptions controls how a tree is mirrored.
type MirrorOptions struct {
	// Ignore holds base-name patterns. Matching source files and directories are not mirrored.
	Ignore []string
	// Keep holds forward-slash paths relative to the destination that are never pruned.
	Keep []string
}
