package manifest

import (
	"slices"
	"strings"

	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
)

// Fingerprint returns the group fingerprint of files: the digest of their sorted, concatenated
// content digests. It depends only on the multiset of file contents, so neither file order
// nor file paths affect it. An empty group hashes the empty string.
func Fingerprint(hasher ports.Hasher, files []domain.ResolvedFile) string {
	digests := make([]string, len(files))
	for i, f := range files {
		digests[i] = f.Digest
	}
	slices.Sort(digests)

	return hasher.HashBytes([]byte(strings.Join(digests, "")))
}
