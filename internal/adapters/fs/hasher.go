package fs

import (
	"crypto/md5" //nolint:gosec // Cache fingerprints, not a security boundary
	"encoding/hex"
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides content hashing for files and byte slices.
// Manifest digests are MD5; change detection during copying uses XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the MD5 digest of a file's content as 32 lowercase hex characters.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", errors.Join(domain.ErrFileReadFailed,
			zerr.With(zerr.Wrap(err, "failed to open file"), "path", path))
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := md5.New() //nolint:gosec // See import
	if _, err := io.Copy(digest, f); err != nil {
		return "", errors.Join(domain.ErrFileReadFailed,
			zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path))
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// HashBytes computes the MD5 digest of data as 32 lowercase hex characters.
func (h *Hasher) HashBytes(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec // See import
	return hex.EncodeToString(sum[:])
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}
