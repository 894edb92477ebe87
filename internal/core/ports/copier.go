package ports

import (
	"context"

	"go.trai.ch/precache/internal/core/domain"
)

// Copier defines the interface for mirroring files between trees.
//
//go:generate mockgen -source=copier.go -destination=mocks/mock_copier.go -package=mocks
type Copier interface {
	// CopyTree mirrors every regular file under src into dst, preserving relative paths.
	// Files under dst without a source counterpart are removed unless opts keeps them.
	CopyTree(ctx context.Context, src, dst string, opts domain.MirrorOptions) (domain.CopyStats, error)
	// CopyMatching copies the regular files under src matching pattern into dst.
	CopyMatching(ctx context.Context, src, pattern, dst string) (domain.CopyStats, error)
}
