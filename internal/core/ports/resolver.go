package ports

import "go.trai.ch/precache/internal/core/domain"

// FileResolver defines the interface for expanding a selection pattern into files.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type FileResolver interface {
	// Resolve returns every regular file under root whose root-relative path matches pattern.
	// The returned files carry Path, RelPath and Size; Digest is left empty.
	Resolve(root, pattern string) ([]domain.ResolvedFile, error)
}
