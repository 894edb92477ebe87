package ports

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the lowercase hex digest of the file's bytes.
	HashFile(path string) (string, error)
	// HashBytes returns the lowercase hex digest of data.
	HashBytes(data []byte) string
}
