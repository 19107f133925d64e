package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Hash returns the hex encoded hash of content.
	Hash(content []byte) string
	// HashFile returns the hash of the file at path, or an empty string if it does not exist.
	HashFile(path string) (string, error)
}
