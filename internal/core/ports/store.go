package ports

import "go.trai.ch/podgen/internal/core/domain"

// DigestStore defines the interface for storing and retrieving document digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DigestStore interface {
	// Get retrieves the digest recorded for path.
	// Returns nil, nil if not found.
	Get(path string) (*domain.DocumentDigest, error)

	// Put stores the digest.
	Put(digest domain.DocumentDigest) error

	// Matches reports whether content is what was last recorded for path.
	Matches(path string, content []byte) bool
}

// DigestStoreOpener opens the digest store persisted at path.
type DigestStoreOpener func(path string) (DigestStore, error)
