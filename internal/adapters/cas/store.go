// Package cas records content digests of the documents an installation writes.
package cas

import (
	_ "crypto/sha256" // registers the canonical digest algorithm
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Digest returns the canonical content digest of content.
func Digest(content []byte) string {
	return digest.FromBytes(content).String()
}

// NewDigest builds the digest record of a document written at path.
func NewDigest(path string, content []byte) domain.DocumentDigest {
	return domain.DocumentDigest{Path: path, Digest: Digest(content), Timestamp: time.Now()}
}

// Store implements ports.DigestStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.DocumentDigest
}

// Open implements ports.DigestStoreOpener.
func Open(path string) (ports.DigestStore, error) {
	s, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore creates a new DigestStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.DocumentDigest),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}
	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Get retrieves the digest recorded for path.
func (s *Store) Get(path string) (*domain.DocumentDigest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.cache[path]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// Put validates and stores the digest, then persists the store.
func (s *Store) Put(d domain.DocumentDigest) error {
	if _, err := digest.Parse(d.Digest); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrInvalidDigest.Error()), "digest", d.Digest)
		return zerr.With(err, "path", d.Path)
	}

	s.mu.Lock()
	s.cache[d.Path] = d
	s.mu.Unlock()

	return s.save()
}

// Matches reports whether content is what was last recorded for path.
func (s *Store) Matches(path string, content []byte) bool {
	s.mu.RLock()
	d, ok := s.cache[path]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	parsed, err := digest.Parse(d.Digest)
	if err != nil {
		return false
	}
	v := parsed.Verifier()
	if _, err := v.Write(content); err != nil {
		return false
	}
	return v.Verified()
}
