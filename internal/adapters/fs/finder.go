package fs

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectFinder = (*Finder)(nil)

// Finder implements ports.ProjectFinder on the local file system.
type Finder struct{}

// NewFinder creates a new Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// Exists reports whether path exists.
func (f *Finder) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Glob returns the entries of dir matching pattern, sorted by name.
func (f *Finder) Glob(dir, pattern string) ([]string, error) {
	path := filepath.Join(dir, pattern)
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
	}
	sort.Strings(matches)
	return matches, nil
}
