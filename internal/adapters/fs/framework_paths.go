// Package fs provides file system adapters: framework artifact discovery, content hashing,
// document writing and user project lookup.
package fs

import (
	"path/filepath"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	dSYMExtension        = ".dSYM"
	bcSymbolMapExtension = ".bcsymbolmap"
	sandboxVariable      = "${PODS_ROOT}"
)

// FrameworkPaths describes a vendored framework and the debug-symbol artifacts that ship
// next to it.
type FrameworkPaths struct {
	sandboxRoot   string
	frameworkPath string

	once       sync.Once
	symbolMaps []string
}

// NewFrameworkPaths creates the paths of the framework at frameworkPath, which must be absolute.
func NewFrameworkPaths(sandboxRoot, frameworkPath string) (*FrameworkPaths, error) {
	if !filepath.IsAbs(frameworkPath) {
		return nil, zerr.With(domain.ErrRelativeFrameworkPath, "path", frameworkPath)
	}
	return &FrameworkPaths{
		sandboxRoot:   filepath.Clean(sandboxRoot),
		frameworkPath: filepath.Clean(frameworkPath),
	}, nil
}

// FrameworkPath returns the path of the framework bundle.
func (f *FrameworkPaths) FrameworkPath() string { return f.frameworkPath }

// DSYMPath returns the debug symbols expected next to the framework. The file name is the
// framework's file name with .dSYM appended.
func (f *FrameworkPaths) DSYMPath() string {
	return filepath.Join(filepath.Dir(f.frameworkPath), filepath.Base(f.frameworkPath)+dSYMExtension)
}

// BCSymbolMapPaths returns the symbol maps in the framework's directory, sorted by name.
// The directory is read on first access only.
func (f *FrameworkPaths) BCSymbolMapPaths() []string {
	f.once.Do(func() {
		// Glob only fails on a malformed pattern and the pattern is fixed.
		matches, _ := filepath.Glob(filepath.Join(filepath.Dir(f.frameworkPath), "*"+bcSymbolMapExtension))
		f.symbolMaps = matches
	})
	return slices.Clone(f.symbolMaps)
}

// AllPaths returns the framework, dSYM and symbol map paths.
func (f *FrameworkPaths) AllPaths() []string {
	return append([]string{f.frameworkPath, f.DSYMPath()}, f.BCSymbolMapPaths()...)
}

// RelativeFrameworkPath returns the framework as a sandbox-relative build variable expression.
func (f *FrameworkPaths) RelativeFrameworkPath() (string, error) {
	return f.relative(f.frameworkPath)
}

// RelativeDSYMPath returns the dSYM as a sandbox-relative build variable expression.
func (f *FrameworkPaths) RelativeDSYMPath() (string, error) {
	framework, err := f.RelativeFrameworkPath()
	if err != nil {
		return "", err
	}
	return framework + dSYMExtension, nil
}

// RelativeBCSymbolMapPaths returns the symbol maps as sandbox-relative build variable expressions.
func (f *FrameworkPaths) RelativeBCSymbolMapPaths() ([]string, error) {
	maps := f.BCSymbolMapPaths()
	out := make([]string, 0, len(maps))
	for _, p := range maps {
		rel, err := f.relative(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

// AllRelativePaths returns the framework, dSYM and symbol maps as sandbox-relative build
// variable expressions.
func (f *FrameworkPaths) AllRelativePaths() ([]string, error) {
	framework, err := f.RelativeFrameworkPath()
	if err != nil {
		return nil, err
	}
	maps, err := f.RelativeBCSymbolMapPaths()
	if err != nil {
		return nil, err
	}
	return append([]string{framework, framework + dSYMExtension}, maps...), nil
}

func (f *FrameworkPaths) relative(path string) (string, error) {
	rel, err := filepath.Rel(f.sandboxRoot, path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to relativize framework path"), "path", path)
	}
	return sandboxVariable + "/" + filepath.ToSlash(rel), nil
}

// Equal reports whether f and other describe the same framework, dSYM and symbol maps.
func (f *FrameworkPaths) Equal(other *FrameworkPaths) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.frameworkPath == other.frameworkPath &&
		f.DSYMPath() == other.DSYMPath() &&
		slices.Equal(f.BCSymbolMapPaths(), other.BCSymbolMapPaths())
}

// Hash returns a hash over the framework, dSYM and symbol map paths. Equal values have
// equal hashes.
func (f *FrameworkPaths) Hash() uint64 {
	h := xxhash.New()
	for _, p := range f.AllPaths() {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// ArtifactResolver implements ports.ArtifactResolver. Framework paths are cached per
// sandbox and framework so each directory is scanned once.
type ArtifactResolver struct {
	mu    sync.Mutex
	cache map[[2]string]*FrameworkPaths
}

// NewArtifactResolver creates an ArtifactResolver.
func NewArtifactResolver() *ArtifactResolver {
	return &ArtifactResolver{cache: make(map[[2]string]*FrameworkPaths)}
}

// FrameworkPaths returns the cached paths of the framework at path.
func (r *ArtifactResolver) FrameworkPaths(sandboxRoot, path string) (*FrameworkPaths, error) {
	key := [2]string{sandboxRoot, path}

	r.mu.Lock()
	defer r.mu.Unlock()
	if fp, ok := r.cache[key]; ok {
		return fp, nil
	}
	fp, err := NewFrameworkPaths(sandboxRoot, path)
	if err != nil {
		return nil, err
	}
	r.cache[key] = fp
	return fp, nil
}

// RelativeFrameworkPaths implements ports.ArtifactResolver.
func (r *ArtifactResolver) RelativeFrameworkPaths(sandboxRoot, path string) ([]string, error) {
	fp, err := r.FrameworkPaths(sandboxRoot, path)
	if err != nil {
		return nil, err
	}
	return fp.AllRelativePaths()
}
