package ports

// ProjectFinder defines the interface for locating user projects on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ProjectFinder interface {
	// Exists reports whether path exists.
	Exists(path string) bool
	// Glob returns the entries of dir matching pattern, sorted by name.
	Glob(dir, pattern string) ([]string, error)
}
