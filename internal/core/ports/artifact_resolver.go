package ports

// ArtifactResolver derives the companion artifacts of vendored frameworks.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact_resolver.go -destination=mocks/mock_artifact_resolver.go -package=mocks
type ArtifactResolver interface {
	// RelativeFrameworkPaths returns the framework at path, its dSYM and its symbol maps
	// as ${PODS_ROOT} expressions relative to sandboxRoot. path must be absolute.
	RelativeFrameworkPaths(sandboxRoot, path string) ([]string, error)
}
