package ports

import "go.trai.ch/podgen/internal/core/domain"

// ProjectWriter records the native targets, dependency edges, build setting overrides and
// file references the output project must contain. Implementations never require the engine
// to know how the project is serialized.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_writer.go -destination=mocks/mock_project_writer.go -package=mocks
type ProjectWriter interface {
	// AddBuildConfiguration adds a project build configuration that every native target,
	// existing or created later, carries.
	AddBuildConfiguration(name string) error

	// NewNativeTarget creates a native target with every project build configuration.
	NewNativeTarget(name string, productType domain.ProductType, platform domain.Platform) (domain.NativeTarget, error)

	// AddDependency adds a dependency edge from target to dependency.
	AddDependency(target, dependency domain.NativeTarget) error

	// AddSourceFile adds the file at path to the sources of target.
	AddSourceFile(target domain.NativeTarget, path string) error

	// NativeTargets returns every native target of the project in creation order.
	NativeTargets() []domain.NativeTarget

	// BuildConfigurations returns the build configuration names of target.
	BuildConfigurations(target domain.NativeTarget) ([]string, error)

	// BuildSetting returns the value of key for target in configuration.
	BuildSetting(target domain.NativeTarget, configuration, key string) (string, error)

	// SetBuildSetting overrides key for target in configuration.
	SetBuildSetting(target domain.NativeTarget, configuration, key, value string) error

	// EnsureGroup returns the project-root-level group with the given name, creating it at
	// path when absent.
	EnsureGroup(name, path string) (domain.Group, error)

	// FileReferences returns the file references of group.
	FileReferences(group domain.Group) ([]domain.FileReference, error)

	// SetFileReferencePath repoints ref to path.
	SetFileReferencePath(ref domain.FileReference, path string) error

	// NewFileReference creates a file reference to path inside group.
	NewFileReference(group domain.Group, path string) (domain.FileReference, error)
}
