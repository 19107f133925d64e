package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingSpec is returned when a test target is constructed without a specification.
	ErrMissingSpec = zerr.New("can't initialize a test target without a spec")

	// ErrNotTestSpec is returned when a test target is constructed from a non-test specification.
	ErrNotTestSpec = zerr.New("can't initialize a test target without a test spec")

	// ErrMissingPodTarget is returned when a test target is constructed without a parent pod target.
	ErrMissingPodTarget = zerr.New("can't initialize a test target without a pod target")

	// ErrUnknownTestType is returned when a test type has no matching product type.
	ErrUnknownTestType = zerr.New("unknown test type")

	// ErrUnknownProductType is returned when a product type has no matching test type.
	ErrUnknownProductType = zerr.New("unknown product type")

	// ErrMultipleSwiftVersions is returned when the native targets backing one declared
	// target disagree on SWIFT_VERSION.
	ErrMultipleSwiftVersions = zerr.New("there may only be up to 1 unique SWIFT_VERSION per target")

	// ErrPlatformMismatch is returned when native targets backing one declared target
	// have different platforms.
	ErrPlatformMismatch = zerr.New("targets with different platforms")

	// ErrUndeterminedPlatform is returned when no platform can be derived for a target.
	ErrUndeterminedPlatform = zerr.New("unable to determine the platform for target")

	// ErrProjectNotFound is returned when a declared user project does not exist.
	ErrProjectNotFound = zerr.New("unable to find the project")

	// ErrAmbiguousProject is returned when no project is declared and the root holds
	// zero or several candidates.
	ErrAmbiguousProject = zerr.New("could not automatically select a project")

	// ErrTargetNotFound is returned when a user project has no native target with the declared name.
	ErrTargetNotFound = zerr.New("unable to find a target")

	// ErrBuildConfigurationConflict is returned when subspecs of one pod are whitelisted
	// for different build configurations.
	ErrBuildConfigurationConflict = zerr.New("subspecs across different build configurations")

	// ErrUnknownPod is returned when a manifest references a pod target that was not declared.
	ErrUnknownPod = zerr.New("unknown pod target")

	// ErrUnknownAggregate is returned when a manifest references an aggregate target that was not declared.
	ErrUnknownAggregate = zerr.New("unknown aggregate target")

	// ErrUnknownSpec is returned when a manifest references a specification that was not declared.
	ErrUnknownSpec = zerr.New("unknown specification")

	// ErrEmptyPod is returned when a manifest declares a pod target without specifications.
	ErrEmptyPod = zerr.New("pod target declares no specifications")

	// ErrDuplicateSpec is returned when two specifications share the same name.
	ErrDuplicateSpec = zerr.New("specification already exists")

	// ErrDuplicateTarget is returned when two targets share the same label.
	ErrDuplicateTarget = zerr.New("target already exists")

	// ErrUnknownPlatform is returned when a platform name is not one of ios, osx, tvos or watchos.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrUnknownConfigurationType is returned when a build configuration type is neither debug nor release.
	ErrUnknownConfigurationType = zerr.New("unknown build configuration type, expected 'debug' or 'release'")

	// ErrInvalidInheritance is returned when an inheritance mode is neither complete nor search_paths.
	ErrInvalidInheritance = zerr.New("invalid inheritance, expected 'complete' or 'search_paths'")

	// ErrRelativeFrameworkPath is returned when a framework path is not absolute.
	ErrRelativeFrameworkPath = zerr.New("absolute path is required")

	// ErrMalformedSetting is returned when a settings document line is not of the form KEY = value.
	ErrMalformedSetting = zerr.New("malformed build setting")

	// ErrMissingAppHost is returned when a test requires an app host that was not created.
	ErrMissingAppHost = zerr.New("app host target not found")

	// ErrNativeTargetNotFound is returned when a native target handle is not known to the writer.
	ErrNativeTargetNotFound = zerr.New("native target not found")

	// ErrInvalidBuildConfiguration is returned when a build configuration has no name.
	ErrInvalidBuildConfiguration = zerr.New("build configuration name is empty")

	// ErrBuildConfigurationNotFound is returned when a native target has no configuration with the given name.
	ErrBuildConfigurationNotFound = zerr.New("build configuration not found")

	// ErrFileReferenceNotFound is returned when a file reference handle is not known to the writer.
	ErrFileReferenceNotFound = zerr.New("file reference not found")

	// ErrGroupNotFound is returned when a group handle is not known to the writer.
	ErrGroupNotFound = zerr.New("group not found")

	// ErrUnknownTarget is returned when a command names a target that is neither a pod, test nor
	// aggregate target.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrNoTargetsSpecified is returned when a command needs a target name and none was given.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest file")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest file")

	// ErrStoreReadFailed is returned when the digest store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read digest store")

	// ErrStoreWriteFailed is returned when the digest store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write digest store")

	// ErrInvalidDigest is returned when a recorded digest is not of the form algorithm:encoded.
	ErrInvalidDigest = zerr.New("invalid digest")

	// ErrDocumentWriteFailed is returned when a rendered document cannot be written.
	ErrDocumentWriteFailed = zerr.New("failed to write document")

	// ErrInstallationFailed is returned when an installation step aborts.
	ErrInstallationFailed = zerr.New("installation failed")
)
