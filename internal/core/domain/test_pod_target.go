package domain

import (
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// TestPodTarget compiles one test specification against its parent pod target.
type TestPodTarget struct {
	Spec *Specification
	Pod  *PodTarget

	dependents []PodID
	cache      closureCache
}

// NewTestPodTarget validates and creates a test target.
func NewTestPodTarget(spec *Specification, pod *PodTarget) (*TestPodTarget, error) {
	if spec == nil {
		return nil, ErrMissingSpec
	}
	if !spec.IsTestSpecification() {
		return nil, zerr.With(ErrNotTestSpec, "spec", spec.Name.String())
	}
	if pod == nil {
		return nil, zerr.With(ErrMissingPodTarget, "spec", spec.Name.String())
	}
	if _, err := ProductTypeForTestType(spec.TestType); err != nil {
		return nil, err
	}
	return &TestPodTarget{Spec: spec, Pod: pod}, nil
}

// Kind implements Target.
func (t *TestPodTarget) Kind() TargetKind { return KindTest }

// TestType returns the test type of the spec.
func (t *TestPodTarget) TestType() TestType { return t.Spec.TestType }

// Platform returns the parent's platform.
func (t *TestPodTarget) Platform() Platform { return t.Pod.Platform }

// Label implements Target.
func (t *TestPodTarget) Label() string {
	return t.Pod.TestTargetLabel(t.TestType())
}

// ProductName implements Target.
func (t *TestPodTarget) ProductName() string {
	return t.Label() + ".xctest"
}

// ProductType returns the native product type of the test bundle.
func (t *TestPodTarget) ProductType() (ProductType, error) {
	return ProductTypeForTestType(t.TestType())
}

// SupportFilesDir implements Target. Test files live next to the parent's.
func (t *TestPodTarget) SupportFilesDir() string {
	return t.Pod.SupportFilesDir()
}

// BuildConfigurations implements Target.
func (t *TestPodTarget) BuildConfigurations() map[string]BuildConfigurationType {
	return t.Pod.BuildConfigurations()
}

// Dependents returns the test-only direct dependents.
func (t *TestPodTarget) Dependents() []PodID { return slices.Clone(t.dependents) }

// AppHostLabel returns the name of the app host native target the test runs in.
func (t *TestPodTarget) AppHostLabel() string {
	return AppHostLabel(t.Platform().Name, t.TestType())
}

// AppHostLabel returns the app host label for a platform and test type.
func AppHostLabel(platform PlatformName, testType TestType) string {
	return "AppHost-" + platform.StringName() + "-" + testType.Capitalized() + "-Tests"
}

// XCConfigPath returns the settings document path of the test target for a configuration.
func (t *TestPodTarget) XCConfigPath(configuration string) string {
	if configuration == "" {
		return filepath.Join(t.SupportFilesDir(), t.Label()+".xcconfig")
	}
	return filepath.Join(t.SupportFilesDir(), t.Label()+"."+escapeConfigurationName(configuration)+".xcconfig")
}

// CopyResourcesScriptPath returns the path of the resources copy script.
func (t *TestPodTarget) CopyResourcesScriptPath() string {
	return filepath.Join(t.SupportFilesDir(), t.Label()+"-resources.sh")
}

// EmbedFrameworksScriptPath returns the path of the frameworks embed script.
func (t *TestPodTarget) EmbedFrameworksScriptPath() string {
	return filepath.Join(t.SupportFilesDir(), t.Label()+"-frameworks.sh")
}

// InfoPlistPath returns the Info.plist path of the test bundle.
func (t *TestPodTarget) InfoPlistPath() string {
	return filepath.Join(t.SupportFilesDir(), t.Label()+"-Info.plist")
}

// PrefixHeaderPath returns the prefix header path of the test bundle.
func (t *TestPodTarget) PrefixHeaderPath() string {
	return filepath.Join(t.SupportFilesDir(), t.Label()+"-prefix.pch")
}

// ResourceBundleLabels returns the labels of the resource bundle targets of the test spec.
func (t *TestPodTarget) ResourceBundleLabels() []string {
	var out []string
	for _, fa := range t.Pod.FileAccessorsForSpec(t.Spec) {
		for _, name := range fa.ResourceBundleNames() {
			out = append(out, t.Pod.ResourcesBundleTargetLabel(name))
		}
	}
	return out
}
