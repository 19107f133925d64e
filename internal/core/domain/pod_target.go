package domain

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// DefaultConfigurationBuildDir is the build variable prefixing pod build products.
const DefaultConfigurationBuildDir = "$PODS_CONFIGURATION_BUILD_DIR"

// PodTarget is the compiled unit of one pod for one platform.
type PodTarget struct {
	id PodID

	Specs             []*Specification
	TargetDefinitions []*TargetDefinition
	FileAccessors     []*FileAccessor
	Sandbox           Sandbox
	Platform          Platform
	Archs             []string

	HostRequiresFrameworks  bool
	ARCCompatibility        bool
	InhibitWarnings         bool
	SwiftVersion            string
	UserBuildConfigurations map[string]BuildConfigurationType

	scopeSuffix    string
	dependents     []PodID
	testDependents []PodID

	cache closureCache
}

// NewPodTarget creates an unregistered pod target for the given specs.
// The first spec must be the root spec.
func NewPodTarget(sandbox Sandbox, platform Platform, specs []*Specification, defs []*TargetDefinition) *PodTarget {
	return &PodTarget{
		id:                unregistered,
		Specs:             specs,
		TargetDefinitions: defs,
		Sandbox:           sandbox,
		Platform:          platform,
	}
}

// ID returns the arena handle of the target, or -1 if it is not registered in a graph.
func (p *PodTarget) ID() PodID { return p.id }

// Kind implements Target.
func (p *PodTarget) Kind() TargetKind { return KindPod }

// ScopeSuffix returns the scope suffix, empty for canonical targets.
func (p *PodTarget) ScopeSuffix() string { return p.scopeSuffix }

// Scoped returns an independent copy of the target carrying the given scope suffix.
// The copy is unregistered and shares no mutable state with the receiver.
func (p *PodTarget) Scoped(suffix string) *PodTarget {
	c := &PodTarget{
		id:                      unregistered,
		Specs:                   slices.Clone(p.Specs),
		TargetDefinitions:       slices.Clone(p.TargetDefinitions),
		FileAccessors:           slices.Clone(p.FileAccessors),
		Sandbox:                 p.Sandbox,
		Platform:                p.Platform,
		Archs:                   slices.Clone(p.Archs),
		HostRequiresFrameworks:  p.HostRequiresFrameworks,
		ARCCompatibility:        p.ARCCompatibility,
		InhibitWarnings:         p.InhibitWarnings,
		SwiftVersion:            p.SwiftVersion,
		UserBuildConfigurations: p.UserBuildConfigurations,
		scopeSuffix:             suffix,
		dependents:              slices.Clone(p.dependents),
		testDependents:          slices.Clone(p.testDependents),
	}
	return c
}

// ScopedCopies returns one scoped copy per target definition, each scoped to that definition.
func (p *PodTarget) ScopedCopies() []*PodTarget {
	out := make([]*PodTarget, 0, len(p.TargetDefinitions))
	for _, def := range p.TargetDefinitions {
		c := p.Scoped(def.Name)
		c.TargetDefinitions = []*TargetDefinition{def}
		out = append(out, c)
	}
	return out
}

// RootSpec returns the root specification.
func (p *PodTarget) RootSpec() *Specification {
	for _, s := range p.Specs {
		if s.IsRoot() {
			return s
		}
	}
	return p.Specs[0]
}

// PodName returns the name of the pod.
func (p *PodTarget) PodName() string {
	return p.RootSpec().RootName()
}

// Label returns the pod name, followed by the scope suffix if any.
func (p *PodTarget) Label() string {
	switch {
	case p.scopeSuffix == "":
		return p.PodName()
	case strings.HasPrefix(p.scopeSuffix, "."):
		return p.PodName() + p.scopeSuffix
	default:
		return p.PodName() + "-" + p.scopeSuffix
	}
}

// Name is an alias of Label.
func (p *PodTarget) Name() string { return p.Label() }

// ProductModuleName returns the C99 identifier of the root spec name.
func (p *PodTarget) ProductModuleName() string {
	return c99Identifier(p.PodName())
}

// RequiresFrameworks reports whether the pod is built as a framework.
func (p *PodTarget) RequiresFrameworks() bool { return p.HostRequiresFrameworks }

// ProductType returns framework or static library depending on the host.
func (p *PodTarget) ProductType() ProductType {
	if p.RequiresFrameworks() {
		return ProductTypeFramework
	}
	return ProductTypeStaticLibrary
}

// FrameworkName returns the framework bundle name of the target.
func (p *PodTarget) FrameworkName() string {
	return p.ProductModuleName() + ".framework"
}

// StaticLibraryName returns the static library file name of the target.
func (p *PodTarget) StaticLibraryName() string {
	return "lib" + p.Label() + ".a"
}

// ProductName implements Target.
func (p *PodTarget) ProductName() string {
	if p.RequiresFrameworks() {
		return p.FrameworkName()
	}
	return p.StaticLibraryName()
}

// BuildConfigurations implements Target.
func (p *PodTarget) BuildConfigurations() map[string]BuildConfigurationType {
	return p.UserBuildConfigurations
}

// SupportFilesDir implements Target.
func (p *PodTarget) SupportFilesDir() string {
	return p.Sandbox.TargetSupportFilesDir(p.Label())
}

// XCConfigPath returns the settings document path for a configuration. An empty
// configuration returns the configuration independent path.
func (p *PodTarget) XCConfigPath(configuration string) string {
	if configuration == "" {
		return filepath.Join(p.SupportFilesDir(), p.Label()+".xcconfig")
	}
	return filepath.Join(p.SupportFilesDir(), p.Label()+"."+escapeConfigurationName(configuration)+".xcconfig")
}

// PrefixHeaderPath returns the prefix header path.
func (p *PodTarget) PrefixHeaderPath() string {
	return filepath.Join(p.SupportFilesDir(), p.Label()+"-prefix.pch")
}

// BridgeSupportPath returns the bridge support file path.
func (p *PodTarget) BridgeSupportPath() string {
	return filepath.Join(p.SupportFilesDir(), p.Label()+".bridgesupport")
}

// InfoPlistPath returns the Info.plist path.
func (p *PodTarget) InfoPlistPath() string {
	return filepath.Join(p.SupportFilesDir(), "Info.plist")
}

// DummySourcePath returns the dummy source file path.
func (p *PodTarget) DummySourcePath() string {
	return filepath.Join(p.SupportFilesDir(), p.Label()+"-dummy.m")
}

// ConfigurationBuildDir returns the CONFIGURATION_BUILD_DIR of the target below dir.
// An empty dir uses DefaultConfigurationBuildDir.
func (p *PodTarget) ConfigurationBuildDir(dir string) string {
	if dir == "" {
		dir = DefaultConfigurationBuildDir
	}
	return dir + "/" + p.Label()
}

// BuildProductPath returns the path of the built product below dir.
func (p *PodTarget) BuildProductPath(dir string) string {
	return p.ConfigurationBuildDir(dir) + "/" + p.ProductName()
}

// ResourcesBundleTargetLabel returns the label of the resource bundle target for bundle.
func (p *PodTarget) ResourcesBundleTargetLabel(bundle string) string {
	return p.Label() + "-" + bundle
}

// ResourceBundleLabels returns the resource bundle target labels of the non-test specs.
func (p *PodTarget) ResourceBundleLabels() []string {
	var out []string
	for _, fa := range p.NonTestFileAccessors() {
		for _, name := range fa.ResourceBundleNames() {
			out = append(out, p.ResourcesBundleTargetLabel(name))
		}
	}
	return out
}

// TestTargetLabel returns the label of the test target for the test type.
func (p *PodTarget) TestTargetLabel(t TestType) string {
	return p.Label() + "-" + t.Capitalized() + "-Tests"
}

// Dependents returns the direct dependent targets in declaration order.
func (p *PodTarget) Dependents() []PodID { return slices.Clone(p.dependents) }

// TestDependents returns the direct test-only dependent targets.
func (p *PodTarget) TestDependents() []PodID { return slices.Clone(p.testDependents) }

// SpecConsumers returns the consumers of every spec for the target platform.
func (p *PodTarget) SpecConsumers() []*Consumer {
	out := make([]*Consumer, 0, len(p.Specs))
	for _, s := range p.Specs {
		out = append(out, s.Consumer(p.Platform.Name))
	}
	return out
}

// SetsARCCompatibilityFlag reports whether the installation requests the -fobjc-arc linker flag.
func (p *PodTarget) SetsARCCompatibilityFlag() bool { return p.ARCCompatibility }

// TestSpecs returns the test specifications of the target.
func (p *PodTarget) TestSpecs() []*Specification {
	var out []*Specification
	for _, s := range p.Specs {
		if s.IsTestSpecification() {
			out = append(out, s)
		}
	}
	return out
}

// ContainsTestSpecifications reports whether any spec is a test spec.
func (p *PodTarget) ContainsTestSpecifications() bool {
	return len(p.TestSpecs()) > 0
}

// SupportedTestTypes returns the distinct test types in declaration order.
func (p *PodTarget) SupportedTestTypes() []TestType {
	var out []TestType
	for _, s := range p.TestSpecs() {
		if !slices.Contains(out, s.TestType) {
			out = append(out, s.TestType)
		}
	}
	return out
}

// NonTestFileAccessors returns the file accessors that do not belong to a test spec.
func (p *PodTarget) NonTestFileAccessors() []*FileAccessor {
	var out []*FileAccessor
	for _, fa := range p.FileAccessors {
		if !fa.Spec.IsTestSpecification() {
			out = append(out, fa)
		}
	}
	return out
}

// FileAccessorsForSpec returns the file accessors that belong to spec.
func (p *PodTarget) FileAccessorsForSpec(spec *Specification) []*FileAccessor {
	var out []*FileAccessor
	for _, fa := range p.FileAccessors {
		if fa.Spec == spec {
			out = append(out, fa)
		}
	}
	return out
}

// ShouldBuild reports whether the target has any compilable, non-header source.
func (p *PodTarget) ShouldBuild() bool {
	return slices.ContainsFunc(p.NonTestFileAccessors(), (*FileAccessor).HasCompilableSources)
}

// UsesSwift reports whether any non-test source file is Swift.
func (p *PodTarget) UsesSwift() bool {
	return slices.ContainsFunc(p.NonTestFileAccessors(), (*FileAccessor).HasSwiftSources)
}

// ResourcePaths returns the resource paths to copy for the target, resources before bundles
// for each file accessor.
func (p *PodTarget) ResourcePaths(includeTests bool) []string {
	var out []string
	for _, fa := range p.FileAccessors {
		if !includeTests && fa.Spec.IsTestSpecification() {
			continue
		}
		for _, r := range fa.Resources {
			out = append(out, "${PODS_ROOT}/"+p.sandboxRelative(r))
		}
		for _, name := range fa.ResourceBundleNames() {
			out = append(out, "${PODS_CONFIGURATION_BUILD_DIR}/"+name+".bundle")
		}
	}
	return out
}

// EmbeddedFramework describes a framework copied into a consumer's bundle.
type EmbeddedFramework struct {
	Name       string `yaml:"name"`
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`
}

// FrameworkPaths returns the frameworks that must be embedded by consumers of the target.
func (p *PodTarget) FrameworkPaths(includeTests bool) []EmbeddedFramework {
	var out []EmbeddedFramework
	if p.ShouldBuild() && p.RequiresFrameworks() {
		out = append(out, EmbeddedFramework{
			Name:       p.ProductName(),
			InputPath:  p.BuildProductPath("${BUILT_PRODUCTS_DIR}"),
			OutputPath: "${TARGET_BUILD_DIR}/${FRAMEWORKS_FOLDER_PATH}/" + p.ProductName(),
		})
	}
	for _, fa := range p.FileAccessors {
		if !includeTests && fa.Spec.IsTestSpecification() {
			continue
		}
		for _, artifact := range fa.VendoredDynamicArtifacts() {
			name := filepath.Base(artifact)
			out = append(out, EmbeddedFramework{
				Name:       name,
				InputPath:  "${PODS_ROOT}/" + p.sandboxRelative(artifact),
				OutputPath: "${TARGET_BUILD_DIR}/${FRAMEWORKS_FOLDER_PATH}/" + name,
			})
		}
	}
	return out
}

// IncludeInBuildConfig reports whether the target is built for the configuration of def.
// It fails when the subspecs of the pod are whitelisted for different configurations.
func (p *PodTarget) IncludeInBuildConfig(def *TargetDefinition, configuration string) (bool, error) {
	var whitelists []bool
	for _, dep := range def.Dependencies {
		root, _, _ := strings.Cut(dep, "/")
		if root != p.PodName() {
			continue
		}
		w := def.PodWhitelistedForConfiguration(dep, configuration)
		if !slices.Contains(whitelists, w) {
			whitelists = append(whitelists, w)
		}
	}
	switch len(whitelists) {
	case 0:
		return true, nil
	case 1:
		return whitelists[0], nil
	default:
		err := zerr.With(ErrBuildConfigurationConflict, "pod", p.PodName())
		return false, zerr.With(err, "target", def.Name)
	}
}

func (p *PodTarget) sandboxRelative(path string) string {
	if !filepath.IsAbs(path) || p.Sandbox.Root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(p.Sandbox.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func c99Identifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
