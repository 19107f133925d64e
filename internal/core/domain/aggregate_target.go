package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// UserTarget is a native target of the user's project backing an aggregate target.
type UserTarget struct {
	Name        string
	ProductType ProductType
	Platform    Platform
	// BuildSettings holds the resolved build settings per configuration name.
	BuildSettings map[string]map[string]string
	SourceFiles   []string
}

// HasSwiftSources reports whether the target compiles any Swift file.
func (u UserTarget) HasSwiftSources() bool {
	return slices.ContainsFunc(u.SourceFiles, func(f string) bool {
		return strings.EqualFold(filepath.Ext(f), ".swift")
	})
}

// CommonResolvedBuildSetting returns the value of key when every configuration agrees on it,
// or the empty string otherwise.
func (u UserTarget) CommonResolvedBuildSetting(key string) string {
	var value string
	for i, name := range sortedKeys(u.BuildSettings) {
		v := u.BuildSettings[name][key]
		if i > 0 && v != value {
			return ""
		}
		value = v
	}
	return value
}

// ResolvedBuildSettingValues returns the distinct non-empty values of key in configuration order.
func (u UserTarget) ResolvedBuildSettingValues(key string) []string {
	var out []string
	for _, name := range sortedKeys(u.BuildSettings) {
		if v := u.BuildSettings[name][key]; v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// AggregateTarget is the compilation unit of one user-declared target.
type AggregateTarget struct {
	id AggregateID

	Definition *TargetDefinition
	Sandbox    Sandbox
	Platform   Platform
	Archs      []string
	// ClientRoot is the directory of the user project.
	ClientRoot      string
	UserProjectPath string
	UserTargets     []UserTarget

	UserBuildConfigurations map[string]BuildConfigurationType
	// ResourcePathsByConfig holds the resource paths to copy per configuration name.
	ResourcePathsByConfig map[string][]string

	HostRequiresFrameworks bool
	SwiftVersion           string

	// PodTargets are the pod targets aggregated by this target, in declaration order.
	PodTargets []PodID
	// SearchPathsAncestors are the aggregates this target inherits search paths from.
	SearchPathsAncestors []AggregateID
}

// DefaultBuildConfigurations returns the build configurations of a target that declares none.
func DefaultBuildConfigurations() map[string]BuildConfigurationType {
	return map[string]BuildConfigurationType{
		"Debug":   ConfigurationDebug,
		"Release": ConfigurationRelease,
	}
}

// NewAggregateTarget creates an unregistered aggregate target with the default build
// configurations.
func NewAggregateTarget(sandbox Sandbox, def *TargetDefinition) *AggregateTarget {
	return &AggregateTarget{
		id:                      unregistered,
		Sandbox:                 sandbox,
		Definition:              def,
		UserBuildConfigurations: DefaultBuildConfigurations(),
	}
}

// ID returns the arena handle of the target.
func (a *AggregateTarget) ID() AggregateID { return a.id }

// Kind implements Target.
func (a *AggregateTarget) Kind() TargetKind { return KindAggregate }

// Name returns the name of the target definition.
func (a *AggregateTarget) Name() string { return a.Definition.Name }

// Label implements Target.
func (a *AggregateTarget) Label() string {
	if a.Definition.Name == "Pods" {
		return "Pods"
	}
	return "Pods-" + a.Definition.Name
}

// Inheritance returns the inheritance mode of the definition.
func (a *AggregateTarget) Inheritance() Inheritance {
	if a.Definition.Inheritance == "" {
		return InheritanceComplete
	}
	return a.Definition.Inheritance
}

// RequiresFrameworks reports whether pods are built as frameworks for this target.
func (a *AggregateTarget) RequiresFrameworks() bool { return a.HostRequiresFrameworks }

// ProductName implements Target.
func (a *AggregateTarget) ProductName() string {
	if a.RequiresFrameworks() {
		return c99Identifier(a.Label()) + ".framework"
	}
	return "lib" + a.Label() + ".a"
}

// ProductType returns the native product type of the aggregate.
func (a *AggregateTarget) ProductType() ProductType {
	if a.RequiresFrameworks() {
		return ProductTypeFramework
	}
	return ProductTypeStaticLibrary
}

// SupportFilesDir implements Target.
func (a *AggregateTarget) SupportFilesDir() string {
	return a.Sandbox.TargetSupportFilesDir(a.Label())
}

// BuildConfigurations implements Target.
func (a *AggregateTarget) BuildConfigurations() map[string]BuildConfigurationType {
	return a.UserBuildConfigurations
}

// ConfigurationNames returns the configuration names sorted by name.
func (a *AggregateTarget) ConfigurationNames() []string {
	return sortedKeys(a.UserBuildConfigurations)
}

// XCConfigPath returns the settings document path for a configuration.
func (a *AggregateTarget) XCConfigPath(configuration string) string {
	return filepath.Join(a.SupportFilesDir(), a.Label()+"."+escapeConfigurationName(configuration)+".xcconfig")
}

// FrameworksInputFileListPath returns the path of the list of frameworks embedded into the
// user targets in configuration.
func (a *AggregateTarget) FrameworksInputFileListPath(configuration string) string {
	return filepath.Join(a.SupportFilesDir(), a.Label()+"-frameworks-"+configuration+"-input-files.xcfilelist")
}

// RelativePodsRootPath returns the sandbox root relative to the client root.
func (a *AggregateTarget) RelativePodsRootPath() string {
	if a.ClientRoot == "" {
		return filepath.Base(a.Sandbox.Root)
	}
	rel, err := filepath.Rel(a.ClientRoot, a.Sandbox.Root)
	if err != nil {
		return a.Sandbox.Root
	}
	return filepath.ToSlash(rel)
}

// RelativePodsRoot returns the sandbox root as a build variable expression.
func (a *AggregateTarget) RelativePodsRoot() string {
	return "${SRCROOT}/" + a.RelativePodsRootPath()
}

// UserTargetNames returns the names of the backing user targets.
func (a *AggregateTarget) UserTargetNames() []string {
	out := make([]string, 0, len(a.UserTargets))
	for _, u := range a.UserTargets {
		out = append(out, u.Name)
	}
	return out
}

// IncludesPod reports whether id is aggregated by the target.
func (a *AggregateTarget) IncludesPod(id PodID) bool {
	return slices.Contains(a.PodTargets, id)
}

// PodTargetsForBuildConfiguration returns the pod targets included in the configuration.
func (g *Graph) PodTargetsForBuildConfiguration(a *AggregateTarget, configuration string) ([]*PodTarget, error) {
	var out []*PodTarget
	for _, id := range a.PodTargets {
		p := g.pods[id]
		ok, err := p.IncludeInBuildConfig(a.Definition, configuration)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// AggregatedPods resolves the pod targets of a to targets.
func (g *Graph) AggregatedPods(a *AggregateTarget) []*PodTarget {
	return g.resolve(a.PodTargets)
}
