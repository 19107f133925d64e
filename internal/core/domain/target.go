package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// TargetKind discriminates the target variants.
type TargetKind int

const (
	// KindPod is a PodTarget.
	KindPod TargetKind = iota
	// KindAggregate is an AggregateTarget.
	KindAggregate
	// KindTest is a TestPodTarget.
	KindTest
)

// Target is the capability set shared by all target variants.
type Target interface {
	Kind() TargetKind
	Label() string
	ProductName() string
	SupportFilesDir() string
	BuildConfigurations() map[string]BuildConfigurationType
}

// BuildConfigurationType is the type of a user build configuration.
type BuildConfigurationType string

const (
	// ConfigurationDebug is a debug configuration.
	ConfigurationDebug BuildConfigurationType = "debug"
	// ConfigurationRelease is a release configuration.
	ConfigurationRelease BuildConfigurationType = "release"
)

// ParseBuildConfigurationType validates a build configuration type.
func ParseBuildConfigurationType(s string) (BuildConfigurationType, error) {
	switch t := BuildConfigurationType(s); t {
	case ConfigurationDebug, ConfigurationRelease:
		return t, nil
	default:
		return "", zerr.With(ErrUnknownConfigurationType, "type", s)
	}
}

// Inheritance is how an aggregate target relates to the targets it is nested in.
type Inheritance string

const (
	// InheritanceComplete links every declared dependency.
	InheritanceComplete Inheritance = "complete"
	// InheritanceSearchPaths only contributes search paths, relying on an ancestor to link.
	InheritanceSearchPaths Inheritance = "search_paths"
)

// ParseInheritance validates an inheritance mode. The empty string means complete.
func ParseInheritance(s string) (Inheritance, error) {
	switch Inheritance(s) {
	case "", InheritanceComplete:
		return InheritanceComplete, nil
	case InheritanceSearchPaths:
		return InheritanceSearchPaths, nil
	default:
		return "", zerr.With(ErrInvalidInheritance, "inheritance", s)
	}
}

// Sandbox is the directory all pods are installed into.
type Sandbox struct {
	Root string
}

// TargetSupportFilesDir returns the support files directory for the named target.
func (s Sandbox) TargetSupportFilesDir(name string) string {
	return filepath.Join(s.Root, "Target Support Files", name)
}

// TargetDefinition is one target declared in the user's dependency manifest.
type TargetDefinition struct {
	Name        string
	Inheritance Inheritance
	// Dependencies are the pod names (including subspecs) declared for this target.
	Dependencies []string
	// ConfigurationWhitelist restricts a pod name to the listed build configurations.
	ConfigurationWhitelist map[string][]string
	// Platform is nil when the platform is derived from the user targets.
	Platform *Platform
	// UserProjectPath is relative to the installation root. Empty selects the only project.
	UserProjectPath string
	// BuildConfigurations override the derived configuration types.
	BuildConfigurations map[string]BuildConfigurationType
}

// PodWhitelistedForConfiguration reports whether the pod is enabled for the configuration.
func (d *TargetDefinition) PodWhitelistedForConfiguration(pod, configuration string) bool {
	list, ok := d.ConfigurationWhitelist[pod]
	if !ok || len(list) == 0 {
		return true
	}
	return slices.ContainsFunc(list, func(c string) bool {
		return strings.EqualFold(c, configuration)
	})
}

// escapeConfigurationName lower-cases a configuration name and replaces path separators.
func escapeConfigurationName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), string(filepath.Separator), "-")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
