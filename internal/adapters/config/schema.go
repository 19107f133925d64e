package config

// Manifest represents the structure of the podgen.yaml manifest.
type Manifest struct {
	Version string `yaml:"version"`
	// Root is the directory holding the user projects, relative to the manifest.
	Root string `yaml:"root"`
	// Sandbox is the pods directory, relative to Root.
	Sandbox      string                     `yaml:"sandbox"`
	Options      OptionsDTO                 `yaml:"options"`
	Specs        []SpecDTO                  `yaml:"specs"`
	Pods         []PodDTO                   `yaml:"pods"`
	Targets      []TargetDTO                `yaml:"targets"`
	UserProjects map[string][]UserTargetDTO `yaml:"user_projects"`
}

// OptionsDTO holds the installation toggles.
type OptionsDTO struct {
	SetARCCompatibilityFlag bool `yaml:"set_arc_compatibility_flag"`
	GenerateDigests         bool `yaml:"generate_digests"`
}

// PlatformDTO is a platform name and its deployment target.
type PlatformDTO struct {
	Name             string `yaml:"name"`
	DeploymentTarget string `yaml:"deployment_target"`
}

// SpecDTO represents a specification or subspec.
type SpecDTO struct {
	Name            string                 `yaml:"name"`
	TestType        string                 `yaml:"test_type"`
	RequiresAppHost bool                   `yaml:"requires_app_host"`
	Consumers       map[string]ConsumerDTO `yaml:"consumers"`
}

// ConsumerDTO is the per-platform view of a specification.
type ConsumerDTO struct {
	Libraries         []string          `yaml:"libraries"`
	Frameworks        []string          `yaml:"frameworks"`
	WeakFrameworks    []string          `yaml:"weak_frameworks"`
	PodTargetXCConfig map[string]string `yaml:"pod_target_xcconfig"`
	RequiresARC       bool              `yaml:"requires_arc"`
	SwiftVersion      string            `yaml:"swift_version"`
}

// FileAccessorDTO lists the files one specification contributes to a pod.
type FileAccessorDTO struct {
	Spec                      string              `yaml:"spec"`
	SourceFiles               []string            `yaml:"source_files"`
	Resources                 []string            `yaml:"resources"`
	ResourceBundles           map[string][]string `yaml:"resource_bundles"`
	VendoredStaticFrameworks  []string            `yaml:"vendored_static_frameworks"`
	VendoredStaticLibraries   []string            `yaml:"vendored_static_libraries"`
	VendoredDynamicFrameworks []string            `yaml:"vendored_dynamic_frameworks"`
	VendoredDynamicLibraries  []string            `yaml:"vendored_dynamic_libraries"`
}

// PodDTO represents a pod target. Pods reference each other by label.
type PodDTO struct {
	Specs                  []string          `yaml:"specs"`
	Scope                  string            `yaml:"scope"`
	Platform               PlatformDTO       `yaml:"platform"`
	Archs                  []string          `yaml:"archs"`
	HostRequiresFrameworks bool              `yaml:"host_requires_frameworks"`
	InhibitWarnings        bool              `yaml:"inhibit_warnings"`
	SwiftVersion           string            `yaml:"swift_version"`
	BuildConfigurations    map[string]string `yaml:"build_configurations"`
	FileAccessors          []FileAccessorDTO `yaml:"file_accessors"`
	Dependencies           []string          `yaml:"dependencies"`
	TestDependencies       []string          `yaml:"test_dependencies"`
}

// TargetDTO represents a user-declared target and its aggregate.
type TargetDTO struct {
	Name                   string              `yaml:"name"`
	Inheritance            string              `yaml:"inheritance"`
	Platform               *PlatformDTO        `yaml:"platform"`
	Project                string              `yaml:"project"`
	Dependencies           []string            `yaml:"dependencies"`
	ConfigurationWhitelist map[string][]string `yaml:"configuration_whitelist"`
	BuildConfigurations    map[string]string   `yaml:"build_configurations"`
	Pods                   []string            `yaml:"pods"`
	SearchPathsAncestors   []string            `yaml:"search_paths_ancestors"`
	HostRequiresFrameworks bool                `yaml:"host_requires_frameworks"`
	SwiftVersion           string              `yaml:"swift_version"`
	Archs                  []string            `yaml:"archs"`
	UserTargets            []UserTargetDTO     `yaml:"user_targets"`
	ResourcePaths          map[string][]string `yaml:"resource_paths"`
}

// UserTargetDTO represents a native target of a user project.
type UserTargetDTO struct {
	Name          string                       `yaml:"name"`
	ProductType   string                       `yaml:"product_type"`
	Platform      PlatformDTO                  `yaml:"platform"`
	BuildSettings map[string]map[string]string `yaml:"build_settings"`
	SourceFiles   []string                     `yaml:"source_files"`
}
