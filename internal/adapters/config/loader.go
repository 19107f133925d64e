// Package config provides the manifest loader for podgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the manifest file name looked up by the CLI.
const DefaultManifestName = "podgen.yaml"

const defaultSandbox = "Pods"

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest at path and returns the installation it describes.
func (l *Loader) Load(path string) (*domain.Installation, error) {
	var m Manifest
	if err := readAndUnmarshalYAML(path, &m); err != nil {
		return nil, err
	}

	root := resolveRoot(path, m.Root)
	sandboxDir := m.Sandbox
	if sandboxDir == "" {
		sandboxDir = defaultSandbox
	}
	sandbox := domain.Sandbox{Root: absolute(root, sandboxDir)}

	b := &builder{
		logger:  l.Logger,
		root:    root,
		sandbox: sandbox,
		options: domain.InstallationOptions{
			SetARCCompatibilityFlag: m.Options.SetARCCompatibilityFlag,
			GenerateDigests:         m.Options.GenerateDigests,
		},
		graph: domain.NewGraph(),
		specs: make(map[string]*domain.Specification),
	}
	if err := b.addSpecs(m.Specs); err != nil {
		return nil, err
	}
	if err := b.addPods(m.Pods); err != nil {
		return nil, err
	}
	if err := b.addTargets(m.Targets); err != nil {
		return nil, err
	}
	projects, err := convertUserProjects(m.UserProjects)
	if err != nil {
		return nil, err
	}

	return &domain.Installation{
		Root:         root,
		Sandbox:      sandbox,
		Options:      b.options,
		Graph:        b.graph,
		UserProjects: projects,
	}, nil
}

type builder struct {
	logger  ports.Logger
	root    string
	sandbox domain.Sandbox
	options domain.InstallationOptions
	graph   *domain.Graph
	specs   map[string]*domain.Specification
}

func (b *builder) addSpecs(dtos []SpecDTO) error {
	for _, dto := range dtos {
		if _, exists := b.specs[dto.Name]; exists {
			return zerr.With(domain.ErrDuplicateSpec, "spec", dto.Name)
		}
		spec := &domain.Specification{
			Name:            domain.NewInternedString(dto.Name),
			TestType:        domain.TestType(dto.TestType),
			RequiresAppHost: dto.RequiresAppHost,
		}
		if spec.IsTestSpecification() {
			if _, err := domain.ProductTypeForTestType(spec.TestType); err != nil {
				return zerr.With(err, "spec", dto.Name)
			}
		}
		if len(dto.Consumers) > 0 {
			spec.Consumers = make(map[domain.PlatformName]*domain.Consumer, len(dto.Consumers))
		}
		for name, c := range dto.Consumers {
			platform, err := domain.ParsePlatformName(name)
			if err != nil {
				return zerr.With(err, "spec", dto.Name)
			}
			spec.Consumers[platform] = &domain.Consumer{
				Platform:          platform,
				Libraries:         c.Libraries,
				Frameworks:        c.Frameworks,
				WeakFrameworks:    c.WeakFrameworks,
				PodTargetXCConfig: c.PodTargetXCConfig,
				RequiresARC:       c.RequiresARC,
				SwiftVersion:      c.SwiftVersion,
			}
		}
		b.specs[dto.Name] = spec
	}
	return nil
}

func (b *builder) addPods(dtos []PodDTO) error {
	ids := make([]domain.PodID, 0, len(dtos))
	for _, dto := range dtos {
		pod, err := b.newPod(dto)
		if err != nil {
			return err
		}
		id, err := b.graph.AddPod(pod)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	// Dependencies are resolved once every label is registered.
	for i, dto := range dtos {
		deps, err := b.podIDs(dto.Dependencies)
		if err != nil {
			return zerr.With(err, "pod", b.graph.Pod(ids[i]).Label())
		}
		b.graph.SetDependents(ids[i], deps...)

		testDeps, err := b.podIDs(dto.TestDependencies)
		if err != nil {
			return zerr.With(err, "pod", b.graph.Pod(ids[i]).Label())
		}
		b.graph.SetTestDependents(ids[i], testDeps...)
	}
	return nil
}

func (b *builder) newPod(dto PodDTO) (*domain.PodTarget, error) {
	if len(dto.Specs) == 0 {
		return nil, domain.ErrEmptyPod
	}
	specs := make([]*domain.Specification, 0, len(dto.Specs))
	for _, name := range dto.Specs {
		spec, ok := b.specs[name]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownSpec, "spec", name)
		}
		specs = append(specs, spec)
	}
	platform, err := convertPlatform(dto.Platform)
	if err != nil {
		return nil, zerr.With(err, "pod", dto.Specs[0])
	}
	configs, err := convertConfigurations(dto.BuildConfigurations)
	if err != nil {
		return nil, zerr.With(err, "pod", dto.Specs[0])
	}

	pod := domain.NewPodTarget(b.sandbox, platform, specs, nil)
	pod.Archs = dto.Archs
	pod.HostRequiresFrameworks = dto.HostRequiresFrameworks
	pod.InhibitWarnings = dto.InhibitWarnings
	pod.SwiftVersion = dto.SwiftVersion
	pod.ARCCompatibility = b.options.SetARCCompatibilityFlag
	pod.UserBuildConfigurations = configs

	for _, fa := range dto.FileAccessors {
		accessor, err := b.newFileAccessor(pod, fa)
		if err != nil {
			return nil, err
		}
		pod.FileAccessors = append(pod.FileAccessors, accessor)
	}
	if dto.Scope != "" {
		pod = pod.Scoped(dto.Scope)
	}
	return pod, nil
}

func (b *builder) newFileAccessor(pod *domain.PodTarget, dto FileAccessorDTO) (*domain.FileAccessor, error) {
	spec, ok := b.specs[dto.Spec]
	if !ok || !slices.Contains(pod.Specs, spec) {
		err := zerr.With(domain.ErrUnknownSpec, "spec", dto.Spec)
		return nil, zerr.With(err, "pod", pod.PodName())
	}
	bundles := make(map[string][]string, len(dto.ResourceBundles))
	for name, paths := range dto.ResourceBundles {
		bundles[name] = b.sandboxPaths(paths)
	}
	return &domain.FileAccessor{
		Spec:                      spec,
		Platform:                  pod.Platform.Name,
		SourceFiles:               b.sandboxPaths(dto.SourceFiles),
		Resources:                 b.sandboxPaths(dto.Resources),
		ResourceBundles:           bundles,
		VendoredStaticFrameworks:  b.sandboxPaths(dto.VendoredStaticFrameworks),
		VendoredStaticLibraries:   b.sandboxPaths(dto.VendoredStaticLibraries),
		VendoredDynamicFrameworks: b.sandboxPaths(dto.VendoredDynamicFrameworks),
		VendoredDynamicLibraries:  b.sandboxPaths(dto.VendoredDynamicLibraries),
	}, nil
}

func (b *builder) addTargets(dtos []TargetDTO) error {
	aggregates := make([]*domain.AggregateTarget, 0, len(dtos))
	byName := make(map[string]domain.AggregateID, len(dtos))
	for _, dto := range dtos {
		a, err := b.newAggregate(dto)
		if err != nil {
			return zerr.With(err, "target", dto.Name)
		}
		id, err := b.graph.AddAggregate(a)
		if err != nil {
			return err
		}
		byName[dto.Name] = id
		aggregates = append(aggregates, a)
	}

	for i, dto := range dtos {
		for _, name := range dto.SearchPathsAncestors {
			id, ok := byName[name]
			if !ok {
				err := zerr.With(domain.ErrUnknownAggregate, "ancestor", name)
				return zerr.With(err, "target", dto.Name)
			}
			aggregates[i].SearchPathsAncestors = append(aggregates[i].SearchPathsAncestors, id)
		}
	}
	return nil
}

func (b *builder) newAggregate(dto TargetDTO) (*domain.AggregateTarget, error) {
	inheritance, err := domain.ParseInheritance(dto.Inheritance)
	if err != nil {
		return nil, err
	}
	overrides, err := convertConfigurations(dto.BuildConfigurations)
	if err != nil {
		return nil, err
	}
	def := &domain.TargetDefinition{
		Name:                   dto.Name,
		Inheritance:            inheritance,
		Dependencies:           dto.Dependencies,
		ConfigurationWhitelist: dto.ConfigurationWhitelist,
		UserProjectPath:        dto.Project,
		BuildConfigurations:    overrides,
	}
	if dto.Platform != nil {
		platform, err := convertPlatform(*dto.Platform)
		if err != nil {
			return nil, err
		}
		def.Platform = &platform
	}

	a := domain.NewAggregateTarget(b.sandbox, def)
	a.ClientRoot = b.root
	a.Archs = dto.Archs
	a.HostRequiresFrameworks = dto.HostRequiresFrameworks
	a.SwiftVersion = dto.SwiftVersion
	if len(overrides) > 0 {
		a.UserBuildConfigurations = overrides
	}
	a.ResourcePathsByConfig = dto.ResourcePaths
	if dto.Project != "" {
		a.UserProjectPath = absolute(b.root, dto.Project)
	}

	for _, label := range dto.Pods {
		pod, ok := b.graph.PodByLabel(label)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownPod, "pod", label)
		}
		pod.TargetDefinitions = append(pod.TargetDefinitions, def)
		a.PodTargets = append(a.PodTargets, pod.ID())
		if def.Platform == nil && a.Platform.Name == "" {
			a.Platform = pod.Platform
		}
	}
	if def.Platform != nil {
		a.Platform = *def.Platform
	}
	if len(a.PodTargets) == 0 && b.logger != nil {
		b.logger.Warn(fmt.Sprintf("target %s declares no pods", dto.Name))
	}

	for _, ut := range dto.UserTargets {
		target, err := convertUserTarget(ut)
		if err != nil {
			return nil, err
		}
		a.UserTargets = append(a.UserTargets, target)
	}
	return a, nil
}

func (b *builder) podIDs(labels []string) ([]domain.PodID, error) {
	out := make([]domain.PodID, 0, len(labels))
	for _, label := range labels {
		pod, ok := b.graph.PodByLabel(label)
		if !ok {
			return nil, zerr.With(domain.ErrUnknownPod, "dependency", label)
		}
		out = append(out, pod.ID())
	}
	return out, nil
}

func (b *builder) sandboxPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, absolute(b.sandbox.Root, p))
	}
	return out
}

func convertUserProjects(dtos map[string][]UserTargetDTO) (map[string][]domain.UserTarget, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	out := make(map[string][]domain.UserTarget, len(dtos))
	for path, targets := range dtos {
		for _, dto := range targets {
			target, err := convertUserTarget(dto)
			if err != nil {
				return nil, zerr.With(err, "project", path)
			}
			out[filepath.ToSlash(path)] = append(out[filepath.ToSlash(path)], target)
		}
	}
	return out, nil
}

func convertUserTarget(dto UserTargetDTO) (domain.UserTarget, error) {
	platform, err := convertPlatform(dto.Platform)
	if err != nil {
		return domain.UserTarget{}, zerr.With(err, "user_target", dto.Name)
	}
	return domain.UserTarget{
		Name:          dto.Name,
		ProductType:   domain.ProductType(dto.ProductType),
		Platform:      platform,
		BuildSettings: dto.BuildSettings,
		SourceFiles:   dto.SourceFiles,
	}, nil
}

func convertPlatform(dto PlatformDTO) (domain.Platform, error) {
	if dto.Name == "" {
		return domain.Platform{DeploymentTarget: dto.DeploymentTarget}, nil
	}
	name, err := domain.ParsePlatformName(dto.Name)
	if err != nil {
		return domain.Platform{}, err
	}
	return domain.Platform{Name: name, DeploymentTarget: dto.DeploymentTarget}, nil
}

func convertConfigurations(dtos map[string]string) (map[string]domain.BuildConfigurationType, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	out := make(map[string]domain.BuildConfigurationType, len(dtos))
	for name, typ := range dtos {
		t, err := domain.ParseBuildConfigurationType(typ)
		if err != nil {
			return nil, zerr.With(err, "configuration", name)
		}
		out[name] = t
	}
	return out, nil
}

func resolveRoot(manifestPath, configuredRoot string) string {
	return absolute(filepath.Dir(manifestPath), configuredRoot)
}

func absolute(base, path string) string {
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}
