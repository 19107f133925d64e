// Package inspector derives the settings of an aggregate target from the user project
// backing it.
package inspector

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-version"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
)

const projectExt = ".xcodeproj"

// Result is what inspecting one target definition yields.
type Result struct {
	Definition           *domain.TargetDefinition
	ProjectPath          string
	Targets              []domain.UserTarget
	BuildConfigurations  map[string]domain.BuildConfigurationType
	Platform             domain.Platform
	Archs                []string
	SwiftVersion         string
	RecommendsFrameworks bool
}

// Inspector reads the user project of a target definition.
type Inspector struct {
	finder ports.ProjectFinder
	logger ports.Logger
}

// New creates an Inspector.
func New(finder ports.ProjectFinder, logger ports.Logger) *Inspector {
	return &Inspector{finder: finder, logger: logger}
}

// Inspect computes every property of def. projects maps project paths relative to root to
// their native targets.
func (i *Inspector) Inspect(root string, def *domain.TargetDefinition, projects map[string][]domain.UserTarget) (*Result, error) {
	path, err := i.ComputeProjectPath(root, def)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	targets, err := ComputeTargets(def, projects[filepath.ToSlash(rel)])
	if err != nil {
		return nil, err
	}
	platform, err := i.ComputePlatform(def, targets)
	if err != nil {
		return nil, err
	}
	swiftVersion, err := ComputeSwiftVersion(targets)
	if err != nil {
		return nil, zerr.With(err, "target", def.Name)
	}
	return &Result{
		Definition:           def,
		ProjectPath:          path,
		Targets:              targets,
		BuildConfigurations:  ComputeBuildConfigurations(def, targets),
		Platform:             platform,
		Archs:                ComputeArchs(targets),
		SwiftVersion:         swiftVersion,
		RecommendsFrameworks: ComputeRecommendsFrameworks(platform, targets),
	}, nil
}

// ComputeProjectPath returns the declared project, or the only project found in root.
func (i *Inspector) ComputeProjectPath(root string, def *domain.TargetDefinition) (string, error) {
	if def.UserProjectPath != "" {
		path := filepath.Join(root, def.UserProjectPath)
		if filepath.Ext(path) != projectExt {
			path += projectExt
		}
		if !i.finder.Exists(path) {
			err := zerr.With(domain.ErrProjectNotFound, "path", path)
			return "", zerr.With(err, "target", def.Name)
		}
		return path, nil
	}
	candidates, err := i.finder.Glob(root, "*"+projectExt)
	if err != nil {
		return "", zerr.Wrap(err, "failed to list projects")
	}
	if len(candidates) != 1 {
		err := zerr.With(domain.ErrAmbiguousProject, "root", root)
		return "", zerr.With(err, "candidates", len(candidates))
	}
	return candidates[0], nil
}

// ComputeTargets returns the native target named after def.
func ComputeTargets(def *domain.TargetDefinition, nativeTargets []domain.UserTarget) ([]domain.UserTarget, error) {
	i := slices.IndexFunc(nativeTargets, func(t domain.UserTarget) bool { return t.Name == def.Name })
	if i < 0 {
		found := make([]string, 0, len(nativeTargets))
		for _, t := range nativeTargets {
			found = append(found, "`"+t.Name+"`")
		}
		err := zerr.With(domain.ErrTargetNotFound, "target", def.Name)
		return nil, zerr.With(err, "found", strings.Join(found, ", "))
	}
	return []domain.UserTarget{nativeTargets[i]}, nil
}

// ComputeBuildConfigurations maps every configuration of targets to its type. Debug is the
// only debug configuration unless def overrides it. Without any configuration the default
// Debug and Release configurations are returned.
func ComputeBuildConfigurations(def *domain.TargetDefinition, targets []domain.UserTarget) map[string]domain.BuildConfigurationType {
	out := make(map[string]domain.BuildConfigurationType)
	for _, t := range targets {
		for name := range t.BuildSettings {
			if name == "Debug" {
				out[name] = domain.ConfigurationDebug
			} else {
				out[name] = domain.ConfigurationRelease
			}
		}
	}
	for name, typ := range def.BuildConfigurations {
		out[name] = typ
	}
	if len(out) == 0 {
		return domain.DefaultBuildConfigurations()
	}
	return out
}

// ComputePlatform returns the declared platform, or the common platform of targets with
// the lowest deployment target among them.
func (i *Inspector) ComputePlatform(def *domain.TargetDefinition, targets []domain.UserTarget) (domain.Platform, error) {
	if def.Platform != nil {
		return *def.Platform, nil
	}
	var (
		name   domain.PlatformName
		lowest *version.Version
	)
	for _, t := range targets {
		if name == "" {
			name = t.Platform.Name
		}
		if t.Platform.Name != name {
			err := zerr.With(domain.ErrPlatformMismatch, "target", def.Name)
			return domain.Platform{}, zerr.With(err, "platforms", string(name)+", "+string(t.Platform.Name))
		}
		if t.Platform.DeploymentTarget == "" {
			continue
		}
		v, err := version.NewVersion(t.Platform.DeploymentTarget)
		if err != nil {
			return domain.Platform{}, zerr.With(zerr.Wrap(err, "invalid deployment target"), "target", t.Name)
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
		}
	}
	if name == "" {
		return domain.Platform{}, zerr.With(domain.ErrUndeterminedPlatform, "target", def.Name)
	}
	platform := domain.Platform{Name: name}
	if lowest != nil {
		platform.DeploymentTarget = lowest.Original()
	}
	i.logger.Warn(fmt.Sprintf(
		"Automatically assigning platform %s with version %s on target %s because no platform was specified.",
		name.StringName(), platform.DeploymentTarget, def.Name,
	))
	return platform, nil
}

// ComputeArchs returns the sorted distinct ARCHS declared by targets.
func ComputeArchs(targets []domain.UserTarget) []string {
	var out []string
	for _, t := range targets {
		if archs := t.CommonResolvedBuildSetting(domain.SettingArchs); archs != "" {
			out = append(out, archs)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ComputeRecommendsFrameworks reports whether the targets should consume pods as frameworks.
func ComputeRecommendsFrameworks(platform domain.Platform, targets []domain.UserTarget) bool {
	return platform.SupportsDynamicFrameworks() || slices.ContainsFunc(targets, domain.UserTarget.HasSwiftSources)
}

// ComputeSwiftVersion returns the single SWIFT_VERSION of targets, or an empty string when
// none declares one.
func ComputeSwiftVersion(targets []domain.UserTarget) (string, error) {
	type pair struct{ target, version string }
	var (
		pairs    []pair
		versions []string
	)
	for _, t := range targets {
		for _, v := range t.ResolvedBuildSettingValues(domain.SettingSwiftVersion) {
			if !slices.Contains(pairs, pair{t.Name, v}) {
				pairs = append(pairs, pair{t.Name, v})
			}
			if !slices.Contains(versions, v) {
				versions = append(versions, v)
			}
		}
	}
	switch len(versions) {
	case 0:
		return "", nil
	case 1:
		return versions[0], nil
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		return strings.Compare(a.target+" "+a.version, b.target+" "+b.version)
	})
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, p.target+": Swift "+p.version)
	}
	return "", zerr.With(domain.ErrMultipleSwiftVersions, "targets", strings.Join(lines, "\n"))
}
