// Package integration wires the native targets of an installation together.
package integration

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// PodsGroupName is the project-root-level group holding vendored dependency files.
	PodsGroupName = "Pods"

	assetCatalogExt = ".xcassets"
	podsRootPrefix  = "${PODS_ROOT}/"
)

// Wirer emits the dependency edges and setting overrides of one installation.
// It is single-use: Wire runs every step once, in order.
type Wirer struct {
	graph   *domain.Graph
	result  *domain.InstallationResult
	project ports.ProjectWriter
}

// NewWirer creates a Wirer for the native targets recorded in result.
func NewWirer(g *domain.Graph, result *domain.InstallationResult, project ports.ProjectWriter) *Wirer {
	return &Wirer{graph: g, result: result, project: project}
}

// Wire runs every wiring step.
func (w *Wirer) Wire() error {
	steps := []func() error{
		w.WireAggregates,
		w.WirePods,
		w.WireTests,
		w.ApplyExtensionSettings,
		w.IntegrateAssetCatalogs,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// WireAggregates makes every aggregate depend on the pods it aggregates. Pods that build no
// product contribute their resource bundles instead.
func (w *Wirer) WireAggregates() error {
	for a := range w.graph.Aggregates() {
		ar, ok := w.result.Aggregate(a.ID())
		if !ok || ar.Native == nil {
			continue
		}
		for _, pod := range w.graph.AggregatedPods(a) {
			pr, _ := w.result.Pod(pod.ID())
			if pod.ShouldBuild() && pr.Native != nil {
				if err := w.depend(*ar.Native, *pr.Native); err != nil {
					return err
				}
				continue
			}
			if err := w.depend(*ar.Native, pr.ResourceBundleTargets...); err != nil {
				return err
			}
		}
	}
	return nil
}

// WirePods makes every pod that builds depend on its direct dependents and its resource bundles.
func (w *Wirer) WirePods() error {
	for pod := range w.graph.Pods() {
		pr, ok := w.result.Pod(pod.ID())
		if !ok || pr.Native == nil || !pod.ShouldBuild() {
			continue
		}
		for _, dep := range w.graph.DependentTargets(pod.ID()) {
			if dep.ID() == pod.ID() {
				continue
			}
			dr, _ := w.result.Pod(dep.ID())
			if dr.Native == nil {
				continue
			}
			if err := w.depend(*pr.Native, *dr.Native); err != nil {
				return err
			}
		}
		if err := w.depend(*pr.Native, pr.ResourceBundleTargets...); err != nil {
			return err
		}
	}
	return nil
}

// WireTests makes every test bundle depend on what it links, its app host and its resources.
func (w *Wirer) WireTests() error {
	for pod := range w.graph.Pods() {
		pr, ok := w.result.Pod(pod.ID())
		if !ok || len(pr.TestNativeTargets) == 0 {
			continue
		}
		tests, err := w.graph.TestTargets(pod.ID())
		if err != nil {
			return err
		}
		for _, test := range tests {
			native, ok := pr.TestNativeTarget(test.Label())
			if !ok {
				return zerr.With(domain.ErrNativeTargetNotFound, "target", test.Label())
			}
			if err := w.wireTest(test, pr, native); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Wirer) wireTest(test *domain.TestPodTarget, pr domain.TargetInstallationResult, native domain.NativeTarget) error {
	deps := w.graph.RecursiveTestDependentTargets(test)
	for _, dep := range deps {
		dr, _ := w.result.Pod(dep.ID())
		if dr.Native == nil {
			continue
		}
		if err := w.depend(native, *dr.Native); err != nil {
			return err
		}
	}

	parentLinked := slices.ContainsFunc(deps, func(p *domain.PodTarget) bool { return p.ID() == test.Pod.ID() })
	switch {
	case parentLinked:
	case pr.Native != nil:
		if err := w.depend(native, *pr.Native); err != nil {
			return err
		}
	default:
		if err := w.depend(native, pr.ResourceBundleTargets...); err != nil {
			return err
		}
	}

	if test.Spec.RequiresAppHost {
		host, err := w.appHost(test.AppHostLabel())
		if err != nil {
			return zerr.With(err, "test", test.Label())
		}
		if err := w.depend(native, host); err != nil {
			return err
		}
	}
	return w.depend(native, pr.TestResourceBundleTargets[test.Label()]...)
}

// appHost finds the app host native target by exact name.
func (w *Wirer) appHost(label string) (domain.NativeTarget, error) {
	targets := w.project.NativeTargets()
	i := slices.IndexFunc(targets, func(nt domain.NativeTarget) bool { return nt.Name == label })
	if i < 0 {
		return domain.NativeTarget{}, zerr.With(domain.ErrMissingAppHost, "app_host", label)
	}
	return targets[i], nil
}

// ApplyExtensionSettings restricts aggregates backing app extensions to the extension API.
func (w *Wirer) ApplyExtensionSettings() error {
	for a := range w.graph.Aggregates() {
		ar, ok := w.result.Aggregate(a.ID())
		if !ok || ar.Native == nil || len(a.PodTargets) == 0 || !isExtensionTarget(a) {
			continue
		}
		configs, err := w.project.BuildConfigurations(*ar.Native)
		if err != nil {
			return err
		}
		for _, config := range configs {
			err := w.project.SetBuildSetting(*ar.Native, config, domain.SettingApplicationExtensionAPIOnly, "YES")
			if err != nil {
				return zerr.With(err, "configuration", config)
			}
		}
	}
	return nil
}

func isExtensionTarget(a *domain.AggregateTarget) bool {
	for _, ut := range a.UserTargets {
		if ut.ProductType.IsExtension() {
			return true
		}
		if ut.CommonResolvedBuildSetting(domain.SettingApplicationExtensionAPIOnly) == "YES" {
			return true
		}
	}
	return false
}

// IntegrateAssetCatalogs references the asset catalogs of every aggregate from the Pods group.
func (w *Wirer) IntegrateAssetCatalogs() error {
	for a := range w.graph.Aggregates() {
		ar, ok := w.result.Aggregate(a.ID())
		if !ok || ar.Native == nil {
			continue
		}
		configs, err := w.project.BuildConfigurations(*ar.Native)
		if err != nil {
			return err
		}
		for _, config := range configs {
			for _, path := range a.ResourcePathsByConfig[config] {
				if !strings.HasSuffix(path, assetCatalogExt) {
					continue
				}
				if err := w.referenceAssetCatalog(a, path); err != nil {
					return zerr.With(err, "path", path)
				}
			}
		}
	}
	return nil
}

func (w *Wirer) referenceAssetCatalog(a *domain.AggregateTarget, resource string) error {
	group, err := w.project.EnsureGroup(PodsGroupName, a.RelativePodsRootPath())
	if err != nil {
		return err
	}
	path := groupRelative(a, resource)
	refs, err := w.project.FileReferences(group)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	i := slices.IndexFunc(refs, func(r domain.FileReference) bool { return r.Name == name })
	switch {
	case i < 0:
		_, err = w.project.NewFileReference(group, path)
	case refs[i].Path != path:
		err = w.project.SetFileReferencePath(refs[i], path)
	}
	return err
}

// groupRelative expresses a resource path relative to the Pods group, which sits at the
// sandbox root.
func groupRelative(a *domain.AggregateTarget, resource string) string {
	if rel, ok := strings.CutPrefix(resource, podsRootPrefix); ok {
		return rel
	}
	if filepath.IsAbs(resource) && a.Sandbox.Root != "" {
		if rel, err := filepath.Rel(a.Sandbox.Root, resource); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(resource)
}

func (w *Wirer) depend(target domain.NativeTarget, deps ...domain.NativeTarget) error {
	for _, dep := range deps {
		if err := w.project.AddDependency(target, dep); err != nil {
			return zerr.With(zerr.With(err, "target", target.Name), "dependency", dep.Name)
		}
	}
	return nil
}
