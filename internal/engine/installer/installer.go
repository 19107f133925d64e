// Package installer orchestrates one installation: it creates the native targets,
// composes their settings documents and wires them together.
package installer

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/podgen/internal/engine/buildsettings"
	"go.trai.ch/podgen/internal/engine/inspector"
	"go.trai.ch/podgen/internal/engine/integration"
	"go.trai.ch/zerr"
)

// Output is what an installation produces.
type Output struct {
	Result *domain.InstallationResult
	// Documents are the rendered files, relative to the sandbox root.
	Documents []domain.Document
}

// Installer runs installations against a project writer.
type Installer struct {
	project   ports.ProjectWriter
	tracer    ports.Tracer
	logger    ports.Logger
	inspector *inspector.Inspector
	artifacts ports.ArtifactResolver
}

// New creates an Installer. A nil inspector skips user project inspection and a nil
// artifact resolver embeds built frameworks only.
func New(
	project ports.ProjectWriter,
	tracer ports.Tracer,
	logger ports.Logger,
	insp *inspector.Inspector,
	artifacts ports.ArtifactResolver,
) *Installer {
	return &Installer{project: project, tracer: tracer, logger: logger, inspector: insp, artifacts: artifacts}
}

// Install runs every installation phase in order. The first failing phase aborts the run.
func (i *Installer) Install(ctx context.Context, inst *domain.Installation) (out *Output, err error) {
	ctx, span := i.tracer.Start(ctx, "install")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()
	span.SetAttribute("pods", inst.Graph.PodCount())

	i.tracer.EmitPlan(ctx, planLabels(inst.Graph))

	if err := i.phase(ctx, "inspect", func() error { return i.inspect(inst) }); err != nil {
		return nil, err
	}

	var result *domain.InstallationResult
	err = i.phase(ctx, "generate", func() error {
		var genErr error
		result, genErr = i.generate(inst)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	err = i.phase(ctx, "compose", func() error {
		var composeErr error
		docs, composeErr = i.compose(inst)
		return composeErr
	})
	if err != nil {
		return nil, err
	}

	var hostSources []domain.Document
	err = i.phase(ctx, "wire", func() error {
		if err := integration.NewWirer(inst.Graph, result, i.project).Wire(); err != nil {
			return err
		}
		var hostErr error
		hostSources, hostErr = i.appHostSources(inst)
		return hostErr
	})
	if err != nil {
		return nil, err
	}
	docs = append(docs, hostSources...)
	i.logger.Info(fmt.Sprintf("Generated %d native targets and %d documents", len(i.project.NativeTargets()), len(docs)))
	return &Output{Result: result, Documents: docs}, nil
}

func (i *Installer) phase(ctx context.Context, name string, fn func() error) error {
	_, span := i.tracer.Start(ctx, name)
	defer span.End()
	if err := fn(); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrInstallationFailed.Error()), "phase", name)
	}
	return nil
}

func planLabels(g *domain.Graph) []string {
	var labels []string
	for p := range g.Pods() {
		labels = append(labels, p.Label())
	}
	for a := range g.Aggregates() {
		labels = append(labels, a.Label())
	}
	return labels
}

// inspect fills aggregates that declare no user targets from the user projects.
func (i *Installer) inspect(inst *domain.Installation) error {
	if i.inspector == nil || len(inst.UserProjects) == 0 {
		return nil
	}
	for a := range inst.Graph.Aggregates() {
		if len(a.UserTargets) > 0 {
			continue
		}
		res, err := i.inspector.Inspect(inst.Root, a.Definition, inst.UserProjects)
		if err != nil {
			return err
		}
		a.UserProjectPath = res.ProjectPath
		a.UserTargets = res.Targets
		a.UserBuildConfigurations = res.BuildConfigurations
		a.Platform = res.Platform
		a.Archs = res.Archs
		if a.SwiftVersion == "" {
			a.SwiftVersion = res.SwiftVersion
		}
		if res.RecommendsFrameworks && !a.HostRequiresFrameworks && len(a.PodTargets) > 0 {
			i.logger.Warn(fmt.Sprintf("%s could consume its pods as frameworks", a.Label()))
		}
	}
	return nil
}

func (i *Installer) generate(inst *domain.Installation) (*domain.InstallationResult, error) {
	if err := i.addBuildConfigurations(inst.Graph); err != nil {
		return nil, err
	}
	b := domain.NewInstallationResultBuilder()
	hosts := make(map[string]domain.NativeTarget)

	for pod := range inst.Graph.Pods() {
		r, err := i.generatePod(inst.Graph, pod, hosts)
		if err != nil {
			return nil, zerr.With(err, "target", pod.Label())
		}
		b.SetPod(pod.ID(), r)
	}
	for a := range inst.Graph.Aggregates() {
		nt, err := i.project.NewNativeTarget(a.Label(), a.ProductType(), a.Platform)
		if err != nil {
			return nil, zerr.With(err, "target", a.Label())
		}
		b.SetAggregate(a.ID(), domain.TargetInstallationResult{Label: a.Label(), Native: &nt})
	}
	return b.Build(), nil
}

// addBuildConfigurations adds the configurations of every aggregate to the project, so the
// native targets created afterwards carry the configurations found by inspection.
func (i *Installer) addBuildConfigurations(g *domain.Graph) error {
	names := make(map[string]bool)
	for a := range g.Aggregates() {
		for _, name := range a.ConfigurationNames() {
			names[name] = true
		}
	}
	for _, name := range slices.Sorted(maps.Keys(names)) {
		if err := i.project.AddBuildConfiguration(name); err != nil {
			return zerr.With(err, "configuration", name)
		}
	}
	return nil
}

func (i *Installer) generatePod(g *domain.Graph, pod *domain.PodTarget, hosts map[string]domain.NativeTarget) (domain.TargetInstallationResult, error) {
	r := domain.TargetInstallationResult{Label: pod.Label()}
	if pod.ShouldBuild() {
		nt, err := i.project.NewNativeTarget(pod.Label(), pod.ProductType(), pod.Platform)
		if err != nil {
			return r, err
		}
		for _, fa := range pod.NonTestFileAccessors() {
			for _, src := range fa.SourceFiles {
				if err := i.project.AddSourceFile(nt, src); err != nil {
					return r, err
				}
			}
		}
		r.Native = &nt
	}
	bundles, err := i.bundleTargets(pod, pod.ResourceBundleLabels())
	if err != nil {
		return r, err
	}
	r.ResourceBundleTargets = bundles

	tests, err := g.TestTargets(pod.ID())
	if err != nil {
		return r, err
	}
	for _, t := range tests {
		productType, err := t.ProductType()
		if err != nil {
			return r, err
		}
		nt, err := i.project.NewNativeTarget(t.Label(), productType, pod.Platform)
		if err != nil {
			return r, err
		}
		r.TestNativeTargets = append(r.TestNativeTargets, nt)

		testBundles, err := i.bundleTargets(pod, t.ResourceBundleLabels())
		if err != nil {
			return r, err
		}
		if len(testBundles) > 0 {
			if r.TestResourceBundleTargets == nil {
				r.TestResourceBundleTargets = make(map[string][]domain.NativeTarget)
			}
			r.TestResourceBundleTargets[t.Label()] = testBundles
		}

		if !t.Spec.RequiresAppHost {
			continue
		}
		host, ok := hosts[t.AppHostLabel()]
		if !ok {
			host, err = i.newAppHost(t)
			if err != nil {
				return r, err
			}
			hosts[t.AppHostLabel()] = host
		}
		r.AppHostTargets = append(r.AppHostTargets, host)
	}
	return r, nil
}

func (i *Installer) bundleTargets(pod *domain.PodTarget, labels []string) ([]domain.NativeTarget, error) {
	out := make([]domain.NativeTarget, 0, len(labels))
	for _, label := range labels {
		nt, err := i.project.NewNativeTarget(label, domain.ProductTypeBundle, pod.Platform)
		if err != nil {
			return nil, err
		}
		out = append(out, nt)
	}
	return out, nil
}

func (i *Installer) newAppHost(t *domain.TestPodTarget) (domain.NativeTarget, error) {
	label := t.AppHostLabel()
	host, err := i.project.NewNativeTarget(label, domain.ProductTypeApplication, t.Platform())
	if err != nil {
		return host, err
	}
	swift := t.Pod.UsesSwift()
	src := appHostSource(label, t.Platform().Name, swift)
	if err := i.project.AddSourceFile(host, src.Path); err != nil {
		return host, err
	}
	configs, err := i.project.BuildConfigurations(host)
	if err != nil {
		return host, err
	}
	for _, config := range configs {
		if err := i.project.SetBuildSetting(host, config, domain.SettingFrameworkSearchPaths, appHostFrameworkSearchPaths); err != nil {
			return host, err
		}
		if swift && t.Pod.SwiftVersion != "" {
			if err := i.project.SetBuildSetting(host, config, domain.SettingSwiftVersion, t.Pod.SwiftVersion); err != nil {
				return host, err
			}
		}
	}
	return host, nil
}

func (i *Installer) appHostSources(inst *domain.Installation) ([]domain.Document, error) {
	seen := make(map[string]bool)
	var docs []domain.Document
	for pod := range inst.Graph.Pods() {
		tests, err := inst.Graph.TestTargets(pod.ID())
		if err != nil {
			return nil, zerr.With(err, "target", pod.Label())
		}
		for _, t := range tests {
			label := t.AppHostLabel()
			if !t.Spec.RequiresAppHost || seen[label] {
				continue
			}
			seen[label] = true
			docs = append(docs, appHostSource(label, t.Platform().Name, t.Pod.UsesSwift()))
		}
	}
	return docs, nil
}

func (i *Installer) compose(inst *domain.Installation) ([]domain.Document, error) {
	c := buildsettings.NewComposer(inst.Graph, inst.Options)
	root := inst.Sandbox.Root
	var docs []domain.Document

	for pod := range inst.Graph.Pods() {
		if pod.ShouldBuild() {
			docs = append(docs, render(root, pod.XCConfigPath(""), c.PodTargetSettings(pod)))
		}
		tests, err := inst.Graph.TestTargets(pod.ID())
		if err != nil {
			return nil, err
		}
		for _, t := range tests {
			docs = append(docs, render(root, t.XCConfigPath(""), c.TestTargetSettings(t)))
		}
	}

	for a := range inst.Graph.Aggregates() {
		for _, config := range a.ConfigurationNames() {
			doc, err := c.AggregateSettings(a, config)
			if err != nil {
				return nil, zerr.With(err, "configuration", config)
			}
			docs = append(docs, render(root, a.XCConfigPath(config), doc))

			inputs, err := i.frameworkInputs(inst, a, config)
			if err != nil {
				return nil, zerr.With(err, "configuration", config)
			}
			if len(inputs) > 0 {
				docs = append(docs, domain.Document{
					Path:    relative(root, a.FrameworksInputFileListPath(config)),
					Content: []byte(strings.Join(inputs, "\n") + "\n"),
				})
			}
		}
	}
	return docs, nil
}

// frameworkInputs lists the frameworks the user targets of a embed in configuration: built
// framework products first, then vendored frameworks with their debug symbols.
func (i *Installer) frameworkInputs(inst *domain.Installation, a *domain.AggregateTarget, configuration string) ([]string, error) {
	pods, err := inst.Graph.PodTargetsForBuildConfiguration(a, configuration)
	if err != nil {
		return nil, err
	}
	var inputs []string
	for _, pod := range pods {
		if pod.ShouldBuild() && pod.RequiresFrameworks() {
			inputs = append(inputs, pod.BuildProductPath("${BUILT_PRODUCTS_DIR}"))
		}
		if i.artifacts == nil {
			continue
		}
		for _, fa := range pod.NonTestFileAccessors() {
			for _, fw := range fa.VendoredDynamicFrameworks {
				paths, err := i.artifacts.RelativeFrameworkPaths(inst.Sandbox.Root, fw)
				if err != nil {
					return nil, zerr.With(err, "pod", pod.Label())
				}
				inputs = append(inputs, paths...)
			}
		}
	}
	return inputs, nil
}

func render(root, path string, doc *domain.Settings) domain.Document {
	return domain.Document{Path: relative(root, path), Content: []byte(doc.Render())}
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
