package buildsettings

import (
	"slices"

	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/engine/linkage"
)

// Composer builds the settings documents of the targets of one graph.
type Composer struct {
	graph   *domain.Graph
	links   *linkage.Resolver
	options domain.InstallationOptions
}

// NewComposer creates a Composer for g.
func NewComposer(g *domain.Graph, options domain.InstallationOptions) *Composer {
	return &Composer{
		graph:   g,
		links:   linkage.NewResolver(g),
		options: options,
	}
}

// Links returns the static-link resolver used by the composer.
func (c *Composer) Links() *linkage.Resolver { return c.links }

// AddStaticDependencySettings adds the search paths of the vendored static artifacts of fa
// and, when the artifacts must be linked into aggregate, their linker flags.
func (c *Composer) AddStaticDependencySettings(
	aggregate *domain.AggregateTarget,
	pod *domain.PodTarget,
	doc *domain.Settings,
	fa *domain.FileAccessor,
) {
	root := pod.Sandbox.Root
	for _, path := range fa.VendoredStaticFrameworks {
		doc.Append(domain.SettingFrameworkSearchPaths, `"`+sandboxRelativeDir(path, root)+`"`)
	}
	for _, path := range fa.VendoredStaticLibraries {
		doc.Append(domain.SettingLibrarySearchPaths, `"`+sandboxRelativeDir(path, root)+`"`)
	}
	if !c.links.ShouldLink(aggregate, pod.ID()) {
		return
	}
	for _, path := range fa.VendoredStaticLibraries {
		doc.Append(domain.SettingOtherLDFlags, libraryFlag(libraryName(path)))
	}
	for _, path := range fa.VendoredStaticFrameworks {
		doc.Append(domain.SettingOtherLDFlags, frameworkFlag(artifactName(path)))
	}
}

// SettingsForDependentTargets returns the framework search paths a target needs to find the
// frameworks built by deps. Dependents whose specs are covered by another dependent are skipped.
func SettingsForDependentTargets(deps []*domain.PodTarget) *domain.Settings {
	doc := domain.NewSettings()
	var building []*domain.PodTarget
	for _, d := range deps {
		if d.ShouldBuild() {
			building = append(building, d)
		}
	}
	var dirs []string
	for i, d := range building {
		if coveredByOther(i, building) || !d.RequiresFrameworks() {
			continue
		}
		dirs = append(dirs, d.ConfigurationBuildDir(""))
	}
	if len(dirs) > 0 {
		doc.Set(domain.SettingFrameworkSearchPaths, Quote(dirs, ""))
	}
	return doc
}

// mergeDependentSettings folds the dependent settings into doc, keeping the inherited search
// paths ahead of them.
func mergeDependentSettings(doc, dependents *domain.Settings) {
	if dependents.Has(domain.SettingFrameworkSearchPaths) {
		doc.Append(domain.SettingFrameworkSearchPaths, inheritedToken)
	}
	doc.Merge(dependents)
}

// coveredByOther reports whether the specs of targets[i] are a proper subset of another
// target's specs, or equal to the specs of an earlier target.
func coveredByOther(i int, targets []*domain.PodTarget) bool {
	mine := specNames(targets[i])
	for j, other := range targets {
		if j == i {
			continue
		}
		theirs := specNames(other)
		if !isSubset(mine, theirs) {
			continue
		}
		if len(theirs) > len(mine) || j < i {
			return true
		}
	}
	return false
}

func specNames(p *domain.PodTarget) map[string]bool {
	out := make(map[string]bool, len(p.Specs))
	for _, s := range p.Specs {
		out[s.Name.String()] = true
	}
	return out
}

func isSubset(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// PodTargetSettings returns the settings document of a pod target.
func (c *Composer) PodTargetSettings(pod *domain.PodTarget) *domain.Settings {
	doc := domain.NewSettings()
	doc.Set(domain.SettingPodsRoot, "${SRCROOT}")
	doc.Set("PODS_TARGET_SRCROOT", "${PODS_ROOT}/"+pod.PodName())
	doc.Set("CONFIGURATION_BUILD_DIR", pod.ConfigurationBuildDir(""))
	doc.Set("SKIP_INSTALL", "YES")

	if pod.RequiresFrameworks() {
		ldflags := DefaultLinkFlags(false, c.options.SetARCCompatibilityFlag, pod.SpecConsumers())
		doc.Append(domain.SettingOtherLDFlags, domain.TokenizeSetting(domain.SettingOtherLDFlags, ldflags)...)
	}
	AddFileAccessorSettings(nil, pod, doc)
	for _, fa := range pod.NonTestFileAccessors() {
		c.AddStaticDependencySettings(nil, pod, doc, fa)
	}
	AddLanguageSettings(pod, doc)
	if pod.UsesSwift() && pod.SwiftVersion != "" {
		doc.Set(domain.SettingSwiftVersion, pod.SwiftVersion)
	}
	for _, fa := range pod.NonTestFileAccessors() {
		AddSpecSettings(fa.SpecConsumer(), doc)
	}
	mergeDependentSettings(doc, SettingsForDependentTargets(c.graph.RecursiveDependentTargets(pod.ID())))
	return doc
}

// TestTargetSettings returns the settings document of a test target. The test bundle links
// its parent pod and every transitive dependent.
func (c *Composer) TestTargetSettings(t *domain.TestPodTarget) *domain.Settings {
	doc := domain.NewSettings()
	doc.Set(domain.SettingPodsRoot, "${SRCROOT}")
	doc.Set(domain.SettingPodsConfigurationBuildDir, "${BUILD_DIR}/$(CONFIGURATION)$(EFFECTIVE_PLATFORM_NAME)")

	ldflags := DefaultLinkFlags(true, c.options.SetARCCompatibilityFlag, t.Pod.SpecConsumers())
	doc.Append(domain.SettingOtherLDFlags, inheritedToken)
	doc.Append(domain.SettingOtherLDFlags, domain.TokenizeSetting(domain.SettingOtherLDFlags, ldflags)...)

	deps := slices.Concat([]*domain.PodTarget{t.Pod}, slices.DeleteFunc(
		c.graph.RecursiveTestDependentTargets(t),
		func(p *domain.PodTarget) bool { return p == t.Pod },
	))
	for _, dep := range deps {
		if dep.ShouldBuild() {
			if dep.RequiresFrameworks() {
				doc.Append(domain.SettingOtherLDFlags, frameworkFlag(dep.ProductModuleName()))
			} else {
				doc.Append(domain.SettingOtherLDFlags, libraryFlag(dep.Label()))
				doc.Append(domain.SettingLibrarySearchPaths, `"`+dep.ConfigurationBuildDir("")+`"`)
			}
		}
		AddFileAccessorSettings(t, dep, doc)
		for _, fa := range dep.FileAccessors {
			c.AddStaticDependencySettings(nil, dep, doc, fa)
		}
	}
	mergeDependentSettings(doc, SettingsForDependentTargets(deps))
	if t.Pod.SwiftVersion != "" {
		doc.Set(domain.SettingSwiftVersion, t.Pod.SwiftVersion)
	}
	return doc
}

// AggregateSettings returns the settings document of an aggregate target for one build
// configuration.
func (c *Composer) AggregateSettings(a *domain.AggregateTarget, configuration string) (*domain.Settings, error) {
	pods, err := c.graph.PodTargetsForBuildConfiguration(a, configuration)
	if err != nil {
		return nil, err
	}

	doc := domain.NewSettings()
	doc.Set(domain.SettingPodsRoot, a.RelativePodsRoot())
	doc.Set("PODS_BUILD_DIR", "${BUILD_DIR}")
	doc.Set(domain.SettingPodsConfigurationBuildDir, "${PODS_BUILD_DIR}/$(CONFIGURATION)$(EFFECTIVE_PLATFORM_NAME)")
	doc.Append(domain.SettingFrameworkSearchPaths, inheritedToken)
	doc.Append(domain.SettingLibrarySearchPaths, inheritedToken)

	var consumers []*domain.Consumer
	requiresObjC := false
	for _, pod := range pods {
		consumers = append(consumers, pod.SpecConsumers()...)
		if !a.RequiresFrameworks() || slices.ContainsFunc(pod.NonTestFileAccessors(), hasStaticArtifacts) {
			requiresObjC = true
		}
	}
	ldflags := DefaultLinkFlags(requiresObjC, c.options.SetARCCompatibilityFlag, consumers)
	doc.Append(domain.SettingOtherLDFlags, inheritedToken)
	doc.Append(domain.SettingOtherLDFlags, domain.TokenizeSetting(domain.SettingOtherLDFlags, ldflags)...)

	usesSwift := false
	for _, pod := range pods {
		usesSwift = usesSwift || pod.UsesSwift()
		link := c.links.ShouldLink(a, pod.ID())
		if pod.ShouldBuild() {
			if pod.RequiresFrameworks() {
				doc.Append(domain.SettingFrameworkSearchPaths, `"`+pod.ConfigurationBuildDir("")+`"`)
				if link {
					doc.Append(domain.SettingOtherLDFlags, frameworkFlag(pod.ProductModuleName()))
				}
			} else {
				doc.Append(domain.SettingLibrarySearchPaths, `"`+pod.ConfigurationBuildDir("")+`"`)
				if link {
					doc.Append(domain.SettingOtherLDFlags, libraryFlag(pod.Label()))
				}
			}
		}
		if link {
			AddFileAccessorSettings(a, pod, doc)
		}
		for _, fa := range pod.NonTestFileAccessors() {
			c.AddStaticDependencySettings(a, pod, doc, fa)
		}
	}
	if usesSwift {
		doc.Set("ALWAYS_EMBED_SWIFT_STANDARD_LIBRARIES", "YES")
	}
	return doc, nil
}

func hasStaticArtifacts(fa *domain.FileAccessor) bool {
	return len(fa.VendoredStaticArtifacts()) > 0
}
