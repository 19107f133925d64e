// Package buildsettings composes the settings documents of pod, test and aggregate targets.
package buildsettings

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/podgen/internal/core/domain"
)

const (
	inheritedToken        = "$(inherited)"
	platformDirFrameworks = `"$(PLATFORM_DIR)/Developer/Library/Frameworks"`
)

var developerFrameworkRef = regexp.MustCompile(`\b(SenTestingKit|XCTest)\b`)

// DefaultLinkFlags returns the linker flags every target starts with. -fobjc-arc is only
// added when ARC compatibility is requested and one of consumers requires ARC.
func DefaultLinkFlags(requiresObjC, arcCompatibility bool, consumers []*domain.Consumer) string {
	var flags []string
	if requiresObjC {
		flags = append(flags, "-ObjC")
	}
	if arcCompatibility && slices.ContainsFunc(consumers, func(c *domain.Consumer) bool { return c.RequiresARC }) {
		flags = append(flags, "-fobjc-arc")
	}
	return strings.Join(flags, " ")
}

// Quote renders every item in double quotes, optionally preceded by prefix.
func Quote(items []string, prefix string) string {
	return strings.Join(quoteAll(items, prefix), " ")
}

func quoteAll(items []string, prefix string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		q := `"` + item + `"`
		if prefix != "" {
			q = prefix + " " + q
		}
		out = append(out, q)
	}
	return out
}

func libraryFlag(name string) string { return `-l"` + name + `"` }

func frameworkFlag(name string) string { return `-framework "` + name + `"` }

func weakFrameworkFlag(name string) string { return `-weak_framework "` + name + `"` }

// AddSpecSettings merges the pod target settings of consumer, then appends the libraries,
// frameworks and weak frameworks it declares.
func AddSpecSettings(consumer *domain.Consumer, doc *domain.Settings) {
	if consumer == nil {
		return
	}
	doc.MergeMap(consumer.PodTargetXCConfig)
	for _, l := range consumer.Libraries {
		doc.Append(domain.SettingOtherLDFlags, libraryFlag(l))
	}
	for _, f := range consumer.Frameworks {
		doc.Append(domain.SettingOtherLDFlags, frameworkFlag(f))
	}
	for _, f := range consumer.WeakFrameworks {
		doc.Append(domain.SettingOtherLDFlags, weakFrameworkFlag(f))
	}
	AddDeveloperFrameworksIfNeeded(doc)
}

// AddDeveloperFrameworksIfNeeded adds the search paths test frameworks need when the
// linker flags reference one.
func AddDeveloperFrameworksIfNeeded(doc *domain.Settings) {
	ldflags := doc.Get(domain.SettingOtherLDFlags)
	matches := developerFrameworkRef.FindAllString(ldflags, -1)
	if len(matches) == 0 {
		return
	}
	doc.Append(domain.SettingFrameworkSearchPaths, inheritedToken)
	if slices.Contains(matches, "XCTest") {
		doc.Append(domain.SettingFrameworkSearchPaths, platformDirFrameworks)
	}
}

// AddFrameworkArtifactSettings links the framework at path and adds its directory to the
// framework search paths.
func AddFrameworkArtifactSettings(path string, doc *domain.Settings, sandboxRoot string) {
	doc.Append(domain.SettingOtherLDFlags, frameworkFlag(artifactName(path)))
	doc.Append(domain.SettingFrameworkSearchPaths, `"`+sandboxRelativeDir(path, sandboxRoot)+`"`)
}

// AddLibraryArtifactSettings links the library at path and adds its directory to the
// library search paths.
func AddLibraryArtifactSettings(path string, doc *domain.Settings, sandboxRoot string) {
	doc.Append(domain.SettingOtherLDFlags, libraryFlag(libraryName(path)))
	doc.Append(domain.SettingLibrarySearchPaths, `"`+sandboxRelativeDir(path, sandboxRoot)+`"`)
}

// AddLanguageSettings adds Swift compiler flags for targets that use Swift.
func AddLanguageSettings(target *domain.PodTarget, doc *domain.Settings) {
	if !target.UsesSwift() {
		return
	}
	if target.InhibitWarnings {
		doc.Append(domain.SettingOtherSwiftFlags, "-suppress-warnings")
	}
}

// AddFileAccessorSettings appends the linker flags of every file accessor of pod. Accessors
// of test specs are only considered when consumer is nil or not an aggregate. Library flags
// come first, then framework flags, each group sorted. Vendored dynamic artifacts also get
// their directories added to the search paths.
func AddFileAccessorSettings(consumer domain.Target, pod *domain.PodTarget, doc *domain.Settings) {
	includeTests := consumer == nil || consumer.Kind() != domain.KindAggregate

	var libraries, frameworks, dynamicLibraries, dynamicFrameworks []string
	for _, fa := range pod.FileAccessors {
		if !includeTests && fa.Spec.IsTestSpecification() {
			continue
		}
		c := fa.SpecConsumer()
		for _, l := range c.Libraries {
			libraries = append(libraries, libraryFlag(l))
		}
		for _, path := range slices.Concat(fa.VendoredStaticLibraries, fa.VendoredDynamicLibraries) {
			libraries = append(libraries, libraryFlag(libraryName(path)))
		}
		for _, f := range c.Frameworks {
			frameworks = append(frameworks, frameworkFlag(f))
		}
		for _, f := range c.WeakFrameworks {
			frameworks = append(frameworks, weakFrameworkFlag(f))
		}
		for _, path := range slices.Concat(fa.VendoredStaticFrameworks, fa.VendoredDynamicFrameworks) {
			frameworks = append(frameworks, frameworkFlag(artifactName(path)))
		}
		dynamicLibraries = append(dynamicLibraries, fa.VendoredDynamicLibraries...)
		dynamicFrameworks = append(dynamicFrameworks, fa.VendoredDynamicFrameworks...)
	}
	slices.Sort(libraries)
	slices.Sort(frameworks)
	doc.Append(domain.SettingOtherLDFlags, slices.Compact(libraries)...)
	doc.Append(domain.SettingOtherLDFlags, slices.Compact(frameworks)...)
	// The linker flags are already present, so only the search paths are added here.
	for _, path := range dynamicLibraries {
		AddLibraryArtifactSettings(path, doc, pod.Sandbox.Root)
	}
	for _, path := range dynamicFrameworks {
		AddFrameworkArtifactSettings(path, doc, pod.Sandbox.Root)
	}
	AddDeveloperFrameworksIfNeeded(doc)
}

func artifactName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func libraryName(path string) string {
	return strings.TrimPrefix(artifactName(path), "lib")
}

func sandboxRelativeDir(path, sandboxRoot string) string {
	dir := filepath.Dir(path)
	if sandboxRoot == "" || !filepath.IsAbs(dir) {
		return "${PODS_ROOT}/" + filepath.ToSlash(dir)
	}
	rel, err := filepath.Rel(sandboxRoot, dir)
	switch {
	case err != nil || strings.HasPrefix(rel, ".."):
		return filepath.ToSlash(dir)
	case rel == ".":
		return "${PODS_ROOT}"
	}
	return "${PODS_ROOT}/" + filepath.ToSlash(rel)
}
