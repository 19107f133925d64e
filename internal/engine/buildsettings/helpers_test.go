package buildsettings_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/engine/buildsettings"
)

const sandboxRoot = "/project/Pods"

var iOS = domain.Platform{Name: domain.PlatformIOS, DeploymentTarget: "9.0"}

func newSpec(name string, consumer *domain.Consumer) *domain.Specification {
	s := &domain.Specification{Name: domain.NewInternedString(name)}
	if consumer != nil {
		consumer.Platform = domain.PlatformIOS
		s.Consumers = map[domain.PlatformName]*domain.Consumer{domain.PlatformIOS: consumer}
	}
	return s
}

func newTestSpec(name string, consumer *domain.Consumer) *domain.Specification {
	s := newSpec(name, consumer)
	s.TestType = domain.TestTypeUnit
	return s
}

// newPod builds a pod target whose file accessors are given as spec/accessor pairs.
func newPod(accessors ...*domain.FileAccessor) *domain.PodTarget {
	specs := make([]*domain.Specification, 0, len(accessors))
	for _, fa := range accessors {
		fa.Platform = domain.PlatformIOS
		specs = append(specs, fa.Spec)
	}
	p := domain.NewPodTarget(domain.Sandbox{Root: sandboxRoot}, iOS, specs, nil)
	p.FileAccessors = accessors
	return p
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a" "b"`, buildsettings.Quote([]string{"a", "b"}, ""))
	assert.Equal(t, `-isystem "a" -isystem "b"`, buildsettings.Quote([]string{"a", "b"}, "-isystem"))
	assert.Empty(t, buildsettings.Quote(nil, ""))
}

func TestDefaultLinkFlags(t *testing.T) {
	arc := []*domain.Consumer{{RequiresARC: false}, {RequiresARC: true}}
	noARC := []*domain.Consumer{{RequiresARC: false}}

	tests := []struct {
		name         string
		requiresObjC bool
		arcCompat    bool
		consumers    []*domain.Consumer
		want         string
	}{
		{name: "default", want: ""},
		{name: "objc", requiresObjC: true, want: "-ObjC"},
		{name: "arc requested and required", arcCompat: true, consumers: arc, want: "-fobjc-arc"},
		{name: "arc requested but not required", arcCompat: true, consumers: noARC, want: ""},
		{name: "arc required but not requested", consumers: arc, want: ""},
		{name: "objc and arc", requiresObjC: true, arcCompat: true, consumers: arc, want: "-ObjC -fobjc-arc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildsettings.DefaultLinkFlags(tt.requiresObjC, tt.arcCompat, tt.consumers))
		})
	}
}

func TestAddSpecSettings_InIsolation(t *testing.T) {
	tests := []struct {
		name     string
		consumer *domain.Consumer
		want     string
	}{
		{name: "library", consumer: &domain.Consumer{Libraries: []string{"xml2"}}, want: `-l"xml2"`},
		{name: "framework", consumer: &domain.Consumer{Frameworks: []string{"CoreAnimation"}}, want: `-framework "CoreAnimation"`},
		{name: "weak framework", consumer: &domain.Consumer{WeakFrameworks: []string{"iAd"}}, want: `-weak_framework "iAd"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.NewSettings()
			buildsettings.AddSpecSettings(tt.consumer, doc)

			assert.Equal(t, tt.want, doc.Get(domain.SettingOtherLDFlags))
			assert.False(t, doc.Has(domain.SettingFrameworkSearchPaths))
		})
	}
}

func TestAddSpecSettings_MergesPodTargetSettings(t *testing.T) {
	doc := domain.NewSettings()
	doc.Set(domain.SettingOtherLDFlags, "-ObjC")

	buildsettings.AddSpecSettings(&domain.Consumer{
		Frameworks: []string{"QuartzCore"},
		PodTargetXCConfig: map[string]string{
			"OTHER_LDFLAGS":     "-lObjC",
			"CLANG_CXX_LIBRARY": "libc++",
		},
	}, doc)

	assert.Equal(t, `-ObjC -l"ObjC" -framework "QuartzCore"`, doc.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, "libc++", doc.Get("CLANG_CXX_LIBRARY"))
}

func TestAddSpecSettings_NeverDropsExistingFrameworks(t *testing.T) {
	doc := domain.NewSettings()
	doc.Set(domain.SettingOtherLDFlags, `-framework "CoreAnimation"`)

	buildsettings.AddSpecSettings(&domain.Consumer{Frameworks: []string{"Parse"}}, doc)
	buildsettings.AddSpecSettings(&domain.Consumer{Frameworks: []string{"Parse"}}, doc)

	assert.Equal(t, `-framework "CoreAnimation" -framework "Parse"`, doc.Get(domain.SettingOtherLDFlags))
}

func TestAddDeveloperFrameworksIfNeeded(t *testing.T) {
	tests := []struct {
		name    string
		ldflags string
		want    []string
	}{
		{name: "none", ldflags: `-framework "UIKit"`},
		{name: "sentesting", ldflags: `-framework "SenTestingKit"`, want: []string{"$(inherited)"}},
		{
			name:    "xctest",
			ldflags: `-framework "XCTest"`,
			want:    []string{"$(inherited)", `"$(PLATFORM_DIR)/Developer/Library/Frameworks"`},
		},
		{name: "name prefix only", ldflags: `-framework "XCTestHelpers"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.NewSettings()
			doc.Set(domain.SettingOtherLDFlags, tt.ldflags)

			buildsettings.AddDeveloperFrameworksIfNeeded(doc)

			if diff := cmp.Diff(tt.want, doc.Tokens(domain.SettingFrameworkSearchPaths)); diff != "" {
				t.Errorf("FRAMEWORK_SEARCH_PATHS mismatch (-want +got):\n%s", diff)
			}
			for _, deprecated := range []string{"$(SDKROOT)/Developer/Library/Frameworks", "$(DEVELOPER_LIBRARY_DIR)/Frameworks"} {
				assert.NotContains(t, doc.Get(domain.SettingFrameworkSearchPaths), deprecated)
			}
		})
	}
}

func TestAddFrameworkArtifactSettings_Appends(t *testing.T) {
	doc := domain.NewSettings()
	doc.Set(domain.SettingOtherLDFlags, `-framework "CoreAnimation"`)
	doc.Set(domain.SettingFrameworkSearchPaths, `"path/to/frameworks"`)

	buildsettings.AddFrameworkArtifactSettings(sandboxRoot+"/Parse/Parse.framework", doc, sandboxRoot)

	assert.Equal(t, `-framework "CoreAnimation" -framework "Parse"`, doc.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, `"path/to/frameworks" "${PODS_ROOT}/Parse"`, doc.Get(domain.SettingFrameworkSearchPaths))
}

func TestAddLibraryArtifactSettings(t *testing.T) {
	doc := domain.NewSettings()

	buildsettings.AddLibraryArtifactSettings(sandboxRoot+"/MapBox/Proj4/libProj4.a", doc, sandboxRoot)

	assert.Equal(t, `-l"Proj4"`, doc.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, `"${PODS_ROOT}/MapBox/Proj4"`, doc.Get(domain.SettingLibrarySearchPaths))
}

func TestAddLanguageSettings(t *testing.T) {
	swift := func(inhibit bool) *domain.PodTarget {
		p := newPod(&domain.FileAccessor{Spec: newSpec("Orange", nil), SourceFiles: []string{"Orange.swift"}})
		p.InhibitWarnings = inhibit
		return p
	}
	objc := newPod(&domain.FileAccessor{Spec: newSpec("Banana", nil), SourceFiles: []string{"Banana.m"}})
	objc.InhibitWarnings = true

	t.Run("swift suppressing warnings", func(t *testing.T) {
		doc := domain.NewSettings()
		buildsettings.AddLanguageSettings(swift(true), doc)
		assert.Equal(t, "-suppress-warnings", doc.Get(domain.SettingOtherSwiftFlags))
	})
	t.Run("swift keeping warnings", func(t *testing.T) {
		doc := domain.NewSettings()
		buildsettings.AddLanguageSettings(swift(false), doc)
		assert.False(t, doc.Has(domain.SettingOtherSwiftFlags))
	})
	t.Run("objc", func(t *testing.T) {
		doc := domain.NewSettings()
		buildsettings.AddLanguageSettings(objc, doc)
		assert.False(t, doc.Has(domain.SettingOtherSwiftFlags))
	})
}

func fileAccessorFixture() *domain.PodTarget {
	main := &domain.FileAccessor{
		Spec: newSpec("Widget", &domain.Consumer{
			Libraries:  []string{"xml2"},
			Frameworks: []string{"VendoredFramework"},
		}),
		SourceFiles:               []string{"Widget.m"},
		VendoredStaticLibraries:   []string{sandboxRoot + "/Widget/libStaticLibrary.a"},
		VendoredDynamicLibraries:  []string{sandboxRoot + "/Widget/libVendoredDyld.dylib"},
		VendoredStaticFrameworks:  []string{sandboxRoot + "/Widget/StaticFramework.framework"},
		VendoredDynamicFrameworks: []string{sandboxRoot + "/Widget/VendoredFramework.framework"},
	}
	tests := &domain.FileAccessor{
		Spec: newTestSpec("Widget/Tests", &domain.Consumer{
			Libraries:  []string{"sqlite3"},
			Frameworks: []string{"XCTest"},
		}),
		SourceFiles: []string{"WidgetTests.m"},
	}
	return newPod(main, tests)
}

func TestAddFileAccessorSettings_PodContextIncludesTests(t *testing.T) {
	doc := domain.NewSettings()

	buildsettings.AddFileAccessorSettings(nil, fileAccessorFixture(), doc)

	want := []string{
		`-l"StaticLibrary"`,
		`-l"VendoredDyld"`,
		`-l"sqlite3"`,
		`-l"xml2"`,
		`-framework "StaticFramework"`,
		`-framework "VendoredFramework"`,
		`-framework "XCTest"`,
	}
	if diff := cmp.Diff(want, doc.Tokens(domain.SettingOtherLDFlags)); diff != "" {
		t.Errorf("OTHER_LDFLAGS mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, doc.Contains(domain.SettingFrameworkSearchPaths, `"$(PLATFORM_DIR)/Developer/Library/Frameworks"`))
}

func TestAddFileAccessorSettings_AggregateExcludesTests(t *testing.T) {
	doc := domain.NewSettings()
	aggregate := domain.NewAggregateTarget(domain.Sandbox{Root: sandboxRoot}, &domain.TargetDefinition{Name: "App"})

	buildsettings.AddFileAccessorSettings(aggregate, fileAccessorFixture(), doc)

	assert.Equal(t,
		`-l"StaticLibrary" -l"VendoredDyld" -l"xml2" -framework "StaticFramework" -framework "VendoredFramework"`,
		doc.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, `"${PODS_ROOT}/Widget"`, doc.Get(domain.SettingFrameworkSearchPaths))
	assert.Equal(t, `"${PODS_ROOT}/Widget"`, doc.Get(domain.SettingLibrarySearchPaths))
}

func TestAddFileAccessorSettings_WeakFrameworksSortWithFrameworks(t *testing.T) {
	p := newPod(&domain.FileAccessor{
		Spec: newSpec("Ads", &domain.Consumer{
			Frameworks:     []string{"UIKit"},
			WeakFrameworks: []string{"iAd"},
			Libraries:      []string{"z"},
		}),
		SourceFiles: []string{"Ads.m"},
	})
	doc := domain.NewSettings()

	buildsettings.AddFileAccessorSettings(nil, p, doc)

	require.Equal(t, []string{`-l"z"`, `-framework "UIKit"`, `-weak_framework "iAd"`}, doc.Tokens(domain.SettingOtherLDFlags))
}
