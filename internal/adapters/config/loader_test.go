package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/adapters/config"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const manifest = `
version: "1"
sandbox: Pods
options:
  set_arc_compatibility_flag: true
specs:
  - name: BananaLib
    consumers:
      ios:
        libraries: [xml2]
        frameworks: [UIKit]
        requires_arc: true
        pod_target_xcconfig:
          OTHER_SWIFT_FLAGS: -DBANANA
  - name: BananaLib/Tests
    test_type: unit
    requires_app_host: true
  - name: CoconutLib
pods:
  - specs: [BananaLib, BananaLib/Tests]
    platform: {name: ios, deployment_target: "12.0"}
    build_configurations: {Debug: debug, Release: release}
    file_accessors:
      - spec: BananaLib
        source_files: [BananaLib/Banana.m]
        resource_bundles:
          BananaResources: [BananaLib/Resources/banana.png]
        vendored_static_frameworks: [BananaLib/Bananalib.framework]
      - spec: BananaLib/Tests
        source_files: [BananaLib/Tests/BananaTests.m]
    dependencies: [CoconutLib]
    test_dependencies: [CoconutLib]
  - specs: [CoconutLib]
    platform: {name: ios, deployment_target: "12.0"}
    host_requires_frameworks: true
targets:
  - name: App
    platform: {name: ios, deployment_target: "12.0"}
    project: App.xcodeproj
    dependencies: [BananaLib, CoconutLib]
    configuration_whitelist:
      CoconutLib: [Debug]
    pods: [BananaLib, CoconutLib]
    user_targets:
      - name: App
        product_type: application
        platform: {name: ios, deployment_target: "12.0"}
        build_settings:
          Debug: {SWIFT_VERSION: "5.0"}
    resource_paths:
      Debug: ["${PODS_ROOT}/BananaLib/Images.xcassets"]
  - name: AppTests
    inheritance: search_paths
    pods: [BananaLib]
    search_paths_ancestors: [App]
user_projects:
  App.xcodeproj:
    - name: App
      product_type: application
      platform: {name: ios, deployment_target: "11.0"}
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultManifestName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(logger)
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, manifest)
	root := filepath.Dir(path)
	sandbox := filepath.Join(root, "Pods")

	inst, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, root, inst.Root)
	assert.Equal(t, sandbox, inst.Sandbox.Root)
	assert.True(t, inst.Options.SetARCCompatibilityFlag)
	assert.Equal(t, 2, inst.Graph.PodCount())

	banana, ok := inst.Graph.PodByLabel("BananaLib")
	require.True(t, ok)
	coconut, ok := inst.Graph.PodByLabel("CoconutLib")
	require.True(t, ok)

	assert.Equal(t, domain.Platform{Name: domain.PlatformIOS, DeploymentTarget: "12.0"}, banana.Platform)
	assert.True(t, banana.ARCCompatibility)
	assert.True(t, coconut.RequiresFrameworks())
	assert.Equal(t, []domain.PodID{coconut.ID()}, banana.Dependents())
	assert.Equal(t, []domain.PodID{coconut.ID()}, banana.TestDependents())
	assert.Equal(t, domain.ConfigurationDebug, banana.UserBuildConfigurations["Debug"])

	require.Len(t, banana.FileAccessors, 2)
	fa := banana.FileAccessors[0]
	assert.Equal(t, []string{filepath.Join(sandbox, "BananaLib/Banana.m")}, fa.SourceFiles)
	assert.Equal(t, []string{filepath.Join(sandbox, "BananaLib/Bananalib.framework")}, fa.VendoredStaticFrameworks)
	assert.Equal(t, []string{"BananaResources"}, fa.ResourceBundleNames())
	assert.Equal(t, domain.PlatformIOS, fa.Platform)

	consumer := fa.SpecConsumer()
	assert.Equal(t, []string{"xml2"}, consumer.Libraries)
	assert.Equal(t, []string{"UIKit"}, consumer.Frameworks)
	assert.True(t, consumer.RequiresARC)
	assert.Equal(t, map[string]string{"OTHER_SWIFT_FLAGS": "-DBANANA"}, consumer.PodTargetXCConfig)

	tests, err := inst.Graph.TestTargets(banana.ID())
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "BananaLib-Unit-Tests", tests[0].Label())
	assert.True(t, tests[0].Spec.RequiresAppHost)

	app, ok := inst.Graph.AggregateByLabel("Pods-App")
	require.True(t, ok)
	assert.Equal(t, []domain.PodID{banana.ID(), coconut.ID()}, app.PodTargets)
	assert.Equal(t, domain.InheritanceComplete, app.Inheritance())
	assert.Equal(t, root, app.ClientRoot)
	assert.Equal(t, "Pods", app.RelativePodsRootPath())
	assert.Equal(t, filepath.Join(root, "App.xcodeproj"), app.UserProjectPath)
	assert.Equal(t, []string{"App"}, app.UserTargetNames())
	assert.Equal(t, "5.0", app.UserTargets[0].CommonResolvedBuildSetting(domain.SettingSwiftVersion))
	assert.Equal(t, []string{"${PODS_ROOT}/BananaLib/Images.xcassets"}, app.ResourcePathsByConfig["Debug"])

	included, err := coconut.IncludeInBuildConfig(app.Definition, "Release")
	require.NoError(t, err)
	assert.False(t, included)

	tests2, ok := inst.Graph.AggregateByLabel("Pods-AppTests")
	require.True(t, ok)
	assert.Equal(t, domain.InheritanceSearchPaths, tests2.Inheritance())
	assert.Equal(t, []domain.AggregateID{app.ID()}, tests2.SearchPathsAncestors)
	assert.Equal(t, domain.DefaultBuildConfigurations(), app.UserBuildConfigurations)
	assert.Equal(t, banana.Platform, tests2.Platform)

	require.Len(t, banana.TargetDefinitions, 2)
	assert.Equal(t, "App", banana.TargetDefinitions[0].Name)

	require.Contains(t, inst.UserProjects, "App.xcodeproj")
	assert.Equal(t, "11.0", inst.UserProjects["App.xcodeproj"][0].Platform.DeploymentTarget)
}

func TestLoad_ScopedPod(t *testing.T) {
	path := writeManifest(t, `
specs:
  - name: BananaLib
pods:
  - specs: [BananaLib]
    scope: iOS
    platform: {name: ios}
  - specs: [BananaLib]
    scope: macOS
    platform: {name: osx}
targets:
  - name: App
    pods: [BananaLib-iOS]
`)

	inst, err := newLoader(t).Load(path)
	require.NoError(t, err)

	_, ok := inst.Graph.PodByLabel("BananaLib-iOS")
	assert.True(t, ok)
	mac, ok := inst.Graph.PodByLabel("BananaLib-macOS")
	require.True(t, ok)
	assert.Equal(t, domain.PlatformOSX, mac.Platform.Name)
}

func TestLoad_WarnsOnTargetWithoutPods(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("target App declares no pods")

	_, err := config.NewLoader(logger).Load(writeManifest(t, `
targets:
  - name: App
`))
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		key     string
		value   any
	}{
		{
			name:    "unknown dependency",
			content: "specs: [{name: A}]\npods:\n  - specs: [A]\n    dependencies: [B]\n",
			wantErr: domain.ErrUnknownPod,
			key:     "pod",
			value:   "A",
		},
		{
			name:    "unknown spec",
			content: "pods:\n  - specs: [A]\n",
			wantErr: domain.ErrUnknownSpec,
			key:     "spec",
			value:   "A",
		},
		{
			name:    "accessor for foreign spec",
			content: "specs: [{name: A}, {name: B}]\npods:\n  - specs: [A]\n    file_accessors: [{spec: B}]\n",
			wantErr: domain.ErrUnknownSpec,
			key:     "pod",
			value:   "A",
		},
		{
			name:    "duplicate spec",
			content: "specs: [{name: A}, {name: A}]\n",
			wantErr: domain.ErrDuplicateSpec,
			key:     "spec",
			value:   "A",
		},
		{
			name:    "pod without specs",
			content: "pods:\n  - platform: {name: ios}\n",
			wantErr: domain.ErrEmptyPod,
		},
		{
			name:    "duplicate pod",
			content: "specs: [{name: A}]\npods:\n  - specs: [A]\n  - specs: [A]\n",
			wantErr: domain.ErrDuplicateTarget,
			key:     "target",
			value:   "A",
		},
		{
			name:    "unknown test type",
			content: "specs: [{name: A/Tests, test_type: ui}]\n",
			wantErr: domain.ErrUnknownTestType,
			key:     "spec",
			value:   "A/Tests",
		},
		{
			name:    "unknown platform",
			content: "specs: [{name: A}]\npods:\n  - specs: [A]\n    platform: {name: android}\n",
			wantErr: domain.ErrUnknownPlatform,
			key:     "pod",
			value:   "A",
		},
		{
			name:    "invalid inheritance",
			content: "targets:\n  - name: App\n    inheritance: partial\n",
			wantErr: domain.ErrInvalidInheritance,
			key:     "target",
			value:   "App",
		},
		{
			name:    "unknown configuration type",
			content: "targets:\n  - name: App\n    build_configurations: {Beta: profile}\n",
			wantErr: domain.ErrUnknownConfigurationType,
			key:     "target",
			value:   "App",
		},
		{
			name:    "unknown aggregate pod",
			content: "targets:\n  - name: App\n    pods: [Missing]\n",
			wantErr: domain.ErrUnknownPod,
			key:     "target",
			value:   "App",
		},
		{
			name:    "unknown ancestor",
			content: "targets:\n  - name: App\n    search_paths_ancestors: [Host]\n",
			wantErr: domain.ErrUnknownAggregate,
			key:     "ancestor",
			value:   "Host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeManifest(t, tt.content))

			require.ErrorContains(t, err, tt.wantErr.Error())
			if tt.key == "" {
				return
			}
			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, tt.value, zErr.Metadata()[tt.key])
		})
	}
}

func TestLoad_ReadAndParseFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := newLoader(t).Load(writeManifest(t, "specs: [name: A\n"))
		require.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})
}

func TestLoad_TargetBuildConfigurations(t *testing.T) {
	path := writeManifest(t, `
specs:
  - name: BananaLib
pods:
  - specs: [BananaLib]
    platform: {name: ios, deployment_target: "12.0"}
    file_accessors:
      - spec: BananaLib
        source_files: [BananaLib/Banana.m]
targets:
  - name: App
    platform: {name: ios, deployment_target: "12.0"}
    pods: [BananaLib]
    build_configurations: {Debug: debug, Staging: release}
`)

	inst, err := newLoader(t).Load(path)
	require.NoError(t, err)

	app, ok := inst.Graph.AggregateByLabel("Pods-App")
	require.True(t, ok)
	assert.Equal(t, []string{"Debug", "Staging"}, app.ConfigurationNames())
	assert.Equal(t, domain.ConfigurationRelease, app.UserBuildConfigurations["Staging"])
}
