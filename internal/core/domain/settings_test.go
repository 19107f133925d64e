package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/core/domain"
)

func TestSettings_AppendNeverReplaces(t *testing.T) {
	s := domain.NewSettings()
	s.Append(domain.SettingOtherLDFlags, `-framework "CoreAnimation"`)
	s.Append(domain.SettingOtherLDFlags, `-framework "Parse"`)
	s.Append(domain.SettingOtherLDFlags, `-framework "CoreAnimation"`)

	assert.Equal(t, `-framework "CoreAnimation" -framework "Parse"`, s.Get(domain.SettingOtherLDFlags))
}

func TestSettings_AppendEmptyDoesNotCreateKey(t *testing.T) {
	s := domain.NewSettings()
	s.Append(domain.SettingOtherSwiftFlags)
	s.Append("GCC_PREPROCESSOR_DEFINITIONS", "")

	assert.False(t, s.Has(domain.SettingOtherSwiftFlags))
	assert.False(t, s.Has("GCC_PREPROCESSOR_DEFINITIONS"))
	assert.Empty(t, s.Render())
}

func TestSettings_SetNormalisesLinkerFlags(t *testing.T) {
	s := domain.NewSettings()
	s.Set(domain.SettingOtherLDFlags, `-ObjC -framework Parse -l xml2 -lz -l"sqlite3" -weak_framework "iAd"`)

	want := []string{`-ObjC`, `-framework "Parse"`, `-l"xml2"`, `-l"z"`, `-l"sqlite3"`, `-weak_framework "iAd"`}
	if diff := cmp.Diff(want, s.Tokens(domain.SettingOtherLDFlags)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings_QuotedSpansStayTogether(t *testing.T) {
	s := domain.NewSettings()
	s.Set(domain.SettingFrameworkSearchPaths, `$(inherited) "$(PLATFORM_DIR)/Developer/Library/Frameworks" "${PODS_ROOT}/My Lib"`)

	want := []string{`$(inherited)`, `"$(PLATFORM_DIR)/Developer/Library/Frameworks"`, `"${PODS_ROOT}/My Lib"`}
	assert.Equal(t, want, s.Tokens(domain.SettingFrameworkSearchPaths))
}

func TestSettings_RoundTrip(t *testing.T) {
	s := domain.NewSettings()
	s.Append(domain.SettingOtherLDFlags, `-ObjC`, `-l"Proj4"`, `-framework "Parse"`, `-weak_framework "iAd"`)
	s.Append(domain.SettingFrameworkSearchPaths, `$(inherited)`, `"${PODS_ROOT}/Parse"`)
	s.Append(domain.SettingLibrarySearchPaths, `"${PODS_ROOT}/MapBox/Proj4"`)
	s.Append(domain.SettingOtherSwiftFlags, `-suppress-warnings`)
	s.Set(domain.SettingSwiftVersion, "5.0")

	rendered := s.Render()
	parsed, err := domain.ParseSettings(rendered)
	require.NoError(t, err)

	for _, key := range s.Keys() {
		if diff := cmp.Diff(s.Tokens(key), parsed.Tokens(key)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
	assert.Equal(t, rendered, parsed.Render())
}

func TestSettings_RenderSortedByKey(t *testing.T) {
	s := domain.NewSettings()
	s.Set(domain.SettingSwiftVersion, "4.2")
	s.Append(domain.SettingOtherLDFlags, `-ObjC`)
	s.Set(domain.SettingApplicationExtensionAPIOnly, "YES")

	want := "APPLICATION_EXTENSION_API_ONLY = YES\nOTHER_LDFLAGS = -ObjC\nSWIFT_VERSION = 4.2\n"
	assert.Equal(t, want, s.Render())
}

func TestSettings_Merge(t *testing.T) {
	base := domain.NewSettings()
	base.Append(domain.SettingOtherLDFlags, `-ObjC`)
	base.Set(domain.SettingSwiftVersion, "5.0")

	other := domain.NewSettings()
	other.Append(domain.SettingOtherLDFlags, `-ObjC`, `-l"xml2"`)
	other.Set(domain.SettingSwiftVersion, "5.0")
	other.Set("CLANG_ENABLE_MODULES", "YES")

	base.Merge(other)

	assert.Equal(t, `-ObjC -l"xml2"`, base.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, "5.0", base.Get(domain.SettingSwiftVersion))
	assert.Equal(t, "YES", base.Get("CLANG_ENABLE_MODULES"))
}

func TestSettings_CloneIsIndependent(t *testing.T) {
	s := domain.NewSettings()
	s.Append(domain.SettingOtherLDFlags, `-ObjC`)

	c := s.Clone()
	c.Append(domain.SettingOtherLDFlags, `-fobjc-arc`)

	assert.Equal(t, `-ObjC`, s.Get(domain.SettingOtherLDFlags))
	assert.Equal(t, `-ObjC -fobjc-arc`, c.Get(domain.SettingOtherLDFlags))
}

func TestParseSettings(t *testing.T) {
	t.Run("skips comments and includes", func(t *testing.T) {
		text := "// generated\n#include \"Pods.xcconfig\"\n\nOTHER_LDFLAGS = -framework Parse\n"
		s, err := domain.ParseSettings(text)
		require.NoError(t, err)
		assert.Equal(t, []string{"OTHER_LDFLAGS"}, s.Keys())
		assert.Equal(t, `-framework "Parse"`, s.Get(domain.SettingOtherLDFlags))
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := domain.ParseSettings("OTHER_LDFLAGS -ObjC\n")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrMalformedSetting.Error())
	})
	t.Run("conditional key", func(t *testing.T) {
		s, err := domain.ParseSettings("EXCLUDED_ARCHS[sdk=iphonesimulator*] = arm64\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"EXCLUDED_ARCHS[sdk=iphonesimulator*]"}, s.Keys())
		assert.Equal(t, "arm64", s.Get("EXCLUDED_ARCHS[sdk=iphonesimulator*]"))
	})

	t.Run("value containing equals", func(t *testing.T) {
		s, err := domain.ParseSettings("GCC_PREPROCESSOR_DEFINITIONS = BANANA=1\n")
		require.NoError(t, err)
		assert.Equal(t, "BANANA=1", s.Get("GCC_PREPROCESSOR_DEFINITIONS"))
	})
}

func TestSettings_RoundTripConditionalKeys(t *testing.T) {
	s := domain.NewSettings()
	s.Set("EXCLUDED_ARCHS[sdk=iphonesimulator*]", "arm64")
	s.Set("OTHER_LDFLAGS[arch=x86_64]", "-ObjC")
	s.Set(domain.SettingSwiftVersion, "5.0")

	parsed, err := domain.ParseSettings(s.Render())
	require.NoError(t, err)

	if diff := cmp.Diff(s.Map(), parsed.Map()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
