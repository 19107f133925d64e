package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/adapters/fs"
	"go.trai.ch/podgen/internal/core/domain"
)

// vendored creates <sandbox>/<dir>/<name>.framework plus the given sibling files.
func vendored(t *testing.T, sandbox, dir, name string, siblings ...string) string {
	t.Helper()
	base := filepath.Join(sandbox, dir)
	framework := filepath.Join(base, name+".framework")
	require.NoError(t, os.MkdirAll(framework, 0o750))
	for _, s := range siblings {
		require.NoError(t, os.WriteFile(filepath.Join(base, s), nil, 0o600))
	}
	return framework
}

func TestFrameworkPaths(t *testing.T) {
	sandbox := t.TempDir()
	framework := vendored(t, sandbox, "BananaLib", "Banana", "B.bcsymbolmap", "A.bcsymbolmap", "notes.txt")

	fp, err := fs.NewFrameworkPaths(sandbox, framework)
	require.NoError(t, err)

	assert.Equal(t, framework, fp.FrameworkPath())
	assert.Equal(t, framework+".dSYM", fp.DSYMPath())
	assert.Equal(t, []string{
		filepath.Join(sandbox, "BananaLib", "A.bcsymbolmap"),
		filepath.Join(sandbox, "BananaLib", "B.bcsymbolmap"),
	}, fp.BCSymbolMapPaths())
	assert.Len(t, fp.AllPaths(), 4)

	rel, err := fp.RelativeFrameworkPath()
	require.NoError(t, err)
	assert.Equal(t, "${PODS_ROOT}/BananaLib/Banana.framework", rel)

	dsym, err := fp.RelativeDSYMPath()
	require.NoError(t, err)
	assert.Equal(t, "${PODS_ROOT}/BananaLib/Banana.framework.dSYM", dsym)

	all, err := fp.AllRelativePaths()
	require.NoError(t, err)
	if diff := cmp.Diff([]string{
		"${PODS_ROOT}/BananaLib/Banana.framework",
		"${PODS_ROOT}/BananaLib/Banana.framework.dSYM",
		"${PODS_ROOT}/BananaLib/A.bcsymbolmap",
		"${PODS_ROOT}/BananaLib/B.bcsymbolmap",
	}, all); diff != "" {
		t.Errorf("AllRelativePaths() mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameworkPaths_OutsideSandbox(t *testing.T) {
	root := t.TempDir()
	framework := vendored(t, root, "vendor", "Monkey")

	fp, err := fs.NewFrameworkPaths(filepath.Join(root, "Pods"), framework)
	require.NoError(t, err)

	rel, err := fp.RelativeFrameworkPath()
	require.NoError(t, err)
	assert.Equal(t, "${PODS_ROOT}/../vendor/Monkey.framework", rel)
	assert.Empty(t, fp.BCSymbolMapPaths())
	assert.Equal(t, []string{framework, framework + ".dSYM"}, fp.AllPaths())
}

func TestFrameworkPaths_SymbolMapsAreCached(t *testing.T) {
	sandbox := t.TempDir()
	framework := vendored(t, sandbox, "BananaLib", "Banana", "A.bcsymbolmap")

	fp, err := fs.NewFrameworkPaths(sandbox, framework)
	require.NoError(t, err)
	require.Len(t, fp.BCSymbolMapPaths(), 1)

	require.NoError(t, os.WriteFile(filepath.Join(sandbox, "BananaLib", "C.bcsymbolmap"), nil, 0o600))
	assert.Len(t, fp.BCSymbolMapPaths(), 1)
}

func TestFrameworkPaths_RequiresAbsolutePath(t *testing.T) {
	_, err := fs.NewFrameworkPaths("/sandbox", "BananaLib/Banana.framework")

	require.ErrorContains(t, err, domain.ErrRelativeFrameworkPath.Error())
}

func TestFrameworkPaths_Equal(t *testing.T) {
	sandbox := t.TempDir()
	banana := vendored(t, sandbox, "BananaLib", "Banana")
	monkey := vendored(t, sandbox, "monkey", "dynamic-monkey")

	a, err := fs.NewFrameworkPaths(sandbox, banana)
	require.NoError(t, err)
	b, err := fs.NewFrameworkPaths(sandbox, banana)
	require.NoError(t, err)
	c, err := fs.NewFrameworkPaths(sandbox, monkey)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.False(t, a.Equal(nil))
}

func TestArtifactResolver(t *testing.T) {
	sandbox := t.TempDir()
	framework := vendored(t, sandbox, "BananaLib", "Banana")
	r := fs.NewArtifactResolver()

	first, err := r.FrameworkPaths(sandbox, framework)
	require.NoError(t, err)
	second, err := r.FrameworkPaths(sandbox, framework)
	require.NoError(t, err)
	assert.Same(t, first, second)

	paths, err := r.RelativeFrameworkPaths(sandbox, framework)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"${PODS_ROOT}/BananaLib/Banana.framework",
		"${PODS_ROOT}/BananaLib/Banana.framework.dSYM",
	}, paths)

	_, err = r.RelativeFrameworkPaths(sandbox, "Banana.framework")
	require.ErrorContains(t, err, domain.ErrRelativeFrameworkPath.Error())
}
