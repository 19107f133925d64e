package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/adapters/fs"
)

func TestFinder(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"Widget.xcodeproj", "App.xcodeproj", "Pods"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o750))
	}
	f := fs.NewFinder()

	assert.True(t, f.Exists(filepath.Join(root, "App.xcodeproj")))
	assert.False(t, f.Exists(filepath.Join(root, "Missing.xcodeproj")))

	matches, err := f.Glob(root, "*.xcodeproj")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "App.xcodeproj"),
		filepath.Join(root, "Widget.xcodeproj"),
	}, matches)

	matches, err = f.Glob(root, "*.xcworkspace")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFinder_MalformedPattern(t *testing.T) {
	_, err := fs.NewFinder().Glob(t.TempDir(), "[")

	require.ErrorContains(t, err, "failed to glob path")
}
