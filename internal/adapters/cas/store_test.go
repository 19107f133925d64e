package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/podgen/internal/adapters/cas"
	"go.trai.ch/podgen/internal/core/domain"
)

const content = "OTHER_LDFLAGS = $(inherited) -ObjC\n"

func TestDigest(t *testing.T) {
	d := cas.Digest([]byte(content))

	assert.True(t, strings.HasPrefix(d, "sha256:"))
	assert.Len(t, d, len("sha256:")+64)
	assert.Equal(t, d, cas.Digest([]byte(content)))
	assert.NotEqual(t, d, cas.Digest([]byte(content+"\n")))
}

func TestStore_PutAndGet(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "digests.json"))
	require.NoError(t, err)

	got, err := store.Get("Pods-App.debug.xcconfig")
	require.NoError(t, err)
	assert.Nil(t, got)

	d := cas.NewDigest("Pods-App.debug.xcconfig", []byte(content))
	require.NoError(t, store.Put(d))

	got, err = store.Get("Pods-App.debug.xcconfig")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.Digest, got.Digest)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".podgen", "digests.json")

	store1, err := cas.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.Put(cas.NewDigest("BananaLib.xcconfig", []byte(content))))

	store2, err := cas.Open(path)
	require.NoError(t, err)
	assert.True(t, store2.Matches("BananaLib.xcconfig", []byte(content)))
}

func TestStore_Matches(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "digests.json"))
	require.NoError(t, err)
	require.NoError(t, store.Put(cas.NewDigest("a.xcconfig", []byte(content))))

	assert.True(t, store.Matches("a.xcconfig", []byte(content)))
	assert.False(t, store.Matches("a.xcconfig", []byte("changed")))
	assert.False(t, store.Matches("b.xcconfig", []byte(content)))
}

func TestStore_PutRejectsInvalidDigest(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "digests.json"))
	require.NoError(t, err)

	err = store.Put(domain.DocumentDigest{Path: "a.xcconfig", Digest: "not-a-digest", Timestamp: time.Now()})
	require.ErrorContains(t, err, domain.ErrInvalidDigest.Error())
}

func TestStore_OmitZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digests.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.DocumentDigest{Path: "a.xcconfig", Digest: cas.Digest(nil)}))

	//nolint:gosec // Test file with controlled path
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"digest"`)
	assert.NotContains(t, string(data), `"timestamp"`)
}

func TestNewStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digests.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := cas.NewStore(path)
	require.ErrorContains(t, err, domain.ErrStoreReadFailed.Error())
}
