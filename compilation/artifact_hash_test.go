package compilation

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.so")
	second := filepath.Join(dir, "b.so")
	require.NoError(t, os.WriteFile(first, []byte{0x7f, 'E', 'L', 'F'}, 0644))
	require.NoError(t, os.WriteFile(second, []byte{0x7f, 'E', 'L', 'F'}, 0644))

	hash1, err := HashFile(first)
	require.NoError(t, err)
	hash2, err := HashFile(second)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "identical contents should produce the same hash")
	assert.Len(t, hash1, 64)

	require.NoError(t, os.WriteFile(second, []byte{0x7f, 'E', 'L', 'G'}, 0644))
	hash3, err := HashFile(second)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3, "different contents should produce a different hash")
}

func TestHashFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := HashFile(filepath.Join(t.TempDir(), "missing.so"))
	assert.Error(t, err)
}

func TestArtifactHashCache_LoadMissing(t *testing.T) {
	t.Parallel()

	cache, err := OpenArtifactHashCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	record, err := cache.Load("foo")
	require.NoError(t, err)
	assert.Nil(t, record, "should return nil for a module without a record")
}

func TestArtifactHashCache_SaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := OpenArtifactHashCache(dir)
	require.NoError(t, err)

	original := &ArtifactHashRecord{
		Hash:         "abc123def456",
		Timestamp:    time.Now().Truncate(time.Second),
		Dependencies: []string{"rand"},
		Override:     "upstream",
	}
	require.NoError(t, cache.Save("foo", original))
	require.NoError(t, cache.Close())

	// Records survive reopening the database
	cache, err = OpenArtifactHashCache(dir)
	require.NoError(t, err)
	defer cache.Close()

	loaded, err := cache.Load("foo")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original.Hash, loaded.Hash)
	assert.Equal(t, original.Dependencies, loaded.Dependencies)
	assert.Equal(t, original.Override, loaded.Override)
	assert.WithinDuration(t, original.Timestamp, loaded.Timestamp, time.Second)

	_, err = os.Stat(filepath.Join(dir, ArtifactHashCacheFileName))
	assert.NoError(t, err, "cache file should exist")
}

func TestOpenArtifactHashCache_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := OpenArtifactHashCache(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNotifyArtifactHashStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewLogger(zerolog.InfoLevel)
	logger.AddWriter(&buf, logging.UNSTRUCTURED, false)

	dir := t.TempDir()
	artifact := &types.BuildArtifact{DestinationPath: "/src/foo.so", Hash: "1111"}

	NotifyArtifactHashStatus("foo", artifact, ArtifactHashRecord{Dependencies: []string{"rand"}}, dir, logger)
	assert.Contains(t, buf.String(), "new")

	buf.Reset()
	NotifyArtifactHashStatus("foo", artifact, ArtifactHashRecord{}, dir, logger)
	assert.Contains(t, buf.String(), "unchanged")

	buf.Reset()
	artifact.Hash = "2222"
	NotifyArtifactHashStatus("foo", artifact, ArtifactHashRecord{}, dir, logger)
	assert.Contains(t, buf.String(), "new")
	assert.NotContains(t, buf.String(), "unchanged")
}

func TestNotifyArtifactHashStatus_CacheFailureIsWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewLogger(zerolog.InfoLevel)
	logger.AddWriter(&buf, logging.UNSTRUCTURED, false)

	artifact := &types.BuildArtifact{DestinationPath: "/src/foo.so", Hash: "1111"}
	NotifyArtifactHashStatus("foo", artifact, ArtifactHashRecord{}, filepath.Join(t.TempDir(), "missing"), logger)
	assert.Contains(t, buf.String(), "Failed to open artifact hash cache")
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{30 * time.Second, "30 seconds"},
		{1 * time.Minute, "1 minute"},
		{5 * time.Minute, "5 minutes"},
		{1 * time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
		{24 * time.Hour, "1 day"},
		{72 * time.Hour, "3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := formatDuration(tt.duration)
			assert.Equal(t, tt.expected, result)
		})
	}
}
