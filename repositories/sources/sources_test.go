package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyRegistry(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "sources.json"))

	assert.Empty(t, repo.Load())
}

func TestLoadCorruptFileReturnsEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o644))

	assert.Empty(t, New(path).Load())
}

func TestLoadReadsRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"acme": "https://status.acme.example/feed.atom"}`), 0o644))

	registry := New(path).Load()

	assert.Equal(t, map[string]string{"acme": "https://status.acme.example/feed.atom"}, registry)
}

func TestLoadPicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	repo := New(path)

	require.NoError(t, os.WriteFile(path, []byte(`{"acme": "https://a.example/feed"}`), 0o644))
	assert.Len(t, repo.Load(), 1)

	// A source added between cycles must show up on the next Load.
	require.NoError(t, os.WriteFile(path, []byte(`{"acme": "https://a.example/feed", "initech": "https://b.example/feed"}`), 0o644))
	registry := repo.Load()
	assert.Len(t, registry, 2)
	assert.Contains(t, registry, "initech")
}
