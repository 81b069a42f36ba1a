package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCorpus creates a corpus root containing the given relative test
// files.
func writeCorpus(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# test payload\n"), 0o644))
	}
	return root
}

func catalogPaths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestBuildCatalogDisabledFilter(t *testing.T) {
	root := writeCorpus(t, "tests/a.py", "tests/b.py")
	m := Manifest{Disabled: []string{"tests/b.py"}}

	entries, err := BuildCatalog(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/a.py"}, catalogPaths(entries))
}

func TestBuildCatalogDefaultManifest(t *testing.T) {
	root := writeCorpus(t,
		"tests/nonzero.py",
		"tests/where.py",
		"tests/reduction_axis.py",
		"examples/kmeans_sort.py",
		"examples/lstm_full.py",
	)

	m, err := LoadManifest(root)
	require.NoError(t, err)

	entries, err := BuildCatalog(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/nonzero.py", "tests/where.py"}, catalogPaths(entries))
}

func TestBuildCatalogOrdering(t *testing.T) {
	root := writeCorpus(t, "tests/z.py", "tests/a.py", "examples/m.py")

	entries, err := BuildCatalog(root, Manifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"examples/m.py", "tests/a.py", "tests/z.py"}, catalogPaths(entries))
}

func TestBuildCatalogIgnoresNonTests(t *testing.T) {
	root := writeCorpus(t, "tests/a.py", "tests/README.md", "tests/sub/nested.py", "resources/input.py")

	entries, err := BuildCatalog(root, Manifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/a.py"}, catalogPaths(entries))
}

func TestBuildCatalogExtraArgs(t *testing.T) {
	root := writeCorpus(t, "examples/lstm_full.py", "tests/a.py")
	m := Manifest{
		Flags: map[string][]string{
			"examples/lstm_full.py": {"--file", "resources/lstm_input.txt"},
		},
	}

	entries, err := BuildCatalog(root, m)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"--file", "resources/lstm_input.txt"}, entries[0].Args)
	assert.Empty(t, entries[1].Args)
}

func TestLoadManifestOverride(t *testing.T) {
	root := writeCorpus(t, "tests/a.py", "tests/b.py")
	manifest := `
disabled:
  - tests/b.py
flags:
  tests/a.py: ["--file", "resources/in.txt"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile), []byte(manifest), 0o644))

	m, err := LoadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/b.py"}, m.Disabled)
	assert.Equal(t, []string{"--file", "resources/in.txt"}, m.Flags["tests/a.py"])

	entries, err := BuildCatalog(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests/a.py"}, catalogPaths(entries))
}

func TestLoadManifestInvalid(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile), []byte("disabled: {not: [a, list"), 0o644))

	_, err := LoadManifest(root)
	assert.Error(t, err)
}
