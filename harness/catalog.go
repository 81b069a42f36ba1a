package harness

// This file contains test catalog construction: discovery of the test
// programs under the corpus root, the declarative per-test manifest,
// and filtering of disabled entries.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry is one test program in the catalog, identified by its
// slash-separated path relative to the corpus root.
type Entry struct {
	Path string
	// Args are extra driver arguments specific to this test, applied
	// on every backend profile.
	Args []string
}

// Manifest declares per-test tweaks: tests to skip and extra
// command-line arguments for individual tests.
type Manifest struct {
	Disabled []string            `yaml:"disabled"`
	Flags    map[string][]string `yaml:"flags"`
}

// ManifestFile optionally overrides the built-in manifest when present
// under the corpus root.
const ManifestFile = "legate-tests.yaml"

// testDirs are the corpus directories scanned (non-recursively) for
// test programs.
var testDirs = []string{"tests", "examples"}

const testSuffix = ".py"

// defaultManifest mirrors the hand-maintained skip list and per-test
// arguments of the test corpus.
func defaultManifest() Manifest {
	return Manifest{
		Disabled: []string{
			"examples/kmeans_sort.py",
			"examples/wgrad.py",
			"tests/reduction_axis.py",
			"examples/lstm_full.py",
		},
		Flags: map[string][]string{
			"examples/lstm_full.py": {"--file", "resources/lstm_input.txt"},
		},
	}
}

// LoadManifest returns the manifest for the corpus root: the contents
// of legate-tests.yaml when the file exists, the built-in defaults
// otherwise.
func LoadManifest(rootDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return defaultManifest(), nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read test manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse test manifest: %w", err)
	}
	return m, nil
}

// BuildCatalog enumerates the test programs under the corpus root,
// drops disabled entries and attaches per-test arguments. The result
// is sorted by path and is shared by every backend profile of the run.
func BuildCatalog(rootDir string, m Manifest) ([]Entry, error) {
	disabled := make(map[string]struct{}, len(m.Disabled))
	for _, p := range m.Disabled {
		disabled[path.Clean(p)] = struct{}{}
	}

	var entries []Entry
	for _, dir := range testDirs {
		matches, err := filepath.Glob(filepath.Join(rootDir, dir, "*"+testSuffix))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		for _, match := range matches {
			rel := path.Join(dir, filepath.Base(match))
			if _, skip := disabled[rel]; skip {
				continue
			}
			entries = append(entries, Entry{Path: rel, Args: m.Flags[rel]})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
