package harness

// This file contains resolution of the run configuration from command
// line options, environment variables and the persisted installation
// config, merged into a single immutable value.

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Feature identifies one switchable capability of the library under test.
type Feature string

const (
	FeatureGASNet Feature = "gasnet"
	FeatureCUDA   Feature = "cuda"
	FeatureOpenMP Feature = "openmp"
	FeatureLLVM   Feature = "llvm"
	FeatureHDF    Feature = "hdf"
	FeatureSpy    Feature = "spy"
	FeatureGcov   Feature = "gcov"
	FeatureCMake  Feature = "cmake"
	FeatureCPUs   Feature = "cpus"
)

// Features lists every known feature in a stable order.
var Features = []Feature{
	FeatureGASNet,
	FeatureCUDA,
	FeatureOpenMP,
	FeatureLLVM,
	FeatureHDF,
	FeatureSpy,
	FeatureGcov,
	FeatureCMake,
	FeatureCPUs,
}

// EnvVar returns the environment variable controlling the feature,
// e.g. USE_CUDA for the cuda feature.
func (f Feature) EnvVar() string {
	return "USE_" + strings.ToUpper(string(f))
}

// KnownFeature reports whether name is a recognized feature.
func KnownFeature(name string) bool {
	for _, f := range Features {
		if string(f) == name {
			return true
		}
	}
	return false
}

// legateConfigFile is the persisted JSON file under the corpus root
// holding a fallback installation directory. It is read-only to the
// harness.
const legateConfigFile = ".legate.core.json"

// Options carries the raw inputs to Resolve. Zero values mean "not
// provided" except for the resource counts, which the CLI layer
// defaults.
type Options struct {
	// Debug overrides the DEBUG environment variable when non-nil.
	Debug *bool
	// UseFeatures is the accumulated --use list. nil means no --use
	// flag was given; an empty non-nil slice disables every feature.
	UseFeatures []string

	CPUs       int
	GPUs       int
	OMPs       int
	OMPThreads int

	RootDir   string
	LegateDir string

	KeepWorkspace bool
	Verbose       bool

	// Extra arguments are forwarded verbatim to every test invocation.
	Extra []string
}

// RunConfiguration is the resolved configuration for one harness run.
// It is immutable once returned by Resolve.
type RunConfiguration struct {
	Debug   bool
	Enabled map[Feature]bool

	CPUs       int
	GPUs       int
	OMPs       int
	OMPThreads int

	// RootDir is the absolute path of the test corpus root.
	RootDir string
	// LegateDir is the absolute path of the Legate installation.
	LegateDir string

	KeepWorkspace bool
	Verbose       bool
	Extra         []string
}

// FeatureEnabled reports whether the feature was selected for this run.
func (c *RunConfiguration) FeatureEnabled(f Feature) bool {
	return c.Enabled[f]
}

// Resolve merges explicit options, environment variables and defaults
// into a RunConfiguration. It fails with a *ConfigurationError when no
// existing Legate installation directory can be determined.
func Resolve(opts Options) (*RunConfiguration, error) {
	rootDir := opts.RootDir
	if rootDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, configErrorf("cannot determine working directory: %v", err)
		}
		rootDir = cwd
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, configErrorf("invalid root directory %q: %v", opts.RootDir, err)
	}

	legateDir, err := resolveLegateDir(opts.LegateDir, rootDir)
	if err != nil {
		return nil, err
	}

	enabled := make(map[Feature]bool, len(Features))
	for _, f := range Features {
		enabled[f] = featureEnabled(f, opts.UseFeatures)
	}
	// Always test on at least one backend.
	if !enabled[FeatureCPUs] && !enabled[FeatureCUDA] && !enabled[FeatureOpenMP] {
		enabled[FeatureCPUs] = true
	}

	debug := true
	if v, ok := os.LookupEnv("DEBUG"); ok {
		debug = v == "1"
	}
	if opts.Debug != nil {
		debug = *opts.Debug
	}

	return &RunConfiguration{
		Debug:         debug,
		Enabled:       enabled,
		CPUs:          opts.CPUs,
		GPUs:          opts.GPUs,
		OMPs:          opts.OMPs,
		OMPThreads:    opts.OMPThreads,
		RootDir:       rootDir,
		LegateDir:     legateDir,
		KeepWorkspace: opts.KeepWorkspace,
		Verbose:       opts.Verbose,
		Extra:         opts.Extra,
	}, nil
}

// featureEnabled applies the per-feature resolution rule: an explicit
// --use list overrides the environment entirely (a feature absent from
// a provided list is disabled even if its environment variable is set);
// without a list the USE_* variable decides, defaulting to off.
func featureEnabled(f Feature, explicit []string) bool {
	if explicit != nil {
		for _, name := range explicit {
			if name == string(f) {
				return true
			}
		}
		return false
	}
	return os.Getenv(f.EnvVar()) == "1"
}

// resolveLegateDir determines the installation directory of the library
// under test: explicit flag, then LEGATE_DIR, then the persisted JSON
// config under the corpus root. The directory must exist.
func resolveLegateDir(explicit, rootDir string) (string, error) {
	dir := explicit
	if dir == "" {
		dir = os.Getenv("LEGATE_DIR")
	}
	if dir == "" {
		dir = loadJSONConfig(filepath.Join(rootDir, legateConfigFile))
	}
	if dir == "" {
		return "", &ConfigurationError{
			Reason: "missing installation directory: provide one with --legate or LEGATE_DIR",
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", configErrorf("invalid installation directory %q: %v", dir, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", configErrorf("installation directory %s does not exist", abs)
	}
	return abs, nil
}

// loadJSONConfig reads the persisted installation directory, if any.
// The file holds a single JSON string. Any read or parse failure is
// treated as "no persisted directory".
func loadJSONConfig(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var dir string
	if err := json.Unmarshal(data, &dir); err != nil {
		return ""
	}
	return dir
}

// Print writes the test-suite configuration banner.
func (c *RunConfiguration) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, "### Test Suite Configuration")
	fmt.Fprintln(w, "###")
	fmt.Fprintf(w, "### Debug:          %v\n", c.Debug)
	fmt.Fprintln(w, "###")
	fmt.Fprintln(w, "### Test Flags:")
	fmt.Fprintf(w, "###   * CPUs:       %v\n", c.Enabled[FeatureCPUs])
	fmt.Fprintf(w, "###   * GASNet:     %v\n", c.Enabled[FeatureGASNet])
	fmt.Fprintf(w, "###   * CUDA:       %v\n", c.Enabled[FeatureCUDA])
	fmt.Fprintf(w, "###   * OpenMP:     %v\n", c.Enabled[FeatureOpenMP])
	fmt.Fprintf(w, "###   * LLVM:       %v\n", c.Enabled[FeatureLLVM])
	fmt.Fprintf(w, "###   * HDF5:       %v\n", c.Enabled[FeatureHDF])
	fmt.Fprintf(w, "###   * Spy:        %v\n", c.Enabled[FeatureSpy])
	fmt.Fprintf(w, "###   * Gcov:       %v\n", c.Enabled[FeatureGcov])
	fmt.Fprintf(w, "###   * CMake:      %v\n", c.Enabled[FeatureCMake])
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w)
}
