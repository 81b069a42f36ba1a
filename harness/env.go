package harness

// This file contains derivation of the child-process environment for
// test invocations. The harness's own environment is copied, never
// mutated; later entries override earlier ones per os/exec semantics.

import (
	"os"
	"strconv"
)

// gcovFlags are appended to the compile and link flags when coverage
// instrumentation is requested.
const gcovFlags = " -ftest-coverage -fprofile-arcs"

// BuildEnvironment derives the environment handed to every test
// subprocess: the process environment plus normalized feature
// indicators, the workspace build directory and a build-parallelism
// hint.
func BuildEnvironment(cfg *RunConfiguration, buildDir string) []string {
	env := os.Environ()

	env = append(env, "NUMPY_TEST=1")
	env = append(env, "DEBUG="+indicator(cfg.Debug))
	for _, f := range Features {
		env = append(env, f.EnvVar()+"="+indicator(cfg.Enabled[f]))
	}
	// The driver always needs the embedded Python runtime.
	env = append(env, "USE_PYTHON=1")

	env = append(env, "CMAKE_BUILD_DIR="+buildDir)
	env = append(env, "CMAKE_BUILD_PARALLEL_LEVEL="+strconv.Itoa(AppCores()))

	if cfg.Enabled[FeatureGcov] {
		// Coverage is driven through the compile and link flags;
		// pre-existing values are preserved, not replaced.
		env = append(env, "CC_FLAGS="+os.Getenv("CC_FLAGS")+gcovFlags)
		env = append(env, "LD_FLAGS="+os.Getenv("LD_FLAGS")+gcovFlags)
	}

	return env
}

func indicator(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
