package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envValue returns the effective value of key in env, honoring the
// os/exec rule that the last entry for a duplicate key wins.
func envValue(t *testing.T, env []string, key string) string {
	t.Helper()
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return strings.TrimPrefix(env[i], prefix)
		}
	}
	t.Fatalf("%s not present in environment", key)
	return ""
}

func testConfig(enabled ...Feature) *RunConfiguration {
	cfg := &RunConfiguration{
		Debug:   true,
		Enabled: make(map[Feature]bool, len(Features)),
	}
	for _, f := range enabled {
		cfg.Enabled[f] = true
	}
	return cfg
}

func TestBuildEnvironmentIndicators(t *testing.T) {
	cfg := testConfig(FeatureCUDA)
	cfg.Debug = false

	env := BuildEnvironment(cfg, "/tmp/ws/build")

	assert.Equal(t, "1", envValue(t, env, "NUMPY_TEST"))
	assert.Equal(t, "0", envValue(t, env, "DEBUG"))
	assert.Equal(t, "1", envValue(t, env, "USE_CUDA"))
	assert.Equal(t, "0", envValue(t, env, "USE_CPUS"))
	assert.Equal(t, "0", envValue(t, env, "USE_GASNET"))
	assert.Equal(t, "1", envValue(t, env, "USE_PYTHON"), "the embedded runtime indicator is always on")
	assert.Equal(t, "/tmp/ws/build", envValue(t, env, "CMAKE_BUILD_DIR"))
	assert.NotEmpty(t, envValue(t, env, "CMAKE_BUILD_PARALLEL_LEVEL"))
}

func TestBuildEnvironmentOverridesAmbient(t *testing.T) {
	t.Setenv("USE_CUDA", "1")

	env := BuildEnvironment(testConfig(FeatureCPUs), "/tmp/ws/build")

	assert.Equal(t, "0", envValue(t, env, "USE_CUDA"), "resolved configuration wins over the inherited variable")
}

func TestBuildEnvironmentGcovAppends(t *testing.T) {
	t.Setenv("CC_FLAGS", "-O2")
	unsetenv(t, "LD_FLAGS")

	env := BuildEnvironment(testConfig(FeatureCPUs, FeatureGcov), "/tmp/ws/build")

	assert.Equal(t, "-O2 -ftest-coverage -fprofile-arcs", envValue(t, env, "CC_FLAGS"))
	assert.Equal(t, " -ftest-coverage -fprofile-arcs", envValue(t, env, "LD_FLAGS"))
}

func TestBuildEnvironmentNoGcov(t *testing.T) {
	t.Setenv("CC_FLAGS", "-O2")

	env := BuildEnvironment(testConfig(FeatureCPUs), "/tmp/ws/build")

	assert.Equal(t, "-O2", envValue(t, env, "CC_FLAGS"), "compile flags stay untouched without gcov")
}

func TestAppCores(t *testing.T) {
	require.GreaterOrEqual(t, AppCores(), 1)
	require.GreaterOrEqual(t, PhysicalCores(), 1)
}
