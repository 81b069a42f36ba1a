package harness

// This file contains physical-core detection. The count only informs
// the build-parallelism hint handed to the library's CMake build; it
// has no effect on test scheduling, which is strictly sequential.

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// PhysicalCores returns the physical core count of the host, falling
// back to the logical core count when detection fails.
func PhysicalCores() int {
	cores, err := physicalCores()
	if err != nil || cores < 1 {
		return runtime.NumCPU()
	}
	return cores
}

func physicalCores() (int, error) {
	switch runtime.GOOS {
	case "linux":
		out, err := exec.Command("lscpu", "--parse=core").Output()
		if err != nil {
			return 0, err
		}
		seen := make(map[string]struct{})
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			seen[line] = struct{}{}
		}
		return len(seen), nil
	case "darwin":
		out, err := exec.Command("sysctl", "-n", "hw.physicalcpu").Output()
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(strings.TrimSpace(string(out)))
	default:
		return 0, fmt.Errorf("unknown platform: %s", runtime.GOOS)
	}
}

// AppCores returns the core count to hand to the library build,
// leaving headroom for the runtime's utility threads.
func AppCores() int {
	if n := PhysicalCores() - 2; n >= 1 {
		return n
	}
	return 1
}
