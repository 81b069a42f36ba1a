package harness

import "strconv"

// Profile is one backend configuration under which the full test
// catalog is executed once.
type Profile struct {
	// Name is the short label used in PASS/FAIL lines and summaries.
	Name string
	// StageName labels the stage banners bracketing this profile.
	StageName string
	// Args are the driver resource flags for this backend.
	Args []string
}

// Profiles returns the enabled backend profiles in their fixed
// execution order: CPU, then GPU, then OpenMP.
func (c *RunConfiguration) Profiles() []Profile {
	var profiles []Profile
	if c.Enabled[FeatureCPUs] {
		profiles = append(profiles, Profile{
			Name:      "CPU",
			StageName: "CPU tests",
			Args:      []string{"--cpus", strconv.Itoa(c.CPUs)},
		})
	}
	if c.Enabled[FeatureCUDA] {
		profiles = append(profiles, Profile{
			Name:      "GPU",
			StageName: "GPU tests",
			Args:      []string{"--gpus", strconv.Itoa(c.GPUs)},
		})
	}
	if c.Enabled[FeatureOpenMP] {
		profiles = append(profiles, Profile{
			Name:      "OMP",
			StageName: "OpenMP tests",
			Args:      []string{"--omps", strconv.Itoa(c.OMPs), "--ompthreads", strconv.Itoa(c.OMPThreads)},
		})
	}
	return profiles
}
