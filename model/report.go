package model

import "time"

// Report is the machine-readable record of one harness run, written
// when --report is given.
type Report struct {
	// Unique ID for this run (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Timestamp when the run started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Corpus root the tests were run from
	RootDir string `json:"root_dir"`
	// Installation directory of the library under test
	LegateDir string `json:"legate_dir"`
	// Duration of the whole run
	Duration time.Duration `json:"duration"`
	// Per-profile results in execution order
	Profiles []ProfileReport `json:"profiles"`
	// Aggregate counts across all executed profiles
	Passed int `json:"passed"`
	Total  int `json:"total"`
	// Exit code of the run
	ExitCode int `json:"exit_code"`
}

// ProfileReport is the aggregate result of one backend profile.
type ProfileReport struct {
	Name   string `json:"name"`
	Passed int    `json:"passed"`
	Total  int    `json:"total"`
}
