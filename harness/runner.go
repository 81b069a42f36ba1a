package harness

// This file contains the execution engine: one driver subprocess per
// catalog entry, with per-test failure isolation and streamed PASS/FAIL
// reporting.

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"
	"github.com/jedib0t/go-pretty/v6/text"
)

// backendTestFlag tells the driver to run the program in backend-test
// mode.
const backendTestFlag = "-lg:numpy:test"

// Runner executes the full test catalog once per backend profile by
// invoking the library driver for each entry. The same catalog and
// environment are used across every profile of a run.
type Runner struct {
	Config  *RunConfiguration
	Catalog []Entry
	Env     []string
	Out     io.Writer
}

// DriverPath returns the driver executable of the installation under
// test.
func (r *Runner) DriverPath() string {
	return filepath.Join(r.Config.LegateDir, "bin", "legate")
}

// Run invokes the driver once per catalog entry under the given
// profile and returns the number of passing tests. A test exiting
// nonzero is recorded as a failure and the pass continues: every entry
// is attempted exactly once. Only an invocation that cannot be
// attempted at all, such as a missing driver, aborts the pass.
func (r *Runner) Run(profile Profile) (int, error) {
	driver := r.DriverPath()
	passed := 0
	for _, entry := range r.Catalog {
		err := r.runOne(driver, profile, entry)
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			r.printResult(passMarker(), profile.Name, entry.Path)
			passed++
		case errors.As(err, &exitErr):
			r.printResult(failMarker(), profile.Name, entry.Path)
		default:
			return passed, fmt.Errorf("failed to invoke driver for %s: %w", entry.Path, err)
		}
	}
	r.printProfileSummary(profile.Name, passed)
	return passed, nil
}

// runOne executes a single test under the given profile, blocking
// until the subprocess exits.
func (r *Runner) runOne(driver string, profile Profile, entry Entry) error {
	args := make([]string, 0, 2+len(profile.Args)+len(entry.Args)+len(r.Config.Extra))
	args = append(args, filepath.Join(r.Config.RootDir, filepath.FromSlash(entry.Path)))
	args = append(args, backendTestFlag)
	args = append(args, profile.Args...)
	args = append(args, entry.Args...)
	args = append(args, r.Config.Extra...)

	cmd := exec.Command(driver, args...)
	cmd.Dir = r.Config.RootDir
	cmd.Env = r.Env
	if r.Config.Verbose {
		// Echo the command line and pass the test output through.
		fmt.Fprintln(r.Out, shellescape.QuoteCommand(append([]string{driver}, args...)))
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func (r *Runner) printResult(marker, profileName, testPath string) {
	fmt.Fprintf(r.Out, "[%s] (%s) %s\n", marker, profileName, testPath)
}

func (r *Runner) printProfileSummary(profileName string, passed int) {
	total := len(r.Catalog)
	fmt.Fprintf(r.Out, "%24s: Passed %4d of %4d tests (%5.1f%%)\n",
		profileName, passed, total, percent(passed, total))
}

func passMarker() string {
	return text.Colors{text.Bold, text.FgGreen}.Sprint("PASS")
}

func failMarker() string {
	return text.Colors{text.Bold, text.FgRed}.Sprint("FAIL")
}
