package harness

// This file contains the workspace lifecycle: a uniquely named scratch
// directory created before any profile executes and removed on every
// exit path unless retention was requested.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Workspace is the ephemeral directory backing one harness run. The
// Workspace is the sole owner of the directory; nothing else creates
// or removes it.
type Workspace struct {
	Dir string

	keep    bool
	verbose bool
	out     io.Writer
}

// NewWorkspace creates a fresh, uniquely named scratch directory under
// the corpus root. Workspaces retained by earlier runs are never
// reused.
func NewWorkspace(rootDir string, keep, verbose bool, out io.Writer) (*Workspace, error) {
	dir, err := os.MkdirTemp(rootDir, "legate-test-")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Dir: dir, keep: keep, verbose: verbose, out: out}, nil
}

// BuildDir returns the build-output subdirectory handed to test
// invocations via the environment.
func (w *Workspace) BuildDir() string {
	return filepath.Join(w.Dir, "build")
}

// Close removes the workspace recursively unless retention was
// requested, in which case the path is printed and preserved for
// inspection.
func (w *Workspace) Close() error {
	if w.keep {
		fmt.Fprintln(w.out, "Leaving output directory:")
		fmt.Fprintf(w.out, "  %s\n", w.Dir)
		return nil
	}
	if w.verbose {
		fmt.Fprintln(w.out, "Removing output directory:")
		fmt.Fprintf(w.out, "  %s\n", w.Dir)
	}
	return os.RemoveAll(w.Dir)
}
