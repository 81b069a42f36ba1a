package harness

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const bannerRule = "############################################################"

// RunStage brackets one backend profile's catalog pass with entry and
// exit banners. The exit banner always reports the error observed at
// exit and the elapsed wall-clock time, even when fn fails; fn's error
// is returned unmodified. The stage observes failures, it does not
// suppress them.
func RunStage(w io.Writer, name string, fn func() error) (err error) {
	begin := time.Now()
	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintf(w, "### Entering Stage: %s\n", name)
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w)

	defer func() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bannerRule)
		fmt.Fprintf(w, "### Exiting Stage: %s\n", name)
		fmt.Fprintf(w, "###   * Error: %s\n", errorLabel(err))
		fmt.Fprintf(w, "###   * Elapsed Time: %s\n", time.Since(begin).Round(time.Millisecond))
		fmt.Fprintln(w, bannerRule)
		fmt.Fprintln(w)
	}()

	return fn()
}

func errorLabel(err error) string {
	if err == nil {
		return "none"
	}
	return strings.TrimSpace(fmt.Sprintf("%T: %v", err, err))
}
