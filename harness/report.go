package harness

// This file contains result aggregation across backend profiles and
// the end-of-run summary.

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ProfileResult is the aggregate outcome of one backend profile's
// catalog pass. Individual test results are not retained.
type ProfileResult struct {
	Name   string
	Passed int
	Total  int
}

// Tally accumulates per-profile results over a run. The zero value is
// ready to use.
type Tally struct {
	results []ProfileResult
}

// Add records the outcome of one profile's pass.
func (t *Tally) Add(name string, passed, total int) {
	t.results = append(t.results, ProfileResult{Name: name, Passed: passed, Total: total})
}

// Results returns the recorded per-profile outcomes in execution order.
func (t *Tally) Results() []ProfileResult {
	return t.results
}

// Overall sums the per-profile counts.
func (t *Tally) Overall() (passed, total int) {
	for _, r := range t.results {
		passed += r.Passed
		total += r.Total
	}
	return passed, total
}

// AllPassed reports whether every executed test passed.
func (t *Tally) AllPassed() bool {
	passed, total := t.Overall()
	return passed == total
}

// PrintSummary writes the overall summary line and the per-profile
// results table. A run with zero executed tests is an internal error,
// never a silent success.
func (t *Tally) PrintSummary(w io.Writer) error {
	passed, total := t.Overall()
	if total == 0 {
		return errors.New("internal error: no tests were executed")
	}

	fmt.Fprintln(w, "    "+strings.Repeat("~", 54))
	fmt.Fprintf(w, "%24s: Passed %4d of %4d tests (%5.1f%%)\n",
		"total", passed, total, percent(passed, total))
	fmt.Fprintln(w)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"Profile", "Passed", "Total", "Pass Rate"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Total", Align: text.AlignRight},
		{Name: "Pass Rate", Align: text.AlignRight},
	})
	for _, r := range t.results {
		tbl.AppendRow(table.Row{r.Name, r.Passed, r.Total, formatPercent(r.Passed, r.Total)})
	}
	tbl.AppendFooter(table.Row{"total", passed, total, formatPercent(passed, total)})
	tbl.Render()

	return nil
}

func percent(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(100*passed) / float64(total)
}

func formatPercent(passed, total int) string {
	return fmt.Sprintf("%.1f%%", percent(passed, total))
}
