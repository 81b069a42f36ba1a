package harness

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyOverall(t *testing.T) {
	var tally Tally
	tally.Add("CPU", 2, 3)
	tally.Add("OMP", 3, 3)

	passed, total := tally.Overall()
	assert.Equal(t, 5, passed)
	assert.Equal(t, 6, total)
	assert.False(t, tally.AllPassed())
}

func TestTallyAllPassed(t *testing.T) {
	var tally Tally
	tally.Add("CPU", 3, 3)
	tally.Add("GPU", 3, 3)

	assert.True(t, tally.AllPassed())
}

func TestPrintSummaryPercentage(t *testing.T) {
	text.DisableColors()

	var tally Tally
	tally.Add("CPU", 2, 3)
	tally.Add("OMP", 3, 3)

	var out bytes.Buffer
	require.NoError(t, tally.PrintSummary(&out))

	summary := out.String()
	assert.Contains(t, summary, "Passed    5 of    6 tests ( 83.3%)")
	assert.Contains(t, summary, "CPU")
	assert.Contains(t, summary, "OMP")
	assert.Contains(t, summary, "66.7%")
}

func TestPrintSummaryZeroTotal(t *testing.T) {
	var tally Tally

	var out bytes.Buffer
	err := tally.PrintSummary(&out)
	require.Error(t, err, "zero executed tests must never read as success")
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 83.3, percent(5, 6), 0.05)
	assert.Equal(t, 100.0, percent(3, 3))
	assert.Equal(t, 0.0, percent(0, 0))
}
