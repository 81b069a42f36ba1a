package cli

// This file contains JSON run-report writing for machine consumers
// (CI pipelines), enabled with --report.

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nv-legate/legate-test/harness"
	"github.com/nv-legate/legate-test/model"
)

func (a *App) writeReport(path string, cfg *harness.RunConfiguration, tally *harness.Tally, start time.Time, exitCode int) error {
	// Generate random 16-byte ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}

	passed, total := tally.Overall()
	report := model.Report{
		ID:        hex.EncodeToString(idBytes),
		Timestamp: start,
		Args:      os.Args,
		RootDir:   cfg.RootDir,
		LegateDir: cfg.LegateDir,
		Duration:  time.Since(start),
		Passed:    passed,
		Total:     total,
		ExitCode:  exitCode,
	}
	for _, r := range tally.Results() {
		report.Profiles = append(report.Profiles, model.ProfileReport{
			Name:   r.Name,
			Passed: r.Passed,
			Total:  r.Total,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}

	a.logger.Debug().Str("path", path).Msg("Run report written")
	return nil
}
