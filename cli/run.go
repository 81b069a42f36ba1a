package cli

// This file contains the top-level run action: configuration
// resolution, catalog construction, the workspace-bracketed profile
// passes and final aggregation.

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/nv-legate/legate-test/harness"
)

func (a *App) run(ctx *cli.Context) error {
	startTime := time.Now()

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}

	cfg, err := harness.Resolve(*opts)
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("root", cfg.RootDir).
		Str("legate", cfg.LegateDir).
		Msg("Resolved configuration")

	manifest, err := harness.LoadManifest(cfg.RootDir)
	if err != nil {
		return err
	}
	catalog, err := harness.BuildCatalog(cfg.RootDir, manifest)
	if err != nil {
		return err
	}
	a.logger.Debug().Int("tests", len(catalog)).Msg("Built test catalog")

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		text.DisableColors()
	}

	out := io.Writer(os.Stdout)
	cfg.Print(out)

	ws, err := harness.NewWorkspace(cfg.RootDir, cfg.KeepWorkspace, cfg.Verbose, out)
	if err != nil {
		return err
	}
	// The workspace is removed on every exit path, including a
	// catastrophic driver failure mid-run.
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			a.logger.Warn().Err(cerr).Str("dir", ws.Dir).Msg("Failed to remove workspace")
		}
	}()
	if cfg.Verbose {
		fmt.Fprintf(out, "Using output directory: %s\n\n", ws.Dir)
	}

	runner := &harness.Runner{
		Config:  cfg,
		Catalog: catalog,
		Env:     harness.BuildEnvironment(cfg, ws.BuildDir()),
		Out:     out,
	}

	var tally harness.Tally
	for _, profile := range cfg.Profiles() {
		err := harness.RunStage(out, profile.StageName, func() error {
			passed, err := runner.Run(profile)
			if err != nil {
				return err
			}
			tally.Add(profile.Name, passed, len(catalog))
			return nil
		})
		if err != nil {
			return err
		}
	}

	if err := tally.PrintSummary(out); err != nil {
		return err
	}

	exitCode := 0
	if !tally.AllPassed() {
		exitCode = 1
	}

	if path := ctx.String("report"); path != "" {
		if err := a.writeReport(path, cfg, &tally, startTime, exitCode); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to write run report")
		}
	}

	if exitCode != 0 {
		passed, total := tally.Overall()
		return cli.Exit(fmt.Sprintf("%d of %d tests failed", total-passed, total), exitCode)
	}
	return nil
}

// optionsFromContext collects the raw CLI inputs for the configuration
// resolver.
func optionsFromContext(ctx *cli.Context) (*harness.Options, error) {
	opts := &harness.Options{
		CPUs:          ctx.Int("cpus"),
		GPUs:          ctx.Int("gpus"),
		OMPs:          ctx.Int("omps"),
		OMPThreads:    ctx.Int("ompthreads"),
		RootDir:       ctx.String("directory"),
		LegateDir:     ctx.String("legate"),
		KeepWorkspace: ctx.Bool("keep"),
		Verbose:       ctx.Bool("verbose"),
	}

	// --no-debug wins when both debug flags are given.
	if ctx.Bool("no-debug") {
		opts.Debug = boolPtr(false)
	} else if ctx.Bool("debug") {
		opts.Debug = boolPtr(true)
	}

	if ctx.IsSet("use") {
		features := ctx.StringSlice("use")
		for _, name := range features {
			if !harness.KnownFeature(name) {
				return nil, &harness.ConfigurationError{Reason: fmt.Sprintf("unknown feature %q", name)}
			}
		}
		opts.UseFeatures = features
	}

	// Trailing arguments (after flags, or after --) are forwarded to
	// the driver on every test invocation.
	extra := ctx.Args().Slice()
	if len(extra) > 0 && extra[0] == "--" {
		extra = extra[1:]
	}
	opts.Extra = extra

	return opts, nil
}

func boolPtr(v bool) *bool {
	return &v
}
