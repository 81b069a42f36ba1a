package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "legate-test"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
	}
	app.cli = &cli.App{
		Name:  AppName,
		Usage: "Run the Legate NumPy test suite across backend configurations",
		Description: "Trailing arguments are forwarded to the Legate driver on " +
			"every test invocation. Driver arguments that look like flags " +
			"(e.g. -lg:sched) must be separated from the harness's own flags " +
			"with --:\n\n   legate-test --use cuda -- -lg:sched\n",
		ArgsUsage: "[-- driver args...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Invoke Legate in debug mode (also via DEBUG)",
			},
			&cli.BoolFlag{
				Name:  "no-debug",
				Usage: "Disable debug mode (equivalent to DEBUG=0)",
			},
			&cli.StringSliceFlag{
				Name:  "use",
				Usage: "Test Legate with features (also via USE_*); repeatable, accepts comma lists",
			},
			&cli.IntFlag{
				Name:  "cpus",
				Value: 4,
				Usage: "Number of CPUs per node to use",
			},
			&cli.IntFlag{
				Name:  "gpus",
				Value: 1,
				Usage: "Number of GPUs per node to use",
			},
			&cli.IntFlag{
				Name:  "omps",
				Value: 1,
				Usage: "Number of OpenMP processors per node to use",
			},
			&cli.IntFlag{
				Name:  "ompthreads",
				Value: 4,
				Usage: "Number of threads per OpenMP processor",
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"C"},
				Usage:   "Root directory from which to run tests",
			},
			&cli.StringFlag{
				Name:  "legate",
				Usage: "Legate installation directory",
			},
			&cli.BoolFlag{
				Name:  "keep",
				Usage: "Keep the output directory after the run",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Echo test commands and pass test output through",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON run report to the given path",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Action: app.run,
	}
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
