package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/trailcomma/cache"
	"github.com/viant/trailcomma/config"
	"github.com/viant/trailcomma/driver"
	"golang.org/x/term"
)

const legacyWarning = "WARNING: --py35-plus / --py36-plus do nothing"

type flags struct {
	removeComma   bool
	exitZero      bool
	py35Plus      bool
	py36Plus      bool
	targetVersion string
	jobs          int
	noCache       bool
	verbose       bool
	configPath    string
}

// run executes the command line and returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	status := 0
	cmd := newCommand(stdin, stdout, stderr, &status)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "trailcomma: %v\n", err)
		return 1
	}
	return status
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer, status *int) *cobra.Command {
	options := &flags{}
	cmd := &cobra.Command{
		Use:           "trailcomma [flags] [paths...]",
		Short:         "Add or remove trailing commas in python source",
		Long:          `trailcomma adds a trailing comma before every closing bracket that sits on its own line, or removes such commas with --remove-comma. Use - to read standard input and write the result to standard output.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := execute(cmd, options, args, stdin, stdout, stderr)
			*status = code
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	fs := cmd.Flags()
	fs.BoolVar(&options.removeComma, "remove-comma", false, "remove trailing commas instead of adding them")
	fs.BoolVar(&options.exitZero, "exit-zero-even-if-changed", false, "exit with 0 even when files were rewritten")
	fs.BoolVar(&options.py35Plus, "py35-plus", false, "deprecated, does nothing")
	fs.BoolVar(&options.py36Plus, "py36-plus", false, "deprecated, does nothing")
	fs.StringVar(&options.targetVersion, "target-version", "", "minimum python version of the rewritten code, e.g. 3.8")
	fs.IntVarP(&options.jobs, "jobs", "j", 0, "number of files processed concurrently (default: number of CPUs)")
	fs.BoolVar(&options.noCache, "no-cache", false, "do not read or write the clean-file cache")
	fs.BoolVarP(&options.verbose, "verbose", "v", false, "log debug diagnostics to stderr")
	fs.StringVar(&options.configPath, "config", "", "path to .trailcomma.yaml or pyproject.toml")
	return cmd
}

func execute(cmd *cobra.Command, options *flags, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	color.NoColor = !isTerminal(stderr)
	warn := color.New(color.FgYellow)
	if options.py35Plus || options.py36Plus {
		warn.Fprintln(stderr, legacyWarning)
	}

	var logger *slog.Logger
	if options.verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := loadConfig(ctx, options, args)
	if err != nil {
		return 1, err
	}
	applyFlags(cmd, options, cfg)
	if err = cfg.Validate(); err != nil {
		return 1, err
	}
	if logger != nil {
		if project := cfg.Project; project != nil {
			logger.Debug("project", "name", project.Name, "type", project.Type, "root", project.RootPath)
		}
		logger.Debug("configuration", "source", cfg.Source, "mode", cfg.Mode().String(), "target", cfg.TargetVersion, "jobs", cfg.Jobs)
	}

	driverOptions := []driver.Option{driver.WithStdio(stdin, stdout, stderr), driver.WithLogger(logger)}
	if !cfg.NoCache {
		store, err := cache.Open(cfg.CacheDir)
		if err != nil && logger != nil {
			logger.Debug("cache disabled", "dir", cfg.CacheDir, "error", err)
		}
		driverOptions = append(driverOptions, driver.WithCache(store))
	}
	return driver.New(cfg, driverOptions...).Run(ctx, args)
}

func loadConfig(ctx context.Context, options *flags, args []string) (*config.Config, error) {
	if options.configPath != "" {
		return config.Load(ctx, options.configPath)
	}
	start := "."
	for _, arg := range args {
		if arg != driver.Stdin {
			start = arg
			break
		}
	}
	return config.Discover(ctx, start)
}

// applyFlags overrides file settings with explicitly set flags
func applyFlags(cmd *cobra.Command, options *flags, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("remove-comma") {
		cfg.RemoveComma = options.removeComma
	}
	if fs.Changed("exit-zero-even-if-changed") {
		cfg.ExitZeroEvenIfChanged = options.exitZero
	}
	if fs.Changed("target-version") {
		cfg.TargetVersion = options.targetVersion
	}
	if fs.Changed("jobs") {
		cfg.Jobs = options.jobs
	}
	if fs.Changed("no-cache") {
		cfg.NoCache = options.noCache
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
