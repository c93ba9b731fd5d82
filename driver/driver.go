// Package driver rewrites python files and standard input and computes the exit status.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/viant/afs"
	"github.com/viant/trailcomma"
	"github.com/viant/trailcomma/cache"
	"github.com/viant/trailcomma/config"
	"golang.org/x/sync/errgroup"
)

// Stdin is the path standing for standard input
const Stdin = "-"

// ErrDecode reports input that is not valid UTF-8
var ErrDecode = errors.New("non-utf-8 (not supported)")

// Driver processes files with trailing comma rewrites
type Driver struct {
	config *config.Config
	fs     afs.Service
	store  *cache.Store
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	notice *color.Color
}

// Outcome is the result of processing a single path
type Outcome struct {
	Path    string
	Changed bool
	Cached  bool
	Err     error
	output  []byte
}

// Status returns the per file exit status
func (o *Outcome) Status(exitZeroEvenIfChanged bool) int {
	if o.Err != nil || (o.Changed && !exitZeroEvenIfChanged) {
		return 1
	}
	return 0
}

// New creates a driver
func New(cfg *config.Config, options ...Option) *Driver {
	d := &Driver{
		config: cfg,
		fs:     afs.New(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		notice: color.New(color.FgYellow),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Run processes paths and returns the process exit status
func (d *Driver) Run(ctx context.Context, paths []string) (int, error) {
	files, err := d.expand(ctx, paths)
	if err != nil {
		return 1, err
	}
	outcomes, err := d.Process(ctx, files)
	if err != nil {
		return 1, err
	}
	if err = d.store.Flush(); err != nil {
		d.debug("failed to write cache", "error", err)
	}
	status := 0
	for _, outcome := range outcomes {
		d.report(outcome)
		status |= outcome.Status(d.config.ExitZeroEvenIfChanged)
	}
	return status, nil
}

// Process rewrites files concurrently, results keep the order of files
func (d *Driver) Process(ctx context.Context, files []string) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(files))
	if len(files) == 0 {
		return outcomes, nil
	}
	jobs := d.config.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, location := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = d.fixFile(gctx, location)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (d *Driver) fixFile(ctx context.Context, location string) *Outcome {
	outcome := &Outcome{Path: location}
	data, err := d.read(ctx, location)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if !utf8.Valid(data) {
		outcome.Err = ErrDecode
		return outcome
	}
	key, keyErr := cache.Key(data, d.config.Mode().String(), d.config.TargetVersion)
	if location != Stdin && keyErr == nil && d.store.Has(key) {
		d.debug("cache hit", "path", location)
		outcome.Cached = true
		return outcome
	}

	result, err := trailcomma.Fix(ctx, string(data), append(d.config.Options(), trailcomma.WithLogger(d.logger))...)
	if err != nil {
		d.debug("left unchanged", "path", location, "error", err)
	}
	outcome.Changed = result.Changed
	if location == Stdin {
		outcome.output = []byte(result.Source)
		return outcome
	}
	if !result.Changed {
		if keyErr == nil && err == nil {
			d.store.Add(key)
		}
		return outcome
	}
	if err = d.write(ctx, location, result.Source); err != nil {
		outcome.Err = err
		return outcome
	}
	if key, keyErr = cache.Key([]byte(result.Source), d.config.Mode().String(), d.config.TargetVersion); keyErr == nil {
		d.store.Add(key)
	}
	return outcome
}

func (d *Driver) read(ctx context.Context, location string) ([]byte, error) {
	if location == Stdin {
		return io.ReadAll(d.stdin)
	}
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

func (d *Driver) write(ctx context.Context, location string, source string) error {
	mode := os.FileMode(0o644)
	if object, err := d.fs.Object(ctx, location); err == nil {
		mode = object.Mode().Perm()
	}
	if err := d.fs.Upload(ctx, location, mode, bytes.NewReader([]byte(source))); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// report prints user facing notices for an outcome
func (d *Driver) report(outcome *Outcome) {
	switch {
	case errors.Is(outcome.Err, ErrDecode):
		fmt.Fprintf(d.stderr, "%s is %v\n", outcome.Path, ErrDecode)
	case outcome.Err != nil:
		d.notice.Fprintf(d.stderr, "%v\n", outcome.Err)
	case outcome.Path == Stdin:
		_, _ = d.stdout.Write(outcome.output)
	case outcome.Changed:
		d.notice.Fprintf(d.stderr, "Rewriting %s\n", outcome.Path)
	}
}

func (d *Driver) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
