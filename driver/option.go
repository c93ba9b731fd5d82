package driver

import (
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/trailcomma/cache"
)

type Option func(*Driver)

// WithStdio replaces standard streams
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(d *Driver) {
		d.stdin = stdin
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithCache sets the clean-file store, a nil store disables caching
func WithCache(store *cache.Store) Option {
	return func(d *Driver) {
		d.store = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func WithFS(fs afs.Service) Option {
	return func(d *Driver) {
		d.fs = fs
	}
}
