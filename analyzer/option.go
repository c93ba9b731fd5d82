package analyzer

import (
	"log/slog"
	"strings"
)

type Option func(*Rewriter)

// WithMode sets whether trailing commas are added or removed
func WithMode(mode Mode) Option {
	return func(r *Rewriter) {
		r.mode = mode
	}
}

// WithTargetVersion sets the minimum python version (e.g. "3.6") the rewritten code must run on.
// Commas after *args/**kwargs are only added when the target allows them, an empty target allows all.
func WithTargetVersion(version string) Option {
	return func(r *Rewriter) {
		r.targetVersion = NormalizeVersion(version)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// NormalizeVersion converts a python version such as "3.6" or "py36" to semver form ("v3.6")
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(strings.ToLower(version))
	if version == "" {
		return ""
	}
	version = strings.TrimPrefix(version, "v")
	if rest, ok := strings.CutPrefix(version, "py"); ok && len(rest) >= 2 && !strings.Contains(rest, ".") {
		version = rest[:1] + "." + rest[1:]
	}
	return "v" + version
}
