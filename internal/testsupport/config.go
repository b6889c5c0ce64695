package testsupport

import (
	"path/filepath"
	"testing"

	"tidydir/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths live in a per-test temp
// directory. It applies any provided options afterwards.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogFile = filepath.Join(base, "logs", "organizer.log")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "state", "history.db")
	cfgVal.Logging.Format = "json"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistory enables the SQLite session journal on the test config.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithLockRoot enables the per-root session lock.
func WithLockRoot() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.LockRoot = true
	}
}

// WithCategories replaces the category table on the test config.
func WithCategories(fallback string, categories ...config.Category) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organizer.FallbackCategory = fallback
		b.cfg.Categories = categories
	}
}
