package testsupport

import (
	"path/filepath"
	"testing"

	"study/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose state directory is a fresh temp dir.
// The API base URL points nowhere until WithBackend or WithBaseURL is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.API.BaseURL = "http://127.0.0.1:0"
	cfgVal.API.TimeoutSeconds = 5
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Output.Color = "never"

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

// WithBaseURL points the config at url.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithBackend points the config at a fake backend.
func WithBackend(backend *Backend) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = backend.URL()
	}
}

// WithHistoryLimit sets the history retention limit.
func WithHistoryLimit(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.MaxEntries = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
