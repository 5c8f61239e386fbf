package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"litshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose state and log directories live in a
// per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

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

// WithExport overrides the default export format and columns.
func WithExport(format string, fields ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Format = format
		if len(fields) > 0 {
			b.cfg.Export.Fields = fields
		}
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// points the desktop commands at them. If names is empty, a viewer and a
// clipboard stub are created.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"stub-open", "stub-copy"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\ncat >/dev/null\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.cfg.Desktop.OpenCommand = filepath.Join(binDir, names[0])
		if len(names) > 1 {
			b.cfg.Desktop.ClipboardCommand = filepath.Join(binDir, names[1])
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
