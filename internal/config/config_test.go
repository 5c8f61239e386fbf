package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"litshelf/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LITSHELF_STATE_DIR",
		"LITSHELF_LOG_LEVEL",
		"LITSHELF_LOG_FORMAT",
		"LITSHELF_OPEN_COMMAND",
		"LITSHELF_CLIPBOARD_COMMAND",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "litshelf")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("unexpected export format: %q", cfg.Export.Format)
	}
	if strings.Join(cfg.Export.Fields, ",") != "id,attribute,value" {
		t.Fatalf("unexpected export fields: %v", cfg.Export.Fields)
	}
	if cfg.List.Sort != "updated" {
		t.Fatalf("unexpected list sort: %q", cfg.List.Sort)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.StateDir)
	if err != nil {
		t.Fatalf("expected state dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.StateDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "litshelf.toml")

	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Export struct {
			Format string   `toml:"format"`
			Fields []string `toml:"fields"`
		} `toml:"export"`
		List struct {
			Sort     string `toml:"sort"`
			PageSize int    `toml:"page_size"`
		} `toml:"list"`
	}
	custom := payload{}
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Export.Format = " TSV "
	custom.Export.Fields = []string{"Title", "year", "title", " "}
	custom.List.Sort = "Year"
	custom.List.PageSize = 25
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.StateDir != filepath.Join(tempDir, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Export.Format != "tsv" {
		t.Fatalf("expected normalized tsv format, got %q", cfg.Export.Format)
	}
	if strings.Join(cfg.Export.Fields, ",") != "title,year" {
		t.Fatalf("expected deduplicated fields, got %v", cfg.Export.Fields)
	}
	if cfg.List.Sort != "year" || cfg.List.PageSize != 25 {
		t.Fatalf("unexpected list settings: %+v", cfg.List)
	}
}

func TestEnvOverridesStateDirAndLogging(t *testing.T) {
	clearEnv(t)
	stateDir := filepath.Join(t.TempDir(), "env-state")
	t.Setenv("LITSHELF_STATE_DIR", stateDir)
	t.Setenv("LITSHELF_LOG_LEVEL", "DEBUG")
	t.Setenv("LITSHELF_LOG_FORMAT", "json")
	t.Setenv("LITSHELF_OPEN_COMMAND", "my-opener")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != stateDir {
		t.Errorf("expected state dir from env, got %q", cfg.Paths.StateDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level from env, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json format from env, got %q", cfg.Logging.Format)
	}
	if cfg.Desktop.OpenCommand != "my-opener" {
		t.Errorf("expected open command from env, got %q", cfg.Desktop.OpenCommand)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	cfg := config.Default()
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StateDir, "litshelf") {
		t.Fatalf("expected state dir to contain litshelf, got %q", cfg.Paths.StateDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Format = "xlsx"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported export format")
	}

	cfg = config.Default()
	cfg.Export.Fields = []string{"id", "doi"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown export field")
	}

	cfg = config.Default()
	cfg.List.Sort = "random"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown sort")
	}

	cfg = config.Default()
	cfg.List.PageSize = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative page size")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Paths.StateDir = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty state dir")
	}
}
