package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"litshelf/internal/config"
	"litshelf/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
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
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, ".config", "litshelf", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

// initProject creates and activates a project named "review".
func (env *cliTestEnv) initProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := filepath.Join(env.baseDir, "review")
	args := append([]string{"project", "init", dir, "--name", "review"}, extra...)
	if _, _, err := runCLI(t, args, env.configPath); err != nil {
		t.Fatalf("project init: %v", err)
	}
	return dir
}

// addLiterature creates a journal article and returns its id.
func (env *cliTestEnv) addLiterature(t *testing.T, title string) string {
	t.Helper()
	out, _, err := runCLI(t, []string{
		"--output", "json", "lit", "add",
		"-t", "journal_article", "--title", title, "-y", "2023", "-a", "Ada Lovelace", "-f", "journal=Notes",
	}, env.configPath)
	if err != nil {
		t.Fatalf("lit add: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode lit add output %q: %v", out, err)
	}
	id, _ := record["id"].(string)
	if id == "" {
		t.Fatalf("expected id in %q", out)
	}
	return id
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
