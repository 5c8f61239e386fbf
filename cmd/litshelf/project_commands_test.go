package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"litshelf/internal/project"
)

func TestCommandsRequireActiveProject(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"lit", "list"}, env.configPath)
	if !errors.Is(err, project.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	requireContains(t, err.Error(), "litshelf project init")
}

func TestProjectInitShowAndOpen(t *testing.T) {
	env := setupCLITestEnv(t)
	repo := filepath.Join(env.baseDir, "pdfs")
	dir := env.initProject(t, "--description", "systematic review", "--repository", repo)

	out, _, err := runCLI(t, []string{"--output", "json", "project", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	var view projectView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode project show: %v", err)
	}
	if view.Settings.ProjectName != "review" || view.Settings.WorkingDir != dir {
		t.Fatalf("unexpected settings: %+v", view.Settings)
	}
	if view.Settings.RepositoryDir != repo {
		t.Fatalf("unexpected repository dir: %q", view.Settings.RepositoryDir)
	}
	if view.LiteratureDir != filepath.Join(dir, "literatures") {
		t.Fatalf("unexpected literature dir: %q", view.LiteratureDir)
	}

	other := filepath.Join(env.baseDir, "other")
	if _, _, err := runCLI(t, []string{"project", "init", other}, env.configPath); err != nil {
		t.Fatalf("project init other: %v", err)
	}
	out, _, err = runCLI(t, []string{"project", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "Project:      other")

	out, _, err = runCLI(t, []string{"project", "open", dir}, env.configPath)
	if err != nil {
		t.Fatalf("project open: %v", err)
	}
	requireContains(t, out, `Opened project "review"`)

	_, _, err = runCLI(t, []string{"project", "open", t.TempDir()}, env.configPath)
	if !errors.Is(err, project.ErrNotAProject) {
		t.Fatalf("expected ErrNotAProject, got %v", err)
	}
}
