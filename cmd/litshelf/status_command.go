package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"litshelf/internal/desktop"
	"litshelf/internal/preflight"
	"litshelf/internal/project"
)

type statusView struct {
	ConfigPath string             `json:"configPath,omitempty"`
	Project    *project.Settings  `json:"project,omitempty"`
	Checks     []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the state directory, the active project and desktop helpers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.projectStore()
			if err != nil {
				return err
			}
			settings, ok, err := store.ResolveActive()
			if err != nil {
				return err
			}

			targets := preflight.Targets{
				StateDir: cfg.Paths.StateDir,
				Programs: desktop.Requirements(cfg.Desktop),
			}
			view := statusView{ConfigPath: ctx.configPath()}
			if ok {
				pc := settings.Context()
				targets.WorkingDir = pc.WorkingDir
				targets.LiteratureDir = pc.LiteratureDir()
				targets.AttributeDir = pc.AttributeDir()
				targets.RepositoryDir = pc.RepositoryDir
				view.Project = &settings
			}
			view.Checks = preflight.RunAll(targets)

			return ctx.emit(cmd, view, func(out io.Writer) error {
				colorize := shouldColorize(out)
				lines := renderSectionHeader("Project", colorize)
				lines = append(lines, renderStatusLine("Config file", statusInfo, view.ConfigPath, colorize))
				if ok {
					lines = append(lines, renderStatusLine("Active project", statusOK, settings.ProjectName, colorize))
				} else {
					lines = append(lines, renderStatusLine("Active project", statusWarn, "none (run `litshelf project init <dir>`)", colorize))
				}
				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Checks", colorize)...)
				lines = append(lines, checkLines(view.Checks, colorize)...)
				if failed := preflight.Failed(view.Checks); len(failed) > 0 {
					lines = append(lines, "", fmt.Sprintf("%d required check(s) failed", len(failed)))
				}
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}
