package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"litshelf/internal/project"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create, open and inspect the active project",
	}

	projectCmd.AddCommand(newProjectInitCommand(ctx))
	projectCmd.AddCommand(newProjectOpenCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))

	return projectCmd
}

func newProjectInitCommand(ctx *commandContext) *cobra.Command {
	var name, description, repository string

	cmd := &cobra.Command{
		Use:   "init <dir>",
		Short: "Create or update a project in a directory and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := absPath(args[0])
			if err != nil {
				return err
			}
			settings := project.Settings{
				ProjectName:        strings.TrimSpace(name),
				ProjectDescription: description,
				WorkingDir:         dir,
			}
			if settings.ProjectName == "" {
				settings.ProjectName = filepath.Base(dir)
			}
			if strings.TrimSpace(repository) != "" {
				repoDir, err := absPath(repository)
				if err != nil {
					return err
				}
				settings.RepositoryDir = repoDir
			}

			store, err := ctx.projectStore()
			if err != nil {
				return err
			}
			if err := store.Activate(cmd.Context(), settings); err != nil {
				return err
			}
			active, err := store.Active()
			if err != nil {
				return err
			}
			return ctx.emit(cmd, active, func(out io.Writer) error {
				fmt.Fprintf(out, "Activated project %q in %s\n", active.ProjectName, active.WorkingDir)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (defaults to the directory name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringVarP(&repository, "repository", "r", "", "Directory holding the project's PDFs")
	return cmd
}

func newProjectOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <dir>",
		Short: "Make an existing project directory the active project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := absPath(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.projectStore()
			if err != nil {
				return err
			}
			settings, err := store.Adopt(cmd.Context(), dir)
			if err != nil {
				return err
			}
			return ctx.emit(cmd, settings, func(out io.Writer) error {
				fmt.Fprintf(out, "Opened project %q in %s\n", settings.ProjectName, settings.WorkingDir)
				return nil
			})
		},
	}
}

type projectView struct {
	Settings      project.Settings   `json:"settings"`
	LiteratureDir string             `json:"literatureDir"`
	AttributeDir  string             `json:"attributeDir"`
	Literatures   int                `json:"literatures"`
	Schemas       int                `json:"attributeSchemas"`
	Navigation    project.Navigation `json:"navigation"`
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.activeProject()
			if err != nil {
				return err
			}
			svc := ctx.libraryFor(settings)
			lits, err := svc.ListLiteratures()
			if err != nil {
				return err
			}
			schemas, err := svc.ListSchemas()
			if err != nil {
				return err
			}
			pc := settings.Context()
			view := projectView{
				Settings:      settings,
				LiteratureDir: pc.LiteratureDir(),
				AttributeDir:  pc.AttributeDir(),
				Literatures:   len(lits),
				Schemas:       len(schemas),
				Navigation:    ctx.lastNavigation(),
			}
			return ctx.emit(cmd, view, func(out io.Writer) error {
				fmt.Fprintf(out, "Project:      %s\n", settings.ProjectName)
				if settings.ProjectDescription != "" {
					fmt.Fprintf(out, "Description:  %s\n", settings.ProjectDescription)
				}
				fmt.Fprintf(out, "Working dir:  %s\n", settings.WorkingDir)
				fmt.Fprintf(out, "Repository:   %s\n", orDash(settings.RepositoryDir))
				fmt.Fprintf(out, "Literatures:  %d\n", view.Literatures)
				fmt.Fprintf(out, "Attributes:   %d\n", view.Schemas)
				if view.Navigation.View != "" {
					fmt.Fprintf(out, "Last view:    %s\n", view.Navigation.View)
				}
				return nil
			})
		},
	}
}
