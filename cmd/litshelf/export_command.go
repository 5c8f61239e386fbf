package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"litshelf/internal/export"
	"litshelf/internal/fileutil"
	"litshelf/internal/project"
)

type exportFlags struct {
	format     string
	fields     []string
	attributes []string
}

func (f *exportFlags) register(cmd *cobra.Command, withFormat bool) {
	flags := cmd.Flags()
	if withFormat {
		flags.StringVarP(&f.format, "format", "f", "", "csv or tsv (default from config)")
	}
	flags.StringSliceVar(&f.fields, "fields", nil, "Columns: id, title, year, authors, filename, filepath, attribute, value")
	flags.StringArrayVar(&f.attributes, "attribute", nil, "Only export this attribute schema id (repeat for several)")
}

// config merges the flags with the configured defaults. Selecting only one of
// attribute/value adds the other.
func (f *exportFlags) config(cmd *cobra.Command, ctx *commandContext) (export.Config, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return export.Config{}, err
	}
	formatName := cfg.Export.Format
	if cmd.Flags().Changed("format") {
		formatName = f.format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return export.Config{}, err
	}
	names := cfg.Export.Fields
	if cmd.Flags().Changed("fields") {
		names = f.fields
	}
	fields, err := export.ParseFields(names)
	if err != nil {
		return export.Config{}, err
	}
	return export.Config{
		Format:       format,
		Fields:       export.Couple(fields),
		AttributeIDs: f.attributes,
	}, nil
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags exportFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export literature attributes as tidy CSV or TSV",
		Long: "Writes one row per literature and attribute value (or one row per literature " +
			"when neither attribute nor value is selected). Output goes to stdout unless -o is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportCfg, err := flags.config(cmd, ctx)
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			out, err := svc.Export(exportCfg)
			if err != nil {
				return err
			}
			ctx.remember(cmd, project.Navigation{View: project.ViewExport, SelectedAttributeIDs: exportCfg.AttributeIDs})

			if strings.TrimSpace(outPath) == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), out.Text)
				return err
			}
			target, err := absPath(outPath)
			if err != nil {
				return err
			}
			if filepath.Ext(target) == "" {
				target += exportCfg.Format.Extension()
			}
			if err := fileutil.WriteFileAtomic(target, []byte(out.Text), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d row(s) to %s\n", out.Rows, target)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.AddCommand(newExportSQLiteCommand(ctx))
	return cmd
}

func newExportSQLiteCommand(ctx *commandContext) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "sqlite <file>",
		Short: "Export literature, schemas and observations to a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportCfg, err := flags.config(cmd, ctx)
			if err != nil {
				return err
			}
			target, err := absPath(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			if err := svc.ExportSQLite(cmd.Context(), target, exportCfg); err != nil {
				return err
			}
			ctx.remember(cmd, project.Navigation{View: project.ViewExport, SelectedAttributeIDs: exportCfg.AttributeIDs})
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}
