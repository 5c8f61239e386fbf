package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newPDFCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAttachCommand(ctx),
		newDetachCommand(ctx),
		newOpenCommand(ctx),
		newCopyPathCommand(ctx),
	}
}

func newAttachCommand(ctx *commandContext) *cobra.Command {
	var copyIntoRepo bool

	cmd := &cobra.Command{
		Use:   "attach <id> <pdf>",
		Short: "Attach a PDF file to a literature record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			lit, err := svc.AttachPDF(args[0], path, copyIntoRepo)
			if err != nil {
				return err
			}
			return ctx.emit(cmd, lit, func(out io.Writer) error {
				fmt.Fprintf(out, "Attached %s to %s\n", lit.Meta().PDFFilePath, lit.RecordID())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&copyIntoRepo, "copy", false, "Copy the file into the project's repository directory first")
	return cmd
}

func newDetachCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detach <id>",
		Short: "Remove the PDF path from a literature record (the file is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			lit, err := svc.DetachPDF(args[0])
			if err != nil {
				return err
			}
			return ctx.emit(cmd, lit, func(out io.Writer) error {
				fmt.Fprintf(out, "Detached PDF from %s\n", lit.RecordID())
				return nil
			})
		},
	}
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open [id]",
		Short: "Open the PDF of a literature record in the desktop viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pdfPathArg(ctx, args)
			if err != nil {
				return err
			}
			if err := ctx.desktop().Open(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
			return nil
		},
	}
}

func newCopyPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-path [id]",
		Short: "Copy the absolute PDF path of a literature record to the clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pdfPathArg(ctx, args)
			if err != nil {
				return err
			}
			if err := ctx.desktop().Copy(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s\n", path)
			return nil
		},
	}
}

func pdfPathArg(ctx *commandContext, args []string) (string, error) {
	id, err := literatureArg(ctx, args)
	if err != nil {
		return "", err
	}
	svc, err := ctx.openLibrary()
	if err != nil {
		return "", err
	}
	lit, err := svc.GetLiterature(id)
	if err != nil {
		return "", err
	}
	return svc.PDFPath(lit)
}
