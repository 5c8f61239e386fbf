package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"litshelf/internal/attribute"
	"litshelf/internal/project"
)

func newAttributeCommand(ctx *commandContext) *cobra.Command {
	attrCmd := &cobra.Command{
		Use:     "attr",
		Aliases: []string{"attribute"},
		Short:   "Manage attribute schemas and tag literature with them",
	}

	attrCmd.AddCommand(newAttributeAddCommand(ctx))
	attrCmd.AddCommand(newAttributeEditCommand(ctx))
	attrCmd.AddCommand(newAttributeListCommand(ctx))
	attrCmd.AddCommand(newAttributeShowCommand(ctx))
	attrCmd.AddCommand(newAttributeRemoveCommand(ctx))
	attrCmd.AddCommand(newAttributeApplyCommand(ctx))
	attrCmd.AddCommand(newAttributeUnapplyCommand(ctx))
	attrCmd.AddCommand(newAttributeNoteCommand(ctx))

	return attrCmd
}

type draftFlags struct {
	name          string
	description   string
	values        []string
	allowFreeText bool
}

func (f *draftFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.name, "name", "n", "", "Schema name")
	flags.StringVarP(&f.description, "description", "d", "", "Schema description")
	flags.StringArrayVarP(&f.values, "value", "v", nil, "Predefined value (repeat for several)")
	flags.BoolVar(&f.allowFreeText, "free-text", false, "Allow values outside the predefined list")
}

// apply overlays changed flags onto draft. --value replaces the whole list.
func (f *draftFlags) apply(cmd *cobra.Command, draft *attribute.Draft) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		draft.Name = f.name
	}
	if flags.Changed("description") {
		draft.Description = f.description
	}
	if flags.Changed("value") {
		draft.Values = f.values
	}
	if flags.Changed("free-text") {
		draft.AllowFreeText = f.allowFreeText
	}
}

func newAttributeAddCommand(ctx *commandContext) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Create an attribute schema",
		Example: `  litshelf attr add Method -v Survey -v Interview -v Experiment`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft attribute.Draft
			if len(args) > 0 {
				draft.Name = args[0]
			}
			flags.apply(cmd, &draft)
			return saveDraft(cmd, ctx, "", draft)
		},
	}

	flags.register(cmd)
	return cmd
}

func newAttributeEditCommand(ctx *commandContext) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "edit <schema-id>",
		Short: "Change an attribute schema",
		Long: "Values whose text is unchanged keep their ids. Removing a predefined value " +
			"does not remove it from literature already tagged with it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			schema, err := svc.GetSchema(args[0])
			if err != nil {
				return err
			}
			draft := attribute.DraftOf(schema)
			flags.apply(cmd, &draft)
			return saveDraft(cmd, ctx, schema.ID, draft)
		},
	}

	flags.register(cmd)
	return cmd
}

func saveDraft(cmd *cobra.Command, ctx *commandContext, id string, draft attribute.Draft) error {
	svc, err := ctx.openLibrary()
	if err != nil {
		return err
	}
	schema, err := svc.SaveDraft(id, draft)
	if err != nil {
		return err
	}
	return ctx.emit(cmd, schema, func(out io.Writer) error {
		fmt.Fprintf(out, "Saved attribute %q %s\n", schema.Name, schema.ID)
		return nil
	})
}

type schemaRow struct {
	*attribute.Schema
	UsedBy int `json:"usedBy"`
}

func newAttributeListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List attribute schemas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			schemas, err := svc.Schemas()
			if err != nil {
				return err
			}
			lits, err := svc.Literatures()
			if err != nil {
				return err
			}
			usage := make(map[string]int)
			for _, lit := range lits {
				for _, app := range lit.Meta().Attributes {
					usage[app.AttributeID]++
				}
			}
			ctx.remember(cmd, project.Navigation{View: project.ViewAttributes})

			view := make([]schemaRow, 0, len(schemas))
			rows := make([][]string, 0, len(schemas))
			for _, s := range schemas {
				view = append(view, schemaRow{Schema: s, UsedBy: usage[s.ID]})
				rows = append(rows, []string{
					s.ID,
					s.Name,
					joinOrDash(s.Values(), ", "),
					yesNo(s.AllowFreeText),
					fmt.Sprintf("%d", usage[s.ID]),
				})
			}
			return ctx.emit(cmd, view, func(out io.Writer) error {
				if len(schemas) == 0 {
					fmt.Fprintln(out, "No attribute schemas defined")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Values", "Free text", "Used by"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newAttributeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <schema-id>",
		Short: "Show an attribute schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			schema, err := svc.GetSchema(args[0])
			if err != nil {
				return err
			}
			return ctx.emit(cmd, schema, func(out io.Writer) error {
				fmt.Fprintf(out, "%-12s %s\n", "Name:", schema.Name)
				fmt.Fprintf(out, "%-12s %s\n", "ID:", schema.ID)
				if schema.Description != "" {
					fmt.Fprintf(out, "%-12s %s\n", "Description:", schema.Description)
				}
				fmt.Fprintf(out, "%-12s %s\n", "Free text:", yesNo(schema.AllowFreeText))
				if len(schema.PredefinedValues) > 0 {
					fmt.Fprintln(out, "Values:")
					for _, v := range schema.PredefinedValues {
						fmt.Fprintf(out, "  %s\n", v.Value)
					}
				}
				return nil
			})
		},
	}
}

func newAttributeRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <schema-id>...",
		Aliases: []string{"delete"},
		Short:   "Delete attribute schemas (tagged literature keeps its values)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := svc.DeleteSchema(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
}

func newAttributeApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <literature-id> <schema-id> <value>...",
		Short: "Tag a literature record with attribute values",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			for _, value := range args[2:] {
				if _, err := svc.ApplyAttribute(args[0], args[1], value); err != nil {
					return err
				}
			}
			return printApplication(cmd, ctx, args[0], args[1])
		},
	}
}

func newAttributeUnapplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unapply <literature-id> <schema-id> <value>...",
		Short: "Remove attribute values from a literature record",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			for _, value := range args[2:] {
				if _, err := svc.RemoveAttribute(args[0], args[1], value); err != nil {
					return err
				}
			}
			return printApplication(cmd, ctx, args[0], args[1])
		},
	}
}

func newAttributeNoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "note <literature-id> <schema-id> [note]",
		Short: "Set or clear the note on an attribute of a literature record",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := ""
			if len(args) == 3 {
				note = args[2]
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			if _, err := svc.SetAttributeNote(args[0], args[1], note); err != nil {
				return err
			}
			return printApplication(cmd, ctx, args[0], args[1])
		},
	}
}

// printApplication reports the current values of one attribute on a record.
func printApplication(cmd *cobra.Command, ctx *commandContext, literatureID, attributeID string) error {
	svc, err := ctx.openLibrary()
	if err != nil {
		return err
	}
	lit, err := svc.GetLiterature(literatureID)
	if err != nil {
		return err
	}
	app, _ := attribute.Find(lit.Meta().Attributes, attributeID)
	app.AttributeID = attributeID
	catalog, err := svc.Catalog()
	if err != nil {
		return err
	}
	return ctx.emit(cmd, app, func(out io.Writer) error {
		name := catalog.Name(attributeID)
		if len(app.Values) == 0 {
			fmt.Fprintf(out, "%s: no values on %s\n", name, literatureID)
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", name, strings.Join(app.Values, ", "))
		if app.Note != "" {
			fmt.Fprintf(out, "  note: %s\n", app.Note)
		}
		return nil
	})
}
