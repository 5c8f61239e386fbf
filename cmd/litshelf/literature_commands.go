package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"litshelf/internal/attribute"
	"litshelf/internal/library"
	"litshelf/internal/literature"
	"litshelf/internal/project"
)

func newLiteratureCommand(ctx *commandContext) *cobra.Command {
	litCmd := &cobra.Command{
		Use:     "lit",
		Aliases: []string{"literature"},
		Short:   "Manage literature records",
	}

	litCmd.AddCommand(newLiteratureTypesCommand(ctx))
	litCmd.AddCommand(newLiteratureAddCommand(ctx))
	litCmd.AddCommand(newLiteratureEditCommand(ctx))
	litCmd.AddCommand(newLiteratureImportCommand(ctx))
	litCmd.AddCommand(newLiteratureShowCommand(ctx))
	litCmd.AddCommand(newLiteratureListCommand(ctx))
	litCmd.AddCommand(newLiteratureRemoveCommand(ctx))
	litCmd.AddCommand(newLiteratureRetypeCommand(ctx))
	litCmd.AddCommand(newLiteratureDuplicatesCommand(ctx))
	for _, cmd := range newPDFCommands(ctx) {
		litCmd.AddCommand(cmd)
	}

	return litCmd
}

type typeView struct {
	Type   literature.Type `json:"type"`
	Label  string          `json:"label"`
	Fields []string        `json:"fields"`
}

func newLiteratureTypesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "types",
		Short:       "List literature types and their specific fields",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]typeView, 0, len(literature.Types))
			rows := make([][]string, 0, len(literature.Types))
			for _, t := range literature.Types {
				fields, err := literature.VariantFields(t)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(fields))
				for _, f := range fields {
					names = append(names, f.Name)
				}
				views = append(views, typeView{Type: t, Label: t.Label(), Fields: names})
				rows = append(rows, []string{string(t), t.Label(), strings.Join(names, ", ")})
			}
			return ctx.emit(cmd, views, func(out io.Writer) error {
				fmt.Fprintln(out, renderTable([]string{"Type", "Label", "Fields"}, rows, nil))
				return nil
			})
		},
	}
}

func newLiteratureAddCommand(ctx *commandContext) *cobra.Command {
	var flags literatureFlags
	var from string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a literature record",
		Example: `  litshelf lit add -t journal_article --title "A Study" -y 2023 -a "Ada Lovelace" -f journal=Notes
  litshelf lit add --from record.json --year 2024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := map[string]any{}
			if from != "" {
				data, err := readInput(from, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("decode %s: %w", from, err)
				}
				for _, key := range []string{"id", "createdAt", "updatedAt"} {
					delete(doc, key)
				}
			}
			if err := flags.apply(cmd, doc); err != nil {
				return err
			}
			return saveDocument(cmd, ctx, doc)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "Read initial fields from a JSON file ('-' for stdin)")
	return cmd
}

func newLiteratureEditCommand(ctx *commandContext) *cobra.Command {
	var flags literatureFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a literature record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			lit, err := svc.GetLiterature(args[0])
			if err != nil {
				return err
			}
			doc, err := toDocument(lit)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, doc); err != nil {
				return err
			}
			err = saveDocument(cmd, ctx, doc)
			if errors.Is(err, literature.ErrTypeChanged) {
				return fmt.Errorf("%w; use `litshelf lit retype %s <type>`", err, args[0])
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func saveDocument(cmd *cobra.Command, ctx *commandContext, doc map[string]any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	svc, err := ctx.openLibrary()
	if err != nil {
		return err
	}
	lit, err := literature.Parse(data, time.Now())
	if err != nil {
		return err
	}
	id, err := svc.SaveLiterature(lit)
	if err != nil {
		return err
	}
	return ctx.emit(cmd, lit, func(out io.Writer) error {
		fmt.Fprintf(out, "Saved %s %s\n", lit.Kind().Label(), id)
		return nil
	})
}

func newLiteratureImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Save records from a JSON object or array ('-' for stdin)",
		Long: "Each record is validated and saved. Records carrying an id replace the " +
			"stored record with that id; records without one are created.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			docs, err := splitDocuments(data)
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			now := time.Now()
			ids := make([]string, 0, len(docs))
			for i, doc := range docs {
				lit, err := literature.Parse(doc, now)
				if err == nil {
					_, err = svc.SaveLiterature(lit)
				}
				if err != nil {
					return fmt.Errorf("record %d: %w", i+1, err)
				}
				ids = append(ids, lit.RecordID())
			}
			return ctx.emit(cmd, ids, func(out io.Writer) error {
				fmt.Fprintf(out, "Imported %d record(s)\n", len(ids))
				return nil
			})
		},
	}
}

type literatureView struct {
	Record     literature.Literature       `json:"record"`
	TypeLabel  string                      `json:"typeLabel"`
	PDFPath    string                      `json:"pdfPath,omitempty"`
	Attributes []library.ResolvedAttribute `json:"resolvedAttributes"`
}

func newLiteratureShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a literature record (the last shown one without an id)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := literatureArg(ctx, args)
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			lit, err := svc.GetLiterature(id)
			if err != nil {
				return err
			}
			resolved, err := svc.ResolveAttributes(lit)
			if err != nil {
				return err
			}
			view := literatureView{
				Record:     lit,
				TypeLabel:  lit.Kind().Label(),
				Attributes: resolved,
			}
			view.PDFPath, _ = svc.PDFPath(lit)
			ctx.remember(cmd, project.Navigation{View: project.ViewLiteratureDetail, SelectedLiteratureID: id})
			return ctx.emit(cmd, view, func(out io.Writer) error {
				return renderLiterature(out, view)
			})
		},
	}
}

// literatureArg returns the id argument or the last shown literature.
func literatureArg(ctx *commandContext, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if id := ctx.lastNavigation().SelectedLiteratureID; id != "" {
		return id, nil
	}
	return "", errors.New("literature id is required (no literature shown yet)")
}

func renderLiterature(out io.Writer, view literatureView) error {
	c := view.Record.Meta()
	line := func(label, value string) {
		fmt.Fprintf(out, "%-12s %s\n", label+":", value)
	}
	fmt.Fprintf(out, "%s %s\n", view.TypeLabel, c.ID)
	line("Title", c.Title)
	line("Year", strconv.Itoa(c.Year))
	line("Authors", joinOrDash(c.Authors, "; "))

	doc, err := toDocument(view.Record)
	if err != nil {
		return err
	}
	fields, err := literature.VariantFields(view.Record.Kind())
	if err != nil {
		return err
	}
	for _, f := range fields {
		if v, ok := doc[f.Name]; ok {
			line(f.Name, formatVariantValue(v))
		}
	}
	if view.PDFPath != "" {
		line("PDF", view.PDFPath)
	}
	if c.Notes != "" {
		line("Notes", c.Notes)
	}
	if len(view.Attributes) > 0 {
		fmt.Fprintln(out, "Attributes:")
		for _, attr := range view.Attributes {
			name := attr.Name
			if attr.Missing {
				name += " [schema not found]"
			}
			fmt.Fprintf(out, "  %s: %s\n", name, strings.Join(attr.Values, ", "))
			if attr.Note != "" {
				fmt.Fprintf(out, "    note: %s\n", attr.Note)
			}
		}
	}
	line("Created", orDash(c.CreatedAt))
	line("Updated", orDash(c.UpdatedAt))
	return nil
}

type listView struct {
	Items []literature.Summary `json:"items"`
	Total int                  `json:"total"`
}

func newLiteratureListCommand(ctx *commandContext) *cobra.Command {
	var query literature.Query
	var typ, sortKey string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List literature records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if typ != "" {
				t, err := literature.ParseType(typ)
				if err != nil {
					return err
				}
				query.Type = t
			}
			if !cmd.Flags().Changed("sort") {
				sortKey = cfg.List.Sort
			}
			key, err := literature.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.List.PageSize
			}

			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			res, err := svc.SearchLiteratures(library.SearchRequest{
				Query:    query,
				Sort:     key,
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}
			catalog, err := svc.Catalog()
			if err != nil {
				return err
			}
			ctx.remember(cmd, project.Navigation{View: project.ViewLiteratureList})

			view := listView{Items: make([]literature.Summary, 0, len(res.Items)), Total: res.Total}
			for _, lit := range res.Items {
				view.Items = append(view.Items, literature.Summarize(lit))
			}
			return ctx.emit(cmd, view, func(out io.Writer) error {
				if res.Total == 0 {
					fmt.Fprintln(out, "No literature found")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Type", "Year", "Title", "Authors", "Attributes"},
					literatureRows(view.Items, catalog),
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				if len(view.Items) < res.Total {
					fmt.Fprintf(out, "Showing %d of %d\n", len(view.Items), res.Total)
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&query.Text, "query", "q", "", "Match title or author names")
	flags.StringVarP(&typ, "type", "t", "", "Only this literature type")
	flags.StringVar(&query.AttributeID, "attribute", "", "Only records tagged with this attribute schema id")
	flags.StringVar(&query.AttributeValue, "value", "", "With --attribute, only records carrying this value")
	flags.IntVar(&query.YearFrom, "year-from", 0, "Earliest publication year")
	flags.IntVar(&query.YearTo, "year-to", 0, "Latest publication year")
	flags.StringVarP(&sortKey, "sort", "s", "", "Order: updated, created, title or year")
	flags.IntVar(&page, "page", 1, "Page number")
	flags.IntVar(&pageSize, "page-size", 0, "Records per page (0 for all)")
	return cmd
}

func literatureRows(items []literature.Summary, catalog *attribute.Catalog) [][]string {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		names := make([]string, 0, len(s.Attributes))
		for _, app := range s.Attributes {
			names = append(names, catalog.Name(app.AttributeID))
		}
		rows = append(rows, []string{
			s.ID,
			s.Type.Label(),
			strconv.Itoa(s.Year),
			s.Title,
			joinOrDash(s.Authors, "; "),
			joinOrDash(names, ", "),
		})
	}
	return rows
}

func newLiteratureRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete literature records",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := svc.DeleteLiterature(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			if nav := ctx.lastNavigation(); nav.SelectedLiteratureID != "" && slices.Contains(args, nav.SelectedLiteratureID) {
				nav.SelectedLiteratureID = ""
				nav.View = project.ViewLiteratureList
				ctx.remember(cmd, nav)
			}
			return nil
		},
	}
}

func newLiteratureRetypeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retype <id> <type>",
		Short: "Replace a record by one of another type, keeping the shared fields",
		Long: "The record is saved under a new id with the title, year, authors, notes, " +
			"PDF and attributes of the original; type-specific fields are dropped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := literature.ParseType(args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			lit, err := svc.RetypeLiterature(args[0], t)
			if err != nil {
				return err
			}
			return ctx.emit(cmd, lit, func(out io.Writer) error {
				if lit.RecordID() == args[0] {
					fmt.Fprintf(out, "%s is already a %s\n", args[0], t.Label())
					return nil
				}
				fmt.Fprintf(out, "Saved %s %s (replaces %s)\n", t.Label(), lit.RecordID(), args[0])
				return nil
			})
		},
	}
}

func newLiteratureDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:     "duplicates",
		Aliases: []string{"dups"},
		Short:   "List records whose titles look alike",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold <= 0 || threshold > 1 {
				return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
			}
			svc, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			dups, err := svc.FindDuplicates(threshold)
			if err != nil {
				return err
			}
			if dups == nil {
				dups = []library.Duplicate{}
			}
			return ctx.emit(cmd, dups, func(out io.Writer) error {
				if len(dups) == 0 {
					fmt.Fprintln(out, "No likely duplicates found")
					return nil
				}
				rows := make([][]string, 0, len(dups))
				for _, d := range dups {
					rows = append(rows, []string{
						strconv.FormatFloat(d.Score, 'f', 2, 64),
						d.First.ID,
						d.First.Title,
						d.Second.ID,
						d.Second.Title,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Score", "ID", "Title", "ID", "Title"},
					rows,
					[]columnAlignment{alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", library.DefaultDuplicateThreshold, "Minimum title similarity between 0 and 1")
	return cmd
}
