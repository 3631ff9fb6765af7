package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/jobwbs/internal/aggregate"
	"github.com/alexanderramin/jobwbs/internal/cli/formatter"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/report"
	"github.com/alexanderramin/jobwbs/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWBSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "View and edit a job's WBS line items",
		Long: "View and edit a job's WBS line items. Rows are numbered from 1 in the\n" +
			"order shown by 'wbs show'. Every change is saved by replacing the job's items.",
	}

	cmd.AddCommand(
		newWBSShowCmd(app),
		newWBSAddCmd(app),
		newWBSSetCmd(app),
		newWBSRemoveCmd(app),
		newWBSEditCmd(app),
		newWBSImportCmd(app),
	)

	return cmd
}

func openSession(ctx context.Context, app *App, jobNumber string) (*service.EditSession, error) {
	s := app.NewSession()
	if err := s.Open(ctx, jobNumber); err != nil {
		return nil, err
	}
	return s, nil
}

func printSaveResult(w io.Writer, job *domain.Job, res service.SaveResult) {
	msg := fmt.Sprintf("Saved %d WBS item(s) for %s", res.Written, job.Label())
	fmt.Fprintln(w, formatter.Success(msg))
	if res.Skipped > 0 {
		fmt.Fprintln(w, formatter.Warning(fmt.Sprintf("Skipped %d blank row(s)", res.Skipped)))
	}
}

func newWBSShowCmd(app *App) *cobra.Command {
	var (
		page int
		tree bool
	)

	cmd := &cobra.Command{
		Use:   "show JOB",
		Short: "List a job's WBS line items in entry order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			items := s.Items()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(s.Job().Label()))
			if tree {
				fmt.Fprint(out, formatter.FormatWBSTree(items))
			} else {
				fmt.Fprint(out, formatter.FormatLineItems(items, formatter.Page{Number: page, Size: app.PageSize}))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatTotals(aggregate.SumTotals(items)))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().BoolVar(&tree, "tree", false, "Group items by service line, task and subtask")

	return cmd
}

// itemFlags binds one string flag per editable field. Only flags the user
// set are applied.
type itemFlags map[domain.Field]*string

var itemFlagNames = map[domain.Field]string{
	domain.FieldServiceLine:     "service-line",
	domain.FieldWBSTask:         "task",
	domain.FieldWBSSubtask:      "subtask",
	domain.FieldQty:             "qty",
	domain.FieldUnitOfMeasure:   "uom",
	domain.FieldContractVsCO:    "contract",
	domain.FieldFPAType:         "fpa-type",
	domain.FieldFPASubtype:      "fpa-subtype",
	domain.FieldBudgetedRevenue: "revenue",
	domain.FieldBudgetedHours:   "hours",
	domain.FieldBudgetedCost:    "cost",
}

func bindItemFlags(cmd *cobra.Command) itemFlags {
	usage := map[domain.Field]string{
		domain.FieldServiceLine:     "Service line",
		domain.FieldWBSTask:         "WBS task",
		domain.FieldWBSSubtask:      "WBS subtask",
		domain.FieldQty:             "Quantity",
		domain.FieldUnitOfMeasure:   "Unit of measure",
		domain.FieldContractVsCO:    "Contract or CO",
		domain.FieldFPAType:         "Services, Materials or Equipment",
		domain.FieldFPASubtype:      "Labor, Management or Other",
		domain.FieldBudgetedRevenue: "Budgeted revenue",
		domain.FieldBudgetedHours:   "Budgeted hours",
		domain.FieldBudgetedCost:    "Budgeted cost",
	}
	flags := make(itemFlags, len(domain.EditableFields))
	for _, f := range domain.EditableFields {
		flags[f] = cmd.Flags().String(itemFlagNames[f], "", usage[f])
	}
	return flags
}

func (fl itemFlags) apply(cmd *cobra.Command, s *service.EditSession, index int) error {
	for _, f := range domain.EditableFields {
		if !cmd.Flags().Changed(itemFlagNames[f]) {
			continue
		}
		if err := s.UpdateItem(index, f, *fl[f]); err != nil {
			return err
		}
	}
	return nil
}

func newWBSAddCmd(app *App) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add JOB",
		Short: "Append a WBS line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}

			index, err := s.AddItem()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, s, index); err != nil {
				return err
			}

			res, err := s.Save(ctx)
			if err != nil {
				return err
			}
			printSaveResult(cmd.OutOrStdout(), s.Job(), res)
			return nil
		},
	}

	flags = bindItemFlags(cmd)

	return cmd
}

func newWBSSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set JOB ROW FIELD VALUE",
		Short: "Change one field of a WBS line item",
		Long: "Change one field of a WBS line item. FIELD is a column name such as\n" +
			"service_line, qty or budgeted_revenue. Numbers may contain thousands\n" +
			"separators; an empty VALUE resets a number to 0.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			field, err := resolveField(args[2])
			if err != nil {
				return err
			}

			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := s.UpdateItem(index, field, args[3]); err != nil {
				return rowErr(err)
			}

			res, err := s.Save(ctx)
			if err != nil {
				return err
			}
			printSaveResult(cmd.OutOrStdout(), s.Job(), res)
			return nil
		},
	}
}

func newWBSRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm JOB ROW",
		Aliases: []string{"remove"},
		Short:   "Remove a WBS line item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := s.RemoveItem(index); err != nil {
				return rowErr(err)
			}

			res, err := s.Save(ctx)
			if err != nil {
				return err
			}
			printSaveResult(cmd.OutOrStdout(), s.Job(), res)
			return nil
		},
	}
}

func newWBSImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import JOB FILE",
		Short: "Add WBS line items from a CSV or XLSX file",
		Long: "Add WBS line items from a CSV or XLSX file whose header row uses the\n" +
			"export column names (Service Line, WBS Task, ...). Unknown columns are\n" +
			"ignored. With --replace the job's existing items are dropped first.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			rows, err := report.ReadFile(args[1], f)
			if err != nil {
				return err
			}

			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := s.Import(ctx, rows, replace)
			if err != nil {
				return err
			}

			res, err := s.Save(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Read %d row(s) from %s\n", n, args[1])
			printSaveResult(cmd.OutOrStdout(), s.Job(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the job's existing items instead of appending")

	return cmd
}

var errNotInteractive = errors.New("the WBS editor needs an interactive terminal; use 'wbs add', 'wbs set' and 'wbs rm' instead")

func newWBSEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit JOB",
		Short: "Edit a job's WBS interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			ctx := cmd.Context()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				newEditorModel(ctx, s, app.PageSize),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			if m, ok := final.(editorModel); ok && m.lastSave != nil {
				printSaveResult(cmd.OutOrStdout(), s.Job(), *m.lastSave)
			}
			return nil
		},
	}
}
