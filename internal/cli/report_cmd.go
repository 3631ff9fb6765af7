package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/jobwbs/internal/cli/formatter"
	"github.com/alexanderramin/jobwbs/internal/contract"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/report"
	"github.com/spf13/cobra"
)

// exportAuto is the flag value used when --csv or --xlsx is given without
// a path; the file is named after the job and filter inside ExportDir.
const exportAuto = "auto"

func newReportCmd(app *App) *cobra.Command {
	var (
		serviceLine string
		task        string
		page        int
		csvPath     string
		xlsxPath    string
	)

	cmd := &cobra.Command{
		Use:   "report JOB",
		Short: "Show a job's WBS filtered by service line and task",
		Long: "Show a job's WBS filtered by service line and task, with totals.\n" +
			"--csv and --xlsx export the filtered rows. Pass '-' to write to stdout,\n" +
			"or give the flag without a value to write wbs_data_<job>_<line>_<task>\n" +
			"into the export directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewJobReportRequest(args[0])
			if serviceLine != "" {
				req.ServiceLine = serviceLine
			}
			if task != "" {
				req.Task = task
			}

			resp, err := app.Reports.JobReport(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			toStdout := csvPath == "-" || xlsxPath == "-"
			if toStdout && csvPath != "" && xlsxPath != "" {
				return fmt.Errorf("only one export can be written to stdout")
			}

			filter := report.Filter{ServiceLine: resp.ServiceLine, Task: resp.Task}
			if csvPath != "" {
				if err := exportReport(out, app.ExportDir, csvPath, resp.Job, filter, "csv", resp.Items, report.WriteCSV); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				if err := exportReport(out, app.ExportDir, xlsxPath, resp.Job, filter, "xlsx", resp.Items, report.WriteXLSX); err != nil {
					return err
				}
			}
			if toStdout {
				return nil
			}

			fmt.Fprintln(out, formatter.FormatReport(formatter.ReportData{
				Job:         resp.Job,
				ServiceLine: resp.ServiceLine,
				Task:        resp.Task,
				Items:       resp.Items,
				Summary:     resp.Summary,
				Page:        formatter.Page{Number: page, Size: app.PageSize},
			}))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&serviceLine, "service-line", "", "Service line to show (default All)")
	f.StringVar(&task, "task", "", "WBS task to show (default All)")
	f.IntVar(&page, "page", 1, "Page to show")
	f.StringVar(&csvPath, "csv", "", "Export the filtered rows as CSV to PATH, or '-' for stdout")
	f.StringVar(&xlsxPath, "xlsx", "", "Export the filtered rows as XLSX to PATH, or '-' for stdout")
	f.Lookup("csv").NoOptDefVal = exportAuto
	f.Lookup("xlsx").NoOptDefVal = exportAuto

	return cmd
}

type writeFunc func(io.Writer, []*domain.LineItem) error

func exportReport(out io.Writer, dir, path string, job *domain.Job, filter report.Filter, ext string, items []*domain.LineItem, write writeFunc) error {
	if path == "-" {
		return write(out, items)
	}
	if path == exportAuto {
		path = filepath.Join(dir, report.ExportFileName(job.JobNumber, filter, ext))
	}

	var buf bytes.Buffer
	if err := write(&buf, items); err != nil {
		return fmt.Errorf("rendering %s export: %w", ext, err)
	}
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Exported %d row(s) to %s", len(items), path)))
	return nil
}

func newSummaryCmd(app *App) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show statistics across every job's WBS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewGlobalSummaryRequest()
			req.TopN = app.TopN
			if cmd.Flags().Changed("top") {
				req.TopN = top
			}

			resp, err := app.Reports.GlobalSummary(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGlobalSummary(resp.JobsRegistered, resp.Summary))
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of service lines and tasks to rank")

	return cmd
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample jobs and WBS rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Seeder.Seed(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Created %d job(s) with %d WBS item(s)",
				res.JobsCreated, res.ItemsWritten)))
			if len(res.JobsSkipped) > 0 {
				fmt.Fprintln(out, formatter.Warning(fmt.Sprintf("Skipped %d existing job(s): %v",
					len(res.JobsSkipped), res.JobsSkipped)))
			}
			return nil
		},
	}
}
