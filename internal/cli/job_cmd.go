package cli

import (
	"fmt"

	"github.com/alexanderramin/jobwbs/internal/cli/formatter"
	"github.com/alexanderramin/jobwbs/internal/contract"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/spf13/cobra"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Register and look up jobs",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobShowCmd(app),
	)

	return cmd
}

func newJobAddCmd(app *App) *cobra.Command {
	var j domain.Job

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new job",
		Long: "Register a new job. Job number, branch number and job name are required.\n" +
			"On a terminal, omitted fields are asked for in a form.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if j.Validate() != nil && app.interactive() {
				if err := jobForm(&j).Run(); err != nil {
					return fmt.Errorf("job form: %w", err)
				}
			}

			if err := app.Jobs.Register(cmd.Context(), &j); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Registered job %s", j.Label())))
			return nil
		},
	}

	cmd.Flags().StringVar(&j.JobNumber, "number", "", "Job number (unique)")
	cmd.Flags().StringVar(&j.BranchNumber, "branch", "", "Branch number")
	cmd.Flags().StringVar(&j.JobName, "name", "", "Job name")
	cmd.Flags().StringVar(&j.SalesforceID, "salesforce-id", "", "Salesforce ID (optional)")

	return cmd
}

func newJobListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.Jobs.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs registered. Add one with 'jobwbs job add' or load samples with 'jobwbs seed'.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatJobList(jobs))
			return nil
		},
	}
}

func newJobShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show JOB",
		Short: "Show job details and WBS metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Reports.JobReport(cmd.Context(), contract.NewJobReportRequest(args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatJobCard(resp.Job, resp.Summary))
			return nil
		},
	}
}
