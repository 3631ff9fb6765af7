package cli

import (
	"github.com/alexanderramin/jobwbs/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Jobs    service.JobService
	Reports service.ReportService
	Seeder  service.SeedService

	// NewSession returns a fresh edit session. Every command that edits a
	// WBS owns its own session.
	NewSession func() *service.EditSession

	PageSize  int
	TopN      int
	ExportDir string

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// editor are only offered when it returns true.
	IsInteractive func() bool

	// Bootstrap, when set, runs before every command once the persistent
	// flags are parsed, and fills in the fields above.
	Bootstrap func(cmd *cobra.Command) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "jobwbs" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "jobwbs",
		Short:         "Job registry and WBS budget editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			return app.Bootstrap(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("db", "", "SQLite database path (default ~/.jobwbs/job_master.db, :memory: for a throwaway store)")
	pf.String("config", "", "config file (default ~/.jobwbs/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolP("verbose", "v", false, "log every use case (same as --log-level info)")

	root.AddCommand(
		newJobCmd(app),
		newWBSCmd(app),
		newReportCmd(app),
		newSummaryCmd(app),
		newSeedCmd(app),
	)

	return root
}
