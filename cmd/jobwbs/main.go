package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/jobwbs/internal/cli"
	"github.com/alexanderramin/jobwbs/internal/config"
	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/repository"
	"github.com/alexanderramin/jobwbs/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	var (
		database *sql.DB
		metrics  *service.MetricsObserver
		cfg      config.Config
	)
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	app.Bootstrap = func(cmd *cobra.Command) error {
		flags := cmd.Root().PersistentFlags()
		configFile, _ := flags.GetString("config")

		var err error
		cfg, err = config.Load(configFile, flags)
		if err != nil {
			return err
		}
		if verbose, _ := flags.GetBool("verbose"); verbose && cfg.LogLevel > slog.LevelInfo {
			cfg.LogLevel = slog.LevelInfo
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}

		jobRepo := repository.NewSQLiteJobRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)
		itemRepo := repository.NewSQLiteLineItemRepo(database, uow)

		metrics = service.NewMetricsObserver()
		observer := service.NewMultiUseCaseObserver(
			service.NewLeveledLogUseCaseObserver(os.Stderr, cfg.LogLevel),
			metrics,
		)

		app.Jobs = service.NewJobService(jobRepo, observer)
		app.Reports = service.NewReportService(jobRepo, itemRepo, observer)
		app.Seeder = service.NewSeedService(uow, observer)
		app.NewSession = func() *service.EditSession {
			return service.NewEditSession(jobRepo, itemRepo, observer)
		}
		app.PageSize = cfg.PageSize
		app.TopN = cfg.TopN
		app.ExportDir = cfg.ExportDir
		return nil
	}

	err := cli.NewRootCmd(app).Execute()

	if metrics != nil {
		if mErr := metrics.WriteTextfile(cfg.MetricsTextfile); mErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", mErr)
		}
	}
	return err
}
