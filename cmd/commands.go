package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/swimtab/internal/adapters/repository"
	app "github.com/okian/swimtab/internal/app"
	"github.com/okian/swimtab/internal/config"
	"github.com/okian/swimtab/internal/testmeets"
	"github.com/okian/swimtab/pkg/logger"
)

// rootCommand creates the swimtab command tree.
func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "swimtab",
		Short:        "Convert LENEX swim meet results into CSV tables",
		SilenceUsage: true,
	}
	root.AddCommand(runCommand(), generateCommand())
	return root
}

// runFlags are the command line overrides of the loaded configuration.
type runFlags struct {
	output      string
	workers     int
	sqlite      string
	metricsFile string
	logLevel    string
	logFormat   string
	patterns    []string
}

func runCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Convert every meet file in a directory",
		Long: "Scan a directory for LENEX files (.xml, .lef, .lxf) and write " +
			"competiciones.csv, clubes.csv, atletas.csv and resultados.csv. " +
			"Files that cannot be parsed are skipped and reported.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Load configuration (defaults -> optional file -> env -> flags)
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, &f, args)
			if err := cfg.Validate(ctx); err != nil {
				return err
			}

			if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.OutOrStdout())); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			log := logger.Get()

			// Apply configured log level (fallback to info on invalid input)
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			stores := []repository.Store{repository.NewCSVStore(cfg.OutputDir)}
			if cfg.SQLitePath != "" {
				stores = append(stores, repository.NewSQLiteStore(cfg.SQLitePath))
			}

			svc := app.New(
				app.WithLogger(log),
				app.WithParseWorkers(cfg.ParseWorkers),
				app.WithPatterns(cfg.Patterns...),
				app.WithStores(stores...),
				app.WithMetricsFile(cfg.MetricsFile),
			)
			_, err = svc.Run(ctx, cfg.InputDir)
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "Directory the CSV tables are written to")
	fl.IntVarP(&f.workers, "workers", "w", 0, "Number of files parsed concurrently")
	fl.StringVar(&f.sqlite, "sqlite", "", "Also write the tables to this SQLite database")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format: text, json")
	fl.StringSliceVarP(&f.patterns, "pattern", "p", nil, "Glob pattern of input files (repeatable)")
	return cmd
}

// applyFlags copies every flag set on the command line onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *runFlags, args []string) {
	if len(args) > 0 {
		cfg.InputDir = args[0]
	}
	fl := cmd.Flags()
	if fl.Changed("output") {
		cfg.OutputDir = f.output
	}
	if fl.Changed("workers") {
		cfg.ParseWorkers = f.workers
	}
	if fl.Changed("sqlite") {
		cfg.SQLitePath = f.sqlite
	}
	if fl.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if fl.Changed("pattern") {
		cfg.Patterns = f.patterns
	}
}

func generateCommand() *cobra.Command {
	var (
		out string
		cfg = testmeets.Config{
			Files:    testmeets.DefaultFiles,
			Athletes: testmeets.DefaultAthletes,
			Clubs:    testmeets.DefaultClubs,
			Seed:     testmeets.DefaultSeed,
		}
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic LENEX meet files for testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m, err := testmeets.Generate(ctx, cfg, out)
			if err != nil {
				return err
			}
			logger.Get().Info(ctx, "fixtures written",
				logger.String("dir", out),
				logger.Int("files", len(m.Files)),
				logger.Int("clubs", m.Clubs),
				logger.Int("athletes", m.Athletes),
				logger.Int("results", m.Results),
			)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&out, "out", "o", "datos", "Directory the files are written to")
	fl.IntVar(&cfg.Files, "files", cfg.Files, "Number of meet files")
	fl.IntVar(&cfg.Athletes, "athletes", cfg.Athletes, "Number of athletes shared by the meets")
	fl.IntVar(&cfg.Clubs, "clubs", cfg.Clubs, "Number of clubs")
	fl.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fl.IntVar(&cfg.ArchiveEvery, "archive-every", 0, "Write every Nth file as a .lxf archive")
	return cmd
}
