package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/internal/config"
	"github.com/dkellner/blockmatch/pkg/api"
	"github.com/dkellner/blockmatch/pkg/core/services"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/postgres"
	"github.com/dkellner/blockmatch/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockmatch",
		Short: "Blockmatch CLI - Driver-to-shift matching and compliance",
		Long:  `A CLI for matching drivers to unassigned shift blocks under rest-time compliance rules, materializing recurring blocks, and reporting coverage.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(matchDriverCmd())
	rootCmd.AddCommand(coverageCmd())
	rootCmd.AddCommand(materializeBlocksCmd())
	rootCmd.AddCommand(strategiesCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func matchDriverCmd() *cobra.Command {
	var strategyName string
	var threshold int

	cmd := &cobra.Command{
		Use:   "matchDriver <driver_id>",
		Short: "Compute the best compliant blocks for a driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := services.MatchDriverInput{
				DriverID: args[0],
				Strategy: strategyName,
			}
			if cmd.Flags().Changed("threshold") {
				input.Threshold = &threshold
			}
			if input.Strategy == "" {
				input.Strategy = app.cfg.DefaultStrategy
			}

			result, err := services.MatchDriver(app.ctx, app.database, app.logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\nDriver:     %s\n", result.DriverID)
			fmt.Printf("Strictness: %s (threshold %d)\n", result.Strictness, result.Threshold)
			fmt.Printf("Existing:   %d assignment(s)\n\n", result.ExistingCount)

			if len(result.Blocks) == 0 {
				fmt.Println("No compliant matching blocks found.")
				return nil
			}

			fmt.Printf("Recommended blocks:\n")
			for i, block := range result.Blocks {
				fmt.Printf("  %2d. %s %s  block %-8s score %.1f\n",
					i+1,
					block.Occurrence.ServiceDate,
					block.Occurrence.StartTime,
					block.Occurrence.BlockID,
					block.MatchScore)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "Strategy preset (cover, overtime, premium, balanced)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Confidence threshold 0-100 (overrides strategy)")
	return cmd
}

func coverageCmd() *cobra.Command {
	var strategyName string
	var threshold int

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Report how many unassigned blocks have matching drivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := services.CoverageReportInput{Strategy: strategyName}
			if cmd.Flags().Changed("threshold") {
				input.Threshold = &threshold
			}
			if input.Strategy == "" {
				input.Strategy = app.cfg.DefaultStrategy
			}

			result, err := services.CoverageReport(app.ctx, app.database, app.logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\nCoverage at %s strictness (threshold %d)\n\n", result.Strictness, result.Threshold)
			fmt.Printf("Unassigned blocks: %d\n", result.Report.Total)
			for _, bucket := range result.Report.Coverage {
				fmt.Printf("  >= %d matching driver(s): %d\n", bucket.MinMatches, bucket.Count)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "", "Strategy preset (cover, overtime, premium, balanced)")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Confidence threshold 0-100 (overrides strategy)")
	return cmd
}

func materializeBlocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materializeBlocks <from> <until>",
		Short: "Materialize configured recurring blocks onto the calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("from must be a YYYY-MM-DD date: %w", err)
			}
			until, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("until must be a YYYY-MM-DD date: %w", err)
			}

			blocks := make([]services.BlockDefinition, len(app.cfg.RecurringBlocks))
			for i, rb := range app.cfg.RecurringBlocks {
				blocks[i] = services.BlockDefinition{
					BlockID:      rb.BlockID,
					RRule:        rb.RRule,
					StartTime:    rb.StartTime,
					ContractType: rb.ContractType,
				}
			}

			result, err := services.MaterializeBlocks(app.ctx, app.database, app.logger, services.MaterializeBlocksInput{
				Blocks: blocks,
				From:   from,
				Until:  until,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nMaterialized %d occurrence(s), skipped %d existing.\n\n", len(result.Created), result.Skipped)
			return nil
		},
	}
}

func strategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the named scheduling strategy presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\n%-10s %-10s %-12s %s\n", "NAME", "THRESHOLD", "PRIORITIZES", "STRICTNESS")
			for _, preset := range strategy.Presets() {
				fmt.Printf("%-10s %-10d %-12s %s\n",
					preset.Name, preset.Threshold, preset.Prioritization, preset.Strictness())
			}
			fmt.Println()

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the matching engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := app.cfg.ListenAddr
			if addr == "" {
				addr = ":8080"
			}
			server := api.NewServer(app.database, app.logger)
			return server.Run(addr)
		},
	}
}
