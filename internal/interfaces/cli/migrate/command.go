package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reelgate-inc/reelgate/internal/infrastructure/config"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/database"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/migration"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

var (
	env         string
	configPath  string
	tool        string
	name        string
	steps       int
	version     int
	scriptsPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&tool, "tool", "", "Migration tool: goose, golang-migrate or automigrate (default: database.migration_tool)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and the state of every goose migration.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a goose migration and a matching golang-migrate up/down pair.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsPath, "scripts", migration.DefaultScriptsPath, "Directory holding the migration scripts")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the golang-migrate version",
		Long:  `Set the golang-migrate schema version and clear the dirty flag after a failed migration.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVar(&version, "version", 0, "Version to force (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, "release"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if tool != "" {
		cfg.Database.MigrationTool = tool
	}

	return cfg, logger.NewLogger(), nil
}

func openDatabase(cfg *config.Config) error {
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	if err := openDatabase(cfg); err != nil {
		return err
	}
	defer database.Close()

	strategy, err := migration.NewStrategy(cfg.Database.MigrationTool, log)
	if err != nil {
		return err
	}

	log.Infow("running up migrations", "environment", env, "tool", strategy.GetName())

	if err := strategy.Migrate(cmd.Context(), database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	if err := openDatabase(cfg); err != nil {
		return err
	}
	defer database.Close()

	strategy, err := migration.NewStrategy(cfg.Database.MigrationTool, log)
	if err != nil {
		return err
	}

	downgrader, ok := strategy.(migration.Downgrader)
	if !ok {
		return fmt.Errorf("down migration is not supported by %s", strategy.GetName())
	}

	log.Infow("running down migrations", "environment", env, "tool", strategy.GetName(), "steps", steps)

	if err := downgrader.MigrateDown(cmd.Context(), database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := initEnv()
	if err != nil {
		return err
	}
	if err := openDatabase(cfg); err != nil {
		return err
	}
	defer database.Close()

	strategy := migration.NewGooseStrategy(logger.NewLogger())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	current, err := strategy.GetVersion(ctx, database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n\n", current)

	return strategy.Status(ctx, database.Get(), os.Stdout)
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()

	files, err := migration.NewGenerator(scriptsPath, log).CreateMigration(name)
	if err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Printf("Migration '%s' created\n", name)
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	if err := openDatabase(cfg); err != nil {
		return err
	}
	defer database.Close()

	if err := migration.NewGolangMigrateStrategy(log).Force(database.Get(), version); err != nil {
		return err
	}

	log.Infow("migration version forced", "version", version)
	return nil
}
