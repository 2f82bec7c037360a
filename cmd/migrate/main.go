package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/nimbus-hr/timesheet-backend-go/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Timesheet database migrations",
	}

	upCmd = &cobra.Command{
		RunE:  runUp,
		Use:   "up",
		Short: "apply all pending migrations under db/migrations",
	}

	downCmd = &cobra.Command{
		RunE:  runDown,
		Use:   "down",
		Short: "roll back the most recent migration",
	}

	statusCmd = &cobra.Command{
		RunE:  runStatus,
		Use:   "status",
		Short: "print migration status",
	}

	migrateDir string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runUp(_ *cobra.Command, _ []string) error {
	return run("up")
}

func runDown(_ *cobra.Command, _ []string) error {
	return run("down")
}

func runStatus(_ *cobra.Command, _ []string) error {
	return run("status")
}

func run(command string) error {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()
	goose.SetTableName("schema_migrations")

	if err := goose.RunContext(ctx, command, db, migrateDir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}
