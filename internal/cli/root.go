// Package cli implements the operator commands of lab-admin.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"lab-portal/internal/client"
	"lab-portal/internal/config"
	"lab-portal/internal/logging"
)

var verbose bool

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lab-admin",
		Short:         "Operator tooling for the lab portal database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newAddUserCmd())
	rootCmd.AddCommand(newPaidOrdersCmd())
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// env holds what the subcommands share. Opening the database migrates it.
type env struct {
	cfg    *config.Config
	logger logging.Logger
	db     *gorm.DB
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, "text")

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
