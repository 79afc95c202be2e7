// Package main is the entry point for the genno-cli application.
// It registers the maintenance sub-commands (migrate, credits, plans) and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/genno-io/genno/cmd/genno-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "genno-cli",
		Short: "Genno maintenance tool",
		Long: `genno-cli runs maintenance tasks against the Genno database.

The database is read from the YAML file given by --config, or CONFIG_PATH.
GENNO_DATABASE_TYPE and GENNO_DATABASE_DSN override the file.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitCreditCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize credit commands: %w", err)
	}

	if err := commands.InitPlanCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize plan commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
