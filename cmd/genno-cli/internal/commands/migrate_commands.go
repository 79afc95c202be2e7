package commands

import (
	"fmt"

	"github.com/genno-io/genno/internal/infrastructure/persistence"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// MigrateCommandHandler runs schema migrations
type MigrateCommandHandler struct {
	logger logger.Logger
}

// NewMigrateCommandHandler initializes a MigrateCommandHandler with a console logger
func NewMigrateCommandHandler() (*MigrateCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &MigrateCommandHandler{logger: loggerInstance}, nil
}

// MigrateCmd creates or updates every table
func (commandHandler *MigrateCommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			commandHandler.logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := persistence.Migrate(db); err != nil {
		return err
	}

	commandHandler.logger.Info("database migrations completed")
	return nil
}

// InitMigrateCommands registers the migrate command
func InitMigrateCommands(rootCmd *cobra.Command) error {
	handler, err := NewMigrateCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create migrate command handler: %w", err)
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE:  handler.MigrateCmd,
	})
	return nil
}
