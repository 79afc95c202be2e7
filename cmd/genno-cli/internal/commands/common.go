package commands

import (
	"fmt"
	"os"

	"github.com/genno-io/genno/internal/infrastructure/persistence"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// DefaultConfigPath is used when neither --config nor CONFIG_PATH is given
const DefaultConfigPath = "../../configs/rest-app.yaml"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		Service:  "genno-cli",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// configPath resolves the config file from the persistent flag, then the environment
func configPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return path
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return DefaultConfigPath
}

// openDatabase connects with the database section of the config file
func openDatabase(cmd *cobra.Command) (*gorm.DB, error) {
	_, dbSettings, err := config.LoadDatabaseSettings(configPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load database settings: %w", err)
	}

	db, err := persistence.NewDBConnection(*dbSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	return db, nil
}
