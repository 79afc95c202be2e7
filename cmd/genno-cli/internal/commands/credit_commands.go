package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/genno-io/genno/internal/app"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/infrastructure/persistence"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// CreditCommandHandler encapsulates the credit maintenance commands
type CreditCommandHandler struct {
	logger logger.Logger
}

// NewCreditCommandHandler initializes a CreditCommandHandler with a console logger
func NewCreditCommandHandler() (*CreditCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &CreditCommandHandler{logger: loggerInstance}, nil
}

func (commandHandler *CreditCommandHandler) creditService(cmd *cobra.Command) (credits.CreditService, *gorm.DB, error) {
	db, err := openDatabase(cmd)
	if err != nil {
		return nil, nil, err
	}

	repo, err := persistence.NewGormCreditRepository(db, commandHandler.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credit repository: %w", err)
	}

	service, err := app.NewCreditService(repo, commandHandler.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credit service: %w", err)
	}
	return service, db, nil
}

func (commandHandler *CreditCommandHandler) close(db *gorm.DB) {
	if err := persistence.CloseDB(db); err != nil {
		commandHandler.logger.Warn("failed to close database", "error", err)
	}
}

// ResetCmd gives every user whose last reset is a month old their plan allowance back
func (commandHandler *CreditCommandHandler) ResetCmd(cmd *cobra.Command, _ []string) error {
	service, db, err := commandHandler.creditService(cmd)
	if err != nil {
		return err
	}
	defer commandHandler.close(db)

	count, err := service.ResetExpired(cmd.Context(), time.Now().UTC())
	commandHandler.logger.Info("monthly credit reset finished", "reset", count)
	if err != nil {
		return fmt.Errorf("credit reset incomplete: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "reset %d user(s)\n", count)
	return nil
}

// ShowCmd prints the balance and recent transactions of a user
func (commandHandler *CreditCommandHandler) ShowCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}

	service, db, err := commandHandler.creditService(cmd)
	if err != nil {
		return err
	}
	defer commandHandler.close(db)

	userID := args[0]
	balance, err := service.Check(cmd.Context(), userID)
	if err != nil {
		return err
	}
	history, err := service.History(cmd.Context(), userID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user:    %s\nplan:    %s\ncredits: %d\nused:    %d\n\n", userID, balance.PlanType, balance.Credits, balance.TotalCreditsUsed)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tTYPE\tAMOUNT\tBALANCE\tREASON")
	for _, t := range history {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", t.CreatedAt.Format(time.RFC3339), t.Type, t.Amount, t.BalanceAfter, t.Reason)
	}
	return w.Flush()
}

// InitCreditCommands registers the credits command group
func InitCreditCommands(rootCmd *cobra.Command) error {
	handler, err := NewCreditCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create credit command handler: %w", err)
	}

	creditsCmd := &cobra.Command{
		Use:   "credits",
		Short: "Inspect and maintain user credits",
	}

	creditsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Run the monthly credit reset",
		Args:  cobra.NoArgs,
		RunE:  handler.ResetCmd,
	})

	showCmd := &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show the balance and transactions of a user",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.ShowCmd,
	}
	showCmd.Flags().IntP("limit", "n", 10, "Number of transactions to list")
	creditsCmd.AddCommand(showCmd)

	rootCmd.AddCommand(creditsCmd)
	return nil
}
