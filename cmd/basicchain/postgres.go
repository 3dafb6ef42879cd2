package basicchain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brandonsean08/basic-blockchain/internal/output/postgresql"
)

var postgresCmd = &cobra.Command{
	Use:   "postgres [psql-connection-string]",
	Short: "Export the chain to a PostgreSQL database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		connString := args[0]
		if connString == "" {
			return fmt.Errorf("connection string is required for PostgreSQL output")
		}

		outputHandler, err := postgresql.NewPostgresOutputHandler(connString, runConfig.MaxConns)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL output handler: %w", err)
		}
		defer outputHandler.Close()

		latestBlock, err := outputHandler.GetLatestBlock(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get the latest block: %w", err)
		}
		if latestBlock != nil {
			slog.Info("Sink already holds blocks from a previous run", "height", latestBlock.Height)
		}

		return runLedger(outputHandler, outputHandler.DB())
	},
}
