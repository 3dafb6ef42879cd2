package basicchain

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonsean08/basic-blockchain/internal/output"
)

var jsonCmd = &cobra.Command{
	Use:   "json [flags]",
	Short: "Export the chain to JSON files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := viper.GetString("json-out")
		slog.Debug("Command-line argument", "json-out", jsonOut)

		outputHandler, err := output.NewJSONOutputHandler(jsonOut)
		if err != nil {
			return fmt.Errorf("failed to create JSON output handler: %w", err)
		}
		defer outputHandler.Close()

		return runLedger(outputHandler, nil)
	},
}

func init() {
	jsonCmd.Flags().StringP("json-out", "o", "out", "JSON output directory")
	if err := viper.BindPFlags(jsonCmd.Flags()); err != nil {
		slog.Error("Failed to bind jsonCmd flags", "error", err)
	}
}
