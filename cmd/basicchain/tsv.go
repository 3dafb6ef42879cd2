package basicchain

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonsean08/basic-blockchain/internal/output"
)

var tsvCmd = &cobra.Command{
	Use:   "tsv [flags]",
	Short: "Export the chain to TSV files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tsvOut := viper.GetString("tsv-out")
		slog.Debug("Command-line argument", "tsv-out", tsvOut)

		outputHandler, err := output.NewTSVOutputHandler(tsvOut)
		if err != nil {
			return errors.WithMessage(err, "failed to create TSV output handler")
		}
		defer outputHandler.Close()

		return runLedger(outputHandler, nil)
	},
}

func init() {
	tsvCmd.Flags().StringP("tsv-out", "o", "tsv", "Output directory")
	if err := viper.BindPFlags(tsvCmd.Flags()); err != nil {
		slog.Error("Failed to bind tsvCmd flags", "error", err)
	}
}
