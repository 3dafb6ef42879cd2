package basicchain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonsean08/basic-blockchain/internal/config"
	"github.com/brandonsean08/basic-blockchain/internal/ledger"
	"github.com/brandonsean08/basic-blockchain/internal/metrics"
	"github.com/brandonsean08/basic-blockchain/internal/metrics/collectors"
	"github.com/brandonsean08/basic-blockchain/internal/output"
	"github.com/brandonsean08/basic-blockchain/internal/pow"
	"github.com/brandonsean08/basic-blockchain/internal/runner"
)

var runConfig config.RunConfig

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive signed transfers through the ledger and export the chain",
	Long:  `Run generates wallets, submits signed transfers through the admission pipeline and writes every admitted block to the selected output format.`,
}

func init() {
	RunCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Cobra only runs the nearest PersistentPreRunE, so chain to the
		// root's log level setup explicitly.
		if root := cmd.Root(); root != RunCmd && root.PersistentPreRunE != nil {
			if err := root.PersistentPreRunE(root, args); err != nil {
				return err
			}
		}

		runConfig = config.LoadRunConfigFromCLI()
		if err := runConfig.Validate(); err != nil {
			return fmt.Errorf("invalid run configuration: %w", err)
		}

		slog.Debug("Command-line arguments", "runConfig", runConfig)
		return nil
	}

	RunCmd.PersistentFlags().IntP("transfers", "n", 10, "Number of signed transfers to admit")
	RunCmd.PersistentFlags().IntP("wallets", "w", 3, "Number of wallets to generate")
	RunCmd.PersistentFlags().Int64("amount-max", 100, "Upper bound on random transfer amounts")
	RunCmd.PersistentFlags().UintP("difficulty", "d", 4, "Proof-of-work difficulty in leading zero hex digits")
	RunCmd.PersistentFlags().Uint("pow-workers", 1, "Concurrent proof-of-work searchers per block (advanced)")
	RunCmd.PersistentFlags().String("initial-beneficiary", "", "Account receiving the genesis supply (defaults to the first wallet)")
	RunCmd.PersistentFlags().Uint("max-conns", 4, "Maximum PostgreSQL connections (advanced)")
	RunCmd.PersistentFlags().Bool("enable-prometheus", false, "Enable Prometheus metrics server")
	RunCmd.PersistentFlags().String("prometheus-addr", "0.0.0.0:2112", "Address and port of the Prometheus metrics server")

	if err := viper.BindPFlags(RunCmd.PersistentFlags()); err != nil {
		slog.Error("Failed to bind RunCmd flags", "error", err)
	}

	RunCmd.AddCommand(jsonCmd)
	RunCmd.AddCommand(tsvCmd)
	RunCmd.AddCommand(postgresCmd)
}

// runLedger wires the solver, chain, wallets and metrics together and drives
// the configured number of transfers into out. db may be nil when no SQL sink
// is in play.
func runLedger(out output.OutputHandler, db *sql.DB) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleInterrupt(cancel)

	admission := collectors.NewAdmission()
	if runConfig.EnablePrometheus {
		server, err := metrics.CreateMetricsServer(db, runConfig.PrometheusAddr, admission.Collectors()...)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("Failed to shut down metrics server", "error", err)
			}
		}()
	}

	solver := &pow.Solver{
		Prefix:  strings.Repeat("0", int(runConfig.Difficulty)),
		Workers: int(runConfig.PowWorkers),
	}

	r, err := runner.New(runConfig.Wallets, runConfig.InitialBeneficiary, admission, ledger.WithSolver(solver))
	if err != nil {
		return fmt.Errorf("failed to set up the run: %w", err)
	}

	return r.Run(ctx, out, runConfig.Transfers, runConfig.AmountMax)
}

// handleInterrupt handles interrupt signals for graceful shutdown.
func handleInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()
}
