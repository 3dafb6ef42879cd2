// Package runner drives signed transfers through a chain's admission
// pipeline and streams every admitted block to an output handler.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/brandonsean08/basic-blockchain/internal/ledger"
	"github.com/brandonsean08/basic-blockchain/internal/metrics/collectors"
	"github.com/brandonsean08/basic-blockchain/internal/models"
	"github.com/brandonsean08/basic-blockchain/internal/output"
	"github.com/brandonsean08/basic-blockchain/internal/wallet"
)

// Runner owns the chain and the wallets for one run of transfers.
type Runner struct {
	chain     *ledger.Chain
	wallets   []*wallet.Wallet
	admission *collectors.Admission
}

// New generates numWallets key pairs and seeds a chain whose genesis supply
// goes to beneficiary, or to the first generated wallet when beneficiary is
// empty.
func New(numWallets int, beneficiary string, admission *collectors.Admission, opts ...ledger.Option) (*Runner, error) {
	if numWallets < 2 {
		return nil, fmt.Errorf("at least two wallets are required, got %d", numWallets)
	}

	wallets := make([]*wallet.Wallet, numWallets)
	for i := range wallets {
		w, err := wallet.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create wallet %d: %w", i, err)
		}
		wallets[i] = w
	}

	if beneficiary == "" {
		beneficiary = wallets[0].PublicKey()
	}

	return &Runner{
		chain:     ledger.New(beneficiary, wallet.Verify, opts...),
		wallets:   wallets,
		admission: admission,
	}, nil
}

// Chain exposes the runner's chain for inspection.
func (r *Runner) Chain() *ledger.Chain {
	return r.chain
}

// Run submits the requested number of signed transfers between random wallet
// pairs, each for a random amount in [1, amountMax], writing the genesis block and
// every admitted block to out. It stops early if the context is cancelled.
func (r *Runner) Run(ctx context.Context, out output.OutputHandler, transfers int, amountMax int64) error {
	slog.Info("Driving transfers through the chain", "transfers", transfers, "wallets", len(r.wallets))

	if err := r.export(ctx, out, 0, r.chain.LastBlock()); err != nil {
		return fmt.Errorf("failed to export genesis block: %w", err)
	}

	var bar *progressbar.ProgressBar
	if transfers > 1 {
		bar = progressbar.NewOptions64(
			int64(transfers),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("Mining blocks..."),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.RenderBlank(); err != nil {
			return fmt.Errorf("failed to render progress bar: %w", err)
		}
	}

	for i := 0; i < transfers; i++ {
		if ctx.Err() != nil {
			slog.Info("Run cancelled by user")
			return ctx.Err()
		}

		payer, payee := r.pickPair()
		tx := ledger.NewTransaction(1+rand.Int63n(amountMax), payer.PublicKey(), payee.PublicKey())
		sig := payer.Sign(tx.Serialize())

		start := time.Now()
		block, err := r.chain.Add(ctx, tx, payer.PublicKey(), sig)
		if err != nil {
			return fmt.Errorf("failed to admit block %d: %w", i+1, err)
		}
		if r.admission != nil {
			r.admission.ObserveAdmission(time.Since(start), block.Solution)
		}

		if err := r.export(ctx, out, uint64(r.chain.Len()-1), block); err != nil {
			return fmt.Errorf("failed to export block %d: %w", i+1, err)
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				return fmt.Errorf("failed to advance progress bar: %w", err)
			}
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			return fmt.Errorf("failed to finish progress bar: %w", err)
		}
	}

	if err := r.chain.Verify(); err != nil {
		return fmt.Errorf("chain failed post-run verification: %w", err)
	}
	slog.Info("Run complete", "blocks", r.chain.Len())

	return nil
}

// pickPair selects a random payer and a distinct random payee.
func (r *Runner) pickPair() (payer, payee *wallet.Wallet) {
	i := rand.Intn(len(r.wallets))
	j := rand.Intn(len(r.wallets) - 1)
	if j >= i {
		j++
	}
	return r.wallets[i], r.wallets[j]
}

func (r *Runner) export(ctx context.Context, out output.OutputHandler, height uint64, block ledger.Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to marshal block: %w", err)
	}

	row := &models.Block{Height: height, Hash: block.Hash(), Data: data}
	if err := out.WriteBlock(ctx, row); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}

	txRow := &models.Transaction{Hash: block.Transaction.Hash(), Data: block.Transaction.Serialize()}
	if err := out.WriteTransaction(ctx, txRow); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}

	return nil
}
