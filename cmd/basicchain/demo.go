package basicchain

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/brandonsean08/basic-blockchain/internal/ledger"
	"github.com/brandonsean08/basic-blockchain/internal/wallet"
)

var DemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a scripted transfer sequence",
	Long:  `Demo creates three wallets, admits two signed transfers, shows a forged signature being rejected and prints the resulting chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		alice, err := wallet.New()
		if err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		bob, err := wallet.New()
		if err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		carol, err := wallet.New()
		if err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		chain := ledger.New(alice.PublicKey(), wallet.Verify)
		pterm.Info.Printfln("Genesis block seeded: 100 units from %q to alice", ledger.GenesisPayer)

		if err := demoTransfer(ctx, chain, alice, bob, 50, "alice pays bob 50"); err != nil {
			return err
		}
		if err := demoTransfer(ctx, chain, bob, carol, 23, "bob pays carol 23"); err != nil {
			return err
		}

		// Carol signs with her own key but claims to be bob.
		forged := ledger.NewTransaction(99, bob.PublicKey(), carol.PublicKey())
		_, err = chain.Add(ctx, forged, bob.PublicKey(), carol.Sign(forged.Serialize()))
		if err == nil {
			return fmt.Errorf("forged transfer was admitted")
		}
		pterm.Warning.Printfln("Forged transfer rejected: %v", err)

		if err := chain.Verify(); err != nil {
			return fmt.Errorf("chain failed verification: %w", err)
		}
		pterm.Success.Printfln("Chain verified: %d blocks, every link intact", chain.Len())

		return renderChain(chain)
	},
}

func demoTransfer(ctx context.Context, chain *ledger.Chain, payer, payee *wallet.Wallet, amount int64, label string) error {
	tx := ledger.NewTransaction(amount, payer.PublicKey(), payee.PublicKey())
	sig := payer.Sign(tx.Serialize())

	spinner, _ := pterm.DefaultSpinner.Start("Mining: " + label)
	block, err := chain.Add(ctx, tx, payer.PublicKey(), sig)
	if err != nil {
		spinner.Fail(err.Error())
		return fmt.Errorf("failed to admit %q: %w", label, err)
	}
	spinner.Success(fmt.Sprintf("%s (nonce %d, solution %d)", label, block.Nonce, block.Solution))

	return nil
}

func renderChain(chain *ledger.Chain) error {
	data := pterm.TableData{{"Height", "Payer", "Payee", "Amount", "Nonce", "Solution", "Hash"}}
	for i, block := range chain.Blocks() {
		tx := block.Transaction
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			shortID(tx.Payer),
			shortID(tx.Payee),
			fmt.Sprintf("%d", tx.Amount),
			fmt.Sprintf("%d", block.Nonce),
			fmt.Sprintf("%d", block.Solution),
			shortID(block.Hash()),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// shortID trims long hex identifiers down to something a table can hold.
func shortID(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12] + ".."
}
