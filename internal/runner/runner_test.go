package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandonsean08/basic-blockchain/internal/ledger"
	"github.com/brandonsean08/basic-blockchain/internal/metrics/collectors"
	"github.com/brandonsean08/basic-blockchain/internal/models"
	"github.com/brandonsean08/basic-blockchain/internal/pow"
	"github.com/brandonsean08/basic-blockchain/internal/runner"
)

// memoryOutput captures rows so tests can inspect what was exported.
type memoryOutput struct {
	blocks []*models.Block
	txs    []*models.Transaction
	closed bool
}

func (m *memoryOutput) WriteBlock(_ context.Context, block *models.Block) error {
	m.blocks = append(m.blocks, block)
	return nil
}

func (m *memoryOutput) WriteTransaction(_ context.Context, tx *models.Transaction) error {
	m.txs = append(m.txs, tx)
	return nil
}

func (m *memoryOutput) Close() error {
	m.closed = true
	return nil
}

func TestRunExportsChain(t *testing.T) {
	admission := collectors.NewAdmission()
	r, err := runner.New(3, "", admission, ledger.WithSolver(&pow.Solver{Prefix: "0"}))
	require.NoError(t, err)

	out := &memoryOutput{}
	require.NoError(t, r.Run(context.Background(), out, 3, 10))

	require.Equal(t, 4, r.Chain().Len(), "genesis plus three admitted blocks")
	require.NoError(t, r.Chain().Verify())

	require.Len(t, out.blocks, 4)
	require.Len(t, out.txs, 4)
	for i, block := range out.blocks {
		require.Equal(t, uint64(i), block.Height)
		require.NotEmpty(t, block.Hash)
		require.NotEmpty(t, block.Data)
	}

	// Genesis row carries the synthetic initial transfer.
	require.Contains(t, string(out.blocks[0].Data), `"payer":"genesis"`)
}

func TestRunCancelled(t *testing.T) {
	r, err := runner.New(2, "", nil, ledger.WithSolver(&pow.Solver{Prefix: "0"}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.Run(ctx, &memoryOutput{}, 5, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsTooFewWallets(t *testing.T) {
	_, err := runner.New(1, "", nil)
	require.Error(t, err)
}

func TestNewHonorsBeneficiary(t *testing.T) {
	r, err := runner.New(2, "the-beneficiary", nil, ledger.WithSolver(&pow.Solver{Prefix: "0"}))
	require.NoError(t, err)

	genesis := r.Chain().Blocks()[0]
	require.Equal(t, "the-beneficiary", genesis.Transaction.Payee)
}
