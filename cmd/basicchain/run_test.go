package basicchain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonsean08/basic-blockchain/cmd/basicchain"
)

func TestRunCmd(t *testing.T) {
	// Difficulty outside the valid range is rejected before any mining.
	_, err := executeCommand(basicchain.RootCmd, "run", "json", "--transfers", "1", "--difficulty", "0")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid run configuration")

	// Show help
	output, err := executeCommand(basicchain.RootCmd, "run", "--difficulty", "4")
	assert.NoError(t, err)
	assert.Contains(t, output, "submits signed transfers through the admission pipeline")
}

func TestRunCmdJSON(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(basicchain.RootCmd, "run", "json",
		"-o", dir,
		"--transfers", "2",
		"--difficulty", "1",
	)
	require.NoError(t, err)

	// Genesis plus two admitted blocks.
	blocks, err := os.ReadDir(filepath.Join(dir, "blocks"))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	txs, err := os.ReadDir(filepath.Join(dir, "txs"))
	require.NoError(t, err)
	// Transaction files are keyed by content hash, so two identical random
	// transfers can share a file.
	require.GreaterOrEqual(t, len(txs), 2)
}

func TestRunCmdTSV(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(basicchain.RootCmd, "run", "tsv",
		"-o", dir,
		"--transfers", "1",
		"--difficulty", "1",
	)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "blocks.tsv"))
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
