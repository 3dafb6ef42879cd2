package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandonsean08/basic-blockchain/internal/models"
)

// JSONOutputHandler writes one file per block and per transaction.
type JSONOutputHandler struct {
	blockDir string
	txDir    string
}

func NewJSONOutputHandler(outDir string) (*JSONOutputHandler, error) {
	blockDir := filepath.Join(outDir, "blocks")
	txDir := filepath.Join(outDir, "txs")

	if err := os.MkdirAll(blockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blocks directory: %w", err)
	}
	if err := os.MkdirAll(txDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transactions directory: %w", err)
	}

	return &JSONOutputHandler{
		blockDir: blockDir,
		txDir:    txDir,
	}, nil
}

func (h *JSONOutputHandler) WriteBlock(_ context.Context, block *models.Block) error {
	fileName := fmt.Sprintf("block_%010d.json", block.Height)
	return os.WriteFile(filepath.Join(h.blockDir, fileName), block.Data, 0644)
}

func (h *JSONOutputHandler) WriteTransaction(_ context.Context, tx *models.Transaction) error {
	fileName := fmt.Sprintf("tx_%s.json", tx.Hash)
	return os.WriteFile(filepath.Join(h.txDir, fileName), tx.Data, 0644)
}

func (h *JSONOutputHandler) Close() error {
	return nil
}
