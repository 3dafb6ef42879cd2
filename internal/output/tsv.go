package output

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/brandonsean08/basic-blockchain/internal/models"
)

const (
	blocksTSV = "blocks.tsv"
	txsTSV    = "transactions.tsv"
)

// TSVOutputHandler appends blocks and transactions to two tab-separated
// files, buffered until Close.
type TSVOutputHandler struct {
	blockFile   *os.File
	txFile      *os.File
	blockWriter *bufio.Writer
	txWriter    *bufio.Writer
}

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	blockFile, err := os.Create(filepath.Join(outDir, blocksTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create blocks TSV file")
	}

	txFile, err := os.Create(filepath.Join(outDir, txsTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create transactions TSV file")
	}

	return &TSVOutputHandler{
		blockFile:   blockFile,
		txFile:      txFile,
		blockWriter: bufio.NewWriter(blockFile),
		txWriter:    bufio.NewWriter(txFile),
	}, nil
}

func (h *TSVOutputHandler) WriteBlock(_ context.Context, block *models.Block) error {
	line := fmt.Sprintf("%d\t%s\t%s\n", block.Height, block.Hash, string(block.Data))
	_, err := h.blockWriter.WriteString(line)
	return err
}

func (h *TSVOutputHandler) WriteTransaction(_ context.Context, tx *models.Transaction) error {
	line := fmt.Sprintf("%s\t%s\n", tx.Hash, string(tx.Data))
	_, err := h.txWriter.WriteString(line)
	return err
}

func (h *TSVOutputHandler) Close() error {
	if err := h.blockWriter.Flush(); err != nil {
		slog.Error("Failed to flush block writer", "error", err)
		return err
	}
	if err := h.txWriter.Flush(); err != nil {
		slog.Error("Failed to flush tx writer", "error", err)
		return err
	}
	if err := h.blockFile.Close(); err != nil {
		slog.Error("Failed to close block file", "error", err)
		return err
	}
	if err := h.txFile.Close(); err != nil {
		slog.Error("Failed to close tx file", "error", err)
		return err
	}
	return nil
}
