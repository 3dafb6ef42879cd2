package output

import (
	"context"

	"github.com/brandonsean08/basic-blockchain/internal/models"
)

// OutputHandler receives the observable block sequence as it is admitted.
type OutputHandler interface {
	WriteBlock(ctx context.Context, block *models.Block) error
	WriteTransaction(ctx context.Context, tx *models.Transaction) error
	Close() error
}
