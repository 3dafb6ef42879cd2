// Package ledger implements an append-only, hash-linked sequence of blocks,
// each admitted after a transaction signature check and a proof-of-work
// search. The chain lives entirely in process memory and keeps no account
// balances; it records transfers, it does not settle them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/brandonsean08/basic-blockchain/internal/pow"
)

// GenesisPayer is the payer identifier on the synthetic genesis transfer.
const GenesisPayer = "genesis"

// genesisAmount is the synthetic initial transfer to the beneficiary.
const genesisAmount = 100

// ErrInvalidSignature is returned by Add when the supplied signature does not
// verify against the transaction's canonical serialization.
var ErrInvalidSignature = errors.New("transaction signature does not verify")

// Verifier checks sig over msg for the account identified by pubKey. The
// chain assumes nothing about the key algorithm beyond this contract.
type Verifier func(msg, sig []byte, pubKey string) bool

// Chain is a single ordered sequence of blocks seeded with a genesis block.
// Admissions are serialized under one lock: the head read, the proof-of-work
// search and the append form one critical section, so concurrent submitters
// cannot race on the linkage.
type Chain struct {
	mu     sync.RWMutex
	blocks []Block
	solver *pow.Solver
	verify Verifier
}

// Option configures a Chain at construction.
type Option func(*Chain)

// WithSolver replaces the default proof-of-work solver.
func WithSolver(s *pow.Solver) Option {
	return func(c *Chain) { c.solver = s }
}

// New creates a chain whose genesis block transfers the initial supply to
// beneficiary, and whose admissions verify signatures through verify.
func New(beneficiary string, verify Verifier, opts ...Option) *Chain {
	c := &Chain{
		solver: pow.NewSolver(0),
		verify: verify,
	}
	for _, opt := range opts {
		opt(c)
	}

	genesis := NewBlock("", NewTransaction(genesisAmount, GenesisPayer, beneficiary))
	c.blocks = append(c.blocks, genesis)
	slog.Debug("Genesis block created", "hash", genesis.Hash(), "beneficiary", beneficiary)

	return c
}

// Add runs the admission pipeline for a signed transaction. The signature is
// checked against the transaction's canonical serialization; on failure the
// chain is untouched and ErrInvalidSignature is returned. On success exactly
// one block is constructed, linked to the current head, sealed by the
// proof-of-work solution found from its nonce, and appended. The sealed block
// is returned.
func (c *Chain) Add(ctx context.Context, tx Transaction, pubKey string, sig []byte) (Block, error) {
	if !c.verify(tx.Serialize(), sig, pubKey) {
		slog.Debug("Admission rejected", "payer", tx.Payer, "payee", tx.Payee, "amount", tx.Amount)
		return Block{}, ErrInvalidSignature
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	block := NewBlock(c.blocks[len(c.blocks)-1].Hash(), tx)
	solution, err := c.solver.Solve(ctx, block.Nonce)
	if err != nil {
		return Block{}, fmt.Errorf("proof-of-work failed: %w", err)
	}
	block.Solution = solution
	c.blocks = append(c.blocks, block)

	slog.Debug("Block admitted",
		"height", len(c.blocks)-1,
		"hash", block.Hash(),
		"nonce", block.Nonce,
		"solution", solution,
	)
	return block, nil
}

// LastBlock returns the newest block. The chain is never empty.
func (c *Chain) LastBlock() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns a copy of the full block sequence, genesis first.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Len returns the number of blocks, including genesis.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Verify walks the chain recomputing every content hash, checking each
// block's stored prev hash against its predecessor. It detects any tampering
// with already-admitted blocks.
func (c *Chain) Verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.blocks[0].PrevHash != "" {
		return fmt.Errorf("genesis block has a prev hash: %q", c.blocks[0].PrevHash)
	}
	for i := 1; i < len(c.blocks); i++ {
		if got, want := c.blocks[i].PrevHash, c.blocks[i-1].Hash(); got != want {
			return fmt.Errorf("block %d prev hash mismatch: got %s, want %s", i, got, want)
		}
	}
	return nil
}
