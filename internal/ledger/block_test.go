package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewBlockNonceRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		b := NewBlock("", NewTransaction(1, "a", "b"))
		require.GreaterOrEqual(t, b.Nonce, int64(0))
		require.Less(t, b.Nonce, int64(NonceRange))
	}
}

func TestBlockHashDeterministic(t *testing.T) {
	b := NewBlock("prev", NewTransaction(50, "alice", "bob"))

	require.Equal(t, b.Hash(), b.Hash())

	clone := b
	require.Equal(t, b.Hash(), clone.Hash())
}

func TestBlockHashFieldSensitivity(t *testing.T) {
	base := Block{
		PrevHash:    "prev",
		Transaction: NewTransaction(50, "alice", "bob"),
		Timestamp:   time.Unix(1700000000, 0).UTC(),
		Nonce:       12345,
	}

	mutations := map[string]Block{
		"prev hash": func(b Block) Block { b.PrevHash = "other"; return b }(base),
		"amount":    func(b Block) Block { b.Transaction.Amount = 51; return b }(base),
		"payer":     func(b Block) Block { b.Transaction.Payer = "carol"; return b }(base),
		"payee":     func(b Block) Block { b.Transaction.Payee = "carol"; return b }(base),
		"timestamp": func(b Block) Block { b.Timestamp = b.Timestamp.Add(time.Second); return b }(base),
		"nonce":     func(b Block) Block { b.Nonce = 54321; return b }(base),
	}

	for name, mutated := range mutations {
		require.NotEqual(t, base.Hash(), mutated.Hash(), "changing %s must change the hash", name)
	}
}

func TestBlockHashIgnoresSolution(t *testing.T) {
	// The solution seals the block after mining; the content hash covers
	// only what existed before the search.
	b := NewBlock("prev", NewTransaction(50, "alice", "bob"))
	before := b.Hash()
	b.Solution = 99999
	require.Equal(t, before, b.Hash())
}
