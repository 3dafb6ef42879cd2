package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"time"
)

// NonceRange bounds the random nonce assigned at block construction.
const NonceRange = 1_000_000_000

// Block links to its predecessor by content hash and carries exactly one
// transaction. The nonce is assigned at construction and seeds the
// proof-of-work search; Solution is filled in by the chain once the search
// completes and is a sealing field, not part of the content hash.
type Block struct {
	PrevHash    string      `json:"prev_hash"`
	Transaction Transaction `json:"transaction"`
	Timestamp   time.Time   `json:"timestamp"`
	Nonce       int64       `json:"nonce"`
	Solution    uint64      `json:"solution"`
}

// NewBlock constructs a block linked to prevHash, stamped with the current
// time and a fresh nonce drawn uniformly from [0, NonceRange).
func NewBlock(prevHash string, tx Transaction) Block {
	return Block{
		PrevHash:    prevHash,
		Transaction: tx,
		Timestamp:   time.Now(),
		Nonce:       rand.Int63n(NonceRange),
	}
}

// Hash returns the hex SHA-256 digest of the block's canonical serialization:
// JSON of prev hash, transaction, timestamp and nonce, in that order. Two
// blocks with identical field values hash identically; any field change
// changes the digest.
func (b Block) Hash() string {
	payload := struct {
		PrevHash    string      `json:"prev_hash"`
		Transaction Transaction `json:"transaction"`
		Timestamp   time.Time   `json:"timestamp"`
		Nonce       int64       `json:"nonce"`
	}{b.PrevHash, b.Transaction, b.Timestamp, b.Nonce}

	raw, _ := json.Marshal(payload) // cannot fail, see Transaction.Serialize
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
