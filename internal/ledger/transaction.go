package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Transaction is an immutable record of a value transfer between two account
// identifiers. No validation is performed on construction: the chain keeps no
// balances, so an amount is whatever its signer vouches for.
type Transaction struct {
	Amount int64  `json:"amount"`
	Payer  string `json:"payer"`
	Payee  string `json:"payee"`
}

// NewTransaction constructs a transfer of amount from payer to payee.
func NewTransaction(amount int64, payer, payee string) Transaction {
	return Transaction{Amount: amount, Payer: payer, Payee: payee}
}

// Serialize returns the canonical encoding of the transaction: JSON with the
// fields in declaration order. Signing and verification both operate on these
// exact bytes, so the encoding is fixed here and nowhere else.
func (t Transaction) Serialize() []byte {
	b, _ := json.Marshal(t) // cannot fail for a struct of scalars
	return b
}

// Hash returns the hex SHA-256 digest of the canonical serialization.
func (t Transaction) Hash() string {
	sum := sha256.Sum256(t.Serialize())
	return hex.EncodeToString(sum[:])
}
