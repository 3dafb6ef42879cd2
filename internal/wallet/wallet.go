package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Wallet holds an Ed25519 key pair. The hex-encoded public key doubles as the
// account identifier that appears as payer and payee in transactions.
type Wallet struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// New generates a fresh key pair.
func New() (*Wallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}
	return &Wallet{pub: pub, priv: priv}, nil
}

// NewFromSeed derives a deterministic wallet from a 32-byte seed.
// Test fixtures only; do not use with a predictable seed in real keys.
func NewFromSeed(seed []byte) *Wallet {
	priv := ed25519.NewKeyFromSeed(seed)
	return &Wallet{pub: priv.Public().(ed25519.PublicKey), priv: priv}
}

// PublicKey returns the wallet's account identifier.
func (w *Wallet) PublicKey() string {
	return hex.EncodeToString(w.pub)
}

// Sign signs msg with the wallet's private key.
func (w *Wallet) Sign(msg []byte) []byte {
	return ed25519.Sign(w.priv, msg)
}

// Verify checks sig over msg for the account identified by the hex-encoded
// public key. It satisfies the ledger's Verifier contract and rejects, rather
// than panics on, malformed keys and signatures.
func Verify(msg, sig []byte, pubKey string) bool {
	raw, err := hex.DecodeString(pubKey)
	if err != nil || len(raw) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(raw), msg, sig)
}
