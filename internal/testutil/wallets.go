package testutil

import (
	"crypto/ed25519"

	"github.com/brandonsean08/basic-blockchain/internal/wallet"
)

// SeededWallet derives a deterministic wallet from a single-byte tag, so
// tests get stable account identifiers across runs.
func SeededWallet(tag byte) *wallet.Wallet {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = tag
	}
	return wallet.NewFromSeed(seed)
}
