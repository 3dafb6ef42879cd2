package wallet_test

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandonsean08/basic-blockchain/internal/wallet"
)

func TestSignAndVerify(t *testing.T) {
	w, err := wallet.New()
	require.NoError(t, err)

	msg := []byte("transfer of 50")
	sig := w.Sign(msg)

	require.True(t, wallet.Verify(msg, sig, w.PublicKey()))
	require.False(t, wallet.Verify([]byte("transfer of 51"), sig, w.PublicKey()))
}

func TestVerifyWrongKey(t *testing.T) {
	a, err := wallet.New()
	require.NoError(t, err)
	b, err := wallet.New()
	require.NoError(t, err)

	msg := []byte("payload")
	require.False(t, wallet.Verify(msg, a.Sign(msg), b.PublicKey()))
}

func TestVerifyMalformedInputs(t *testing.T) {
	w, err := wallet.New()
	require.NoError(t, err)

	msg := []byte("payload")
	sig := w.Sign(msg)

	require.False(t, wallet.Verify(msg, sig, "not-hex"))
	require.False(t, wallet.Verify(msg, sig, "abcd"))
	require.False(t, wallet.Verify(msg, sig[:10], w.PublicKey()))
	require.False(t, wallet.Verify(msg, nil, w.PublicKey()))
}

func TestNewFromSeedDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x07}, ed25519.SeedSize)

	first := wallet.NewFromSeed(seed)
	second := wallet.NewFromSeed(seed)

	require.Equal(t, first.PublicKey(), second.PublicKey())
	require.True(t, wallet.Verify([]byte("m"), first.Sign([]byte("m")), second.PublicKey()))
}
