package test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/paillier/pkg/paillier"
	"github.com/taurusgroup/paillier/pkg/pool"
)

// KeyBits is the size of the moduli produced by Keypair.
// It is far below what should be used in practice, and only keeps tests fast.
const KeyBits = 512

// Keypair generates a fresh key pair for a single test.
func Keypair(t testing.TB) (*paillier.PrivateKey, *paillier.PublicKey) {
	t.Helper()
	pl := pool.NewPool(0)
	defer pl.TearDown()
	sk, pk, err := paillier.KeyGen(rand.Reader, KeyBits, pl)
	require.NoError(t, err, "failed to generate Paillier key pair")
	return sk, pk
}
