// Package paillier implements the Paillier cryptosystem with generator g = N+1,
// together with its additive homomorphism and a signature scheme built on the same keys.
package paillier

import (
	"crypto/rand"
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/sample"
	"github.com/taurusgroup/paillier/pkg/pool"
)

// GenerateKeypair returns a new key pair whose modulus is the product of two bits/2 bit primes.
func GenerateKeypair(bits int) (*PrivateKey, *PublicKey, error) {
	return KeyGen(rand.Reader, bits, nil)
}

// KeyGen generates a key pair using rand, distributing the prime search over pl.
// pl may be nil, in which case the search runs on the calling goroutine.
func KeyGen(rand io.Reader, bits int, pl *pool.Pool) (*PrivateKey, *PublicKey, error) {
	for {
		primes, err := sample.Primes(rand, bits/2, 2, pl)
		if err != nil {
			return nil, nil, errorsmod.Wrap(err, "paillier: keygen")
		}
		p, q := primes[0], primes[1]
		if p.Cmp(q) == 0 {
			continue
		}
		return NewPrivateKeyFromPrimes(p, q)
	}
}

// lFunction returns L(u) = (u-1)/N.
// u must satisfy u ≡ 1 (mod N), otherwise the division is not exact and an error is returned.
func lFunction(u *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	if u.EqZero() == 1 {
		return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: L(0) is undefined")
	}
	one := new(saferith.Nat).SetUint64(1)
	uMinus1 := new(saferith.Nat).Sub(u, one, u.AnnouncedLen())
	if new(saferith.Nat).Mod(uMinus1, n).EqZero() != 1 {
		return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: L(u) requires u ≡ 1 mod N")
	}
	// u < N², so the quotient is < N
	return new(saferith.Nat).Div(uMinus1, n, n.BitLen()), nil
}
