package sample

import (
	"crypto/rand"
	"io"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/internal/params"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"github.com/taurusgroup/paillier/pkg/pool"
)

// smallPrimes is used for trial division before running Miller-Rabin.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41,
	43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// coprimeSkipBound = 2¹⁰²⁴.
var coprimeSkipBound = new(big.Int).Lsh(big.NewInt(1), params.CoprimeSkipBits)

// IsProbablyPrime reports whether candidate is prime.
//
// Small candidates are settled by trial division against the primes up to 97.
// Otherwise, Miller-Rabin is run with the given number of rounds, each with an independent
// random base. If rounds <= 0, params.DefaultRounds is used.
// A false result is always correct, a true result is wrong with probability at most 4⁻ʳᵒᵘⁿᵈˢ.
func IsProbablyPrime(candidate *big.Int, rounds int) bool {
	return isProbablyPrime(rand.Reader, candidate, rounds)
}

// isProbablyPrime draws the Miller-Rabin bases from rand.
func isProbablyPrime(rand io.Reader, candidate *big.Int, rounds int) bool {
	if rounds <= 0 {
		rounds = params.DefaultRounds
	}
	if candidate.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	var prime, r big.Int
	for _, p := range smallPrimes {
		prime.SetUint64(p)
		if candidate.Cmp(&prime) == 0 {
			return true
		}
		if r.Mod(candidate, &prime).Sign() == 0 {
			return false
		}
	}
	return millerRabin(rand, candidate, rounds)
}

// millerRabin runs the test on an odd n > 97.
func millerRabin(rand io.Reader, n *big.Int, rounds int) bool {
	one := new(saferith.Nat).SetUint64(1)
	nNat := arith.NatFromBig(n)
	nMod := saferith.ModulusFromNat(nNat)
	nMinus1 := new(saferith.Nat).Sub(nNat, one, n.BitLen())

	// n - 1 = d⋅2ˢ with d odd
	nMinus1Big := nMinus1.Big()
	s := nMinus1Big.TrailingZeroBits()
	d := arith.NatFromBig(new(big.Int).Rsh(nMinus1Big, s))

	// bases are drawn from [2, n-2]
	baseRange := saferith.ModulusFromNat(arith.NatFromBig(new(big.Int).Sub(n, big.NewInt(3))))
	two := new(saferith.Nat).SetUint64(2)

NextRound:
	for i := 0; i < rounds; i++ {
		a := ModN(rand, baseRange)
		a.Add(a, two, n.BitLen())

		x := new(saferith.Nat).Exp(a, d, nMod)
		if x.Eq(one) == 1 || x.Eq(nMinus1) == 1 {
			continue
		}
		for j := uint(1); j < s; j++ {
			x.ModMul(x, x, nMod)
			if x.Eq(nMinus1) == 1 {
				continue NextRound
			}
			if x.Eq(one) == 1 {
				// a non trivial square root of 1 was found
				return false
			}
		}
		return false
	}
	return true
}

func checkBits(bits int) error {
	if bits < params.MinPrimeBits {
		return errorsmod.Wrapf(errkind.ErrInvalidParameter, "bit length %d is less than %d", bits, params.MinPrimeBits)
	}
	return nil
}

// Prime returns a random prime p with 2ᵇⁱᵗˢ⁻¹ < p < 2ᵇⁱᵗˢ.
//
// Odd candidates are drawn until one passes IsProbablyPrime with params.DefaultRounds.
func Prime(rand io.Reader, bits int) (*big.Int, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}
	for {
		if p := tryPrime(rand, bits); p != nil {
			return p, nil
		}
	}
}

func tryPrime(rand io.Reader, bits int) *big.Int {
	p := Odd(rand, bits)
	if !isProbablyPrime(rand, p, params.DefaultRounds) {
		return nil
	}
	return p
}

// Primes returns count random primes of the given size, searching on the workers of pl.
func Primes(rand io.Reader, bits, count int, pl *pool.Pool) ([]*big.Int, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}
	reader := pool.NewLockedReader(rand)
	results := pl.Search(count, func() interface{} {
		p := tryPrime(reader, bits)
		// You have to do this, because of how Go handles nil.
		if p == nil {
			return nil
		}
		return p
	})
	primes := make([]*big.Int, count)
	for i, r := range results {
		primes[i] = r.(*big.Int)
	}
	return primes, nil
}

// Coprime returns a random odd integer x of the given size with gcd(x, target) = 1.
//
// When target > 2¹⁰²⁴, the gcd test is skipped and the first sample is returned,
// since hitting a common factor would amount to factoring target.
func Coprime(rand io.Reader, bits int, target *big.Int) (*big.Int, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}
	noTestNeeded := target.Cmp(coprimeSkipBound) > 0
	for {
		x := Odd(rand, bits)
		if noTestNeeded || arith.IsCoprime(x, target) {
			return x, nil
		}
	}
}
