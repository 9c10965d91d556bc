package paillier

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
)

// PrivateKey is the trapdoor of a Paillier key pair.
type PrivateKey struct {
	// lambda = lcm(p-1, q-1)
	lambda *saferith.Nat
	// mu = L(g^λ mod N²)⁻¹ (mod N)
	mu *saferith.Nat

	// nSquared is only known when the key was built from its primes.
	// It allows exponentiation modulo N² to go through the CRT.
	nSquared *arith.Modulus
}

// NewPrivateKey returns a private key from its two components. Both are copied.
func NewPrivateKey(lambda, mu *saferith.Nat) *PrivateKey {
	return &PrivateKey{
		lambda: new(saferith.Nat).SetNat(lambda),
		mu:     new(saferith.Nat).SetNat(mu),
	}
}

// NewPrivateKeyFromPrimes computes the key pair associated to the primes p and q.
// It returns an error if p = q or if either is smaller than 3.
func NewPrivateKeyFromPrimes(p, q *big.Int) (*PrivateKey, *PublicKey, error) {
	three := big.NewInt(3)
	if p.Cmp(three) < 0 || q.Cmp(three) < 0 {
		return nil, nil, errorsmod.Wrap(errkind.ErrInvalidParameter, "paillier: primes must be at least 3")
	}
	if p.Cmp(q) == 0 {
		return nil, nil, errorsmod.Wrap(errkind.ErrInvalidParameter, "paillier: primes must be distinct")
	}

	one := big.NewInt(1)
	n := new(big.Int).Mul(p, q)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)

	// λ = (p-1)(q-1) / gcd(p-1, q-1)
	lambda := new(big.Int).Mul(pMinus1, qMinus1)
	lambda.Quo(lambda, arith.Gcd(pMinus1, qMinus1))

	pk := NewPublicKey(arith.NatFromBig(n))

	pSquared := new(big.Int).Mul(p, p)
	qSquared := new(big.Int).Mul(q, q)
	nSquared := arith.ModulusFromFactors(arith.NatFromBig(pSquared), arith.NatFromBig(qSquared))

	lambdaNat := arith.NatFromBig(lambda)
	// L(g^λ mod N²)
	l, err := lFunction(nSquared.Exp(pk.g, lambdaNat), pk.n.Modulus)
	if err != nil {
		return nil, nil, err
	}
	mu, err := arith.ModInverse(l.Big(), n)
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "paillier: compute mu")
	}

	sk := &PrivateKey{
		lambda:   lambdaNat,
		mu:       arith.NatFromBig(mu),
		nSquared: nSquared,
	}
	return sk, pk, nil
}

// Lambda returns λ = lcm(p-1, q-1).
// WARNING: Do not modify the returned value.
func (sk *PrivateKey) Lambda() *saferith.Nat {
	return sk.lambda
}

// Mu returns μ = L(g^λ mod N²)⁻¹ (mod N).
// WARNING: Do not modify the returned value.
func (sk *PrivateKey) Mu() *saferith.Nat {
	return sk.mu
}

// Equal returns true if both keys hold the same λ and μ.
func (sk *PrivateKey) Equal(other *PrivateKey) bool {
	if sk == nil || other == nil {
		return sk == other
	}
	return sk.lambda.Eq(other.lambda) == 1 && sk.mu.Eq(other.mu) == 1
}

// expNSquared returns xᵉ (mod N²), using the CRT when sk was generated for pk.
func (sk *PrivateKey) expNSquared(pk *PublicKey, x, e *saferith.Nat) *saferith.Nat {
	if sk.nSquared != nil && sk.nSquared.Nat().Eq(pk.nSquared.Nat()) == 1 {
		return sk.nSquared.Exp(x, e)
	}
	return pk.nSquared.Exp(x, e)
}

// Dec decrypts ct with the private key sk, and returns the plaintext m ∈ [0, N).
//
// m = L(ct^λ mod N²)⋅μ (mod N).
//
// An error is returned if ct is not a unit modulo N².
func (sk *PrivateKey) Dec(pk *PublicKey, ct *Ciphertext) (*saferith.Nat, error) {
	if !pk.ValidateCiphertexts(ct) {
		return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: ciphertext is not a unit mod N²")
	}
	l, err := lFunction(sk.expNSquared(pk, ct.c, sk.lambda), pk.n.Modulus)
	if err != nil {
		return nil, err
	}
	return l.ModMul(l, sk.mu, pk.n.Modulus), nil
}
