// Package zkmember proves that a Paillier ciphertext encrypts one value of a public,
// ordered set of candidates, without revealing which.
//
// The proof is an OR-composition of zknth proofs: for each candidate mᵢ,
// uᵢ = c⋅g⁻ᵐⁱ (mod N²) is an N-th power if and only if c encrypts mᵢ.
// The prover runs the real protocol on the true branch and simulates all others.
// The per-branch challenges must sum to the Fiat-Shamir challenge modulo 2ᵀ.
package zkmember

import (
	"crypto/rand"
	"io"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/internal/params"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/hash"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"github.com/taurusgroup/paillier/pkg/math/sample"
	"github.com/taurusgroup/paillier/pkg/paillier"
	"github.com/taurusgroup/paillier/pkg/pool"
)

// challengeModulus = 2ᵀ
var challengeModulus = new(big.Int).Lsh(big.NewInt(1), params.ChallengeBits)

type Public struct {
	// N is the key under which C was encrypted
	N *paillier.PublicKey

	// C = (1+N)ᵐρᴺ (mod N²)
	C *paillier.Ciphertext

	// Candidates = [m₁, …, mₖ]
	Candidates []*saferith.Nat
}

type Private struct {
	// Index t such that Candidates[t] = m
	Index int

	// Rho = ρ, the nonce used to encrypt C
	Rho *saferith.Nat
}

type Commitment struct {
	// A[i] = Aᵢ = αᴺ (mod N²) on the true branch,
	// and Zᵢᴺ⋅uᵢ⁻ᴱⁱ (mod N²) on simulated ones
	A []*saferith.Nat
}

type Proof struct {
	Commitment
	// E[i] = Eᵢ ∈ [0, 2ᵀ), with ∑ᵢ Eᵢ = e (mod 2ᵀ)
	E []*saferith.Nat
	// Z[i] = Zᵢ = αρᴱⁱ (mod N) on the true branch
	Z []*saferith.Nat
}

// Len returns the number of branches in the proof.
func (p *Proof) Len() int {
	return len(p.A)
}

func (p *Proof) IsValid(public Public) bool {
	if p == nil {
		return false
	}
	k := len(public.Candidates)
	if len(p.A) != k || len(p.E) != k || len(p.Z) != k {
		return false
	}
	if !arith.IsValidNatModN(public.N.NSquared(), p.A...) {
		return false
	}
	if !arith.IsValidNatModN(public.N.N(), p.Z...) {
		return false
	}
	for _, e := range p.E {
		if e == nil || e.Big().Cmp(challengeModulus) >= 0 {
			return false
		}
	}
	return true
}

// validateCandidates checks that the candidate set is non-empty and has no repeated values.
func validateCandidates(candidates []*saferith.Nat) error {
	if len(candidates) == 0 {
		return errorsmod.Wrap(errkind.ErrInvalidParameter, "zkmember: empty candidate set")
	}
	seen := make(map[string]struct{}, len(candidates))
	for i, m := range candidates {
		if m == nil {
			return errorsmod.Wrapf(errkind.ErrInvalidParameter, "zkmember: candidate %d is nil", i)
		}
		key := m.Big().String()
		if _, ok := seen[key]; ok {
			return errorsmod.Wrapf(errkind.ErrInvalidParameter, "zkmember: candidate %s is repeated", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// branchBase returns uᵢ = c⋅g⁻ᵐ (mod N²).
func branchBase(pk *paillier.PublicKey, c *paillier.Ciphertext, m *saferith.Nat) *saferith.Nat {
	nSquared := pk.ModulusSquared()
	gm := nSquared.Exp(pk.G(), m)
	gmInv := new(saferith.Nat).ModInverse(gm, nSquared.Modulus)
	return gmInv.ModMul(gmInv, c.Nat(), nSquared.Modulus)
}

// simulatedA returns Zᴺ⋅u⁻ᴱ (mod N²).
func simulatedA(pk *paillier.PublicKey, u, e, z *saferith.Nat) *saferith.Nat {
	nSquared := pk.ModulusSquared()
	uE := nSquared.Exp(u, e)
	uEInv := new(saferith.Nat).ModInverse(uE, nSquared.Modulus)
	a := nSquared.Exp(z, pk.N().Nat())
	return a.ModMul(a, uEInv, nSquared.Modulus)
}

// NewProof generates a proof that public.C encrypts public.Candidates[private.Index] with nonce private.Rho.
// The simulated branches are computed on pl, which may be nil.
func NewProof(hash *hash.Hash, public Public, private Private, pl *pool.Pool) (*Proof, error) {
	return newProof(rand.Reader, hash, public, private, pl)
}

func newProof(rand io.Reader, hash *hash.Hash, public Public, private Private, pl *pool.Pool) (*Proof, error) {
	if err := validateCandidates(public.Candidates); err != nil {
		return nil, err
	}
	k := len(public.Candidates)
	if private.Index < 0 || private.Index >= k {
		return nil, errorsmod.Wrapf(errkind.ErrInvalidParameter, "zkmember: index %d out of range [0, %d)", private.Index, k)
	}
	if !public.N.ValidateCiphertexts(public.C) {
		return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "zkmember: invalid ciphertext")
	}

	N := public.N.N()
	t := private.Index
	rand = pool.NewLockedReader(rand)

	proof := &Proof{
		Commitment: Commitment{A: make([]*saferith.Nat, k)},
		E:          make([]*saferith.Nat, k),
		Z:          make([]*saferith.Nat, k),
	}

	// α ← ℤₙˣ
	alpha := sample.UnitModN(rand, N)
	// Aₜ = αᴺ (mod N²)
	proof.A[t] = public.N.ModulusSquared().Exp(alpha, N.Nat())

	pl.Parallelize(k, func(i int) interface{} {
		if i == t {
			return nil
		}
		// Eᵢ ← [0, 2ᵀ), Zᵢ ← ℤₙˣ
		e := arith.NatFromBig(sample.Challenge(rand))
		z := sample.UnitModN(rand, N)
		u := branchBase(public.N, public.C, public.Candidates[i])
		proof.E[i] = e
		proof.Z[i] = z
		proof.A[i] = simulatedA(public.N, u, e, z)
		return nil
	})

	e, err := challenge(hash, public, proof.Commitment)
	if err != nil {
		return nil, err
	}

	// Eₜ = e - ∑ᵢ≠ₜ Eᵢ (mod 2ᵀ)
	et := new(big.Int).Set(e)
	for i, ei := range proof.E {
		if i != t {
			et.Sub(et, ei.Big())
		}
	}
	et.Mod(et, challengeModulus)
	proof.E[t] = arith.NatFromBig(et)

	// Zₜ = αρᴱᵗ (mod N)
	zt := public.N.Modulus().Exp(private.Rho, proof.E[t])
	proof.Z[t] = zt.ModMul(zt, alpha, N)
	return proof, nil
}

// Verify checks the proof against public, running the per-branch checks on pl, which may be nil.
func (p *Proof) Verify(hash *hash.Hash, public Public, pl *pool.Pool) bool {
	if validateCandidates(public.Candidates) != nil {
		return false
	}
	if !public.N.ValidateCiphertexts(public.C) {
		return false
	}
	if !p.IsValid(public) {
		return false
	}

	e, err := challenge(hash, public, p.Commitment)
	if err != nil {
		return false
	}
	sum := new(big.Int)
	for _, ei := range p.E {
		sum.Add(sum, ei.Big())
	}
	if sum.Mod(sum, challengeModulus).Cmp(e) != 0 {
		return false
	}

	NSquared := public.N.ModulusSquared()
	results := pl.Parallelize(p.Len(), func(i int) interface{} {
		u := branchBase(public.N, public.C, public.Candidates[i])
		// Zᵢᴺ = Aᵢ⋅uᵢᴱⁱ (mod N²)
		lhs := NSquared.Exp(p.Z[i], public.N.N().Nat())
		rhs := NSquared.Exp(u, p.E[i])
		rhs.ModMul(rhs, p.A[i], NSquared.Modulus)
		return lhs.Eq(rhs) == 1
	})
	for _, ok := range results {
		if !ok.(bool) {
			return false
		}
	}
	return true
}

// challenge returns e ∈ [0, 2ᵀ) derived from the public statement and the commitment.
func challenge(hash *hash.Hash, public Public, commitment Commitment) (*big.Int, error) {
	err := hash.WriteAny(public.N, public.C)
	if err != nil {
		return nil, err
	}
	for _, m := range public.Candidates {
		if err = hash.WriteAny(m); err != nil {
			return nil, err
		}
	}
	for _, a := range commitment.A {
		if err = hash.WriteAny(a); err != nil {
			return nil, err
		}
	}
	return sample.Challenge(hash.Digest()), nil
}
