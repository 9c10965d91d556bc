package paillier

import (
	"crypto/rand"
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"github.com/taurusgroup/paillier/pkg/math/sample"
)

// PublicKey is a Paillier public key. It is represented by a modulus N.
//
// The generator is fixed to g = N+1, which is a valid generator for any N.
type PublicKey struct {
	// n = p⋅q
	n *arith.Modulus
	// nSquared = n²
	nSquared *arith.Modulus

	// These values are cached out of convenience, and performance
	nNat *saferith.Nat
	// g = n + 1
	g *saferith.Nat
}

// ValidateN performs basic checks to make sure the modulus is usable:
// n is odd and n > 1.
func ValidateN(n *saferith.Nat) error {
	if n == nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "modulus N is nil")
	}
	if n.Byte(0)&1 != 1 {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "modulus N is even")
	}
	if n.TrueLen() < 2 {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "modulus N is too small")
	}
	return nil
}

// NewPublicKey returns an initialized PublicKey for the modulus n, and caches N² and N+1.
// The modulus is copied.
func NewPublicKey(n *saferith.Nat) *PublicKey {
	oneNat := new(saferith.Nat).SetUint64(1)

	nNat := new(saferith.Nat).SetNat(n)
	nNat.Resize(nNat.TrueLen())
	nSquared := new(saferith.Nat).Mul(nNat, nNat, -1)
	nPlusOne := new(saferith.Nat).Add(nNat, oneNat, -1)
	// Tightening is fine, since n is public
	nPlusOne.Resize(nPlusOne.TrueLen())

	return &PublicKey{
		n:        arith.ModulusFromN(saferith.ModulusFromNat(nNat)),
		nSquared: arith.ModulusFromN(saferith.ModulusFromNat(nSquared)),
		nNat:     nNat,
		g:        nPlusOne,
	}
}

// N is the public modulus making up this key.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) N() *saferith.Modulus {
	return pk.n.Modulus
}

// NSquared returns N², the modulus of the ciphertext space.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) NSquared() *saferith.Modulus {
	return pk.nSquared.Modulus
}

// G returns the generator g = N+1.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) G() *saferith.Nat {
	return pk.g
}

// Modulus returns an arith.Modulus for N.
func (pk *PublicKey) Modulus() *arith.Modulus {
	return pk.n
}

// ModulusSquared returns an arith.Modulus for N².
func (pk *PublicKey) ModulusSquared() *arith.Modulus {
	return pk.nSquared
}

// Equal returns true if pk ≡ other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.nNat.Eq(other.nNat) == 1
}

// ValidateCiphertexts checks if all ciphertexts are in the correct range and coprime to N².
// ct ∈ [1 … N²-1] AND GCD(ct,N²) = 1.
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if ct == nil {
			return false
		}
		if !arith.IsValidNatModN(pk.nSquared.Modulus, ct.c) {
			return false
		}
	}
	return true
}

// Enc returns the encryption of m under the public key pk.
// A fresh nonce is sampled and discarded.
//
// ct = gᵐρᴺ (mod N²).
func (pk *PublicKey) Enc(m *saferith.Nat) (*Ciphertext, error) {
	ct, _, err := pk.EncWithRandomness(m)
	return ct, err
}

// EncWithRandomness returns the encryption of m, together with the nonce ρ used to produce it,
// so that proofs about the ciphertext can be built.
//
// ρ is an odd integer of the same size as N, coprime to N, with 0 < ρ < N.
func (pk *PublicKey) EncWithRandomness(m *saferith.Nat) (*Ciphertext, *saferith.Nat, error) {
	return pk.encWithRandomness(rand.Reader, m)
}

func (pk *PublicKey) encWithRandomness(rand io.Reader, m *saferith.Nat) (*Ciphertext, *saferith.Nat, error) {
	nBig := pk.n.Big()
	var nonce *saferith.Nat
	for nonce == nil {
		r, err := sample.Coprime(rand, nBig.BitLen(), nBig)
		if err != nil {
			return nil, nil, errorsmod.Wrap(err, "paillier: sample nonce")
		}
		if r.Sign() > 0 && r.Cmp(nBig) < 0 {
			nonce = new(saferith.Nat).SetBig(r, nBig.BitLen())
		}
	}
	return pk.EncWithNonce(m, nonce), nonce, nil
}

// EncWithNonce returns the deterministic encryption of m with nonce ρ.
//
// ct = (gᵐ mod N²)⋅(ρᴺ mod N²) (mod N²).
func (pk *PublicKey) EncWithNonce(m, nonce *saferith.Nat) *Ciphertext {
	// (gᵐ mod N²)
	c := pk.nSquared.Exp(pk.g, m)
	// ρᴺ (mod N²)
	rhoN := pk.nSquared.Exp(nonce, pk.nNat)
	c.ModMul(c, rhoN, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}

// Add returns the homomorphic sum of ct1 and ct2, leaving both untouched.
// A nil operand is treated as absent, so Add(nil, ct) is a copy of ct.
func (pk *PublicKey) Add(ct1, ct2 *Ciphertext) *Ciphertext {
	if ct1 == nil {
		return ct2.Clone()
	}
	return ct1.Clone().Add(pk, ct2)
}

// AddConst returns a ciphertext of m+k, where ct encrypts m.
func (pk *PublicKey) AddConst(ct *Ciphertext, k *saferith.Nat) *Ciphertext {
	if ct == nil {
		return nil
	}
	return ct.Clone().AddConst(pk, k)
}

// MulConst returns a ciphertext of m⋅k, where ct encrypts m.
func (pk *PublicKey) MulConst(ct *Ciphertext, k *saferith.Nat) *Ciphertext {
	if ct == nil {
		return nil
	}
	return ct.Clone().MulConst(pk, k)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	if pk == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(pk.nNat.Big().Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicKey) Domain() string {
	return "Paillier PublicKey"
}
