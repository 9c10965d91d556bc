package paillier

import (
	"io"

	"github.com/cronokirby/saferith"
)

// Ciphertext represents an integer of the form
//
//	ct = (1+N)ᵐρᴺ (mod N²),
//
// representing the encryption of m ∈ ℤₙ with nonce ρ ∈ ℤₙˣ.
type Ciphertext struct {
	c *saferith.Nat
}

// NewCiphertext wraps c as a ciphertext. The value is copied and not validated,
// see PublicKey.ValidateCiphertexts.
func NewCiphertext(c *saferith.Nat) *Ciphertext {
	return &Ciphertext{c: new(saferith.Nat).SetNat(c)}
}

// Add sets ct to the homomorphic sum ct ⊕ ct₂.
// ct ← ct•ct₂ (mod N²).
func (ct *Ciphertext) Add(pk *PublicKey, ct2 *Ciphertext) *Ciphertext {
	if ct2 == nil {
		return ct
	}
	ct.c.ModMul(ct.c, ct2.c, pk.nSquared.Modulus)
	return ct
}

// AddConst sets ct to the homomorphic sum ct ⊕ Enc(k; 1).
// ct ← ct•gᵏ (mod N²).
func (ct *Ciphertext) AddConst(pk *PublicKey, k *saferith.Nat) *Ciphertext {
	if k == nil {
		return ct
	}
	gk := pk.nSquared.Exp(pk.g, k)
	ct.c.ModMul(ct.c, gk, pk.nSquared.Modulus)
	return ct
}

// MulConst sets ct to the homomorphic multiplication of k ⊙ ct.
// ct ← ctᵏ (mod N²).
func (ct *Ciphertext) MulConst(pk *PublicKey, k *saferith.Nat) *Ciphertext {
	if k == nil {
		return ct
	}
	ct.c = pk.nSquared.Exp(ct.c, k)
	return ct
}

// Randomize multiplies the ciphertext's nonce by ρ.
// ct ← ct⋅ρᴺ (mod N²).
func (ct *Ciphertext) Randomize(pk *PublicKey, nonce *saferith.Nat) *Ciphertext {
	tmp := pk.nSquared.Exp(nonce, pk.nNat)
	ct.c.ModMul(ct.c, tmp, pk.nSquared.Modulus)
	return ct
}

// Equal check whether ct ≡ ctₐ (mod N²).
func (ct *Ciphertext) Equal(ctA *Ciphertext) bool {
	if ct == nil || ctA == nil {
		return ct == ctA
	}
	return ct.c.Eq(ctA.c) == 1
}

// Clone returns a deep copy of ct, or nil if ct is nil.
func (ct *Ciphertext) Clone() *Ciphertext {
	if ct == nil {
		return nil
	}
	c := new(saferith.Nat)
	c.SetNat(ct.c)
	return &Ciphertext{c: c}
}

// Nat returns the underlying value of the ciphertext.
// WARNING: Do not modify the returned value.
func (ct *Ciphertext) Nat() *saferith.Nat {
	return ct.c
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if ct == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(ct.c.Big().Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Ciphertext) Domain() string {
	return "Paillier Ciphertext"
}
