package paillier

import (
	"crypto"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"golang.org/x/crypto/sha3"
)

// digests lists the hash functions a message may be signed with.
var digests = map[crypto.Hash]func() hash.Hash{
	crypto.SHA256:   sha256.New,
	crypto.SHA3_256: sha3.New256,
}

// Signature is a Paillier signature (s₁, s₂) on a message digest h, verified by
//
//	g^s₁⋅s₂ᴺ ≡ h (mod N²).
type Signature struct {
	s1, s2 *saferith.Nat
}

// NewSignature returns a signature from its two components. Both are copied.
func NewSignature(s1, s2 *saferith.Nat) *Signature {
	return &Signature{
		s1: new(saferith.Nat).SetNat(s1),
		s2: new(saferith.Nat).SetNat(s2),
	}
}

// S1 returns the first component of the signature.
func (sig *Signature) S1() *saferith.Nat { return sig.s1 }

// S2 returns the second component of the signature.
func (sig *Signature) S2() *saferith.Nat { return sig.s2 }

// Equal returns true if both signatures have the same components.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.s1.Eq(other.s1) == 1 && sig.s2.Eq(other.s2) == 1
}

// HashToInt returns the SHA-256 digest of message, read as a non-negative integer
// from its lowercase hexadecimal encoding.
func HashToInt(message []byte) *big.Int {
	h, _ := HashToIntWith(crypto.SHA256, message)
	return h
}

// HashToIntWith is HashToInt with a choice of digest. Only crypto.SHA256 and crypto.SHA3_256 are supported.
func HashToIntWith(h crypto.Hash, message []byte) (*big.Int, error) {
	newDigest, ok := digests[h]
	if !ok {
		return nil, errorsmod.Wrapf(errkind.ErrInvalidParameter, "paillier: unsupported digest %v", h)
	}
	d := newDigest()
	_, _ = d.Write(message)
	x, _ := new(big.Int).SetString(hex.EncodeToString(d.Sum(nil)), 16)
	return x, nil
}

// Sign signs message with SHA-256.
func (sk *PrivateKey) Sign(pk *PublicKey, message []byte) (*Signature, error) {
	return sk.SignWith(pk, crypto.SHA256, message)
}

// SignWith signs the digest of message computed with h.
//
//	s₁ = L(h^λ mod N²)⋅L(g^λ mod N²)⁻¹ (mod N)
//	s₂ = (h⋅(g^s₁ mod N)⁻¹)^(N⁻¹ mod λ) (mod N)
func (sk *PrivateKey) SignWith(pk *PublicKey, h crypto.Hash, message []byte) (*Signature, error) {
	digest, err := HashToIntWith(h, message)
	if err != nil {
		return nil, err
	}
	n := pk.n.Modulus
	nBig := n.Big()
	hNat := arith.NatFromBig(digest)

	hModNSquared := new(saferith.Nat).Mod(hNat, pk.nSquared.Modulus)
	numerator, err := lFunction(sk.expNSquared(pk, hModNSquared, sk.lambda), n)
	if err != nil {
		return nil, errorsmod.Wrap(err, "paillier: sign")
	}
	denominator, err := lFunction(sk.expNSquared(pk, pk.g, sk.lambda), n)
	if err != nil {
		return nil, errorsmod.Wrap(err, "paillier: sign")
	}
	denominatorInv, err := arith.ModInverse(denominator.Big(), nBig)
	if err != nil {
		return nil, errorsmod.Wrap(err, "paillier: sign")
	}
	s1 := new(saferith.Nat).ModMul(numerator, arith.NatFromBig(denominatorInv), n)

	nInv, err := arith.ModInverse(nBig, sk.lambda.Big())
	if err != nil {
		return nil, errorsmod.Wrap(err, "paillier: sign")
	}
	gModN := new(saferith.Nat).Mod(pk.g, n)
	gs1 := new(saferith.Nat).Exp(gModN, s1, n)
	gs1Inv, err := arith.ModInverse(gs1.Big(), nBig)
	if err != nil {
		return nil, errorsmod.Wrap(err, "paillier: sign")
	}
	base := new(saferith.Nat).ModMul(new(saferith.Nat).Mod(hNat, n), arith.NatFromBig(gs1Inv), n)
	s2 := new(saferith.Nat).Exp(base, arith.NatFromBig(nInv), n)

	return &Signature{s1: s1, s2: s2}, nil
}

// VerifySignature verifies a SHA-256 signature on message.
func (pk *PublicKey) VerifySignature(message []byte, sig *Signature) bool {
	return pk.VerifySignatureWith(crypto.SHA256, message, sig)
}

// VerifySignatureWith returns true if g^s₁⋅s₂ᴺ (mod N²) equals the digest of message computed with h.
func (pk *PublicKey) VerifySignatureWith(h crypto.Hash, message []byte, sig *Signature) bool {
	if sig == nil || sig.s1 == nil || sig.s2 == nil {
		return false
	}
	digest, err := HashToIntWith(h, message)
	if err != nil {
		return false
	}
	gs1 := pk.nSquared.Exp(pk.g, sig.s1)
	s2n := pk.nSquared.Exp(sig.s2, pk.nNat)
	recovered := gs1.ModMul(gs1, s2n, pk.nSquared.Modulus)
	return recovered.Big().Cmp(digest) == 0
}
