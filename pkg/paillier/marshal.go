package paillier

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
)

var (
	_ fmt.Stringer               = (*PublicKey)(nil)
	_ json.Marshaler             = (*PublicKey)(nil)
	_ json.Unmarshaler           = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ json.Marshaler             = (*PrivateKey)(nil)
	_ json.Unmarshaler           = (*PrivateKey)(nil)
	_ encoding.BinaryMarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PrivateKey)(nil)
	_ encoding.BinaryMarshaler   = (*Ciphertext)(nil)
	_ encoding.BinaryUnmarshaler = (*Ciphertext)(nil)
	_ json.Marshaler             = (*Signature)(nil)
	_ json.Unmarshaler           = (*Signature)(nil)
	_ encoding.BinaryMarshaler   = (*Signature)(nil)
	_ encoding.BinaryUnmarshaler = (*Signature)(nil)
)

// ParseNat parses a non-negative decimal integer.
func ParseNat(s string) (*saferith.Nat, error) {
	x, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || x.Sign() < 0 {
		return nil, errorsmod.Wrapf(errkind.ErrMalformedInput, "paillier: %q is not a non-negative integer", s)
	}
	return arith.NatFromBig(x), nil
}

func natString(x *saferith.Nat) string {
	return x.Big().String()
}

// parsePair splits a "a,b" string into its two integers.
func parsePair(s string) (*saferith.Nat, *saferith.Nat, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, nil, errorsmod.Wrapf(errkind.ErrMalformedInput, "paillier: expected two comma separated integers, got %d fields", len(parts))
	}
	a, err := ParseNat(parts[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := ParseNat(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// String returns N in decimal.
func (pk *PublicKey) String() string {
	return natString(pk.nNat)
}

// ParsePublicKey is the inverse of PublicKey.String.
func ParsePublicKey(s string) (*PublicKey, error) {
	n, err := ParseNat(s)
	if err != nil {
		return nil, err
	}
	if err = ValidateN(n); err != nil {
		return nil, err
	}
	return NewPublicKey(n), nil
}

// String returns "λ,μ" in decimal.
func (sk *PrivateKey) String() string {
	return natString(sk.lambda) + "," + natString(sk.mu)
}

// ParsePrivateKey is the inverse of PrivateKey.String.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	lambda, mu, err := parsePair(s)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{lambda: lambda, mu: mu}, nil
}

// String returns the ciphertext in decimal.
func (ct *Ciphertext) String() string {
	return natString(ct.c)
}

// ParseCiphertext is the inverse of Ciphertext.String.
func ParseCiphertext(s string) (*Ciphertext, error) {
	c, err := ParseNat(s)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{c: c}, nil
}

// String returns "s₁,s₂" in decimal.
func (sig *Signature) String() string {
	return natString(sig.s1) + "," + natString(sig.s2)
}

// ParseSignature is the inverse of Signature.String.
func ParseSignature(s string) (*Signature, error) {
	s1, s2, err := parsePair(s)
	if err != nil {
		return nil, err
	}
	return &Signature{s1: s1, s2: s2}, nil
}

type jsonPublicKey struct {
	N *big.Int `json:"n"`
}

type jsonPrivateKey struct {
	Lambda *big.Int `json:"lambda"`
	Mu     *big.Int `json:"mu"`
}

type jsonSignature struct {
	S1 *big.Int `json:"s1"`
	S2 *big.Int `json:"s2"`
}

func (pk *PublicKey) UnmarshalJSON(bytes []byte) error {
	var x jsonPublicKey
	if err := json.Unmarshal(bytes, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	return pk.setN(x.N)
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPublicKey{N: pk.nNat.Big()})
}

func (sk *PrivateKey) UnmarshalJSON(bytes []byte) error {
	var x jsonPrivateKey
	if err := json.Unmarshal(bytes, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	if !nonNegative(x.Lambda, x.Mu) {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: invalid private key")
	}
	*sk = PrivateKey{lambda: arith.NatFromBig(x.Lambda), mu: arith.NatFromBig(x.Mu)}
	return nil
}

func (sk PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPrivateKey{Lambda: sk.lambda.Big(), Mu: sk.mu.Big()})
}

func (sig *Signature) UnmarshalJSON(bytes []byte) error {
	var x jsonSignature
	if err := json.Unmarshal(bytes, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	if !nonNegative(x.S1, x.S2) {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: invalid signature")
	}
	*sig = Signature{s1: arith.NatFromBig(x.S1), s2: arith.NatFromBig(x.S2)}
	return nil
}

func (sig Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSignature{S1: sig.s1.Big(), S2: sig.s2.Big()})
}

func nonNegative(xs ...*big.Int) bool {
	for _, x := range xs {
		if x == nil || x.Sign() < 0 {
			return false
		}
	}
	return true
}

func (pk *PublicKey) setN(n *big.Int) error {
	if !nonNegative(n) {
		return errorsmod.Wrap(errkind.ErrMalformedInput, "paillier: invalid public key")
	}
	nNat := arith.NatFromBig(n)
	if err := ValidateN(nNat); err != nil {
		return err
	}
	*pk = *NewPublicKey(nNat)
	return nil
}

// The binary encodings are CBOR maps of big-endian byte strings.

type cborPublicKey struct {
	N []byte `cbor:"1,keyasint"`
}

type cborPrivateKey struct {
	Lambda []byte `cbor:"1,keyasint"`
	Mu     []byte `cbor:"2,keyasint"`
}

type cborCiphertext struct {
	C []byte `cbor:"1,keyasint"`
}

type cborSignature struct {
	S1 []byte `cbor:"1,keyasint"`
	S2 []byte `cbor:"2,keyasint"`
}

func natBytes(x *saferith.Nat) []byte {
	return x.Big().Bytes()
}

func natFromBytes(b []byte) *saferith.Nat {
	return new(saferith.Nat).SetBytes(b)
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborPublicKey{N: natBytes(pk.nNat)})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var x cborPublicKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	return pk.setN(new(big.Int).SetBytes(x.N))
}

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborPrivateKey{Lambda: natBytes(sk.lambda), Mu: natBytes(sk.mu)})
}

func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	var x cborPrivateKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	*sk = PrivateKey{lambda: natFromBytes(x.Lambda), mu: natFromBytes(x.Mu)}
	return nil
}

func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborCiphertext{C: natBytes(ct.c)})
}

func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	var x cborCiphertext
	if err := cbor.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	ct.c = natFromBytes(x.C)
	return nil
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborSignature{S1: natBytes(sig.s1), S2: natBytes(sig.s2)})
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	var x cborSignature
	if err := cbor.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	*sig = Signature{s1: natFromBytes(x.S1), s2: natFromBytes(x.S2)}
	return nil
}
