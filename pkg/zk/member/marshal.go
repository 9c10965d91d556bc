package zkmember

import (
	"encoding/json"
	"math/big"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"github.com/taurusgroup/paillier/pkg/paillier"
)

func joinNats(xs []*saferith.Nat) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.Big().String()
	}
	return strings.Join(parts, ",")
}

func splitNats(s string) ([]*saferith.Nat, error) {
	parts := strings.Split(s, ",")
	out := make([]*saferith.Nat, len(parts))
	for i, part := range parts {
		x, err := paillier.ParseNat(part)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// String encodes the proof as "A₁,…,Aₖ;E₁,…,Eₖ;Z₁,…,Zₖ" in decimal.
func (p *Proof) String() string {
	return joinNats(p.A) + ";" + joinNats(p.E) + ";" + joinNats(p.Z)
}

// ParseProof is the inverse of Proof.String.
func ParseProof(s string) (*Proof, error) {
	sections := strings.Split(s, ";")
	if len(sections) != 3 {
		return nil, errorsmod.Wrapf(errkind.ErrMalformedInput, "zkmember: expected 3 sections, got %d", len(sections))
	}
	var lists [3][]*saferith.Nat
	for i, section := range sections {
		xs, err := splitNats(section)
		if err != nil {
			return nil, err
		}
		lists[i] = xs
	}
	if len(lists[1]) != len(lists[0]) || len(lists[2]) != len(lists[0]) {
		return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "zkmember: sections have different lengths")
	}
	return &Proof{
		Commitment: Commitment{A: lists[0]},
		E:          lists[1],
		Z:          lists[2],
	}, nil
}

type cborProof struct {
	A [][]byte `cbor:"1,keyasint"`
	E [][]byte `cbor:"2,keyasint"`
	Z [][]byte `cbor:"3,keyasint"`
}

func toBytes(xs []*saferith.Nat) [][]byte {
	out := make([][]byte, len(xs))
	for i, x := range xs {
		out[i] = x.Big().Bytes()
	}
	return out
}

func fromBytes(bs [][]byte) []*saferith.Nat {
	out := make([]*saferith.Nat, len(bs))
	for i, b := range bs {
		out[i] = new(saferith.Nat).SetBytes(b)
	}
	return out
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborProof{A: toBytes(p.A), E: toBytes(p.E), Z: toBytes(p.Z)})
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	var x cborProof
	if err := cbor.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	*p = Proof{Commitment: Commitment{A: fromBytes(x.A)}, E: fromBytes(x.E), Z: fromBytes(x.Z)}
	return nil
}

type jsonProof struct {
	A []*big.Int `json:"a"`
	E []*big.Int `json:"e"`
	Z []*big.Int `json:"z"`
}

func toBig(xs []*saferith.Nat) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = x.Big()
	}
	return out
}

func fromBig(xs []*big.Int) ([]*saferith.Nat, error) {
	out := make([]*saferith.Nat, len(xs))
	for i, x := range xs {
		if x == nil || x.Sign() < 0 {
			return nil, errorsmod.Wrap(errkind.ErrMalformedInput, "zkmember: invalid integer in proof")
		}
		out[i] = arith.NatFromBig(x)
	}
	return out, nil
}

func (p Proof) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProof{A: toBig(p.A), E: toBig(p.E), Z: toBig(p.Z)})
}

func (p *Proof) UnmarshalJSON(data []byte) error {
	var x jsonProof
	if err := json.Unmarshal(data, &x); err != nil {
		return errorsmod.Wrap(errkind.ErrMalformedInput, err.Error())
	}
	a, err := fromBig(x.A)
	if err != nil {
		return err
	}
	e, err := fromBig(x.E)
	if err != nil {
		return err
	}
	z, err := fromBig(x.Z)
	if err != nil {
		return err
	}
	*p = Proof{Commitment: Commitment{A: a}, E: e, Z: z}
	return nil
}
