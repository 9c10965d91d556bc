package zkmember

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/hash"
	"github.com/taurusgroup/paillier/pkg/paillier"
	"github.com/taurusgroup/paillier/pkg/pool"
)

// ZKP is a fresh encryption of a value together with the proof that it belongs to a candidate set.
type ZKP struct {
	Ciphertext *paillier.Ciphertext
	Commitment *Proof
}

// New encrypts m under pk and proves that the ciphertext encrypts one of candidates.
// m must appear in candidates, and candidates may not contain the same value twice.
func New(pk *paillier.PublicKey, m *saferith.Nat, candidates []*saferith.Nat) (*ZKP, error) {
	return NewWithPool(pk, m, candidates, nil)
}

// NewWithPool is New, with the simulated branches computed on pl.
func NewWithPool(pk *paillier.PublicKey, m *saferith.Nat, candidates []*saferith.Nat, pl *pool.Pool) (*ZKP, error) {
	if err := validateCandidates(candidates); err != nil {
		return nil, err
	}
	index := -1
	for i, c := range candidates {
		if c.Big().Cmp(m.Big()) == 0 {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errorsmod.Wrapf(errkind.ErrInvalidParameter, "zkmember: %s is not a candidate", m.Big())
	}

	ct, rho, err := pk.EncWithRandomness(m)
	if err != nil {
		return nil, err
	}
	public := Public{N: pk, C: ct, Candidates: candidates}
	proof, err := NewProof(hash.New(), public, Private{Index: index, Rho: rho}, pl)
	if err != nil {
		return nil, err
	}
	return &ZKP{Ciphertext: ct, Commitment: proof}, nil
}

// Verify returns true if commitment proves that ct encrypts one of candidates under pk.
func Verify(pk *paillier.PublicKey, ct *paillier.Ciphertext, candidates []*saferith.Nat, commitment *Proof) bool {
	return VerifyWithPool(pk, ct, candidates, commitment, nil)
}

// VerifyWithPool is Verify, with the branch checks run on pl.
func VerifyWithPool(pk *paillier.PublicKey, ct *paillier.Ciphertext, candidates []*saferith.Nat, commitment *Proof, pl *pool.Pool) bool {
	public := Public{N: pk, C: ct, Candidates: candidates}
	return commitment.Verify(hash.New(), public, pl)
}
