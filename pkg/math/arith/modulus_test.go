package arith

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

// Mersenne primes 2¹²⁷ - 1 and 2⁸⁹ - 1.
func testFactors() (p, q *saferith.Nat) {
	pBig := new(big.Int).Sub(new(big.Int).Lsh(one, 127), one)
	qBig := new(big.Int).Sub(new(big.Int).Lsh(one, 89), one)
	return NatFromBig(pBig), NatFromBig(qBig)
}

func TestModulus_Exp(t *testing.T) {
	p, q := testFactors()
	pSquared := new(saferith.Nat).Mul(p, p, -1)
	qSquared := new(saferith.Nat).Mul(q, q, -1)

	mFast := ModulusFromFactors(pSquared, qSquared)
	mSlow := ModulusFromN(saferith.ModulusFromNat(new(saferith.Nat).Mul(pSquared, qSquared, -1)))
	assert.True(t, mFast.HasFactorization())
	assert.False(t, mSlow.HasFactorization())
	assert.True(t, mFast.Nat().Eq(mSlow.Nat()) == 1, "n moduli should be the same")

	for i := 0; i < 10; i++ {
		xBig, _ := rand.Int(rand.Reader, mSlow.Big())
		eBig, _ := rand.Int(rand.Reader, new(big.Int).Lsh(one, 300))
		x := new(saferith.Nat).SetBig(xBig, mSlow.BitLen())
		e := new(saferith.Nat).SetBig(eBig, 300)

		want := new(big.Int).Exp(xBig, eBig, mSlow.Big())
		assert.Equal(t, 0, mFast.Exp(x, e).Big().Cmp(want), "exponentiation with acceleration should give the same result")
		assert.Equal(t, 0, mSlow.Exp(x, e).Big().Cmp(want), "exponentiation without acceleration should give the same result")
	}
}

func TestIsValidNatModN(t *testing.T) {
	n := saferith.ModulusFromUint64(15)
	assert.True(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(2), new(saferith.Nat).SetUint64(14)))
	assert.False(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(0)))
	assert.False(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(5)))
	assert.False(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(15)))
	assert.False(t, IsValidNatModN(n, nil))
}
