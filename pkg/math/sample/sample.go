package sample

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/internal/params"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// ModN samples an element of ℤₙ.
func ModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	out := new(saferith.Nat)
	buf := make([]byte, (n.BitLen()+7)/8)
	for {
		mustReadBits(rand, buf)
		out.SetBytes(buf)
		_, _, lt := out.CmpMod(n)
		if lt == 1 {
			break
		}
	}
	return out
}

// UnitModN returns a u ∈ ℤₙˣ.
func UnitModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	for i := 0; i < maxIterations; i++ {
		u := ModN(rand, n)
		if u.IsUnit(n) == 1 {
			return u
		}
	}
	panic(ErrMaxIterations)
}

// Odd returns a uniformly random odd integer in [2ᵇⁱᵗˢ⁻¹+1, 2ᵇⁱᵗˢ-1].
// bits must be at least 2.
func Odd(rand io.Reader, bits int) *big.Int {
	buf := make([]byte, (bits+7)/8)
	mustReadBits(rand, buf)

	// The number of significant bits in the most significant byte
	topBits := uint(bits % 8)
	if topBits == 0 {
		topBits = 8
	}
	buf[0] &= uint8(int(1<<topBits) - 1)
	// set the top bit so that the value has exactly bits bits
	buf[0] |= 1 << (topBits - 1)
	buf[len(buf)-1] |= 1
	return new(big.Int).SetBytes(buf)
}

// Challenge returns a uniformly random integer in [0, 2ᵀ), with T = params.ChallengeBits.
func Challenge(rand io.Reader) *big.Int {
	buf := make([]byte, params.ChallengeBytes)
	mustReadBits(rand, buf)
	return new(big.Int).SetBytes(buf)
}
