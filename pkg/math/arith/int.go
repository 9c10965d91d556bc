package arith

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/paillier/pkg/errkind"
)

var one = big.NewInt(1)

// Gcd returns the greatest common divisor of u and v, using the iterative Euclidean algorithm.
// Gcd(u, 0) = u.
func Gcd(u, v *big.Int) *big.Int {
	a, b := new(big.Int).Set(u), new(big.Int).Set(v)
	for b.Sign() > 0 {
		a.Mod(a, b)
		a, b = b, a
	}
	return a
}

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	return Gcd(a, b).Cmp(one) == 0
}

// ExtendedGcd returns g = gcd(|a|, |b|) and a Bézout coefficient x such that a⋅x ≡ g (mod b).
//
// The coefficient is computed for |a| and negated when a < 0, so that the relation holds for a itself.
func ExtendedGcd(a, b *big.Int) (g, x *big.Int) {
	lastRemainder := new(big.Int).Abs(a)
	remainder := new(big.Int).Abs(b)
	x, lastX := big.NewInt(0), big.NewInt(1)
	quotient := new(big.Int)
	tmp := new(big.Int)
	for remainder.Sign() != 0 {
		quotient.QuoRem(lastRemainder, remainder, tmp)
		lastRemainder, remainder, tmp = remainder, tmp, lastRemainder

		// x, lastX = lastX - q⋅x, x
		tmpX := new(big.Int).Mul(quotient, x)
		tmpX.Sub(lastX, tmpX)
		x, lastX = tmpX, x
	}
	if a.Sign() < 0 {
		lastX.Neg(lastX)
	}
	return lastRemainder, lastX
}

// ModInverse returns b ∈ [0, m) such that a⋅b ≡ 1 (mod m).
//
// An error wrapping errkind.ErrNotInvertible is returned when a = 0 or gcd(a, m) ≠ 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if a.Sign() == 0 {
		return nil, errorsmod.Wrapf(errkind.ErrNotInvertible, "0 has no inverse mod %s", m)
	}
	g, x := ExtendedGcd(a, m)
	if g.Cmp(one) != 0 {
		return nil, errorsmod.Wrapf(errkind.ErrNotInvertible, "%s has no inverse mod %s", a, m)
	}
	return x.Mod(x, m), nil
}

// ModPow returns baseᵉˣᵖ (mod modulus), for a non-negative exponent.
func ModPow(base, exp, modulus *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, modulus)
}

// NatFromBig converts a non-negative big.Int into a saferith.Nat of the same true length.
func NatFromBig(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBig(x, x.BitLen())
}

// IsValidNatModN checks that each x is a unit modulo n, i.e. x ∈ [1, n) and gcd(x, n) = 1.
func IsValidNatModN(n *saferith.Modulus, xs ...*saferith.Nat) bool {
	for _, x := range xs {
		if x == nil {
			return false
		}
		if _, _, lt := x.CmpMod(n); lt != 1 {
			return false
		}
		if x.IsUnit(n) != 1 {
			return false
		}
	}
	return true
}
