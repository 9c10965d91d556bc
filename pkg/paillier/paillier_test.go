package paillier

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/math/arith"
	"github.com/taurusgroup/paillier/pkg/pool"
	"golang.org/x/sync/errgroup"
)

const testKeyBits = 512

// testKeypair generates a fresh key pair for a single test.
// internal/test cannot be used here, since it imports this package.
func testKeypair(t testing.TB) (*PrivateKey, *PublicKey) {
	t.Helper()
	pl := pool.NewPool(0)
	defer pl.TearDown()
	sk, pk, err := KeyGen(rand.Reader, testKeyBits, pl)
	require.NoError(t, err)
	return sk, pk
}

func natFromUint(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func randomNat(t testing.TB, bits int) *saferith.Nat {
	b := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	x, err := rand.Int(rand.Reader, b)
	require.NoError(t, err)
	return arith.NatFromBig(x)
}

func TestKeyGen(t *testing.T) {
	sk, pk := testKeypair(t)
	assert.GreaterOrEqual(t, pk.N().BitLen(), testKeyBits-1)
	assert.Equal(t, 0, pk.G().Big().Cmp(new(big.Int).Add(pk.N().Big(), big.NewInt(1))), "g = n+1")
	// μ⋅L(g^λ mod N²) ≡ 1 (mod N)
	l, err := lFunction(pk.ModulusSquared().Exp(pk.G(), sk.Lambda()), pk.N())
	require.NoError(t, err)
	one := new(saferith.Nat).ModMul(l, sk.Mu(), pk.N())
	assert.Equal(t, uint64(1), one.Big().Uint64())
}

func TestKeyGenTooSmall(t *testing.T) {
	_, _, err := GenerateKeypair(8)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkind.ErrInvalidParameter)
}

func TestNewPrivateKeyFromPrimes(t *testing.T) {
	sk, pk, err := NewPrivateKeyFromPrimes(big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)
	assert.Equal(t, "3233", pk.String())
	assert.Equal(t, uint64(780), sk.Lambda().Big().Uint64())
	// L(g^λ mod N²) = λ mod N when g = N+1
	check := new(big.Int).Mul(sk.Mu().Big(), big.NewInt(780))
	assert.Equal(t, int64(1), check.Mod(check, big.NewInt(3233)).Int64())

	for m := uint64(0); m < 3233; m += 97 {
		ct, err := pk.Enc(natFromUint(m))
		require.NoError(t, err)
		dec, err := sk.Dec(pk, ct)
		require.NoError(t, err)
		assert.Equal(t, m, dec.Big().Uint64())
	}
}

func TestNewPrivateKeyFromPrimesInvalid(t *testing.T) {
	_, _, err := NewPrivateKeyFromPrimes(big.NewInt(61), big.NewInt(61))
	assert.ErrorIs(t, err, errkind.ErrInvalidParameter)
	_, _, err = NewPrivateKeyFromPrimes(big.NewInt(2), big.NewInt(61))
	assert.ErrorIs(t, err, errkind.ErrInvalidParameter)
}

func TestCiphertextValidate(t *testing.T) {
	sk, pk := testKeypair(t)

	nBig := pk.N().Big()
	for name, c := range map[string]*big.Int{
		"0":  big.NewInt(0),
		"N":  nBig,
		"2N": new(big.Int).Lsh(nBig, 1),
		"N²": pk.NSquared().Big(),
	} {
		ct := NewCiphertext(arith.NatFromBig(c))
		_, err := sk.Dec(pk, ct)
		assert.ErrorIs(t, err, errkind.ErrMalformedInput, "decrypting %s should fail", name)
		assert.False(t, pk.ValidateCiphertexts(ct))
	}
	assert.False(t, pk.ValidateCiphertexts(nil))
}

func TestCiphertext_Enc(t *testing.T) {
	sk, pk := testKeypair(t)
	nBig := pk.N().Big()
	for i := 0; i < 10; i++ {
		m1 := randomNat(t, 200)
		m2 := randomNat(t, 200)
		k := randomNat(t, 200)

		ct1, err := pk.Enc(m1)
		require.NoError(t, err)
		ct2, err := pk.Enc(m2)
		require.NoError(t, err)
		require.True(t, pk.ValidateCiphertexts(ct1, ct2))

		dec1, err := sk.Dec(pk, ct1)
		require.NoError(t, err)
		assert.Equal(t, 0, dec1.Big().Cmp(m1.Big()), "m1 = Dec(Enc(m1))")

		// Add
		sum, err := sk.Dec(pk, ct1.Clone().Add(pk, ct2))
		require.NoError(t, err)
		expected := new(big.Int).Add(m1.Big(), m2.Big())
		assert.Equal(t, 0, expected.Mod(expected, nBig).Cmp(sum.Big()))

		// AddConst
		sum, err = sk.Dec(pk, ct1.Clone().AddConst(pk, k))
		require.NoError(t, err)
		expected = new(big.Int).Add(m1.Big(), k.Big())
		assert.Equal(t, 0, expected.Mod(expected, nBig).Cmp(sum.Big()))

		// MulConst
		prod, err := sk.Dec(pk, ct1.Clone().MulConst(pk, k))
		require.NoError(t, err)
		expected = new(big.Int).Mul(m1.Big(), k.Big())
		assert.Equal(t, 0, expected.Mod(expected, nBig).Cmp(prod.Big()))

		// Clone leaves ct1 untouched
		dec1Again, err := sk.Dec(pk, ct1)
		require.NoError(t, err)
		assert.Equal(t, 0, dec1Again.Big().Cmp(m1.Big()))
	}
}

func TestEncWrapsAroundN(t *testing.T) {
	sk, pk := testKeypair(t)
	m := new(big.Int).Add(pk.N().Big(), big.NewInt(42))
	ct, err := pk.Enc(arith.NatFromBig(m))
	require.NoError(t, err)
	dec, err := sk.Dec(pk, ct)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), dec.Big().Uint64())
}

func TestEncIsRandomized(t *testing.T) {
	_, pk := testKeypair(t)
	m := natFromUint(1234)
	ct1, nonce1, err := pk.EncWithRandomness(m)
	require.NoError(t, err)
	ct2, nonce2, err := pk.EncWithRandomness(m)
	require.NoError(t, err)
	assert.False(t, ct1.Equal(ct2))
	assert.NotEqual(t, 0, nonce1.Big().Cmp(nonce2.Big()))

	assert.True(t, pk.EncWithNonce(m, nonce1).Equal(ct1))
	assert.True(t, pk.EncWithNonce(m, nonce2).Equal(ct2))

	nBig := pk.N().Big()
	for _, nonce := range []*saferith.Nat{nonce1, nonce2} {
		assert.Equal(t, 1, nonce.Big().Sign())
		assert.Equal(t, -1, nonce.Big().Cmp(nBig))
		assert.True(t, arith.IsCoprime(nonce.Big(), nBig))
	}
}

func TestRandomize(t *testing.T) {
	sk, pk := testKeypair(t)
	m := natFromUint(77)
	ct, err := pk.Enc(m)
	require.NoError(t, err)
	_, nonce, err := pk.EncWithRandomness(natFromUint(0))
	require.NoError(t, err)
	rerandomized := ct.Clone().Randomize(pk, nonce)
	assert.False(t, rerandomized.Equal(ct))
	dec, err := sk.Dec(pk, rerandomized)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), dec.Big().Uint64())
}

func TestAddThreeAndFive(t *testing.T) {
	sk, pk := testKeypair(t)
	ct3, err := pk.Enc(natFromUint(3))
	require.NoError(t, err)
	ct5, err := pk.Enc(natFromUint(5))
	require.NoError(t, err)
	dec, err := sk.Dec(pk, pk.Add(ct3, ct5))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), dec.Big().Uint64())

	dec, err = sk.Dec(pk, pk.AddConst(ct3, natFromUint(5)))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), dec.Big().Uint64())

	dec, err = sk.Dec(pk, pk.MulConst(ct3, natFromUint(5)))
	require.NoError(t, err)
	assert.Equal(t, uint64(15), dec.Big().Uint64())

	// operands are left untouched
	dec, err = sk.Dec(pk, ct3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), dec.Big().Uint64())
}

func TestDecWithoutFactorization(t *testing.T) {
	sk, pk := testKeypair(t)
	parsed := NewPrivateKey(sk.Lambda(), sk.Mu())
	require.True(t, parsed.Equal(sk))
	require.True(t, sk.nSquared.HasFactorization())
	require.Nil(t, parsed.nSquared)
	m := randomNat(t, 256)
	ct, err := pk.Enc(m)
	require.NoError(t, err)
	dec, err := parsed.Dec(pk, ct)
	require.NoError(t, err)
	assert.Equal(t, 0, dec.Big().Cmp(m.Big()))
}

func TestHomomorphicNilOperands(t *testing.T) {
	sk, pk := testKeypair(t)
	ct, err := pk.Enc(natFromUint(7))
	require.NoError(t, err)
	k := natFromUint(3)

	var nilCt *Ciphertext
	assert.Nil(t, nilCt.Clone())
	assert.Nil(t, pk.Add(nil, nil))
	assert.Nil(t, pk.AddConst(nil, k))
	assert.Nil(t, pk.MulConst(nil, k))

	sum := pk.Add(nil, ct)
	require.NotNil(t, sum)
	assert.True(t, sum.Equal(ct))
	assert.NotSame(t, ct, sum)
	sum = pk.Add(ct, nil)
	assert.True(t, sum.Equal(ct))

	m, err := sk.Dec(pk, sum)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), m.Big().Uint64())
}

func TestPublicKeyEqual(t *testing.T) {
	_, pk := testKeypair(t)
	other := NewPublicKey(arith.NatFromBig(pk.N().Big()))
	assert.True(t, pk.Equal(other))
	assert.False(t, pk.Equal(NewPublicKey(natFromUint(3233))))
	assert.False(t, pk.Equal(nil))
}

func TestValidateN(t *testing.T) {
	assert.NoError(t, ValidateN(natFromUint(3233)))
	assert.ErrorIs(t, ValidateN(natFromUint(3234)), errkind.ErrMalformedInput)
	assert.ErrorIs(t, ValidateN(natFromUint(1)), errkind.ErrMalformedInput)
	assert.ErrorIs(t, ValidateN(nil), errkind.ErrMalformedInput)
}

func TestConcurrentUse(t *testing.T) {
	sk, pk := testKeypair(t)
	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		m := natFromUint(uint64(i))
		eg.Go(func() error {
			ct, err := pk.Enc(m)
			if err != nil {
				return err
			}
			dec, err := sk.Dec(pk, ct)
			if err != nil {
				return err
			}
			if dec.Big().Cmp(m.Big()) != 0 {
				return assert.AnError
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func BenchmarkEnc(b *testing.B) {
	_, pk := testKeypair(b)
	m := natFromUint(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pk.Enc(m)
	}
}

func BenchmarkDec(b *testing.B) {
	sk, pk := testKeypair(b)
	ct, _ := pk.Enc(natFromUint(1 << 20))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = sk.Dec(pk, ct)
	}
}
