package paillier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/paillier/pkg/errkind"
)

func TestParseNat(t *testing.T) {
	x, err := ParseNat("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", x.Big().String())

	for _, s := range []string{"", "abc", "-5", "-1", "1.5", "0x10"} {
		_, err = ParseNat(s)
		assert.ErrorIs(t, err, errkind.ErrMalformedInput, s)
	}
}

func TestStringRoundTrip(t *testing.T) {
	sk, pk := testKeypair(t)

	pk2, err := ParsePublicKey(pk.String())
	require.NoError(t, err)
	assert.True(t, pk.Equal(pk2))

	sk2, err := ParsePrivateKey(sk.String())
	require.NoError(t, err)
	assert.True(t, sk.Equal(sk2))

	ct, err := pk.Enc(natFromUint(99))
	require.NoError(t, err)
	ct2, err := ParseCiphertext(ct.String())
	require.NoError(t, err)
	assert.True(t, ct.Equal(ct2))
	dec, err := sk2.Dec(pk2, ct2)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), dec.Big().Uint64())

	sig, err := sk.Sign(pk, []byte("round trip"))
	require.NoError(t, err)
	sig2, err := ParseSignature(sig.String())
	require.NoError(t, err)
	assert.True(t, sig.Equal(sig2))
	assert.True(t, pk2.VerifySignature([]byte("round trip"), sig2))
}

func TestStringFormat(t *testing.T) {
	sk, pk, err := NewPrivateKeyFromPrimes(natFromUint(61).Big(), natFromUint(53).Big())
	require.NoError(t, err)
	assert.Equal(t, "3233", pk.String())
	assert.Equal(t, "780,"+sk.Mu().Big().String(), sk.String())
	assert.Equal(t, "1,2", NewSignature(natFromUint(1), natFromUint(2)).String())
}

func TestParseMalformed(t *testing.T) {
	for _, s := range []string{"", "abc", "-3233", "3234", "1"} {
		_, err := ParsePublicKey(s)
		assert.ErrorIs(t, err, errkind.ErrMalformedInput, s)
	}
	for _, s := range []string{"", "1", "1,2,3", "a,b", "1,-2"} {
		_, err := ParsePrivateKey(s)
		assert.ErrorIs(t, err, errkind.ErrMalformedInput, s)
		_, err = ParseSignature(s)
		assert.ErrorIs(t, err, errkind.ErrMalformedInput, s)
	}
	_, err := ParseCiphertext("ciphertext")
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)
}

func TestJSON(t *testing.T) {
	sk, pk := testKeypair(t)

	d, err := json.Marshal(pk)
	require.NoError(t, err)
	pk2 := &PublicKey{}
	require.NoError(t, json.Unmarshal(d, pk2))
	assert.True(t, pk.Equal(pk2))

	d, err = json.Marshal(sk)
	require.NoError(t, err)
	sk2 := &PrivateKey{}
	require.NoError(t, json.Unmarshal(d, sk2))
	assert.True(t, sk.Equal(sk2))

	sig, err := sk.Sign(pk, []byte("json"))
	require.NoError(t, err)
	d, err = json.Marshal(sig)
	require.NoError(t, err)
	sig2 := &Signature{}
	require.NoError(t, json.Unmarshal(d, sig2))
	assert.True(t, sig.Equal(sig2))

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"n":10}`), pk2), errkind.ErrMalformedInput)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"lambda":-1,"mu":2}`), sk2), errkind.ErrMalformedInput)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"s1":1}`), sig2), errkind.ErrMalformedInput)
}

func TestBinary(t *testing.T) {
	sk, pk := testKeypair(t)

	d, err := pk.MarshalBinary()
	require.NoError(t, err)
	pk2 := &PublicKey{}
	require.NoError(t, pk2.UnmarshalBinary(d))
	assert.True(t, pk.Equal(pk2))

	d, err = sk.MarshalBinary()
	require.NoError(t, err)
	sk2 := &PrivateKey{}
	require.NoError(t, sk2.UnmarshalBinary(d))
	assert.True(t, sk.Equal(sk2))

	ct, err := pk.Enc(natFromUint(5))
	require.NoError(t, err)
	d, err = ct.MarshalBinary()
	require.NoError(t, err)
	ct2 := &Ciphertext{}
	require.NoError(t, ct2.UnmarshalBinary(d))
	assert.True(t, ct.Equal(ct2))

	sig, err := sk.Sign(pk, []byte("cbor"))
	require.NoError(t, err)
	d, err = sig.MarshalBinary()
	require.NoError(t, err)
	sig2 := &Signature{}
	require.NoError(t, sig2.UnmarshalBinary(d))
	assert.True(t, sig.Equal(sig2))

	assert.ErrorIs(t, pk2.UnmarshalBinary([]byte{0xff}), errkind.ErrMalformedInput)
}
