package secp256k1

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 生成元 G 的压缩编码
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func scalar(v uint32) *secp.ModNScalar {
	var s secp.ModNScalar
	s.SetInt(v)
	return &s
}

func TestScalarBaseMultMatchesPrivateKey(t *testing.T) {
	c := NewCurve()

	pub, err := c.ScalarBaseMult(scalar(1)).PublicKey()
	require.NoError(t, err)
	assert.Equal(t, generatorHex, hex.EncodeToString(pub.SerializeCompressed()))

	priv, _ := btcec.PrivKeyFromBytes(mustHex(t, "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35"))
	got, err := c.ScalarBaseMult(&priv.Key).PublicKey()
	require.NoError(t, err)
	assert.True(t, got.IsEqual(priv.PubKey()))
}

func TestAddAndScalarMultAgree(t *testing.T) {
	c := NewCurve()
	g := c.ScalarBaseMult(scalar(1))

	sum := c.Add(c.Add(g, g), g)
	triple := c.ScalarMult(scalar(3), g)

	a, err := sum.PublicKey()
	require.NoError(t, err)
	b, err := triple.PublicKey()
	require.NoError(t, err)
	assert.True(t, a.IsEqual(b))
}

func TestPointAtInfinity(t *testing.T) {
	c := NewCurve()

	zero := c.ScalarBaseMult(scalar(0))
	assert.True(t, zero.IsInfinity())
	_, err := zero.PublicKey()
	assert.ErrorIs(t, err, ErrPointAtInfinity)

	// G + (n-1)G = O
	var nMinusOne secp.ModNScalar
	nMinusOne.SetInt(1).Negate()
	g := c.ScalarBaseMult(scalar(1))
	inf := c.Add(g, c.ScalarBaseMult(&nMinusOne))
	assert.True(t, inf.IsInfinity())

	assert.True(t, c.ScalarMult(scalar(5), inf).IsInfinity())
}

func TestInverseModN(t *testing.T) {
	c := NewCurve()
	k := scalar(12345)
	inv := c.InverseModN(k)

	var product secp.ModNScalar
	product.Mul2(k, inv)
	assert.True(t, product.Equals(scalar(1)))
	assert.True(t, k.Equals(scalar(12345)), "input must not be modified")
}

func TestLiftX(t *testing.T) {
	c := NewCurve()
	g, err := btcec.ParsePubKey(mustHex(t, generatorHex))
	require.NoError(t, err)
	x := g.X()

	even, err := c.LiftX(x, false)
	require.NoError(t, err)
	pub, err := even.PublicKey()
	require.NoError(t, err)
	assert.True(t, pub.IsEqual(g))

	odd, err := c.LiftX(x, true)
	require.NoError(t, err)
	pub, err = odd.PublicKey()
	require.NoError(t, err)
	assert.False(t, pub.IsEqual(g))
	assert.Zero(t, g.X().Cmp(pub.X()))

	_, err = c.LiftX(c.FieldPrime(), false)
	assert.ErrorIs(t, err, ErrFieldOverflow)

	// x = 5 没有对应的 y（5³+7 = 132 不是二次剩余）
	_, err = c.LiftX(big.NewInt(5), false)
	assert.ErrorIs(t, err, ErrNotOnCurve)
}

func TestScalarFromBytes(t *testing.T) {
	c := NewCurve()
	n := c.Order()

	_, ok := ScalarFromBytes(make([]byte, 32))
	assert.False(t, ok, "zero")

	_, ok = ScalarFromBytes(n.FillBytes(make([]byte, 32)))
	assert.False(t, ok, "n")

	_, ok = ScalarFromBytes([]byte{1})
	assert.False(t, ok, "short")

	nMinusOne := new(big.Int).Sub(n, big.NewInt(1))
	s, ok := ScalarFromBytes(nMinusOne.FillBytes(make([]byte, 32)))
	assert.True(t, ok)
	b := s.Bytes()
	assert.Equal(t, nMinusOne.FillBytes(make([]byte, 32)), b[:])
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
