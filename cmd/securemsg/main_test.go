package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BIP32 测试向量 1 主私钥的压缩 WIF
	testWIF     = "L52XzL2cMkHxqxBXRyEpnPQZGUs3uKiL3R11XbAdHigRzDozKZeW"
	testAddress = "15mKKb2eos1hWa6tisdPwwDC1a5J1y9nma"
	testPubKey  = "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2"

	helloSignature = "1f0c92820679a2d48a0ba8694a70a01b4f8a9ed293ac069142a2b0f7dbfb94d4e9" +
		"5b58dd6937da310e3fd0ab23d91e85e615d6ac30d80b414a92dbe00a44608f1d"

	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// field 取输出中 "name: value" 行的值
func field(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+": "); ok {
			return v
		}
	}
	t.Fatalf("output has no %q line:\n%s", name, out)
	return ""
}

func TestSignWithWIF(t *testing.T) {
	out, err := run(t, "", "sign", "--wif", testWIF, "Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, testAddress, field(t, out, "address"))
	assert.Equal(t, helloSignature, field(t, out, "signature"))
}

func TestSignFromStdin(t *testing.T) {
	out, err := run(t, "Hello, World!\n", "sign", "--wif", testWIF, "-")
	require.NoError(t, err)
	assert.Equal(t, helloSignature, field(t, out, "signature"))
}

func TestVerify(t *testing.T) {
	out, err := run(t, "", "verify", testAddress, helloSignature, "Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "valid", field(t, out, "signature"))
	assert.Equal(t, testPubKey, field(t, out, "pubkey"))

	_, err = run(t, "", "verify", testAddress, helloSignature, "Hello, World?")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))

	_, err = run(t, "", "verify", testAddress, "zz", "Hello, World!")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

// TestEncodings 签名在各编码下往返
func TestEncodings(t *testing.T) {
	for _, enc := range []string{"hex", "base64", "base58"} {
		t.Run(enc, func(t *testing.T) {
			out, err := run(t, "", "sign", "--wif", testWIF, "--encoding", enc, "abc")
			require.NoError(t, err)
			sig := field(t, out, "signature")

			_, err = run(t, "", "verify", "--encoding", enc, testAddress, sig, "abc")
			assert.NoError(t, err)
		})
	}

	_, err := run(t, "", "sign", "--wif", testWIF, "--encoding", "base32", "abc")
	require.Error(t, err)
	assert.Equal(t, 64, exitCode(err))
}

func TestAddressFromMnemonic(t *testing.T) {
	t.Setenv("SECUREMSG_MNEMONIC", testMnemonic)
	t.Setenv("SECUREMSG_PASSPHRASE", "")

	out, err := run(t, "", "address")
	require.NoError(t, err)
	assert.Equal(t, "m/44'/0'/0'/0/0", field(t, out, "path"))
	assert.Equal(t, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA", field(t, out, "address"))

	out, err = run(t, "", "address", "--network", "testnet3")
	require.NoError(t, err)
	assert.Equal(t, "m/44'/1'/0'/0/0", field(t, out, "path"))
	assert.Equal(t, "mkpZhYtJu2r87Js3pDiWJDmPte2NRZ8bJV", field(t, out, "address"))
}

func TestKeyUnavailable(t *testing.T) {
	t.Setenv("SECUREMSG_MNEMONIC", "")

	_, err := run(t, "", "address")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))

	_, err = run(t, "", "sign", "--wif", "not-a-wif", "abc")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

// TestEncryptDecrypt 加密给自己并解密
func TestEncryptDecrypt(t *testing.T) {
	out, err := run(t, "", "encrypt", "--wif", testWIF, "--sign", "--display-only", testPubKey, "ping")
	require.NoError(t, err)
	blob := field(t, out, "ciphertext")
	assert.Equal(t, "true", field(t, out, "signed"))

	out, err = run(t, "", "decrypt", "--wif", testWIF, blob)
	require.NoError(t, err)
	assert.Equal(t, "ping", field(t, out, "message"))
	assert.Equal(t, "true", field(t, out, "display_only"))
	assert.Equal(t, testAddress, field(t, out, "signer"))

	out, err = run(t, "", "encrypt", testPubKey, "ping")
	require.NoError(t, err)
	out, err = run(t, "", "decrypt", "--wif", testWIF, field(t, out, "ciphertext"))
	require.NoError(t, err)
	assert.NotContains(t, out, "signer")

	tampered := []byte(blob)
	last := len(tampered) - 1
	if tampered[last] == '0' {
		tampered[last] = '1'
	} else {
		tampered[last] = '0'
	}
	_, err = run(t, "", "decrypt", "--wif", testWIF, string(tampered))
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))
}

func TestOutputJSON(t *testing.T) {
	out, err := run(t, "", "sign", "--wif", testWIF, "-o", "json", "Hello, World!")
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, testAddress, decoded["address"])
	assert.Equal(t, helloSignature, decoded["signature"])

	_, err = run(t, "", "sign", "--wif", testWIF, "-o", "xml", "abc")
	require.Error(t, err)
	assert.Equal(t, 64, exitCode(err))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "securemsg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secure_message:\n  encoding: base64\n"), 0600))

	out, err := run(t, "", "sign", "--config", path, "--wif", testWIF, "abc")
	require.NoError(t, err)
	sig := field(t, out, "signature")
	assert.Len(t, sig, 88)

	_, err = run(t, "", "sign", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--wif", testWIF, "abc")
	require.Error(t, err)
	assert.Equal(t, 64, exitCode(err))
}

// TestSignDigest 摘要签名输出可用公钥验证的 DER 签名
func TestSignDigest(t *testing.T) {
	digest := sha256.Sum256([]byte("Hello, World!"))
	out, err := run(t, "", "sign-digest", "--wif", testWIF, hex.EncodeToString(digest[:]))
	require.NoError(t, err)

	pubBytes, err := hex.DecodeString(field(t, out, "pubkey"))
	require.NoError(t, err)
	require.Len(t, pubBytes, 65)
	pub, err := btcec.ParsePubKey(pubBytes)
	require.NoError(t, err)
	assert.Equal(t, testPubKey, hex.EncodeToString(pub.SerializeCompressed()))

	sigBytes, err := hex.DecodeString(field(t, out, "signature"))
	require.NoError(t, err)
	sig, err := btcec_ecdsa.ParseDERSignature(sigBytes)
	require.NoError(t, err)
	assert.True(t, sig.Verify(digest[:], pub))

	_, err = run(t, "", "sign-digest", "--wif", testWIF, hex.EncodeToString(digest[:31]))
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

// TestOpaqueErrors 启用后 MAC 失败与解码失败对外不可区分
func TestOpaqueErrors(t *testing.T) {
	out, err := run(t, "", "encrypt", testPubKey, "ping")
	require.NoError(t, err)
	blob := []byte(field(t, out, "ciphertext"))
	last := len(blob) - 1
	if blob[last] == '0' {
		blob[last] = '1'
	} else {
		blob[last] = '0'
	}

	_, macErr := run(t, "", "decrypt", "--opaque-errors", "--wif", testWIF, string(blob))
	require.Error(t, macErr)
	_, decodeErr := run(t, "", "decrypt", "--opaque-errors", "--wif", testWIF, "00")
	require.Error(t, decodeErr)
	_, sigErr := run(t, "", "verify", "--opaque-errors", testAddress, helloSignature, "Hello, World?")
	require.Error(t, sigErr)

	for _, err := range []error{macErr, decodeErr, sigErr} {
		assert.Equal(t, "request rejected", err.Error())
		assert.Equal(t, 1, exitCode(err))
	}

	// 未启用时保留具体原因
	_, err = run(t, "", "decrypt", "--wif", testWIF, "00")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	// 参数错误不受影响
	_, err = run(t, "", "decrypt", "--opaque-errors", "--output", "xml", "--wif", testWIF, "00")
	require.Error(t, err)
	assert.Equal(t, 64, exitCode(err))
}
