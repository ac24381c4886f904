package pcopenssl

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultram4rine/go-paramcodec/pcaes"
	"github.com/ultram4rine/go-paramcodec/pcdes"
	"github.com/ultram4rine/go-paramcodec/pcmode"
)

func TestStringify(t *testing.T) {
	ct := []byte{0xde, 0xad, 0xbe, 0xef}
	assert.Equal(t, "3q2+7w==", Stringify(CipherParams{Ciphertext: ct}))

	salted := Stringify(CipherParams{Ciphertext: ct, Salt: []byte("12345678")})
	raw, err := base64.StdEncoding.DecodeString(salted)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("Salted__12345678"), ct...), raw)
}

func TestParse(t *testing.T) {
	ct := []byte("ciphertext bytes")

	p := Parse(Stringify(CipherParams{Ciphertext: ct}))
	assert.Nil(t, p.Salt)
	assert.Equal(t, ct, p.Ciphertext)

	p = Parse(Stringify(CipherParams{Ciphertext: ct, Salt: []byte("saltsalt")}))
	assert.Equal(t, []byte("saltsalt"), p.Salt)
	assert.Equal(t, ct, p.Ciphertext)

	// A bare prefix without room for a salt is just ciphertext.
	p = Parse(base64.StdEncoding.EncodeToString([]byte("Salted__abc")))
	assert.Nil(t, p.Salt)
	assert.Equal(t, []byte("Salted__abc"), p.Ciphertext)
}

// bytesToKey derives EVP_BytesToKey(MD5, count=1) from the standard
// library hash.
func bytesToKey(password, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var out, prev []byte
	for len(out) < keyLen+ivLen {
		sum := md5.Sum(bytes.Join([][]byte{prev, password, salt}, nil))
		prev = sum[:]
		out = append(out, prev...)
	}
	return out[:keyLen], out[keyLen : keyLen+ivLen]
}

func TestEVPKDF(t *testing.T) {
	sizes := []struct{ key, iv int }{{8, 8}, {16, 16}, {24, 8}, {32, 16}, {0, 0}}
	for _, s := range sizes {
		key, iv := EVPKDF([]byte("password"), []byte("saltsalt"), s.key, s.iv)
		wantKey, wantIV := bytesToKey([]byte("password"), []byte("saltsalt"), s.key, s.iv)
		assert.Equal(t, wantKey, key)
		assert.Equal(t, wantIV, iv)
	}
}

func TestPBKDF2KDF(t *testing.T) {
	// PBKDF2-HMAC-SHA256, P = "password", S = "salt", c = 1, dkLen = 32.
	key, iv := PBKDF2KDF(1)([]byte("password"), []byte("salt"), 16, 16)
	assert.Equal(t, "120fb6cffcf8b32c43e7225256c4f837", hex.EncodeToString(key))
	assert.Equal(t, "a86548c92ccc35480805987cb70be17b", hex.EncodeToString(iv))
}

func TestPasswordCipher(t *testing.T) {
	tests := []struct {
		name string
		c    *PasswordCipher
	}{
		{"AES-256 EVP", &PasswordCipher{NewBlock: pcaes.NewCipher, KeySize: 32, IVSize: 16}},
		{"AES-128 PBKDF2", &PasswordCipher{NewBlock: pcaes.NewCipher, KeySize: 16, IVSize: 16, KDF: PBKDF2KDF(1000)}},
		{"DES EVP", &PasswordCipher{NewBlock: pcdes.NewCipher, KeySize: 8, IVSize: 8}},
		{"TripleDES ECB", &PasswordCipher{NewBlock: pcdes.NewTripleDESCipher, KeySize: 24, Mode: pcmode.ECB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := tt.c.Encrypt([]byte("secret"), []byte("attack at dawn"))
			require.NoError(t, err)

			p := Parse(text)
			assert.Len(t, p.Salt, SaltSize)

			plain, err := tt.c.Decrypt([]byte("secret"), text)
			require.NoError(t, err)
			assert.Equal(t, "attack at dawn", string(plain))
		})
	}
}

func TestPasswordCipherDeterministicWithFixedRand(t *testing.T) {
	c := &PasswordCipher{
		NewBlock: pcaes.NewCipher,
		KeySize:  32,
		IVSize:   16,
		Rand:     bytes.NewReader([]byte("12345678")),
	}
	p, err := c.Seal([]byte("pw"), []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("12345678"), p.Salt)

	wantKey, wantIV := bytesToKey([]byte("pw"), []byte("12345678"), 32, 16)
	assert.Equal(t, wantKey, p.Key)
	assert.Equal(t, wantIV, p.IV)

	// The salt source is exhausted now.
	_, err = c.Seal([]byte("pw"), []byte("hello"))
	assert.Error(t, err)
}

func TestPasswordCipherErrors(t *testing.T) {
	c := &PasswordCipher{NewBlock: pcaes.NewCipher, KeySize: 32, IVSize: 16}

	_, err := c.Decrypt([]byte("pw"), Stringify(CipherParams{Ciphertext: make([]byte, 16)}))
	assert.True(t, errors.Is(err, ErrNoSalt))

	bad := &PasswordCipher{NewBlock: pcaes.NewCipher, KeySize: 20, IVSize: 16}
	_, err = bad.Encrypt([]byte("pw"), []byte("x"))
	assert.Equal(t, pcaes.KeySizeError(20), err)
}
