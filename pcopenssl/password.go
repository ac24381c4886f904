package pcopenssl

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/ultram4rine/go-paramcodec/pcmode"
)

// ErrNoSalt is returned when password decryption is asked to handle
// text that carries no "Salted__" header.
var ErrNoSalt = errors.New("pcopenssl: ciphertext has no salt")

// PasswordCipher encrypts with a key and IV derived from a password and a
// fresh random salt, emitting the salted OpenSSL format.
type PasswordCipher struct {
	NewBlock func(key []byte) (cipher.Block, error)
	KeySize  int
	IVSize   int

	// Optional. Defaults are EVPKDF, CBC, PKCS#7 and crypto/rand.
	KDF     KDF
	Mode    pcmode.Mode
	Padding pcmode.Padding
	Rand    io.Reader
}

func (c *PasswordCipher) kdf() KDF {
	if c.KDF == nil {
		return EVPKDF
	}
	return c.KDF
}

func (c *PasswordCipher) mode() pcmode.Mode {
	if c.Mode == nil {
		return pcmode.CBC
	}
	return c.Mode
}

func (c *PasswordCipher) padding() pcmode.Padding {
	if c.Padding == nil {
		return pcmode.Pkcs7
	}
	return c.Padding
}

func (c *PasswordCipher) random() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

// Seal encrypts plaintext and returns the parameters used, salt included.
func (c *PasswordCipher) Seal(password, plaintext []byte) (CipherParams, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random(), salt); err != nil {
		return CipherParams{}, fmt.Errorf("pcopenssl: reading salt: %w", err)
	}

	key, iv := c.kdf()(password, salt, c.KeySize, c.IVSize)
	b, err := c.NewBlock(key)
	if err != nil {
		return CipherParams{}, err
	}
	ct, err := pcmode.Encrypt(b, c.mode(), c.padding(), iv, plaintext)
	if err != nil {
		return CipherParams{}, err
	}
	return CipherParams{Ciphertext: ct, Key: key, IV: iv, Salt: salt}, nil
}

// Encrypt is Seal followed by Stringify.
func (c *PasswordCipher) Encrypt(password, plaintext []byte) (string, error) {
	p, err := c.Seal(password, plaintext)
	if err != nil {
		return "", err
	}
	return Stringify(p), nil
}

// Decrypt parses salted OpenSSL text, rederives key and IV and decrypts.
func (c *PasswordCipher) Decrypt(password []byte, text string) ([]byte, error) {
	p := Parse(text)
	if p.Salt == nil {
		return nil, ErrNoSalt
	}

	key, iv := c.kdf()(password, p.Salt, c.KeySize, c.IVSize)
	b, err := c.NewBlock(key)
	if err != nil {
		return nil, err
	}
	return pcmode.Decrypt(b, c.mode(), c.padding(), iv, p.Ciphertext)
}
