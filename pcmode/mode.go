// Package pcmode provides block cipher modes of operation (CBC and ECB)
// and padding schemes (PKCS#7 and none) that work with any cipher.Block.
package pcmode

import (
	"crypto/cipher"
	"errors"
	"fmt"
)

var (
	// ErrNotBlockAligned is returned when input left after padding is not
	// a whole number of blocks.
	ErrNotBlockAligned = errors.New("pcmode: input not full blocks")
	// ErrInvalidPadding is returned by Pkcs7Strict when the padding bytes
	// do not check out.
	ErrInvalidPadding = errors.New("pcmode: invalid padding")
)

// Mode creates the per-operation cipher.BlockMode for a block cipher.
type Mode interface {
	NewEncrypter(b cipher.Block, iv []byte) cipher.BlockMode
	NewDecrypter(b cipher.Block, iv []byte) cipher.BlockMode
	// IVSize reports how many IV bytes the mode needs for blockSize.
	IVSize(blockSize int) int
	String() string
}

var (
	CBC Mode = cbcMode{}
	ECB Mode = ecbMode{}
)

// IVSizeError reports an IV whose length does not match the mode.
type IVSizeError struct {
	Mode      string
	Want, Got int
}

func (e *IVSizeError) Error() string {
	return fmt.Sprintf("pcmode: %s needs a %d-byte IV, got %d", e.Mode, e.Want, e.Got)
}

// Encrypt pads plaintext and encrypts it with b under mode. The
// plaintext is not modified.
func Encrypt(b cipher.Block, mode Mode, pad Padding, iv, plaintext []byte) ([]byte, error) {
	bs := b.BlockSize()
	if err := checkIV(mode, bs, iv); err != nil {
		return nil, err
	}

	buf := pad.Pad(plaintext, bs)
	if len(buf)%bs != 0 {
		return nil, ErrNotBlockAligned
	}
	if len(buf) == 0 {
		return []byte{}, nil
	}
	mode.NewEncrypter(b, iv).CryptBlocks(buf, buf)
	return buf, nil
}

// Decrypt decrypts ciphertext with b under mode and removes the padding.
// A trailing partial block is dropped before decryption.
func Decrypt(b cipher.Block, mode Mode, pad Padding, iv, ciphertext []byte) ([]byte, error) {
	bs := b.BlockSize()
	if err := checkIV(mode, bs, iv); err != nil {
		return nil, err
	}

	n := len(ciphertext) - len(ciphertext)%bs
	buf := make([]byte, n)
	if n > 0 {
		mode.NewDecrypter(b, iv).CryptBlocks(buf, ciphertext[:n])
	}
	return pad.Unpad(buf)
}

func checkIV(mode Mode, blockSize int, iv []byte) error {
	want := mode.IVSize(blockSize)
	if want > 0 && len(iv) != want {
		return &IVSizeError{Mode: mode.String(), Want: want, Got: len(iv)}
	}
	return nil
}
