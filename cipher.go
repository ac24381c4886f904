package paramcodec

import (
	"crypto/cipher"
	"fmt"

	"github.com/ultram4rine/go-paramcodec/pcaes"
	"github.com/ultram4rine/go-paramcodec/pcbase64"
	"github.com/ultram4rine/go-paramcodec/pcdes"
	"github.com/ultram4rine/go-paramcodec/pcmode"
	"github.com/ultram4rine/go-paramcodec/pcopenssl"
)

const (
	// STAGE_NONE is never part of a pipeline.
	STAGE_NONE = iota
	// STAGE_AES is AES in CBC mode with PKCS#7 padding.
	STAGE_AES
	// STAGE_DES is DES in CBC mode with PKCS#7 padding.
	STAGE_DES
	// STAGE_BASE64 is Base64 of the UTF-8 text.
	STAGE_BASE64
	// STAGE_3DES is Triple DES (EDE) in CBC mode with PKCS#7 padding.
	STAGE_3DES
)

var StageNames = map[int]string{
	STAGE_AES:    "aes",
	STAGE_DES:    "des",
	STAGE_BASE64: "base64",
	STAGE_3DES:   "3des",
}

// ParseStages turns a stage configuration string such as "32223" into
// stage ids, one per character.
func ParseStages(s string) ([]int, error) {
	stages := make([]int, 0, len(s))
	for _, r := range s {
		id := int(r - '0')
		if _, ok := StageNames[id]; !ok || r < '0' || r > '9' {
			return nil, unknownStageError(r)
		}
		stages = append(stages, id)
	}
	return stages, nil
}

// CreateStageMask returns a bitmask of the given stages or panics if a
// stage is not supported.
func CreateStageMask(stages ...int) *Bitmask {
	for _, s := range stages {
		if _, ok := StageNames[s]; !ok {
			panic(fmt.Sprintf("paramcodec: stage %d isn't supported", s))
		}
	}
	return newBitmask(stages...)
}

// stageCipher is one reversible text transform of a pipeline. A single
// instance is safe for concurrent use.
type stageCipher interface {
	// encode transforms text on the way out.
	encode(text string) (string, error)

	// decode undoes encode.
	decode(text string) (string, error)
}

type base64Stage struct{}

func (base64Stage) encode(text string) (string, error) {
	return pcbase64.EncodeString(text), nil
}

func (base64Stage) decode(text string) (string, error) {
	return pcbase64.DecodeString(text), nil
}

// cbcStage encrypts the UTF-8 bytes of the text with a fixed key and IV
// and renders the ciphertext as unsalted OpenSSL text.
type cbcStage struct {
	block   cipher.Block
	iv      []byte
	padding pcmode.Padding
}

func newCBCStage(c cipher.Block, iv []byte, padding pcmode.Padding) (stageCipher, error) {
	iv, err := fit(iv, c.BlockSize(), "iv")
	if err != nil {
		return nil, err
	}
	return &cbcStage{block: c, iv: iv, padding: padding}, nil
}

func (s *cbcStage) encode(text string) (string, error) {
	ct, err := pcmode.Encrypt(s.block, pcmode.CBC, s.padding, s.iv, []byte(text))
	if err != nil {
		return "", err
	}
	return pcopenssl.Stringify(pcopenssl.CipherParams{Ciphertext: ct}), nil
}

func (s *cbcStage) decode(text string) (string, error) {
	// A salt header, if any, is skipped: the key is fixed.
	p := pcopenssl.Parse(text)
	plain, err := pcmode.Decrypt(s.block, pcmode.CBC, s.padding, s.iv, p.Ciphertext)
	if err != nil {
		return "", err
	}
	return utf8String(plain)
}

// passwordStage derives key and IV per message from a passphrase and a
// random salt.
type passwordStage struct {
	cipher     *pcopenssl.PasswordCipher
	passphrase []byte
}

func (s *passwordStage) encode(text string) (string, error) {
	return s.cipher.Encrypt(s.passphrase, []byte(text))
}

func (s *passwordStage) decode(text string) (string, error) {
	plain, err := s.cipher.Decrypt(s.passphrase, text)
	if err != nil {
		return "", err
	}
	return utf8String(plain)
}

// fit cuts b down to n bytes. Extra bytes are ignored the way a cipher
// that reads a fixed number of key words ignores them.
func fit(b []byte, n int, what string) ([]byte, error) {
	if len(b) < n {
		return nil, fmt.Errorf("%s: need %d bytes, got %d", what, n, len(b))
	}
	return b[:n], nil
}

func newAESCBCStage(key, iv []byte, padding pcmode.Padding) (stageCipher, error) {
	c, err := pcaes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return newCBCStage(c, iv, padding)
}

func newDESCBCStage(key, iv []byte, padding pcmode.Padding) (stageCipher, error) {
	key, err := fit(key, pcdes.KeySize, "key")
	if err != nil {
		return nil, err
	}
	c, err := pcdes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return newCBCStage(c, iv, padding)
}

func newTripleDESCBCStage(key, iv []byte, padding pcmode.Padding) (stageCipher, error) {
	key, err := fit(key, pcdes.TripleKeySize, "key")
	if err != nil {
		return nil, err
	}
	c, err := pcdes.NewTripleDESCipher(key)
	if err != nil {
		return nil, err
	}

	return newCBCStage(c, iv, padding)
}

// newPasswordStage builds the salted variant of a cipher stage.
func newPasswordStage(stage int, keys *CipherKeys, padding pcmode.Padding) (stageCipher, error) {
	pc := &pcopenssl.PasswordCipher{Padding: padding}
	switch stage {
	case STAGE_AES:
		pc.NewBlock, pc.KeySize, pc.IVSize = pcaes.NewCipher, 32, pcaes.BlockSize
	case STAGE_DES:
		pc.NewBlock, pc.KeySize, pc.IVSize = pcdes.NewCipher, pcdes.KeySize, pcdes.BlockSize
	case STAGE_3DES:
		pc.NewBlock, pc.KeySize, pc.IVSize = pcdes.NewTripleDESCipher, pcdes.TripleKeySize, pcdes.BlockSize
	default:
		return nil, fmt.Errorf("stage %s has no password form", StageNames[stage])
	}
	if keys.PBKDF2Iterations > 0 {
		pc.KDF = pcopenssl.PBKDF2KDF(keys.PBKDF2Iterations)
	}
	return &passwordStage{cipher: pc, passphrase: []byte(keys.Passphrase)}, nil
}

// newStageCipher builds the cipher for a keyed stage.
func newStageCipher(stage int, keys *CipherKeys, padding pcmode.Padding) (stageCipher, error) {
	if keys.Passphrase != "" {
		return newPasswordStage(stage, keys, padding)
	}

	key, iv, err := keys.derive()
	if err != nil {
		return nil, err
	}

	switch stage {
	case STAGE_AES:
		return newAESCBCStage(key, iv, padding)
	case STAGE_DES:
		return newDESCBCStage(key, iv, padding)
	case STAGE_3DES:
		return newTripleDESCBCStage(key, iv, padding)
	default:
		return nil, fmt.Errorf("unsupported stage (%d)", stage)
	}
}
