package paramcodec

import (
	"encoding/hex"
	"fmt"

	"github.com/ultram4rine/go-paramcodec/pcmd5"
)

// digestHexLen is the length of a hex rendered MD5 digest.
const digestHexLen = 2 * pcmd5.Size

// KeySpec describes key material as a slice of the lowercase hex MD5
// digest of Secret: Length characters starting at Offset. The selected
// characters are used as the key bytes themselves, not hex decoded.
type KeySpec struct {
	Secret string `yaml:"secret"`
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`
}

func (s KeySpec) validate() error {
	if s.Offset < 0 || s.Length <= 0 || s.Offset+s.Length > digestHexLen {
		return fmt.Errorf("%w: offset %d length %d outside %d-character digest",
			ErrBadKeySpec, s.Offset, s.Length, digestHexLen)
	}
	return nil
}

// DeriveKey returns the key bytes described by spec.
func DeriveKey(spec KeySpec) ([]byte, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	sum := pcmd5.Sum([]byte(spec.Secret))
	h := hex.EncodeToString(sum[:])
	return []byte(h[spec.Offset : spec.Offset+spec.Length]), nil
}

// CipherKeys holds the key and IV of one cipher stage. When Passphrase
// is set the stage derives key and IV from it and a random salt instead,
// and emits salted OpenSSL text.
type CipherKeys struct {
	Key KeySpec `yaml:"key"`
	IV  KeySpec `yaml:"iv"`

	Passphrase       string `yaml:"passphrase,omitempty"`
	PBKDF2Iterations int    `yaml:"pbkdf2_iterations,omitempty"`
}

// derive returns the key and IV bytes of k.
func (k *CipherKeys) derive() (key, iv []byte, err error) {
	if key, err = DeriveKey(k.Key); err != nil {
		return nil, nil, fmt.Errorf("key: %w", err)
	}
	if iv, err = DeriveKey(k.IV); err != nil {
		return nil, nil, fmt.Errorf("iv: %w", err)
	}
	return key, iv, nil
}
