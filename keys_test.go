package paramcodec

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		spec KeySpec
		want string
	}{
		{KeySpec{Secret: "mAkJqt8coXQ96zML", Offset: 0, Length: 16}, "105b13441aac6def"},
		{KeySpec{Secret: "t4ABRmeN", Offset: 24, Length: 8}, "b32c1775"},
		{KeySpec{Secret: "cGFsbWNsaWVudA==", Offset: 16, Length: 16}, "9e8eba0b0107a05b"},
		{KeySpec{Secret: "Y2xpZW50cGFsbQ==", Offset: 0, Length: 16}, "9ab81ca3a033aca9"},
	}
	for _, tt := range tests {
		got, err := DeriveKey(tt.spec)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got), "DeriveKey(%+v)", tt.spec)
	}
}

func TestDeriveKeyMatchesStandardLibrary(t *testing.T) {
	for _, secret := range []string{"", "abc", "北京", "=qoKNLgdAjJbU8zx"} {
		sum := md5.Sum([]byte(secret))
		full := hex.EncodeToString(sum[:])

		got, err := DeriveKey(KeySpec{Secret: secret, Offset: 0, Length: 32})
		require.NoError(t, err)
		assert.Equal(t, full, string(got))

		got, err = DeriveKey(KeySpec{Secret: secret, Offset: 5, Length: 11})
		require.NoError(t, err)
		assert.Equal(t, full[5:16], string(got))
	}
}

func TestDeriveKeyBadSpec(t *testing.T) {
	for _, spec := range []KeySpec{
		{Secret: "x", Offset: -1, Length: 8},
		{Secret: "x", Offset: 0, Length: 0},
		{Secret: "x", Offset: 24, Length: 16},
		{Secret: "x", Offset: 33, Length: 1},
	} {
		_, err := DeriveKey(spec)
		assert.True(t, errors.Is(err, ErrBadKeySpec), "DeriveKey(%+v): %v", spec, err)
	}
}

func TestCipherKeysDerive(t *testing.T) {
	k := &CipherKeys{
		Key: KeySpec{Secret: "mAkJqt8coXQ96zML", Length: 16},
		IV:  KeySpec{Secret: "t4ABRmeN", Offset: 24, Length: 8},
	}
	key, iv, err := k.derive()
	require.NoError(t, err)
	assert.Equal(t, "105b13441aac6def", string(key))
	assert.Equal(t, "b32c1775", string(iv))

	k.IV.Length = 0
	_, _, err = k.derive()
	assert.True(t, errors.Is(err, ErrBadKeySpec))
	assert.Contains(t, err.Error(), "iv:")
}
