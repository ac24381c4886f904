package pcmd5

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden(t *testing.T) {
	// RFC 1321, appendix A.5.
	golden := []struct{ out, in string }{
		{"d41d8cd98f00b204e9800998ecf8427e", ""},
		{"0cc175b9c0f1b6a831c399e269772661", "a"},
		{"900150983cd24fb0d6963f7d28e17f72", "abc"},
		{"f96b697d7cb7938d525a2f31aaf161d0", "message digest"},
		{"c3fcd3d76192e4007dfb496cca67e13b", "abcdefghijklmnopqrstuvwxyz"},
		{"d174ab98d277d9f5a5611c2c9f419d9f", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"},
		{"57edf4a22be3c955ac49da2e2107b67a", strings.Repeat("1234567890", 8)},
	}
	for _, g := range golden {
		sum := Sum([]byte(g.in))
		assert.Equal(t, g.out, hex.EncodeToString(sum[:]), "Sum(%q)", g.in)

		h := New()
		for i := 0; i < len(g.in); i++ {
			h.Write([]byte{g.in[i]})
		}
		assert.Equal(t, g.out, hex.EncodeToString(h.Sum(nil)), "incremental(%q)", g.in)
	}
}

func TestTableConstants(t *testing.T) {
	assert.Equal(t, uint32(0xd76aa478), table[0])
	assert.Equal(t, uint32(0xe8c7b756), table[1])
	assert.Equal(t, uint32(0x49b40821), table[15])
	assert.Equal(t, uint32(0xfffa3942), table[32])
	assert.Equal(t, uint32(0xeb86d391), table[63])
}

func TestMatchesStandardLibrary(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	for n := 0; n < 300; n += 7 {
		data := make([]byte, n)
		rnd.Read(data)
		assert.Equal(t, md5.Sum(data), Sum(data), "len=%d", n)
	}
}

func TestSumDoesNotChangeState(t *testing.T) {
	h := New()
	h.Write([]byte("ab"))
	first := h.Sum(nil)
	h.Write([]byte("c"))

	want := Sum([]byte("abc"))
	assert.Equal(t, want[:], h.Sum(nil))
	assert.NotEqual(t, first, h.Sum(nil))

	h.Reset()
	empty := Sum(nil)
	assert.Equal(t, empty[:], h.Sum(nil))
}

func TestHMAC(t *testing.T) {
	// RFC 2202, section 2.
	vectors := []struct {
		key, data, mac string
	}{
		{strings.Repeat("0b", 16), hex.EncodeToString([]byte("Hi There")), "9294727a3638bb1c13f48ef8158bfc9d"},
		{hex.EncodeToString([]byte("Jefe")), hex.EncodeToString([]byte("what do ya want for nothing?")), "750c783e6ab0b503eaa86e310a5db738"},
		{strings.Repeat("aa", 80), hex.EncodeToString([]byte("Test Using Larger Than Block-Size Key - Hash Key First")), "6b1ab7fe4bd7bf8f0b62e6ce61b9d0cd"},
	}
	for _, v := range vectors {
		key, err := hex.DecodeString(v.key)
		require.NoError(t, err)
		data, err := hex.DecodeString(v.data)
		require.NoError(t, err)

		mac := HMAC(key, data)
		assert.Equal(t, v.mac, hex.EncodeToString(mac[:]))
	}
}
