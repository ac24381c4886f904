package pcmode

// Padding extends a message to whole blocks and strips it again.
// Pad never modifies buf; it returns a new slice.
type Padding interface {
	Pad(buf []byte, blockSize int) []byte
	Unpad(buf []byte) ([]byte, error)
}

var (
	// Pkcs7 appends n bytes of value n. Unpad trusts the last byte and
	// never fails: a count larger than the data leaves nothing.
	Pkcs7 Padding = pkcs7{}
	// Pkcs7Strict pads like Pkcs7 but Unpad checks every padding byte.
	Pkcs7Strict Padding = pkcs7{strict: true}
	// NoPadding leaves the data as is. The caller supplies whole blocks.
	NoPadding Padding = noPadding{}
)

type pkcs7 struct {
	strict bool
}

func (p pkcs7) Pad(buf []byte, blockSize int) []byte {
	n := blockSize - len(buf)%blockSize
	out := make([]byte, len(buf)+n)
	copy(out, buf)
	for i := len(buf); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func (p pkcs7) Unpad(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		if p.strict {
			return nil, ErrInvalidPadding
		}
		return buf, nil
	}

	n := int(buf[len(buf)-1])
	if !p.strict {
		if n > len(buf) {
			return buf[:0], nil
		}
		return buf[:len(buf)-n], nil
	}

	if n == 0 || n > len(buf) {
		return nil, ErrInvalidPadding
	}
	for _, c := range buf[len(buf)-n:] {
		if int(c) != n {
			return nil, ErrInvalidPadding
		}
	}
	return buf[:len(buf)-n], nil
}

type noPadding struct{}

func (noPadding) Pad(buf []byte, _ int) []byte {
	return append([]byte(nil), buf...)
}

func (noPadding) Unpad(buf []byte) ([]byte, error) { return buf, nil }
