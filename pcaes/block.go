package pcaes

import "encoding/binary"

// encryptBlock runs the rounds of FIPS-197 section 5.1 using the
// combined te tables, then a final round without MixColumns.
func encryptBlock(xk []uint32, dst, src []byte) {
	s0 := binary.BigEndian.Uint32(src[0:4])
	s1 := binary.BigEndian.Uint32(src[4:8])
	s2 := binary.BigEndian.Uint32(src[8:12])
	s3 := binary.BigEndian.Uint32(src[12:16])

	// First round just XORs input with key.
	s0 ^= xk[0]
	s1 ^= xk[1]
	s2 ^= xk[2]
	s3 ^= xk[3]

	// Middle rounds shuffle using tables.
	nr := len(xk)/4 - 2 // - 2: one above, one more below
	k := 4
	for r := 0; r < nr; r++ {
		t0 := xk[k+0] ^ te0[uint8(s0>>24)] ^ te1[uint8(s1>>16)] ^ te2[uint8(s2>>8)] ^ te3[uint8(s3)]
		t1 := xk[k+1] ^ te0[uint8(s1>>24)] ^ te1[uint8(s2>>16)] ^ te2[uint8(s3>>8)] ^ te3[uint8(s0)]
		t2 := xk[k+2] ^ te0[uint8(s2>>24)] ^ te1[uint8(s3>>16)] ^ te2[uint8(s0>>8)] ^ te3[uint8(s1)]
		t3 := xk[k+3] ^ te0[uint8(s3>>24)] ^ te1[uint8(s0>>16)] ^ te2[uint8(s1>>8)] ^ te3[uint8(s2)]
		k += 4
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	// Last round uses s-box directly and XORs to produce output.
	t0 := uint32(sbox0[s0>>24])<<24 | uint32(sbox0[s1>>16&0xff])<<16 | uint32(sbox0[s2>>8&0xff])<<8 | uint32(sbox0[s3&0xff])
	t1 := uint32(sbox0[s1>>24])<<24 | uint32(sbox0[s2>>16&0xff])<<16 | uint32(sbox0[s3>>8&0xff])<<8 | uint32(sbox0[s0&0xff])
	t2 := uint32(sbox0[s2>>24])<<24 | uint32(sbox0[s3>>16&0xff])<<16 | uint32(sbox0[s0>>8&0xff])<<8 | uint32(sbox0[s1&0xff])
	t3 := uint32(sbox0[s3>>24])<<24 | uint32(sbox0[s0>>16&0xff])<<16 | uint32(sbox0[s1>>8&0xff])<<8 | uint32(sbox0[s2&0xff])

	binary.BigEndian.PutUint32(dst[0:4], t0^xk[k+0])
	binary.BigEndian.PutUint32(dst[4:8], t1^xk[k+1])
	binary.BigEndian.PutUint32(dst[8:12], t2^xk[k+2])
	binary.BigEndian.PutUint32(dst[12:16], t3^xk[k+3])
}

// decryptBlock is the equivalent inverse cipher of FIPS-197 section 5.3.5.
func decryptBlock(xk []uint32, dst, src []byte) {
	s0 := binary.BigEndian.Uint32(src[0:4])
	s1 := binary.BigEndian.Uint32(src[4:8])
	s2 := binary.BigEndian.Uint32(src[8:12])
	s3 := binary.BigEndian.Uint32(src[12:16])

	s0 ^= xk[0]
	s1 ^= xk[1]
	s2 ^= xk[2]
	s3 ^= xk[3]

	nr := len(xk)/4 - 2
	k := 4
	for r := 0; r < nr; r++ {
		t0 := xk[k+0] ^ td0[uint8(s0>>24)] ^ td1[uint8(s3>>16)] ^ td2[uint8(s2>>8)] ^ td3[uint8(s1)]
		t1 := xk[k+1] ^ td0[uint8(s1>>24)] ^ td1[uint8(s0>>16)] ^ td2[uint8(s3>>8)] ^ td3[uint8(s2)]
		t2 := xk[k+2] ^ td0[uint8(s2>>24)] ^ td1[uint8(s1>>16)] ^ td2[uint8(s0>>8)] ^ td3[uint8(s3)]
		t3 := xk[k+3] ^ td0[uint8(s3>>24)] ^ td1[uint8(s2>>16)] ^ td2[uint8(s1>>8)] ^ td3[uint8(s0)]
		k += 4
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	t0 := uint32(sbox1[s0>>24])<<24 | uint32(sbox1[s3>>16&0xff])<<16 | uint32(sbox1[s2>>8&0xff])<<8 | uint32(sbox1[s1&0xff])
	t1 := uint32(sbox1[s1>>24])<<24 | uint32(sbox1[s0>>16&0xff])<<16 | uint32(sbox1[s3>>8&0xff])<<8 | uint32(sbox1[s2&0xff])
	t2 := uint32(sbox1[s2>>24])<<24 | uint32(sbox1[s1>>16&0xff])<<16 | uint32(sbox1[s0>>8&0xff])<<8 | uint32(sbox1[s3&0xff])
	t3 := uint32(sbox1[s3>>24])<<24 | uint32(sbox1[s2>>16&0xff])<<16 | uint32(sbox1[s1>>8&0xff])<<8 | uint32(sbox1[s0&0xff])

	binary.BigEndian.PutUint32(dst[0:4], t0^xk[k+0])
	binary.BigEndian.PutUint32(dst[4:8], t1^xk[k+1])
	binary.BigEndian.PutUint32(dst[8:12], t2^xk[k+2])
	binary.BigEndian.PutUint32(dst[12:16], t3^xk[k+3])
}

// subw applies the S-box to each byte of w.
func subw(w uint32) uint32 {
	return uint32(sbox0[w>>24])<<24 |
		uint32(sbox0[w>>16&0xff])<<16 |
		uint32(sbox0[w>>8&0xff])<<8 |
		uint32(sbox0[w&0xff])
}

// rotw rotates w left by 8 bits.
func rotw(w uint32) uint32 { return w<<8 | w>>24 }

// expandKey fills enc with the FIPS-197 key schedule for key, and dec
// with the same words in reverse round order run through InvMixColumns
// for use by decryptBlock.
func expandKey(key []byte, enc, dec []uint32) {
	var i int
	nk := len(key) / 4
	for i = 0; i < nk; i++ {
		enc[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for ; i < len(enc); i++ {
		t := enc[i-1]
		if i%nk == 0 {
			t = subw(rotw(t)) ^ uint32(powx[i/nk-1])<<24
		} else if nk > 6 && i%nk == 4 {
			t = subw(t)
		}
		enc[i] = enc[i-nk] ^ t
	}

	n := len(enc)
	for i := 0; i < n; i += 4 {
		ei := n - i - 4
		for j := 0; j < 4; j++ {
			x := enc[ei+j]
			if i > 0 && i+4 < n {
				x = td0[sbox0[x>>24]] ^ td1[sbox0[x>>16&0xff]] ^ td2[sbox0[x>>8&0xff]] ^ td3[sbox0[x&0xff]]
			}
			dec[i+j] = x
		}
	}
}
