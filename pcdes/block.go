package pcdes

import "encoding/binary"

// permuteBlock picks bits of the width-bit value src in the order given
// by permutation and packs them, most significant first, into the result.
func permuteBlock(src uint64, width uint, permutation []uint8) (block uint64) {
	for _, n := range permutation {
		block = block<<1 | (src>>(width-uint(n)))&1
	}
	return
}

func cryptBlock(subkeys *[16]uint64, dst, src []byte, decrypt bool) {
	b := permuteBlock(binary.BigEndian.Uint64(src), 64, initialPermutation[:])
	left, right := uint32(b>>32), uint32(b)

	for i := 0; i < 16; i++ {
		k := subkeys[i]
		if decrypt {
			k = subkeys[15-i]
		}
		left, right = right, left^feistel(right, k)
	}

	// The last round does not swap, so the halves go back in reverse.
	preOutput := uint64(right)<<32 | uint64(left)
	binary.BigEndian.PutUint64(dst, permuteBlock(preOutput, 64, finalPermutation[:]))
}

// feistel is the DES round function: expand the half block to 48 bits,
// mix in the subkey, substitute through the S-boxes and permute.
func feistel(right uint32, subkey uint64) uint32 {
	x := permuteBlock(uint64(right), 32, expansionFunction[:]) ^ subkey

	var out uint32
	for s := 0; s < 8; s++ {
		six := uint8(x>>(42-6*uint(s))) & 0x3f
		// Row is determined by the 1st and 6th bit.
		// Column is the middle four bits.
		row := six>>4&2 | six&1
		col := six >> 1 & 0xf
		out = out<<4 | uint32(sBoxes[s][row][col])
	}
	return uint32(permuteBlock(uint64(out), 32, permutationFunction[:]))
}

// rotate28 rotates the low 28 bits of in left by n.
func rotate28(in uint32, n uint8) uint32 {
	return (in<<n | in>>(28-n)) & 0x0fffffff
}

// generateSubkeys creates the 16 48-bit round keys from a 64-bit key.
// The parity bits (every eighth bit) are dropped by PC-1.
func (c *desCipher) generateSubkeys(keyBytes []byte) {
	permutedKey := permuteBlock(binary.BigEndian.Uint64(keyBytes), 64, permutedChoice1[:])

	left := uint32(permutedKey>>28) & 0x0fffffff
	right := uint32(permutedKey) & 0x0fffffff
	for i := 0; i < 16; i++ {
		left = rotate28(left, ksRotations[i])
		right = rotate28(right, ksRotations[i])
		c.subkeys[i] = permuteBlock(uint64(left)<<28|uint64(right), 56, permutedChoice2[:])
	}
}
