package mix

// MaxHashedName is the number of leading filename bytes that contribute to an id.
const MaxHashedName = 12

// FoldHash computes the id the engine uses to look up a file in a MIX archive.
//
// The name is upper-cased (ASCII only) and truncated to 12 bytes. Bytes are consumed
// in groups of four, the first byte of a group landing in the low byte, and every group
// is folded into the accumulator with acc = rotl(acc, 1) + group. Folding stops once the
// name is exhausted at a group boundary; a trailing partial group is zero padded.
func FoldHash(name string) uint32 {
	var buf [MaxHashedName]byte
	n := 0
	for ; n < len(name) && n < MaxHashedName; n++ {
		c := name[n]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf[n] = c
	}

	var acc uint32
	for i := 0; i < n; {
		var group uint32
		for j := 0; j < 4; j++ {
			group >>= 8
			if i < n {
				group |= uint32(buf[i]) << 24
				i++
			}
		}
		acc = (acc<<1 | acc>>31) + group
	}
	return acc
}

// Signed reinterprets an id as the two's-complement value the engine sorts by.
func Signed(id uint32) int32 {
	return int32(id)
}
