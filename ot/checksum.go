package ot

import "fmt"

// Checksum calculates the TrueType table checksum of b: the sum of all
// big-endian uint32 words, with a final partial word padded with zero bytes.
func Checksum(b []byte) uint32 {
	var sum uint32
	n := len(b) &^ 3
	for i := 0; i < n; i += 4 {
		sum += u32(b[i:])
	}
	if rest := len(b) - n; rest > 0 {
		var last [4]byte
		copy(last[:], b[n:])
		sum += u32(last[:])
	}
	return sum
}

// VerifyChecksum checks the bytes of a table against the checksum declared in
// the table directory. For table 'head' the checkSumAdjustment field is treated
// as zero, as required by the OpenType specification.
//
// A mismatch is returned as a warning: fonts are sometimes modified after their
// checksums have been calculated, which does not prevent decoding.
func VerifyChecksum(tag Tag, b []byte, declared uint32) (FontWarning, bool) {
	sum := Checksum(b)
	if tag == T("head") && len(b) >= 12 {
		sum -= u32(b[8:12])
	}
	if sum == declared {
		return FontWarning{}, true
	}
	return FontWarning{
		Table: tag,
		Issue: fmt.Sprintf("checksum mismatch: declared 0x%08x, calculated 0x%08x", declared, sum),
	}, false
}
