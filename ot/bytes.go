package ot

import (
	"fmt"
	"math"
	"strconv"
)

// Reading bytes from a font's binary representation.
// All values in an OpenType font are stored big-endian.

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func u64(b []byte) uint64 {
	_ = b[7] // Bounds check hint to compiler
	return uint64(u32(b))<<32 | uint64(u32(b[4:]))
}

// binarySegm is a segment of byte data, usually the bytes of a single table.
// Every read is bounds-checked and fails with ErrOutOfBounds instead of panicking.
type binarySegm []byte

// Size returns the number of bytes in the segment.
func (b binarySegm) Size() int {
	return len(b)
}

// Bytes returns the segment as a byte slice.
func (b binarySegm) Bytes() []byte {
	return b
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, boundsError(offset, n, len(b))
	}
	return b[offset : offset+n], nil
}

// from returns the tail of b, starting at offset.
func (b binarySegm) from(offset int) (binarySegm, error) {
	if offset < 0 || offset > len(b) {
		return nil, boundsError(offset, 0, len(b))
	}
	return b[offset:], nil
}

func boundsError(offset, n, size int) error {
	return fmt.Errorf("%w: %d bytes at offset %d exceed segment of size %d",
		ErrOutOfBounds, n, offset, size)
}

func (b binarySegm) u8(i int) (uint8, error) {
	buf, err := b.view(i, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

func (b binarySegm) i16(i int) (int16, error) {
	n, err := b.u16(i)
	return int16(n), err
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

func (b binarySegm) i32(i int) (int32, error) {
	n, err := b.u32(i)
	return int32(n), err
}

func (b binarySegm) u64(i int) (uint64, error) {
	buf, err := b.view(i, 8)
	if err != nil {
		return 0, err
	}
	return u64(buf), nil
}

// fixed returns the 16.16 fixed-point number at offset i.
func (b binarySegm) fixed(i int) (Fixed, error) {
	n, err := b.i32(i)
	return Fixed(n), err
}

func (b binarySegm) tag(i int) (Tag, error) {
	n, err := b.u32(i)
	return Tag(n), err
}

// --- Sequential field reader -----------------------------------------------

// fieldReader reads consecutive fields from a segment. The first failing read
// is remembered; every read after that returns zero. Decoders check err once
// after a block of fields, which keeps record layouts readable.
type fieldReader struct {
	seg binarySegm
	pos int
	err error
}

func newFieldReader(b binarySegm, pos int) *fieldReader {
	return &fieldReader{seg: b, pos: pos}
}

func (r *fieldReader) next(n int) binarySegm {
	if r.err != nil {
		return nil
	}
	buf, err := r.seg.view(r.pos, n)
	if err != nil {
		r.err = err
		return nil
	}
	r.pos += n
	return buf
}

func (r *fieldReader) U8() uint8 {
	if b := r.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *fieldReader) U16() uint16 {
	if b := r.next(2); b != nil {
		return u16(b)
	}
	return 0
}

func (r *fieldReader) I16() int16 {
	return int16(r.U16())
}

func (r *fieldReader) U32() uint32 {
	if b := r.next(4); b != nil {
		return u32(b)
	}
	return 0
}

func (r *fieldReader) I32() int32 {
	return int32(r.U32())
}

func (r *fieldReader) I64() int64 {
	if b := r.next(8); b != nil {
		return int64(u64(b))
	}
	return 0
}

func (r *fieldReader) Fixed() Fixed {
	return Fixed(r.I32())
}

func (r *fieldReader) Tag() Tag {
	return Tag(r.U32())
}

// Bytes returns a copy of the next n bytes.
func (r *fieldReader) Bytes(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	c := make([]byte, n)
	copy(c, b)
	return c
}

// Skip advances the read position by n bytes.
func (r *fieldReader) Skip(n int) {
	r.next(n)
}

// --- Fixed point numbers ---------------------------------------------------

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// Float returns f as a floating point number, i.e. f / 0x10000.
func (f Fixed) Float() float64 {
	return float64(f) / 0x10000
}

// String returns f rounded to three decimal places, without trailing zeros.
func (f Fixed) String() string {
	r := math.Round(f.Float()*1000) / 1000
	if r == 0 {
		r = 0 // no negative zero
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if r == math.Trunc(r) {
		s += ".0"
	}
	return s
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16
