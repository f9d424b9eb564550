/*
Package fonttest assembles synthetic sfnt fonts for tests.

Tests of this module do not depend on font files. Instead they construct fonts
table by table, with table data written by a big-endian Buf:

	head := fonttest.Head(1000)
	font := fonttest.New().Add("head", head).Add("zzzz", []byte{1, 2, 3}).Bytes()

Builders compute correct table checksums, unless a checksum is given explicitly.
*/
package fonttest

import "sort"

// Buf is a big-endian byte buffer for writing font tables.
type Buf []byte

// U8 appends a byte.
func (b Buf) U8(v ...uint8) Buf {
	return append(b, v...)
}

// U16 appends uint16 values.
func (b Buf) U16(v ...uint16) Buf {
	for _, x := range v {
		b = append(b, byte(x>>8), byte(x))
	}
	return b
}

// I16 appends int16 values.
func (b Buf) I16(v ...int16) Buf {
	for _, x := range v {
		b = b.U16(uint16(x))
	}
	return b
}

// U32 appends uint32 values.
func (b Buf) U32(v ...uint32) Buf {
	for _, x := range v {
		b = append(b, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	}
	return b
}

// U64 appends uint64 values.
func (b Buf) U64(v ...uint64) Buf {
	for _, x := range v {
		b = b.U32(uint32(x>>32), uint32(x))
	}
	return b
}

// Tag appends a 4-byte tag, padded with spaces.
func (b Buf) Tag(t string) Buf {
	return append(b, (t + "    ")[:4]...)
}

// Str appends the bytes of s.
func (b Buf) Str(s string) Buf {
	return append(b, s...)
}

// Pascal appends Pascal strings, each prefixed by its length byte.
func (b Buf) Pascal(s ...string) Buf {
	for _, x := range s {
		b = append(b, byte(len(x)))
		b = append(b, x...)
	}
	return b
}

// Zeros appends n zero bytes.
func (b Buf) Zeros(n int) Buf {
	return append(b, make([]byte, n)...)
}

// --- Font builder ----------------------------------------------------------

// Scaler types.
const (
	TrueType   uint32 = 0x00010000
	CFF        uint32 = 0x4f54544f // 'OTTO'
	Collection uint32 = 0x74746366 // 'ttcf'
)

type entry struct {
	tag      string
	data     []byte
	checksum *uint32
	offset   *uint32
	length   *uint32
}

// Builder assembles a font from tables. Tables are written in the order they
// have been added, each aligned to four bytes.
type Builder struct {
	scaler  uint32
	entries []entry
	sorted  bool
}

// New creates a builder for a TrueType font.
func New() *Builder {
	return &Builder{scaler: TrueType}
}

// Scaler sets the scaler type of the font.
func (fb *Builder) Scaler(s uint32) *Builder {
	fb.scaler = s
	return fb
}

// SortedDirectory makes the table directory list tables sorted by tag, as the
// OpenType specification requires. By default, records are in insertion order.
func (fb *Builder) SortedDirectory() *Builder {
	fb.sorted = true
	return fb
}

// Add appends a table.
func (fb *Builder) Add(tag string, data []byte) *Builder {
	fb.entries = append(fb.entries, entry{tag: tag, data: data})
	return fb
}

// WithChecksum overrides the checksum of the most recently added table.
func (fb *Builder) WithChecksum(sum uint32) *Builder {
	fb.entries[len(fb.entries)-1].checksum = &sum
	return fb
}

// WithRecord overrides offset and length in the table record of the most
// recently added table. The table data is still written.
func (fb *Builder) WithRecord(offset, length uint32) *Builder {
	e := &fb.entries[len(fb.entries)-1]
	e.offset, e.length = &offset, &length
	return fb
}

// Bytes returns the binary font.
func (fb *Builder) Bytes() []byte {
	n := len(fb.entries)
	font := Buf{}.U32(fb.scaler).U16(uint16(n), 0, 0, 0)
	dirEnd := 12 + 16*n
	offsets := make([]uint32, n)
	pos := dirEnd
	for i, e := range fb.entries {
		offsets[i] = uint32(pos)
		pos += (len(e.data) + 3) &^ 3
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if fb.sorted {
		sort.SliceStable(order, func(i, j int) bool {
			return fb.entries[order[i]].tag < fb.entries[order[j]].tag
		})
	}
	for _, i := range order {
		e := fb.entries[i]
		sum := Checksum(e.data)
		if e.tag == "head" && len(e.data) >= 12 {
			sum -= u32(e.data[8:12])
		}
		if e.checksum != nil {
			sum = *e.checksum
		}
		off, length := offsets[i], uint32(len(e.data))
		if e.offset != nil {
			off, length = *e.offset, *e.length
		}
		font = font.Tag(e.tag).U32(sum, off, length)
	}
	for _, e := range fb.entries {
		font = append(font, e.data...)
		font = font.Zeros((4 - len(e.data)%4) % 4)
	}
	return font
}

// Header returns just an offset table, claiming numTables tables, followed by
// the given number of all-zero table records.
func Header(numTables uint16, records int) []byte {
	return Buf{}.U32(TrueType).U16(numTables, 0, 0, 0).Zeros(16 * records)
}

// Checksum computes a table checksum.
func Checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var w [4]byte
		copy(w[:], b[i:])
		sum += u32(w[:])
	}
	return sum
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
