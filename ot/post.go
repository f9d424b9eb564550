package ot

import "fmt"

// --- Post table ------------------------------------------------------------

// PostTable contains additional information needed to use TrueType or OpenType
// fonts on PostScript printers.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/post
//
// Only version 2.0 carries a payload besides the header: a glyph name index and
// a pool of custom glyph names. Versions 2.5, 3.0 and 4.0 are accepted, but data
// beyond their header is not interpreted.
type PostTable struct {
	tableBase
	Version            Fixed
	ItalicAngle        Fixed
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
	NumGlyphs          uint16   // version 2.0 only
	GlyphNameIndex     []uint16 // version 2.0 only
	CustomNames        []string // version 2.0 only, the string pool
	Padding            int      // unreferenced, empty pool entries at the end
}

// Versions of table 'post'.
const (
	PostVersion1  Fixed = 0x00010000
	PostVersion2  Fixed = 0x00020000
	PostVersion25 Fixed = 0x00028000
	PostVersion3  Fixed = 0x00030000
	PostVersion4  Fixed = 0x00040000
)

const (
	postHeaderSize = 32
	numMacNames    = len(MacGlyphNames)
)

// ParsePost decodes table 'post'.
func ParsePost(tag Tag, b []byte) (Table, error) {
	if len(b) < postHeaderSize {
		return nil, errTooShort(tag, len(b), postHeaderSize)
	}
	t := &PostTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Version = r.Fixed()
	t.ItalicAngle = r.Fixed()
	t.UnderlinePosition = r.I16()
	t.UnderlineThickness = r.I16()
	t.IsFixedPitch = r.U32()
	t.MinMemType42 = r.U32()
	t.MaxMemType42 = r.U32()
	t.MinMemType1 = r.U32()
	t.MaxMemType1 = r.U32()
	if r.err != nil {
		return nil, r.err
	}
	switch t.Version {
	case PostVersion1, PostVersion25, PostVersion3, PostVersion4:
		return t, nil
	case PostVersion2:
		if err := t.parseGlyphNames(r); err != nil {
			return nil, err
		}
		return t, nil
	}
	t.warn("unknown version 0x%08x, header only", uint32(t.Version))
	return t, nil
}

func (t *PostTable) parseGlyphNames(r *fieldReader) error {
	t.NumGlyphs = r.U16()
	end, err := arraySize(r.pos, int(t.NumGlyphs), 2)
	if r.err != nil || err != nil || end > r.seg.Size() {
		return fmt.Errorf("%w: glyph name index of %d glyphs exceeds table size %d",
			ErrTableTooShort, t.NumGlyphs, r.seg.Size())
	}
	t.GlyphNameIndex = make([]uint16, t.NumGlyphs)
	maxIndex := -1
	for i := range t.GlyphNameIndex {
		inx := r.U16()
		t.GlyphNameIndex[i] = inx
		if int(inx) >= numMacNames {
			maxIndex = max(maxIndex, int(inx)-numMacNames)
		}
	}
	// The string pool fills the rest of the table. Each entry is a Pascal string.
	pos, size := r.pos, r.seg.Size()
	for pos < size {
		n := int(r.seg[pos])
		if pos+1+n > size {
			t.warn("custom glyph name at offset %d exceeds table by %d bytes", pos, pos+1+n-size)
			break
		}
		t.CustomNames = append(t.CustomNames, string(r.seg[pos+1:pos+1+n]))
		pos += 1 + n
	}
	if maxIndex >= len(t.CustomNames) {
		t.warn("glyph name index refers to custom name %d, pool has %d names",
			maxIndex, len(t.CustomNames))
	}
	// Unreferenced empty strings after the last referenced name are padding.
	for i := len(t.CustomNames) - 1; i > maxIndex && t.CustomNames[i] == ""; i-- {
		t.Padding++
	}
	if used := maxIndex + 1 + t.Padding; used < len(t.CustomNames) {
		t.warn("%d custom glyph names are not referenced", len(t.CustomNames)-used)
	}
	t.CustomNames = t.CustomNames[:len(t.CustomNames)-t.Padding]
	return nil
}

// GlyphName returns the PostScript name of a glyph. For version 1.0 tables this
// is the standard Macintosh name of the glyph. It returns false if the table
// does not provide a name for gid.
func (t *PostTable) GlyphName(gid GlyphIndex) (string, bool) {
	switch t.Version {
	case PostVersion1:
		if int(gid) < numMacNames {
			return MacGlyphNames[gid], true
		}
	case PostVersion2:
		if int(gid) >= len(t.GlyphNameIndex) {
			return "", false
		}
		inx := int(t.GlyphNameIndex[gid])
		if inx < numMacNames {
			return MacGlyphNames[inx], true
		}
		if inx -= numMacNames; inx < len(t.CustomNames) {
			return t.CustomNames[inx], true
		}
	}
	return "", false
}
