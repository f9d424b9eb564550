package fonttest

// Head returns a valid 54-byte 'head' table.
func Head(unitsPerEm uint16) []byte {
	return Buf{}.
		U16(1, 0).       // version 1.0
		U32(0x00018000). // fontRevision 1.5
		U32(0).          // checkSumAdjustment
		U32(0x5F0F3CF5). // magicNumber
		U16(0x000b).     // flags
		U16(unitsPerEm). // unitsPerEm
		U64(3600).       // created, 1904-01-01 01:00
		U64(86400).      // modified, 1904-01-02
		I16(-50, -200).  // xMin, yMin
		I16(1000, 800).  // xMax, yMax
		U16(0x0003).     // macStyle bold|italic
		U16(8).          // lowestRecPPEM
		I16(2).          // fontDirectionHint
		I16(1).          // indexToLocFormat
		I16(0)           // glyphDataFormat
}

// HHea returns a 36-byte 'hhea' or 'vhea' table.
func HHea(ascender, descender int16, numMetrics uint16) []byte {
	return Buf{}.
		U32(0x00010000).
		I16(ascender, descender, 90).
		U16(1200).
		I16(-20, -30, 1100).
		I16(1, 0, 0).
		Zeros(8).
		I16(0).
		U16(numMetrics)
}

// MaxP returns a version 0.5 'maxp' table.
func MaxP(numGlyphs uint16) []byte {
	return Buf{}.U32(0x00005000).U16(numGlyphs)
}

// MaxP10 returns a version 1.0 'maxp' table with profile fields 1…13.
func MaxP10(numGlyphs uint16) []byte {
	b := Buf{}.U32(0x00010000).U16(numGlyphs)
	for i := uint16(1); i <= 13; i++ {
		b = b.U16(i)
	}
	return b
}

// OS2 returns an 'OS/2' table of the given version, truncated or zero-extended
// to length bytes. Field values are chosen to be recognizable: weight 700,
// width 5, fsSelection ITALIC|BOLD|USE_TYPO_METRICS, vendor 'TEST',
// sxHeight 500, sCapHeight 700, defaultChar 0, breakChar 32, maxContext 3.
func OS2(version uint16, length int) []byte {
	b := Buf{}.
		U16(version).
		I16(520).
		U16(700, 5, 0x0008).
		I16(650, 600, 0, 75, 650, 600, 0, 350, 50, 250).
		I16(0x0801).
		U8(2, 11, 6, 4, 2, 2, 2, 2, 2, 4).
		U32(0x00000001, 0, 0, 0).
		Tag("TEST").
		U16(0x00a1).
		U16(0x20, 0xfffd).
		// bytes 68…78
		I16(800, -200, 90).
		U16(1000, 250).
		// bytes 78…86
		U32(0x00000001, 0).
		// bytes 86…96
		I16(500, 700).
		U16(0, 32, 3).
		// bytes 96…100
		U16(200, 1440)
	if length <= len(b) {
		return b[:length]
	}
	return b.Zeros(length - len(b))
}

// Post1 returns a version 1.0 'post' table.
func Post1() []byte {
	return postHeader(0x00010000)
}

// Post2 returns a version 2.0 'post' table with a glyph name index and a pool
// of custom names.
func Post2(index []uint16, names ...string) []byte {
	return postHeader(0x00020000).U16(uint16(len(index))).U16(index...).Pascal(names...)
}

// PostVersion returns a 'post' table consisting of a header only.
func PostVersion(version uint32) []byte {
	return postHeader(version)
}

func postHeader(version uint32) Buf {
	return Buf{}.
		U32(version).
		U32(0xfff48000). // italicAngle -11.5
		I16(-100, 50).
		U32(1).
		U32(0, 0, 0, 0)
}

// NameRecord is an entry for Name.
type NameRecord struct {
	Platform, Encoding, Language, NameID uint16
	Data                                 []byte
}

// Name returns a format 0 'name' table, or a format 1 table if langTags are
// given. Language tags are stored as UTF-16BE.
func Name(records []NameRecord, langTags ...string) []byte {
	format := uint16(0)
	if len(langTags) > 0 {
		format = 1
	}
	headerSize := 6 + 12*len(records)
	if format == 1 {
		headerSize += 2 + 4*len(langTags)
	}
	b := Buf{}.U16(format, uint16(len(records)), uint16(headerSize))
	var storage Buf
	for _, r := range records {
		b = b.U16(r.Platform, r.Encoding, r.Language, r.NameID)
		b = b.U16(uint16(len(r.Data)), uint16(len(storage)))
		storage = append(storage, r.Data...)
	}
	if format == 1 {
		b = b.U16(uint16(len(langTags)))
		for _, t := range langTags {
			s := UTF16(t)
			b = b.U16(uint16(len(s)), uint16(len(storage)))
			storage = append(storage, s...)
		}
	}
	return append(b, storage...)
}

// UTF16 encodes a string of the BMP as UTF-16BE.
func UTF16(s string) []byte {
	var b Buf
	for _, r := range s {
		b = b.U16(uint16(r))
	}
	return b
}

// --- cmap ------------------------------------------------------------------

// Encoding is a cmap encoding record pointing to a subtable.
type Encoding struct {
	Platform, Encoding uint16
	Subtable           []byte
}

// CMap returns a 'cmap' table. Encodings with identical subtable data share
// one subtable.
func CMap(encodings ...Encoding) []byte {
	b := Buf{}.U16(0, uint16(len(encodings)))
	offset := 4 + 8*len(encodings)
	var subtables Buf
	seen := map[string]int{}
	for _, e := range encodings {
		at, ok := seen[string(e.Subtable)]
		if !ok {
			at = offset + len(subtables)
			seen[string(e.Subtable)] = at
			subtables = append(subtables, e.Subtable...)
		}
		b = b.U16(e.Platform, e.Encoding).U32(uint32(at))
	}
	return append(b, subtables...)
}

// CMap0 returns a format 0 subtable mapping codes to glyphs[code].
func CMap0(glyphs map[uint8]uint8) []byte {
	b := Buf{}.U16(0, 262, 0)
	arr := make([]byte, 256)
	for c, g := range glyphs {
		arr[c] = g
	}
	return append(b, arr...)
}

// Segment is a format 4 segment. If Glyphs is non-empty, the segment maps
// through the glyph ID array, otherwise by delta.
type Segment struct {
	Start, End uint16
	Delta      int16
	Glyphs     []uint16 // one per code Start…End
}

// CMap4 returns a format 4 subtable of the given segments; the terminal 0xFFFF
// segment is appended.
func CMap4(segments ...Segment) []byte {
	segments = append(segments, Segment{Start: 0xffff, End: 0xffff, Delta: 1})
	n := len(segments)
	var ends, starts, deltas, offsets, glyphs Buf
	for i, s := range segments {
		ends = ends.U16(s.End)
		starts = starts.U16(s.Start)
		deltas = deltas.I16(s.Delta)
		if len(s.Glyphs) == 0 {
			offsets = offsets.U16(0)
			continue
		}
		// distance from &idRangeOffset[i] to the glyph's slot in glyphIdArray
		offsets = offsets.U16(uint16(2*(n-i) + len(glyphs)))
		glyphs = glyphs.U16(s.Glyphs...)
	}
	length := 16 + 8*n + len(glyphs)
	b := Buf{}.U16(4, uint16(length), 0, uint16(2*n), 0, 0, 0)
	b = append(b, ends...).U16(0)
	b = append(b, starts...)
	b = append(b, deltas...)
	b = append(b, offsets...)
	return append(b, glyphs...)
}

// CMap6 returns a format 6 subtable.
func CMap6(first uint16, glyphs ...uint16) []byte {
	return Buf{}.U16(6, uint16(10+2*len(glyphs)), 0, first, uint16(len(glyphs))).U16(glyphs...)
}

// Group is a format 12 or 13 map group.
type Group struct {
	Start, End, Glyph uint32
}

// CMap12 returns a format 12 subtable, or a format 13 subtable for format 13.
func CMap12(format uint16, groups ...Group) []byte {
	b := Buf{}.U16(format, 0).U32(uint32(16+12*len(groups)), 0, uint32(len(groups)))
	for _, g := range groups {
		b = b.U32(g.Start, g.End, g.Glyph)
	}
	return b
}

// CMap14 returns a format 14 subtable without variation selector records.
func CMap14() []byte {
	return Buf{}.U16(14).U32(10, 0)
}
