package ot

import (
	"fmt"
	"sort"
)

// --- CMap table ------------------------------------------------------------

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
//
// All subtables referenced by the encoding records are decoded. Records sharing
// an offset share their subtable. A subtable which cannot be decoded is reported
// with its record and does not invalidate the rest of the table.
type CMapTable struct {
	tableBase
	Version   uint16
	NumTables uint16
	Records   []CMapEncodingRecord
}

// CMapEncodingRecord links a platform and encoding to a mapping subtable.
type CMapEncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32 // from the start of the cmap table
	Subtable   CMapSubtable
	Err        error // set if Subtable could not be decoded
}

// CMapSubtable is a character code to glyph index mapping of one of the formats
// 0, 2, 4, 6, 8, 10, 12, 13 or 14. Subtables of other formats are represented
// by CMapUnknown.
type CMapSubtable interface {
	Format() uint16
	// Lookup returns the glyph for a character code, if the code is mapped.
	Lookup(code uint32) (GlyphIndex, bool)
	// Mappings lists all mapped codes, in ascending order, as ranges of
	// codes mapped to consecutive glyphs.
	Mappings() []CMapMapping
}

// CMapMapping maps the codes First…Last to the glyphs Glyph…Glyph+(Last-First),
// or, if Same is set, all of them to Glyph.
type CMapMapping struct {
	First, Last uint32
	Glyph       GlyphIndex
	Same        bool
}

// IsSingle is true for a mapping of just one code.
func (m CMapMapping) IsSingle() bool {
	return m.First == m.Last
}

const (
	cmapHeaderSize = 4
	cmapRecordSize = 8
)

// ParseCMap decodes table 'cmap'.
func ParseCMap(tag Tag, b []byte) (Table, error) {
	if len(b) < cmapHeaderSize {
		return nil, errTooShort(tag, len(b), cmapHeaderSize)
	}
	t := &CMapTable{}
	t.init(tag, b, t)
	seg := binarySegm(b)
	r := newFieldReader(seg, 0)
	t.Version = r.U16()
	t.NumTables = r.U16()
	end, err := arraySize(cmapHeaderSize, int(t.NumTables), cmapRecordSize)
	if err != nil || end > len(b) {
		return nil, fmt.Errorf("%w: %d encoding records need %d bytes, table has %d",
			ErrTableTooShort, t.NumTables, end, len(b))
	}
	if t.Version != 0 {
		t.warn("unknown version %d", t.Version)
	}
	decoded := make(map[uint32]CMapEncodingRecord)
	t.Records = make([]CMapEncodingRecord, 0, t.NumTables)
	for i := 0; i < int(t.NumTables); i++ {
		rec := CMapEncodingRecord{
			PlatformID: r.U16(),
			EncodingID: r.U16(),
			Offset:     r.U32(),
		}
		if prev, ok := decoded[rec.Offset]; ok {
			rec.Subtable, rec.Err = prev.Subtable, prev.Err
		} else {
			rec.Subtable, rec.Err = t.parseSubtable(seg, rec.Offset)
			decoded[rec.Offset] = rec
			if rec.Err != nil {
				t.warn("subtable (%d,%d) at offset %d: %v", rec.PlatformID, rec.EncodingID,
					rec.Offset, rec.Err)
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, r.err
}

func (t *CMapTable) parseSubtable(b binarySegm, offset uint32) (CMapSubtable, error) {
	if uint64(offset) >= uint64(b.Size()) {
		return nil, boundsError(int(offset), 2, b.Size())
	}
	sub := b[offset:]
	format, err := sub.u16(0)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("cmap subtable at offset %d has format %d", offset, format)
	switch format {
	case 0:
		return parseCMapFormat0(t.clamp(sub, 2, false))
	case 2:
		return parseCMapFormat2(t.clamp(sub, 2, false))
	case 4:
		return parseCMapFormat4(t.clamp(sub, 2, false))
	case 6:
		return parseCMapFormat6(t.clamp(sub, 2, false))
	case 8:
		return parseCMapFormat8(t.clamp(sub, 4, true))
	case 10:
		return parseCMapFormat10(t.clamp(sub, 4, true))
	case 12, 13:
		return parseCMapGroups(t.clamp(sub, 4, true), format)
	case 14:
		return parseCMapFormat14(t.clamp(sub, 2, true))
	}
	t.warn("subtable at offset %d has unknown format %d", offset, format)
	return CMapUnknown{Fmt: format}, nil
}

// clamp restricts a subtable to its declared length, read at position at as a
// 16-bit or 32-bit value. A length exceeding the cmap table is cut to the bytes
// available.
func (t *CMapTable) clamp(sub binarySegm, at int, long bool) binarySegm {
	var length uint32
	if long {
		n, err := sub.u32(at)
		if err != nil {
			return sub
		}
		length = n
	} else {
		n, err := sub.u16(at)
		if err != nil {
			return sub
		}
		length = uint32(n)
	}
	if uint64(length) > uint64(sub.Size()) {
		tracer().Debugf("cmap subtable length %d exceeds table, clamped to %d", length, sub.Size())
		return sub
	}
	return sub[:length]
}

// Lookup returns the glyph for a Unicode code-point from the preferred Unicode
// subtable of the cmap table. Full-repertoire subtables are preferred over
// BMP-only subtables.
func (t *CMapTable) Lookup(r rune) (GlyphIndex, bool) {
	sub := t.UnicodeSubtable()
	if sub == nil {
		return 0, false
	}
	return sub.Lookup(uint32(r))
}

// UnicodeSubtable returns the decoded subtable best suited for mapping Unicode
// code-points, or nil. The order of preference is
//
//	3 (Win)      10   12  Unicode full
//	0 (Unicode)  4    12  Unicode full
//	3 (Win)      1    4   Unicode BMP
//	0 (Unicode)  3    4   Unicode BMP
//
// followed by any other Unicode-platform subtable.
func (t *CMapTable) UnicodeSubtable() CMapSubtable {
	prefs := [][3]uint16{{3, 10, 12}, {0, 4, 12}, {3, 1, 4}, {0, 3, 4}}
	for _, p := range prefs {
		for _, rec := range t.Records {
			if rec.Subtable != nil && rec.PlatformID == p[0] && rec.EncodingID == p[1] &&
				rec.Subtable.Format() == p[2] {
				return rec.Subtable
			}
		}
	}
	for _, rec := range t.Records {
		if rec.Subtable != nil && rec.PlatformID == PlatformUnicode && rec.Subtable.Format() != 14 {
			return rec.Subtable
		}
	}
	return nil
}

// --- Format 0 --------------------------------------------------------------

// CMapFormat0 is the Apple standard byte encoding table, mapping codes 0…255
// directly to glyphs.
type CMapFormat0 struct {
	Length   uint16
	Language uint16
	GlyphIDs [256]uint8
}

func parseCMapFormat0(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 2)
	f := CMapFormat0{Length: r.U16(), Language: r.U16()}
	copy(f.GlyphIDs[:], r.Bytes(256))
	return f, r.err
}

func (f CMapFormat0) Format() uint16 { return 0 }

func (f CMapFormat0) Lookup(code uint32) (GlyphIndex, bool) {
	if code > 255 || f.GlyphIDs[code] == 0 {
		return 0, false
	}
	return GlyphIndex(f.GlyphIDs[code]), true
}

func (f CMapFormat0) Mappings() []CMapMapping {
	return mappingsOf(f, 0, 255)
}

// --- Format 2 --------------------------------------------------------------

// CMapFormat2 is the high-byte mapping through table, used for mixed 8/16-bit
// encodings of CJK fonts.
type CMapFormat2 struct {
	Length        uint16
	Language      uint16
	SubHeaderKeys [256]uint16 // subheader index × 8
	SubHeaders    []CMapSubHeader
	data          binarySegm
}

// CMapSubHeader describes the mapping of the low bytes for a high byte.
type CMapSubHeader struct {
	FirstCode     uint16
	EntryCount    uint16
	IDDelta       int16
	IDRangeOffset uint16
	pos           int // position of IDRangeOffset within the subtable
}

const cmapFormat2Header = 6 + 512

func parseCMapFormat2(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 2)
	f := CMapFormat2{Length: r.U16(), Language: r.U16(), data: b}
	maxKey := uint16(0)
	for i := range f.SubHeaderKeys {
		f.SubHeaderKeys[i] = r.U16()
		maxKey = max(maxKey, f.SubHeaderKeys[i]/8)
	}
	if r.err != nil {
		return nil, r.err
	}
	end, err := arraySize(cmapFormat2Header, int(maxKey)+1, 8)
	if err != nil || end > b.Size() {
		return nil, fmt.Errorf("%w: format 2 needs %d subheaders", ErrOutOfBounds, maxKey+1)
	}
	f.SubHeaders = make([]CMapSubHeader, maxKey+1)
	for i := range f.SubHeaders {
		f.SubHeaders[i] = CMapSubHeader{
			FirstCode:  r.U16(),
			EntryCount: r.U16(),
			IDDelta:    r.I16(),
			pos:        r.pos,
		}
		f.SubHeaders[i].IDRangeOffset = r.U16()
	}
	return f, r.err
}

func (f CMapFormat2) Format() uint16 { return 2 }

// Lookup maps a single-byte code (high byte with subheader 0) or a two-byte code.
func (f CMapFormat2) Lookup(code uint32) (GlyphIndex, bool) {
	if code > 0xffff {
		return 0, false
	}
	hi, lo := code>>8, code&0xff
	var sh CMapSubHeader
	if hi == 0 {
		if f.SubHeaderKeys[lo] != 0 {
			return 0, false // first byte of a two-byte code
		}
		sh = f.SubHeaders[0]
	} else {
		k := f.SubHeaderKeys[hi] / 8
		if k == 0 {
			return 0, false
		}
		sh = f.SubHeaders[k]
	}
	if lo < uint32(sh.FirstCode) || lo >= uint32(sh.FirstCode)+uint32(sh.EntryCount) {
		return 0, false
	}
	g, err := f.data.u16(sh.pos + int(sh.IDRangeOffset) + int(lo-uint32(sh.FirstCode))*2)
	if err != nil || g == 0 {
		return 0, false
	}
	return GlyphIndex(g + uint16(sh.IDDelta)), true
}

func (f CMapFormat2) Mappings() []CMapMapping {
	return mappingsOf(f, 0, 0xffff)
}

// --- Format 4 --------------------------------------------------------------

// CMapFormat4 is the segment mapping to delta values. This is the standard
// character-to-glyph-index mapping subtable for fonts that support only Unicode
// Basic Multilingual Plane characters (U+0000 to U+FFFF).
type CMapFormat4 struct {
	Length        uint16
	Language      uint16
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	Segments      []CMapSegment
	data          binarySegm
}

// CMapSegment is a contiguous range of codes of a format 4 subtable.
type CMapSegment struct {
	Start, End    uint16
	IDDelta       int16
	IDRangeOffset uint16
	pos           int // position of IDRangeOffset within the subtable
}

// Format 4 holds four parallel arrays to describe the segments, following a
// 14-byte header:
//
//	endCode[segCount]
//	reservedPad
//	startCode[segCount]
//	idDelta[segCount]
//	idRangeOffset[segCount]
//	glyphIdArray[ ]
func parseCMapFormat4(b binarySegm) (CMapSubtable, error) {
	const headerSize = 14
	r := newFieldReader(b, 2)
	f := CMapFormat4{
		Length:        r.U16(),
		Language:      r.U16(),
		SegCountX2:    r.U16(),
		SearchRange:   r.U16(),
		EntrySelector: r.U16(),
		RangeShift:    r.U16(),
		data:          b,
	}
	if r.err != nil {
		return nil, r.err
	}
	if f.SegCountX2&1 != 0 {
		return nil, errFontFormat(fmt.Sprintf("cmap format 4 has odd segCountX2 %d", f.SegCountX2))
	}
	n := int(f.SegCountX2)
	segCount := n / 2
	if end := headerSize + 4*n + 2; end > b.Size() {
		return nil, fmt.Errorf("%w: %d segments need %d bytes, subtable has %d",
			ErrOutOfBounds, segCount, end, b.Size())
	}
	endCodes := headerSize
	startCodes := endCodes + n + 2 // skip reservedPad
	deltas := startCodes + n
	offsets := deltas + n
	f.Segments = make([]CMapSegment, segCount)
	for i := range f.Segments {
		f.Segments[i] = CMapSegment{
			End:           u16(b[endCodes+2*i:]),
			Start:         u16(b[startCodes+2*i:]),
			IDDelta:       int16(u16(b[deltas+2*i:])),
			IDRangeOffset: u16(b[offsets+2*i:]),
			pos:           offsets + 2*i,
		}
		if f.Segments[i].Start > f.Segments[i].End {
			tracer().Debugf("cmap format 4 segment %d has start %d > end %d", i,
				f.Segments[i].Start, f.Segments[i].End)
		}
	}
	return f, nil
}

func (f CMapFormat4) Format() uint16 { return 4 }

func (f CMapFormat4) Lookup(code uint32) (GlyphIndex, bool) {
	if code > 0xffff { // format 4 is for BMP code-points only
		return 0, false
	}
	c := uint16(code)
	// segments are sorted by end code
	h := sort.Search(len(f.Segments), func(i int) bool { return f.Segments[i].End >= c })
	if h == len(f.Segments) || f.Segments[h].Start > c {
		return 0, false
	}
	g := f.Segments[h].glyph(f.data, c)
	return g, g != 0
}

// glyph maps a code within the segment. An idRangeOffset of 0 maps a code
// directly by adding idDelta. Otherwise the glyph is read from the location
//
//	&idRangeOffset[i] + idRangeOffset[i] + 2 × (c − startCode[i])
//
// and idDelta is added to it unless it is 0.
func (s CMapSegment) glyph(data binarySegm, c uint16) GlyphIndex {
	if s.IDRangeOffset == 0 {
		return GlyphIndex(c + uint16(s.IDDelta))
	}
	g, err := data.u16(s.pos + int(s.IDRangeOffset) + 2*int(c-s.Start))
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + uint16(s.IDDelta))
}

// Mappings of direct segments are computed from the segment bounds, with a split
// where the glyph index wraps around. Segments mapping through the glyph ID
// array are resolved code by code.
func (f CMapFormat4) Mappings() []CMapMapping {
	var m []CMapMapping
	for _, s := range f.Segments {
		if s.Start > s.End {
			continue
		}
		if s.IDRangeOffset != 0 {
			m = appendMappings(m, f, uint32(s.Start), uint32(s.End))
			continue
		}
		first := uint32(s.Start)
		for {
			g := uint32(uint16(first) + uint16(s.IDDelta))
			last := min(uint32(s.End), first+(0xffff-g)) // glyph index wraps after last
			if g == 0 {
				last = first // mapped to .notdef
			} else {
				m = append(m, CMapMapping{First: first, Last: last, Glyph: GlyphIndex(g)})
			}
			if last >= uint32(s.End) {
				break
			}
			first = last + 1
		}
	}
	return normalize(m)
}

// --- Format 6 --------------------------------------------------------------

// CMapFormat6 is the trimmed table mapping: a dense array of glyphs for the codes
// FirstCode…FirstCode+EntryCount-1.
type CMapFormat6 struct {
	Length    uint16
	Language  uint16
	FirstCode uint16
	GlyphIDs  []uint16
}

func parseCMapFormat6(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 2)
	f := CMapFormat6{Length: r.U16(), Language: r.U16(), FirstCode: r.U16()}
	count := r.U16()
	if r.err != nil {
		return nil, r.err
	}
	if end := r.pos + 2*int(count); end > b.Size() {
		return nil, fmt.Errorf("%w: %d entries need %d bytes, subtable has %d",
			ErrOutOfBounds, count, end, b.Size())
	}
	f.GlyphIDs = make([]uint16, count)
	for i := range f.GlyphIDs {
		f.GlyphIDs[i] = r.U16()
	}
	return f, r.err
}

func (f CMapFormat6) Format() uint16 { return 6 }

func (f CMapFormat6) Lookup(code uint32) (GlyphIndex, bool) {
	if code < uint32(f.FirstCode) || code-uint32(f.FirstCode) >= uint32(len(f.GlyphIDs)) {
		return 0, false
	}
	g := f.GlyphIDs[code-uint32(f.FirstCode)]
	return GlyphIndex(g), g != 0
}

func (f CMapFormat6) Mappings() []CMapMapping {
	if len(f.GlyphIDs) == 0 {
		return nil
	}
	return mappingsOf(f, uint32(f.FirstCode), uint32(f.FirstCode)+uint32(len(f.GlyphIDs))-1)
}

// --- Format 8 --------------------------------------------------------------

// CMapFormat8 is the mixed 16-bit and 32-bit coverage format. Its groups are
// interpreted like the groups of format 12.
type CMapFormat8 struct {
	Length   uint32
	Language uint32
	Is32     [8192]uint8
	Groups   []CMapGroup
}

func parseCMapFormat8(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 4)
	f := CMapFormat8{Length: r.U32(), Language: r.U32()}
	copy(f.Is32[:], r.Bytes(8192))
	groups, err := parseGroups(r)
	if err != nil {
		return nil, err
	}
	f.Groups = groups
	return f, nil
}

func (f CMapFormat8) Format() uint16 { return 8 }

func (f CMapFormat8) Lookup(code uint32) (GlyphIndex, bool) {
	return lookupGroups(f.Groups, code, false)
}

func (f CMapFormat8) Mappings() []CMapMapping {
	return groupMappings(f.Groups, false)
}

// --- Format 10 -------------------------------------------------------------

// CMapFormat10 is the trimmed array format for 32-bit codes.
type CMapFormat10 struct {
	Length    uint32
	Language  uint32
	StartCode uint32
	GlyphIDs  []uint16
}

func parseCMapFormat10(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 4)
	f := CMapFormat10{Length: r.U32(), Language: r.U32(), StartCode: r.U32()}
	count := r.U32()
	if r.err != nil {
		return nil, r.err
	}
	if end, err := arraySize(r.pos, int(count), 2); err != nil || end > b.Size() {
		return nil, fmt.Errorf("%w: %d entries exceed subtable of %d bytes",
			ErrOutOfBounds, count, b.Size())
	}
	f.GlyphIDs = make([]uint16, count)
	for i := range f.GlyphIDs {
		f.GlyphIDs[i] = r.U16()
	}
	return f, r.err
}

func (f CMapFormat10) Format() uint16 { return 10 }

func (f CMapFormat10) Lookup(code uint32) (GlyphIndex, bool) {
	if code < f.StartCode || uint64(code-f.StartCode) >= uint64(len(f.GlyphIDs)) {
		return 0, false
	}
	g := f.GlyphIDs[code-f.StartCode]
	return GlyphIndex(g), g != 0
}

func (f CMapFormat10) Mappings() []CMapMapping {
	if len(f.GlyphIDs) == 0 {
		return nil
	}
	return mappingsOf(f, f.StartCode, f.StartCode+uint32(len(f.GlyphIDs))-1)
}

// --- Formats 12 and 13 -----------------------------------------------------

// CMapGroups is a subtable of format 12 (segmented coverage) or format 13
// (many-to-one range mappings).
//
// Each sequential map group record of format 12 specifies a character range and
// the starting glyph ID mapped from the first character. Glyph IDs for subsequent
// characters follow in sequence. Format 13 maps all characters of a group to the
// same glyph, e.g. for last-resort fonts.
type CMapGroups struct {
	Fmt      uint16
	Length   uint32
	Language uint32
	Groups   []CMapGroup
}

// CMapGroup is a sequential (format 8/12) or constant (format 13) map group.
type CMapGroup struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

func parseCMapGroups(b binarySegm, format uint16) (CMapSubtable, error) {
	r := newFieldReader(b, 4)
	f := CMapGroups{Fmt: format, Length: r.U32(), Language: r.U32()}
	groups, err := parseGroups(r)
	if err != nil {
		return nil, err
	}
	f.Groups = groups
	return f, nil
}

func parseGroups(r *fieldReader) ([]CMapGroup, error) {
	count := r.U32()
	if r.err != nil {
		return nil, r.err
	}
	if end, err := arraySize(r.pos, int(count), 12); err != nil || end > r.seg.Size() {
		return nil, fmt.Errorf("%w: %d groups exceed subtable of %d bytes",
			ErrOutOfBounds, count, r.seg.Size())
	}
	groups := make([]CMapGroup, count)
	for i := range groups {
		groups[i] = CMapGroup{
			StartCharCode: r.U32(),
			EndCharCode:   r.U32(),
			StartGlyphID:  r.U32(),
		}
	}
	return groups, r.err
}

func (f CMapGroups) Format() uint16 { return f.Fmt }

func (f CMapGroups) Lookup(code uint32) (GlyphIndex, bool) {
	return lookupGroups(f.Groups, code, f.Fmt == 13)
}

func (f CMapGroups) Mappings() []CMapMapping {
	return groupMappings(f.Groups, f.Fmt == 13)
}

func lookupGroups(groups []CMapGroup, c uint32, constant bool) (GlyphIndex, bool) {
	h := sort.Search(len(groups), func(i int) bool { return groups[i].EndCharCode >= c })
	if h == len(groups) || groups[h].StartCharCode > c {
		return 0, false
	}
	g := groups[h].StartGlyphID
	if !constant {
		g += c - groups[h].StartCharCode
	}
	return GlyphIndex(g), g != 0
}

func groupMappings(groups []CMapGroup, constant bool) []CMapMapping {
	m := make([]CMapMapping, 0, len(groups))
	for _, g := range groups {
		if g.StartCharCode > g.EndCharCode {
			continue
		}
		m = append(m, CMapMapping{First: g.StartCharCode, Last: g.EndCharCode,
			Glyph: GlyphIndex(g.StartGlyphID), Same: constant && g.StartCharCode != g.EndCharCode})
	}
	return m
}

// --- Format 14 -------------------------------------------------------------

// CMapFormat14 holds Unicode variation sequences. Its variation selector
// records are not interpreted.
type CMapFormat14 struct {
	Length                uint32
	NumVarSelectorRecords uint32
}

func parseCMapFormat14(b binarySegm) (CMapSubtable, error) {
	r := newFieldReader(b, 2)
	f := CMapFormat14{Length: r.U32(), NumVarSelectorRecords: r.U32()}
	return f, r.err
}

func (f CMapFormat14) Format() uint16 { return 14 }

func (f CMapFormat14) Lookup(uint32) (GlyphIndex, bool) { return 0, false }

func (f CMapFormat14) Mappings() []CMapMapping { return nil }

// --- Unknown formats -------------------------------------------------------

// CMapUnknown is a subtable of an unrecognized format. It maps nothing.
type CMapUnknown struct {
	Fmt uint16
}

func (f CMapUnknown) Format() uint16 { return f.Fmt }

func (f CMapUnknown) Lookup(uint32) (GlyphIndex, bool) { return 0, false }

func (f CMapUnknown) Mappings() []CMapMapping { return nil }

// --- Mapping helpers -------------------------------------------------------

// mappingsOf collects the mappings of codes first…last by lookup.
func mappingsOf(sub CMapSubtable, first, last uint32) []CMapMapping {
	return normalize(appendMappings(nil, sub, first, last))
}

func appendMappings(m []CMapMapping, sub CMapSubtable, first, last uint32) []CMapMapping {
	for c := first; ; c++ {
		if g, ok := sub.Lookup(c); ok {
			m = append(m, CMapMapping{First: c, Last: c, Glyph: g})
		}
		if c == last {
			break
		}
	}
	return m
}

// normalize merges adjacent mappings of consecutive codes to consecutive glyphs.
func normalize(m []CMapMapping) []CMapMapping {
	if len(m) == 0 {
		return m
	}
	out := m[:1]
	for _, next := range m[1:] {
		prev := &out[len(out)-1]
		if !prev.Same && !next.Same && next.First == prev.Last+1 &&
			uint32(next.Glyph) == uint32(prev.Glyph)+(prev.Last-prev.First)+1 {
			prev.Last = next.Last
			continue
		}
		out = append(out, next)
	}
	return out
}
