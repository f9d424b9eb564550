package ot

import (
	"fmt"
	"strconv"
)

// Font is the table directory of an OpenType or TrueType font, together with the
// font's binary data. It is constructed once by Parse and is read-only afterwards.
//
// Please note that the tables are not decoded by Parse. Table records are kept in
// the order they appear in the font's directory, which is not necessarily sorted
// by tag.
type Font struct {
	Binary   []byte        // raw font data; must not be changed by clients
	Header   FontHeader    // the offset table
	Tables   []TableRecord // table records in directory order
	warnings []FontWarning // warnings accumulated during parsing
}

// FontHeader is the offset table at the start of a single-font file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the ScalerType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	ScalerType    uint32
	TableCount    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// Scaler types of sfnt containers.
const (
	ScalerTrueType      uint32 = 0x00010000
	ScalerAppleTrueType uint32 = 0x74727565 // 'true'
	ScalerCFF           uint32 = 0x4f54544f // 'OTTO'
	ScalerType1         uint32 = 0x74797031 // 'typ1'
	scalerCollection    uint32 = 0x74746366 // 'ttcf'
)

// Flavour returns a human readable name for the scaler type of a font.
func (h FontHeader) Flavour() string {
	switch h.ScalerType {
	case ScalerTrueType:
		return "TrueType"
	case ScalerAppleTrueType:
		return "TrueType (Apple)"
	case ScalerCFF:
		return "OpenType (CFF)"
	case ScalerType1:
		return "PostScript Type 1"
	}
	return "unknown"
}

// TableRecord is an entry of a font's table directory.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// End returns the offset of the first byte after the table.
func (r TableRecord) End() uint64 {
	return uint64(r.Offset) + uint64(r.Length)
}

// Table returns the first table record for a given tag.
func (otf *Font) Table(tag Tag) (TableRecord, bool) {
	for _, rec := range otf.Tables {
		if rec.Tag == tag {
			return rec, true
		}
	}
	return TableRecord{}, false
}

// TableTags returns a list of tags, one for each table record, in directory order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.Tables))
	for _, rec := range otf.Tables {
		tags = append(tags, rec.Tag)
	}
	return tags
}

// TableData returns the bytes of a table as a view into the font's data.
// If the record points outside of the font data, an error wrapping ErrTableBounds
// is returned.
func (otf *Font) TableData(rec TableRecord) ([]byte, error) {
	if rec.End() > uint64(len(otf.Binary)) {
		return nil, fmt.Errorf("%w: '%s' at [%d:%d], font size is %d", ErrTableBounds,
			rec.Tag.Printable(), rec.Offset, rec.End(), len(otf.Binary))
	}
	return otf.Binary[rec.Offset:rec.End():rec.End()], nil
}

// Warnings returns all warnings encountered while parsing the table directory.
func (otf *Font) Warnings() []FontWarning {
	if otf.warnings == nil {
		return []FontWarning{}
	}
	return otf.warnings
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline.
//
// Tags are compared byte by byte, i.e. case-sensitive and including trailing spaces.
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

// Bytes returns the four bytes of a tag.
func (t Tag) Bytes() [4]byte {
	return [4]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
}

func (t Tag) String() string {
	b := t.Bytes()
	return string(b[:])
}

// Printable returns the tag as a string if all of its bytes are printable ASCII,
// and as a quoted Go string with escapes otherwise.
func (t Tag) Printable() string {
	for _, c := range t.Bytes() {
		if c < 0x20 || c > 0x7e {
			s := strconv.QuoteToASCII(t.String())
			return s[1 : len(s)-1]
		}
	}
	return t.String()
}

// --- Table -----------------------------------------------------------------

// Table is a decoded font table. Decoders of this package return one of
// the concrete table types; clients may get at them with a type switch or with
// the conversion methods of TableSelf:
//
//	os2 := table.Self().AsOS2()
//
// Required Tables, according to the OpenType specification:
// 'cmap' (Character to glyph mapping), 'head' (Font header), 'hhea' (Horizontal header),
// 'hmtx' (Horizontal metrics), 'maxp' (Maximum profile), 'name' (Naming table),
// 'OS/2' (OS/2 and Windows specific metrics), 'post' (PostScript information).
type Table interface {
	Size() int               // byte size of the table's data
	Self() TableSelf         // reference to itself
	Warnings() []FontWarning // non-fatal issues found while decoding
}

// tableBase is a common parent for all kinds of OpenType tables.
type tableBase struct {
	name     Tag // 4-byte name as an integer
	length   int // byte size of the table data
	warnings []FontWarning
	self     any
}

func (tb *tableBase) Size() int {
	return tb.length
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

func (tb *tableBase) Warnings() []FontWarning {
	return tb.warnings
}

func (tb *tableBase) warn(format string, args ...any) {
	issue := fmt.Sprintf(format, args...)
	tracer().Debugf("table '%s': %s", tb.name.Printable(), issue)
	tb.warnings = append(tb.warnings, FontWarning{Table: tb.name, Issue: issue})
}

func (tb *tableBase) init(tag Tag, b binarySegm, self any) {
	tb.name = tag
	tb.length = len(b)
	tb.self = self
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	if tself.tableBase == nil {
		return 0
	}
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsCMap returns this table as a cmap table, or nil.
func (tself TableSelf) AsCMap() *CMapTable {
	if k, ok := safeSelf(tself).(*CMapTable); ok {
		return k
	}
	return nil
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsHHea returns this table as a hhea or vhea table, or nil.
func (tself TableSelf) AsHHea() *HHeaTable {
	if k, ok := safeSelf(tself).(*HHeaTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable {
	if k, ok := safeSelf(tself).(*NameTable); ok {
		return k
	}
	return nil
}

// AsOS2 returns this table as an OS/2 table, or nil.
func (tself TableSelf) AsOS2() *OS2Table {
	if k, ok := safeSelf(tself).(*OS2Table); ok {
		return k
	}
	return nil
}

// AsPost returns this table as a post table, or nil.
func (tself TableSelf) AsPost() *PostTable {
	if k, ok := safeSelf(tself).(*PostTable); ok {
		return k
	}
	return nil
}

// AsCvt returns this table as a cvt table, or nil.
func (tself TableSelf) AsCvt() *CvtTable {
	if k, ok := safeSelf(tself).(*CvtTable); ok {
		return k
	}
	return nil
}

// AsProgram returns this table as a prep or fpgm table, or nil.
func (tself TableSelf) AsProgram() *ProgramTable {
	if k, ok := safeSelf(tself).(*ProgramTable); ok {
		return k
	}
	return nil
}

// AsGasp returns this table as a gasp table, or nil.
func (tself TableSelf) AsGasp() *GaspTable {
	if k, ok := safeSelf(tself).(*GaspTable); ok {
		return k
	}
	return nil
}

// AsLtag returns this table as an ltag table, or nil.
func (tself TableSelf) AsLtag() *LtagTable {
	if k, ok := safeSelf(tself).(*LtagTable); ok {
		return k
	}
	return nil
}

// AsLayout returns this table as a GSUB or GPOS table, or nil.
func (tself TableSelf) AsLayout() *LayoutTable {
	if k, ok := safeSelf(tself).(*LayoutTable); ok {
		return k
	}
	return nil
}

func (tself TableSelf) AsGDef() *GDefTable {
	if k, ok := safeSelf(tself).(*GDefTable); ok {
		return k
	}
	return nil
}

// AsGeneric returns this table as a generic (not interpreted) table, or nil.
func (tself TableSelf) AsGeneric() *GenericTable {
	if k, ok := safeSelf(tself).(*GenericTable); ok {
		return k
	}
	return nil
}

// GenericTable is a table which is known but whose fields are not interpreted.
type GenericTable struct {
	tableBase
}

// NewGenericTable wraps the bytes of a table for which there is no field decoder.
func NewGenericTable(tag Tag, b []byte) *GenericTable {
	t := &GenericTable{}
	t.init(tag, b, t)
	return t
}
