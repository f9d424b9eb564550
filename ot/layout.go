package ot

/*
From https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2:

OpenType Layout consists of five tables: the Glyph Substitution table (GSUB),
the Glyph Positioning table (GPOS), the Baseline table (BASE),
the Justification table (JSTF), and the Glyph Definition table (GDEF).
These tables use some of the same data formats.
*/

import "fmt"

// --- Layout tables ---------------------------------------------------------

// LayoutTable is the structural outline of a GSUB or GPOS table: its header,
// the tags of its script and feature lists, and the headers of its lookups.
// Lookup subtables are not decoded.
type LayoutTable struct {
	tableBase
	Header   LayoutHeader
	Scripts  []ScriptRecord
	Features []FeatureRecord
	Lookups  []LookupRecord
}

// LayoutHeader is the header common to GSUB and GPOS. Offsets are from the
// beginning of the table.
type LayoutHeader struct {
	Major, Minor            uint16
	ScriptListOffset        uint16
	FeatureListOffset       uint16
	LookupListOffset        uint16
	FeatureVariationsOffset uint32 // version 1.1 only, may be NULL
}

// Version returns the header version as "major.minor".
func (h LayoutHeader) Version() string {
	return fmt.Sprintf("%d.%d", h.Major, h.Minor)
}

// ScriptRecord is an entry of the script list.
type ScriptRecord struct {
	Tag          Tag
	Offset       uint16
	HasDefault   bool // has a default LangSys
	LangSysCount uint16
}

// FeatureRecord is an entry of the feature list.
type FeatureRecord struct {
	Tag         Tag
	Offset      uint16
	LookupCount uint16
}

// LookupRecord is the header of a lookup of the lookup list.
type LookupRecord struct {
	Offset        uint16
	Type          LayoutTableLookupType
	Flag          LayoutTableLookupFlag
	SubTableCount uint16
}

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, the lookup table structure is followed by a MarkFilteringSet field.
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

var lookupFlagNames = []string{
	"RIGHT_TO_LEFT", "IGNORE_BASE_GLYPHS", "IGNORE_LIGATURES", "IGNORE_MARKS",
	"USE_MARK_FILTERING_SET",
}

// Names returns the names of the flags set, followed by the mark attachment
// type, if any.
func (f LayoutTableLookupFlag) Names() []string {
	names := bitNames(uint16(f), lookupFlagNames)
	if t := f & LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK; t != 0 {
		names = append(names, fmt.Sprintf("MARK_ATTACHMENT_TYPE=%d", t>>8))
	}
	return names
}

// LayoutTableLookupType is a type identifier for layout lookup records (GPOS and GSUB).
// Enum values are different for GPOS and GSUB.
type LayoutTableLookupType uint16

var gsubLookupTypeNames = []string{"", "Single", "Multiple", "Alternate", "Ligature",
	"Context", "Chaining Context", "Extension", "Reverse Chaining Single"}

var gposLookupTypeNames = []string{"", "Single", "Pair", "Cursive", "Mark-to-Base",
	"Mark-to-Ligature", "Mark-to-Mark", "Context", "Chaining Context", "Extension"}

// LookupTypeName returns the name of a lookup type of a GSUB or GPOS table.
func (t *LayoutTable) LookupTypeName(lt LayoutTableLookupType) string {
	names := gsubLookupTypeNames
	if t.name == T("GPOS") {
		names = gposLookupTypeNames
	}
	if int(lt) < len(names) && lt > 0 {
		return names[lt]
	}
	return fmt.Sprintf("type %d", lt)
}

const (
	layoutHeader10Size = 10
	layoutHeader11Size = 14
)

// ParseLayout decodes the outline of table 'GSUB' or 'GPOS'. A list which
// cannot be read is left empty, with a warning; only a truncated header is an
// error.
func ParseLayout(tag Tag, b []byte) (Table, error) {
	if len(b) < layoutHeader10Size {
		return nil, errTooShort(tag, len(b), layoutHeader10Size)
	}
	t := &LayoutTable{}
	t.init(tag, b, t)
	seg := binarySegm(b)
	r := newFieldReader(seg, 0)
	h := LayoutHeader{
		Major:             r.U16(),
		Minor:             r.U16(),
		ScriptListOffset:  r.U16(),
		FeatureListOffset: r.U16(),
		LookupListOffset:  r.U16(),
	}
	if h.Major != 1 || h.Minor > 1 {
		t.warn("unknown version %s", h.Version())
	}
	if h.Minor == 1 {
		if len(b) < layoutHeader11Size {
			return nil, errTooShort(tag, len(b), layoutHeader11Size)
		}
		h.FeatureVariationsOffset = r.U32()
	}
	t.Header = h
	var err error
	if t.Scripts, err = parseScriptList(seg, int(h.ScriptListOffset)); err != nil {
		t.warn("script list: %v", err)
	}
	if t.Features, err = parseFeatureList(seg, int(h.FeatureListOffset)); err != nil {
		t.warn("feature list: %v", err)
	}
	if t.Lookups, err = parseLookupList(seg, int(h.LookupListOffset)); err != nil {
		t.warn("lookup list: %v", err)
	}
	tracer().Debugf("layout table '%s' has %d scripts, %d features, %d lookups",
		tag.Printable(), len(t.Scripts), len(t.Features), len(t.Lookups))
	return t, r.err
}

// tagRecords reads a count followed by records of a tag and an offset, as is
// common to script and feature lists.
func tagRecords(b binarySegm, offset int) (binarySegm, []Tag, []uint16, error) {
	list, err := b.from(offset)
	if err != nil {
		return nil, nil, nil, err
	}
	r := newFieldReader(list, 0)
	count := int(r.U16())
	if end, err := arraySize(2, count, 6); err != nil || end > list.Size() {
		return nil, nil, nil, fmt.Errorf("%w: %d records exceed list", ErrOutOfBounds, count)
	}
	tags, offsets := make([]Tag, count), make([]uint16, count)
	for i := 0; i < count; i++ {
		tags[i], offsets[i] = r.Tag(), r.U16()
	}
	return list, tags, offsets, r.err
}

func parseScriptList(b binarySegm, offset int) ([]ScriptRecord, error) {
	if offset == 0 {
		return nil, nil
	}
	list, tags, offsets, err := tagRecords(b, offset)
	if err != nil {
		return nil, err
	}
	scripts := make([]ScriptRecord, len(tags))
	for i := range scripts {
		scripts[i] = ScriptRecord{Tag: tags[i], Offset: offsets[i]}
		def, err1 := list.u16(int(offsets[i]))
		n, err2 := list.u16(int(offsets[i]) + 2)
		if err1 != nil || err2 != nil {
			return scripts, fmt.Errorf("script '%s': %w", tags[i].Printable(), ErrOutOfBounds)
		}
		scripts[i].HasDefault, scripts[i].LangSysCount = def != 0, n
	}
	return scripts, nil
}

func parseFeatureList(b binarySegm, offset int) ([]FeatureRecord, error) {
	if offset == 0 {
		return nil, nil
	}
	list, tags, offsets, err := tagRecords(b, offset)
	if err != nil {
		return nil, err
	}
	features := make([]FeatureRecord, len(tags))
	for i := range features {
		features[i] = FeatureRecord{Tag: tags[i], Offset: offsets[i]}
		n, err := list.u16(int(offsets[i]) + 2) // skip featureParamsOffset
		if err != nil {
			return features, fmt.Errorf("feature '%s': %w", tags[i].Printable(), err)
		}
		features[i].LookupCount = n
	}
	return features, nil
}

func parseLookupList(b binarySegm, offset int) ([]LookupRecord, error) {
	if offset == 0 {
		return nil, nil
	}
	list, err := b.from(offset)
	if err != nil {
		return nil, err
	}
	r := newFieldReader(list, 0)
	count := int(r.U16())
	if end := 2 + 2*count; end > list.Size() {
		return nil, fmt.Errorf("%w: %d lookups exceed list", ErrOutOfBounds, count)
	}
	lookups := make([]LookupRecord, count)
	for i := range lookups {
		lookups[i].Offset = r.U16()
		lr := newFieldReader(list, int(lookups[i].Offset))
		lookups[i].Type = LayoutTableLookupType(lr.U16())
		lookups[i].Flag = LayoutTableLookupFlag(lr.U16())
		lookups[i].SubTableCount = lr.U16()
		if lr.err != nil {
			return lookups[:i], fmt.Errorf("lookup %d: %w", i, lr.err)
		}
	}
	return lookups, r.err
}

// --- GDEF table ------------------------------------------------------------

// GDefTable, the Glyph Definition (GDEF) table, provides various glyph properties
// used in OpenType Layout processing. Only its header is decoded.
//
// Three versions are defined: 1.0, 1.2 and 1.3.
type GDefTable struct {
	tableBase
	Major, Minor             uint16
	GlyphClassDefOffset      uint16
	AttachListOffset         uint16
	LigCaretListOffset       uint16
	MarkAttachClassDefOffset uint16
	MarkGlyphSetsDefOffset   uint16 // version 1.2 and later
	ItemVarStoreOffset       uint32 // version 1.3
}

// ParseGDef decodes the header of table 'GDEF'.
func ParseGDef(tag Tag, b []byte) (Table, error) {
	if len(b) < 12 {
		return nil, errTooShort(tag, len(b), 12)
	}
	t := &GDefTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Major, t.Minor = r.U16(), r.U16()
	t.GlyphClassDefOffset = r.U16()
	t.AttachListOffset = r.U16()
	t.LigCaretListOffset = r.U16()
	t.MarkAttachClassDefOffset = r.U16()
	if t.Minor >= 2 {
		t.MarkGlyphSetsDefOffset = r.U16()
	}
	if t.Minor >= 3 {
		t.ItemVarStoreOffset = r.U32()
	}
	if r.err != nil {
		return nil, r.err
	}
	if t.Major != 1 {
		t.warn("unknown version %d.%d", t.Major, t.Minor)
	}
	return t, nil
}
