package ot

import (
	"fmt"
	"time"
)

// --- Head table ------------------------------------------------------------

// HeadTable gives global information about the font.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/head
type HeadTable struct {
	tableBase
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       Fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16 // values 16 … 16384 are valid
	Created            int64  // seconds since 1904-01-01 00:00 UTC
	Modified           int64  // seconds since 1904-01-01 00:00 UTC
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16 // 0 for short offsets, 1 for long
	GlyphDataFormat    int16
}

const (
	headTableSize = 54
	headMagic     = 0x5F0F3CF5
)

// ParseHead decodes table 'head'.
func ParseHead(tag Tag, b []byte) (Table, error) {
	if len(b) < headTableSize {
		return nil, errTooShort(tag, len(b), headTableSize)
	}
	t := &HeadTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.MajorVersion = r.U16()
	t.MinorVersion = r.U16()
	t.FontRevision = r.Fixed()
	t.CheckSumAdjustment = r.U32()
	t.MagicNumber = r.U32()
	t.Flags = r.U16()
	t.UnitsPerEm = r.U16()
	t.Created = r.I64()
	t.Modified = r.I64()
	t.XMin, t.YMin = r.I16(), r.I16()
	t.XMax, t.YMax = r.I16(), r.I16()
	t.MacStyle = r.U16()
	t.LowestRecPPEM = r.U16()
	t.FontDirectionHint = r.I16()
	t.IndexToLocFormat = r.I16()
	t.GlyphDataFormat = r.I16()
	if r.err != nil {
		return nil, r.err
	}
	if t.MagicNumber != headMagic {
		t.warn("invalid magic number 0x%08x", t.MagicNumber)
	}
	if t.UnitsPerEm < 16 || t.UnitsPerEm > 16384 {
		t.warn("unitsPerEm %d out of range 16…16384", t.UnitsPerEm)
	}
	return t, nil
}

// macEpoch is the reference date of LONGDATETIME values.
var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// LongDateTime converts a LONGDATETIME value to a time.
func LongDateTime(secs int64) time.Time {
	return macEpoch.Add(time.Duration(secs) * time.Second)
}

// CreatedTime returns the creation date of the font.
func (t *HeadTable) CreatedTime() time.Time {
	return LongDateTime(t.Created)
}

// ModifiedTime returns the modification date of the font.
func (t *HeadTable) ModifiedTime() time.Time {
	return LongDateTime(t.Modified)
}

// Version returns the table version as "major.minor".
func (t *HeadTable) Version() string {
	return fmt.Sprintf("%d.%d", t.MajorVersion, t.MinorVersion)
}

var macStyleNames = []string{
	"bold", "italic", "underline", "outline", "shadow", "condensed", "extended",
}

// MacStyleNames returns the names of the bits set in field macStyle.
func (t *HeadTable) MacStyleNames() []string {
	return bitNames(t.MacStyle, macStyleNames)
}

func bitNames(flags uint16, names []string) []string {
	var set []string
	for i, name := range names {
		if flags&(1<<i) != 0 {
			set = append(set, name)
		}
	}
	return set
}

// --- HHea and VHea tables --------------------------------------------------

// HHeaTable contains information for horizontal layout ('hhea') or, with
// identical structure, for vertical layout ('vhea').
// For 'vhea', Ascender and Descender hold the vertical typo ascender and descender,
// NumberOfMetrics counts the entries of table 'vmtx'.
type HHeaTable struct {
	tableBase
	Version            Fixed
	Ascender           int16
	Descender          int16
	LineGap            int16
	AdvanceMax         uint16
	MinLeadingBearing  int16 // min left (hhea) or top (vhea) side bearing
	MinTrailingBearing int16 // min right (hhea) or bottom (vhea) side bearing
	MaxExtent          int16
	CaretSlopeRise     int16
	CaretSlopeRun      int16
	CaretOffset        int16
	MetricDataFormat   int16
	NumberOfMetrics    uint16
}

const hheaTableSize = 36

// IsVertical is true for table 'vhea'.
func (t *HHeaTable) IsVertical() bool {
	return t.name == T("vhea")
}

// ParseHHea decodes table 'hhea' or 'vhea'.
func ParseHHea(tag Tag, b []byte) (Table, error) {
	if len(b) < hheaTableSize {
		return nil, errTooShort(tag, len(b), hheaTableSize)
	}
	t := &HHeaTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Version = r.Fixed()
	t.Ascender = r.I16()
	t.Descender = r.I16()
	t.LineGap = r.I16()
	t.AdvanceMax = r.U16()
	t.MinLeadingBearing = r.I16()
	t.MinTrailingBearing = r.I16()
	t.MaxExtent = r.I16()
	t.CaretSlopeRise = r.I16()
	t.CaretSlopeRun = r.I16()
	t.CaretOffset = r.I16()
	r.Skip(8) // 4 reserved int16
	t.MetricDataFormat = r.I16()
	t.NumberOfMetrics = r.U16()
	if r.err != nil {
		return nil, r.err
	}
	if t.MetricDataFormat != 0 {
		t.warn("unknown metricDataFormat %d", t.MetricDataFormat)
	}
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// MaxPTable establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is
// required.
type MaxPTable struct {
	tableBase
	Version   uint32 // 0x00005000 or 0x00010000
	NumGlyphs uint16
	Profile   Option[MaxPProfile] // TrueType profile (version 1.0 only)
}

// MaxPProfile holds the fields of a version 1.0 'maxp' table.
type MaxPProfile struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// ParseMaxP decodes table 'maxp'.
func ParseMaxP(tag Tag, b []byte) (Table, error) {
	if len(b) < maxpMinSize {
		return nil, errTooShort(tag, len(b), maxpMinSize)
	}
	t := &MaxPTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Version = r.U32()
	t.NumGlyphs = r.U16()
	switch t.Version {
	case 0x00005000:
		return t, r.err
	case 0x00010000:
	default:
		t.warn("unknown version 0x%08x", t.Version)
		return t, r.err
	}
	if len(b) < maxpV10Size {
		t.warn("version 1.0 table has %d bytes, need %d", len(b), maxpV10Size)
		return t, r.err
	}
	p := MaxPProfile{
		MaxPoints:             r.U16(),
		MaxContours:           r.U16(),
		MaxCompositePoints:    r.U16(),
		MaxCompositeContours:  r.U16(),
		MaxZones:              r.U16(),
		MaxTwilightPoints:     r.U16(),
		MaxStorage:            r.U16(),
		MaxFunctionDefs:       r.U16(),
		MaxInstructionDefs:    r.U16(),
		MaxStackElements:      r.U16(),
		MaxSizeOfInstructions: r.U16(),
		MaxComponentElements:  r.U16(),
		MaxComponentDepth:     r.U16(),
	}
	if r.err != nil {
		return nil, r.err
	}
	t.Profile = Some(p)
	return t, nil
}
