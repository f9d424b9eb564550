package ot

// --- OS/2 table ------------------------------------------------------------

// OS2Table holds the fields of table 'OS/2', the OS/2 and Windows metrics table.
// See https://learn.microsoft.com/en-us/typography/opentype/spec/os2
//
// The table has grown over six versions (0…5). Fields beyond the 68-byte core are
// present only if both the version and the byte length of the table admit them;
// Apple's version 0 tables may end after the core block.
type OS2Table struct {
	tableBase
	Version             uint16
	XAvgCharWidth       int16
	WeightClass         uint16
	WidthClass          uint16
	FsType              uint16
	SubscriptXSize      int16
	SubscriptYSize      int16
	SubscriptXOffset    int16
	SubscriptYOffset    int16
	SuperscriptXSize    int16
	SuperscriptYSize    int16
	SuperscriptXOffset  int16
	SuperscriptYOffset  int16
	StrikeoutSize       int16
	StrikeoutPosition   int16
	FamilyClass         int16
	Panose              [10]byte
	UnicodeRange        [4]uint32
	VendorID            Tag
	FsSelection         uint16
	FirstCharIndex      uint16
	LastCharIndex       uint16
	Typo                Option[OS2TypoMetrics]    // bytes 68…78
	CodePages           Option[OS2CodePageRanges] // bytes 78…86, version ≥ 1
	Extended            Option[OS2Extended]       // bytes 86…96, version ≥ 2
	OpticalSize         Option[OS2OpticalSize]    // bytes 96…100, version ≥ 5
}

// OS2TypoMetrics are the typographic and Windows metrics of table 'OS/2'.
type OS2TypoMetrics struct {
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
}

// OS2CodePageRanges are the code page character ranges of table 'OS/2'.
type OS2CodePageRanges struct {
	CodePageRange1 uint32
	CodePageRange2 uint32
}

// OS2Extended holds the fields introduced with version 2 of table 'OS/2'.
type OS2Extended struct {
	XHeight     int16
	CapHeight   int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}

// OS2OpticalSize holds the optical point size range of version 5 tables,
// in TWIPs (1/20 point).
type OS2OpticalSize struct {
	LowerOpticalPointSize uint16
	UpperOpticalPointSize uint16
}

const (
	os2CoreSize     = 68
	os2TypoSize     = 78
	os2CodePageSize = 86
	os2V2Size       = 96
	os2V5Size       = 100
)

// ParseOS2 decodes table 'OS/2'. A table shorter than the 68-byte core block is
// malformed and yields an error wrapping ErrTableTooShort.
func ParseOS2(tag Tag, b []byte) (Table, error) {
	if len(b) < os2CoreSize {
		return nil, errTooShort(tag, len(b), os2CoreSize)
	}
	t := &OS2Table{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Version = r.U16()
	t.XAvgCharWidth = r.I16()
	t.WeightClass = r.U16()
	t.WidthClass = r.U16()
	t.FsType = r.U16()
	t.SubscriptXSize = r.I16()
	t.SubscriptYSize = r.I16()
	t.SubscriptXOffset = r.I16()
	t.SubscriptYOffset = r.I16()
	t.SuperscriptXSize = r.I16()
	t.SuperscriptYSize = r.I16()
	t.SuperscriptXOffset = r.I16()
	t.SuperscriptYOffset = r.I16()
	t.StrikeoutSize = r.I16()
	t.StrikeoutPosition = r.I16()
	t.FamilyClass = r.I16()
	copy(t.Panose[:], r.Bytes(10))
	for i := range t.UnicodeRange {
		t.UnicodeRange[i] = r.U32()
	}
	t.VendorID = r.Tag()
	t.FsSelection = r.U16()
	t.FirstCharIndex = r.U16()
	t.LastCharIndex = r.U16()
	if r.err != nil {
		return nil, r.err
	}
	if t.Version > 5 {
		t.warn("unknown version %d, decoding as version 5", t.Version)
	}
	if len(b) >= os2TypoSize {
		t.Typo = Some(OS2TypoMetrics{
			TypoAscender:  r.I16(),
			TypoDescender: r.I16(),
			TypoLineGap:   r.I16(),
			WinAscent:     r.U16(),
			WinDescent:    r.U16(),
		})
	}
	if t.Version >= 1 && len(b) >= os2CodePageSize {
		t.CodePages = Some(OS2CodePageRanges{
			CodePageRange1: r.U32(),
			CodePageRange2: r.U32(),
		})
	}
	if t.Version >= 2 && len(b) >= os2V2Size {
		t.Extended = Some(OS2Extended{
			XHeight:     r.I16(),
			CapHeight:   r.I16(),
			DefaultChar: r.U16(),
			BreakChar:   r.U16(),
			MaxContext:  r.U16(),
		})
	}
	if t.Version >= 5 && len(b) >= os2V5Size {
		t.OpticalSize = Some(OS2OpticalSize{
			LowerOpticalPointSize: r.U16(),
			UpperOpticalPointSize: r.U16(),
		})
	}
	if r.err != nil {
		return nil, r.err
	}
	if need := os2SizeForVersion(t.Version); len(b) < need {
		t.warn("version %d table has %d bytes, expected %d", t.Version, len(b), need)
	}
	return t, nil
}

func os2SizeForVersion(v uint16) int {
	switch {
	case v == 0:
		return os2TypoSize
	case v == 1:
		return os2CodePageSize
	case v <= 4:
		return os2V2Size
	}
	return os2V5Size
}

// Bits of field fsSelection.
const (
	FsSelectionItalic uint16 = 1 << iota
	FsSelectionUnderscore
	FsSelectionNegative
	FsSelectionOutlined
	FsSelectionStrikeout
	FsSelectionBold
	FsSelectionRegular
	FsSelectionUseTypoMetrics
	FsSelectionWWS
	FsSelectionOblique
)

var fsSelectionNames = []string{
	"ITALIC", "UNDERSCORE", "NEGATIVE", "OUTLINED", "STRIKEOUT",
	"BOLD", "REGULAR", "USE_TYPO_METRICS", "WWS", "OBLIQUE",
}

// SelectionNames returns the names of the style bits set in fsSelection.
func (t *OS2Table) SelectionNames() []string {
	return bitNames(t.FsSelection, fsSelectionNames)
}

// EmbeddingNames interprets field fsType, the font embedding licensing rights.
// Bits 0…3 are a usage permission level, bits 8 and 9 are flags.
func (t *OS2Table) EmbeddingNames() []string {
	var names []string
	switch {
	case t.FsType&0x000f == 0:
		names = append(names, "installable")
	case t.FsType&0x0008 != 0:
		names = append(names, "editable")
	case t.FsType&0x0004 != 0:
		names = append(names, "preview & print")
	case t.FsType&0x0002 != 0:
		names = append(names, "restricted license")
	}
	if t.FsType&0x0100 != 0 {
		names = append(names, "no subsetting")
	}
	if t.FsType&0x0200 != 0 {
		names = append(names, "bitmap embedding only")
	}
	return names
}

var weightClassNames = map[uint16]string{
	100: "Thin", 200: "Extra-light", 300: "Light", 400: "Normal", 500: "Medium",
	600: "Semi-bold", 700: "Bold", 800: "Extra-bold", 900: "Black",
}

// WeightName returns the name of the weight class, or "" for a non-standard weight.
func (t *OS2Table) WeightName() string {
	return weightClassNames[t.WeightClass]
}

var widthClassNames = []string{
	"", "Ultra-condensed", "Extra-condensed", "Condensed", "Semi-condensed",
	"Medium", "Semi-expanded", "Expanded", "Extra-expanded", "Ultra-expanded",
}

// WidthName returns the name of the width class, or "" if out of range.
func (t *OS2Table) WidthName() string {
	if int(t.WidthClass) < len(widthClassNames) {
		return widthClassNames[t.WidthClass]
	}
	return ""
}
