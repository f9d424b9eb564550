package ot

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontinfo/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func issues(table Table) []string {
	var s []string
	for _, w := range table.Warnings() {
		s = append(s, w.Issue)
	}
	return s
}

// --- head, hhea, maxp ------------------------------------------------------

func TestHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseHead(T("head"), fonttest.Head(2048))
	require.NoError(t, err)
	head := table.Self().AsHead()
	require.NotNil(t, head)
	assert.Nil(t, table.Self().AsHHea())
	assert.Equal(t, "1.0", head.Version())
	assert.Equal(t, "1.5", head.FontRevision.String())
	assert.Equal(t, uint16(2048), head.UnitsPerEm)
	assert.Equal(t, uint16(0x000b), head.Flags)
	assert.Equal(t, time.Date(1904, 1, 1, 1, 0, 0, 0, time.UTC), head.CreatedTime())
	assert.Equal(t, time.Date(1904, 1, 2, 0, 0, 0, 0, time.UTC), head.ModifiedTime())
	assert.Equal(t, []int16{-50, -200, 1000, 800}, []int16{head.XMin, head.YMin, head.XMax, head.YMax})
	assert.Equal(t, []string{"bold", "italic"}, head.MacStyleNames())
	assert.Equal(t, int16(1), head.IndexToLocFormat)
	assert.Empty(t, head.Warnings())
	assert.Equal(t, 54, head.Size())
}

func TestHeadIrregular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	b := fonttest.Head(8)
	b[12] = 0 // magic number
	table, err := ParseHead(T("head"), b)
	require.NoError(t, err)
	assert.Len(t, table.Warnings(), 2, "warnings: %v", issues(table))
	//
	_, err = ParseHead(T("head"), fonttest.Head(1000)[:53])
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestHHeaAndVHea(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseHHea(T("hhea"), fonttest.HHea(800, -200, 42))
	require.NoError(t, err)
	hhea := table.Self().AsHHea()
	require.NotNil(t, hhea)
	assert.False(t, hhea.IsVertical())
	assert.Equal(t, int16(800), hhea.Ascender)
	assert.Equal(t, int16(-200), hhea.Descender)
	assert.Equal(t, int16(90), hhea.LineGap)
	assert.Equal(t, uint16(1200), hhea.AdvanceMax)
	assert.Equal(t, int16(-20), hhea.MinLeadingBearing)
	assert.Equal(t, int16(-30), hhea.MinTrailingBearing)
	assert.Equal(t, int16(1100), hhea.MaxExtent)
	assert.Equal(t, int16(1), hhea.CaretSlopeRise)
	assert.Equal(t, uint16(42), hhea.NumberOfMetrics)
	//
	table, err = ParseHHea(T("vhea"), fonttest.HHea(500, -500, 3))
	require.NoError(t, err)
	assert.True(t, table.Self().AsHHea().IsVertical())
	//
	_, err = ParseHHea(T("hhea"), make([]byte, 35))
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestMaxP(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseMaxP(T("maxp"), fonttest.MaxP(17))
	require.NoError(t, err)
	maxp := table.Self().AsMaxP()
	assert.Equal(t, uint16(17), maxp.NumGlyphs)
	assert.False(t, maxp.Profile.IsSome())
	//
	table, err = ParseMaxP(T("maxp"), fonttest.MaxP10(300))
	require.NoError(t, err)
	prof, ok := table.Self().AsMaxP().Profile.Unwrap()
	require.True(t, ok)
	assert.Equal(t, uint16(1), prof.MaxPoints)
	assert.Equal(t, uint16(13), prof.MaxComponentDepth)
	//
	table, err = ParseMaxP(T("maxp"), fonttest.MaxP10(300)[:20])
	require.NoError(t, err)
	assert.False(t, table.Self().AsMaxP().Profile.IsSome())
	assert.Len(t, table.Warnings(), 1)
	//
	table, err = ParseMaxP(T("maxp"), fonttest.Buf{}.U32(0x00020000).U16(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"unknown version 0x00020000"}, issues(table))
}

// --- OS/2 ------------------------------------------------------------------

func TestOS2Tiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tests := []struct {
		version                    uint16
		length                     int
		typo, codePages, ext, opsz bool
		warnings                   int
	}{
		{0, 68, false, false, false, false, 1},
		{0, 78, true, false, false, false, 0},
		{1, 86, true, true, false, false, 0},
		{3, 96, true, true, true, false, 0},
		{4, 86, true, true, false, false, 1},
		{5, 96, true, true, true, false, 1},
		{5, 100, true, true, true, true, 0},
		{0, 100, true, false, false, false, 0},
	}
	for _, tt := range tests {
		table, err := ParseOS2(T("OS/2"), fonttest.OS2(tt.version, tt.length))
		require.NoError(t, err, "version %d length %d", tt.version, tt.length)
		os2 := table.Self().AsOS2()
		require.NotNil(t, os2)
		assert.Equal(t, tt.typo, os2.Typo.IsSome(), "typo metrics, v%d/%d", tt.version, tt.length)
		assert.Equal(t, tt.codePages, os2.CodePages.IsSome(), "code pages, v%d/%d", tt.version, tt.length)
		assert.Equal(t, tt.ext, os2.Extended.IsSome(), "extended, v%d/%d", tt.version, tt.length)
		assert.Equal(t, tt.opsz, os2.OpticalSize.IsSome(), "optical size, v%d/%d", tt.version, tt.length)
		assert.Len(t, os2.Warnings(), tt.warnings, "v%d/%d: %v", tt.version, tt.length, issues(os2))
	}
}

func TestOS2Fields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseOS2(T("OS/2"), fonttest.OS2(5, 100))
	require.NoError(t, err)
	os2 := table.Self().AsOS2()
	assert.Equal(t, uint16(700), os2.WeightClass)
	assert.Equal(t, "Bold", os2.WeightName())
	assert.Equal(t, "Medium", os2.WidthName())
	assert.Equal(t, T("TEST"), os2.VendorID)
	assert.Equal(t, []string{"ITALIC", "BOLD", "USE_TYPO_METRICS"}, os2.SelectionNames())
	assert.Equal(t, []string{"editable"}, os2.EmbeddingNames())
	assert.Equal(t, uint16(0xfffd), os2.LastCharIndex)
	typo, _ := os2.Typo.Unwrap()
	assert.Equal(t, OS2TypoMetrics{TypoAscender: 800, TypoDescender: -200, TypoLineGap: 90,
		WinAscent: 1000, WinDescent: 250}, typo)
	ext, _ := os2.Extended.Unwrap()
	assert.Equal(t, OS2Extended{XHeight: 500, CapHeight: 700, DefaultChar: 0, BreakChar: 32,
		MaxContext: 3}, ext)
	opsz, _ := os2.OpticalSize.Unwrap()
	assert.Equal(t, uint16(1440), opsz.UpperOpticalPointSize)
}

func TestOS2TooShort(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := ParseOS2(T("OS/2"), fonttest.OS2(3, 67))
	assert.True(t, errors.Is(err, ErrTableTooShort))
	table, err := ParseOS2(T("OS/2"), fonttest.OS2(9, 100))
	require.NoError(t, err)
	assert.Contains(t, issues(table), "unknown version 9, decoding as version 5")
}

// --- post ------------------------------------------------------------------

func TestPostVersion1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParsePost(T("post"), fonttest.Post1())
	require.NoError(t, err)
	post := table.Self().AsPost()
	require.NotNil(t, post)
	assert.Equal(t, PostVersion1, post.Version)
	assert.Equal(t, "-11.5", post.ItalicAngle.String())
	assert.Equal(t, int16(-100), post.UnderlinePosition)
	assert.Equal(t, int16(50), post.UnderlineThickness)
	assert.Equal(t, uint32(1), post.IsFixedPitch)
	name, ok := post.GlyphName(3)
	assert.True(t, ok)
	assert.Equal(t, "space", name)
	_, ok = post.GlyphName(258)
	assert.False(t, ok)
}

func TestPostVersion2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParsePost(T("post"), fonttest.Post2([]uint16{0, 258, 259, 3}, "alpha", "beta", "", ""))
	require.NoError(t, err)
	post := table.Self().AsPost()
	assert.Equal(t, uint16(4), post.NumGlyphs)
	assert.Equal(t, []string{"alpha", "beta"}, post.CustomNames)
	assert.Equal(t, 2, post.Padding)
	assert.Empty(t, post.Warnings())
	var names []string
	for gid := GlyphIndex(0); gid < 4; gid++ {
		name, ok := post.GlyphName(gid)
		require.True(t, ok, "glyph %d", gid)
		names = append(names, name)
	}
	if diff := cmp.Diff([]string{".notdef", "alpha", "beta", "space"}, names); diff != "" {
		t.Errorf("glyph names differ (-want +got):\n%s", diff)
	}
	_, ok := post.GlyphName(4)
	assert.False(t, ok)
}

func TestPostVersion2Irregular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParsePost(T("post"), fonttest.Post2([]uint16{258}, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1 custom glyph names are not referenced"}, issues(table))
	//
	table, err = ParsePost(T("post"), fonttest.Post2([]uint16{260}, "a"))
	require.NoError(t, err)
	assert.Len(t, table.Warnings(), 1)
	_, ok := table.Self().AsPost().GlyphName(0)
	assert.False(t, ok)
	//
	b := fonttest.Post2(nil, "abc")
	b = append(b[:len(b)-4], 9, 'x') // name length exceeds table
	table, err = ParsePost(T("post"), b)
	require.NoError(t, err)
	assert.Contains(t, issues(table)[0], "exceeds table by")
	//
	b = fonttest.Buf(fonttest.PostVersion(0x00020000)).U16(10, 0)
	_, err = ParsePost(T("post"), b)
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestPostOtherVersions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, v := range []uint32{0x00028000, 0x00030000, 0x00040000} {
		table, err := ParsePost(T("post"), fonttest.PostVersion(v))
		require.NoError(t, err)
		post := table.Self().AsPost()
		assert.Equal(t, Fixed(v), post.Version)
		assert.Empty(t, post.Warnings(), "version 0x%08x", v)
		assert.Empty(t, post.GlyphNameIndex)
	}
	table, err := ParsePost(T("post"), fonttest.PostVersion(0x00050000))
	require.NoError(t, err)
	assert.Equal(t, []string{"unknown version 0x00050000, header only"}, issues(table))
	//
	_, err = ParsePost(T("post"), fonttest.Post1()[:31])
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

// --- name ------------------------------------------------------------------

func TestName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	records := []fonttest.NameRecord{
		{Platform: 3, Encoding: 1, Language: 0x409, NameID: 1, Data: fonttest.UTF16("Test Sans")},
		{Platform: 1, Encoding: 0, Language: 0, NameID: 2, Data: []byte{'B', 'o', 'l', 'd', 0x8a}},
		{Platform: 3, Encoding: 1, Language: 0x8000, NameID: 4, Data: fonttest.UTF16("Test Sans Fett")},
		{Platform: 3, Encoding: 1, Language: 0x409, NameID: 5, Data: []byte{0}},
	}
	table, err := ParseName(T("name"), fonttest.Name(records, "de-AT"))
	require.NoError(t, err)
	name := table.Self().AsName()
	require.NotNil(t, name)
	assert.Equal(t, uint16(1), name.Format)
	require.Len(t, name.Records, 4)
	assert.Equal(t, "Test Sans", name.Records[0].Text)
	assert.Equal(t, sfnt.NameIDFamily, name.Records[0].NameID)
	assert.Equal(t, "Boldä", name.Records[1].Text)
	assert.Equal(t, "Test Sans Fett", name.Records[2].Text)
	assert.True(t, errors.Is(name.Records[3].Err, ErrUndecodable))
	assert.Len(t, name.Warnings(), 1)
	//
	lt, ok := name.Language(name.Records[2])
	require.True(t, ok)
	assert.Equal(t, "de-AT", lt.Tag)
	assert.Equal(t, "de-AT", lt.Language.String())
	_, ok = name.Language(name.Records[0])
	assert.False(t, ok)
}

func TestNameRecordOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	b := fonttest.Buf{}.U16(0, 1, 18).U16(3, 1, 0x409, 1, 40, 0).Str("ab")
	table, err := ParseName(T("name"), b)
	require.NoError(t, err)
	rec := table.Self().AsName().Records[0]
	assert.True(t, errors.Is(rec.Err, ErrOutOfBounds))
	//
	_, err = ParseName(T("name"), fonttest.Buf{}.U16(0, 3, 42))
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestDecodeNameString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tests := []struct {
		platform, encoding uint16
		data               []byte
		text               string
		undecodable        bool
	}{
		{0, 3, fonttest.UTF16("Ünicode"), "Ünicode", false},
		{3, 10, []byte{0xd8, 0x3d, 0xde, 0x00}, "😀", false},
		{3, 1, []byte{0, 'a', 0}, "", true},
		{1, 0, []byte{0x8a, 0x9a}, "äö", false},
		{2, 0, []byte("ascii"), "ascii", false},
		{2, 0, []byte{0x80}, "", true},
		{4, 0, []byte("utf-8 ✓"), "utf-8 ✓", false},
		{4, 0, []byte{0xff, 0xfe}, "", true},
	}
	for _, tt := range tests {
		text, err := DecodeNameString(tt.platform, tt.encoding, tt.data)
		if tt.undecodable {
			assert.True(t, errors.Is(err, ErrUndecodable), "(%d,%d) %v", tt.platform, tt.encoding, tt.data)
			continue
		}
		require.NoError(t, err, "(%d,%d)", tt.platform, tt.encoding)
		assert.Equal(t, tt.text, text)
	}
}

// --- cvt, prep, gasp, ltag -------------------------------------------------

func TestCvtAndPrograms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseCvt(T("cvt "), []byte{0, 1, 0xff, 0xfe, 7})
	require.NoError(t, err)
	assert.Equal(t, []int16{1, -2}, table.Self().AsCvt().Values)
	assert.Equal(t, []string{"odd table length 5"}, issues(table))
	//
	table, err = ParseProgram(T("prep"), []byte{0xb0, 0x01})
	require.NoError(t, err)
	assert.Len(t, table.Self().AsProgram().Instructions, 2)
	assert.Equal(t, T("prep"), table.Self().NameTag())
}

func TestGasp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseGasp(T("gasp"), fonttest.Buf{}.U16(1, 2, 8, 0x0002, 0xffff, 0x000f))
	require.NoError(t, err)
	gasp := table.Self().AsGasp()
	require.Len(t, gasp.Ranges, 2)
	assert.Equal(t, []string{"DOGRAY"}, gasp.Ranges[0].BehaviorNames())
	assert.Equal(t, []string{"GRIDFIT", "DOGRAY", "SYMMETRIC_GRIDFIT", "SYMMETRIC_SMOOTHING"},
		gasp.Ranges[1].BehaviorNames())
	assert.Empty(t, gasp.Warnings())
	//
	table, err = ParseGasp(T("gasp"), fonttest.Buf{}.U16(1, 1, 8, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"last range does not end with 0xFFFF"}, issues(table))
	//
	_, err = ParseGasp(T("gasp"), fonttest.Buf{}.U16(1, 3))
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestLtag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	b := fonttest.Buf{}.U32(1, 0, 2).U16(20, 2, 22, 5).Str("ende-AT")
	table, err := ParseLtag(T("ltag"), b)
	require.NoError(t, err)
	ltag := table.Self().AsLtag()
	require.Len(t, ltag.Tags, 2)
	assert.Equal(t, "en", ltag.Tags[0].Tag)
	assert.Equal(t, "en", ltag.Tags[0].Language.String())
	assert.Equal(t, "de-AT", ltag.Tags[1].Tag)
	assert.Empty(t, ltag.Warnings())
	//
	table, err = ParseLtag(T("ltag"), fonttest.Buf{}.U32(1, 0, 1).U16(16, 3).Str("x!y"))
	require.NoError(t, err)
	assert.Error(t, table.Self().AsLtag().Tags[0].Err)
	assert.Len(t, table.Warnings(), 1)
}

// --- GSUB, GPOS, GDEF ------------------------------------------------------

func layoutTable() []byte {
	return fonttest.Buf{}.
		U16(1, 0, 10, 22, 44). // header
		U16(1).Tag("latn").U16(8).
		U16(4, 2). // script table: default LangSys, 2 LangSys records
		U16(2).Tag("liga").U16(14).Tag("kern").U16(18).
		U16(0, 1). // liga: 1 lookup
		U16(0, 3). // kern: 3 lookups
		U16(2, 6, 14).
		U16(4, 0x0008, 1, 0).
		U16(1, 0x0102, 2, 0, 0)
}

func TestLayoutTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseLayout(T("GSUB"), layoutTable())
	require.NoError(t, err)
	gsub := table.Self().AsLayout()
	require.NotNil(t, gsub)
	assert.Equal(t, "1.0", gsub.Header.Version())
	assert.Equal(t, []ScriptRecord{{Tag: T("latn"), Offset: 8, HasDefault: true, LangSysCount: 2}}, gsub.Scripts)
	assert.Equal(t, []FeatureRecord{
		{Tag: T("liga"), Offset: 14, LookupCount: 1},
		{Tag: T("kern"), Offset: 18, LookupCount: 3},
	}, gsub.Features)
	require.Len(t, gsub.Lookups, 2)
	assert.Equal(t, "Ligature", gsub.LookupTypeName(gsub.Lookups[0].Type))
	assert.Equal(t, []string{"IGNORE_MARKS"}, gsub.Lookups[0].Flag.Names())
	assert.Equal(t, []string{"IGNORE_BASE_GLYPHS", "MARK_ATTACHMENT_TYPE=1"}, gsub.Lookups[1].Flag.Names())
	assert.Equal(t, uint16(2), gsub.Lookups[1].SubTableCount)
	assert.Empty(t, gsub.Warnings())
	//
	table, err = ParseLayout(T("GPOS"), layoutTable())
	require.NoError(t, err)
	gpos := table.Self().AsLayout()
	assert.Equal(t, "Mark-to-Base", gpos.LookupTypeName(4))
	assert.Equal(t, "type 42", gpos.LookupTypeName(42))
}

func TestLayoutTableIrregular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := ParseLayout(T("GSUB"), fonttest.Buf{}.U16(1, 1, 0, 0, 0))
	assert.True(t, errors.Is(err, ErrTableTooShort), "version 1.1 header is 14 bytes")
	table, err := ParseLayout(T("GSUB"), fonttest.Buf{}.U16(1, 1, 0, 0, 0).U32(0))
	require.NoError(t, err)
	assert.Empty(t, table.Self().AsLayout().Scripts)
	assert.Empty(t, table.Warnings())
	//
	table, err = ParseLayout(T("GPOS"), fonttest.Buf{}.U16(1, 0, 100, 0, 0))
	require.NoError(t, err)
	require.Len(t, table.Warnings(), 1)
	assert.Contains(t, table.Warnings()[0].Issue, "script list")
}

func TestGDef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	table, err := ParseGDef(T("GDEF"), fonttest.Buf{}.U16(1, 2, 14, 0, 0, 0, 20))
	require.NoError(t, err)
	gdef := table.Self().AsGDef()
	require.NotNil(t, gdef)
	assert.Equal(t, uint16(14), gdef.GlyphClassDefOffset)
	assert.Equal(t, uint16(20), gdef.MarkGlyphSetsDefOffset)
	//
	_, err = ParseGDef(T("GDEF"), fonttest.Buf{}.U16(1, 3, 14, 0, 0, 0, 20))
	assert.Error(t, err, "version 1.3 lacks item variation store offset")
	_, err = ParseGDef(T("GDEF"), make([]byte, 8))
	assert.True(t, errors.Is(err, ErrTableTooShort))
}
