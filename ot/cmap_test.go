package ot

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontinfo/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCMapTable(t *testing.T, b []byte) *CMapTable {
	t.Helper()
	table, err := ParseCMap(T("cmap"), b)
	require.NoError(t, err)
	cmap := table.Self().AsCMap()
	require.NotNil(t, cmap)
	return cmap
}

func cmapFormat4() []byte {
	return fonttest.CMap4(
		fonttest.Segment{Start: 0x10, End: 0x12, Delta: -0x11}, // wraps around
		fonttest.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'},
		fonttest.Segment{Start: 'a', End: 'c', Glyphs: []uint16{10, 0, 12}},
		fonttest.Segment{Start: 0xfff0, End: 0xfff2, Delta: 0x10},
	)
}

func TestCMapFormat4(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cmap := parseCMapTable(t, fonttest.CMap(fonttest.Encoding{Platform: 3, Encoding: 1, Subtable: cmapFormat4()}))
	require.Len(t, cmap.Records, 1)
	require.NoError(t, cmap.Records[0].Err)
	f4, ok := cmap.Records[0].Subtable.(CMapFormat4)
	require.True(t, ok, "subtable is %T", cmap.Records[0].Subtable)
	assert.Len(t, f4.Segments, 5)
	assert.Equal(t, uint16(10), f4.SegCountX2)
	//
	tests := []struct {
		code   uint32
		glyph  GlyphIndex
		mapped bool
	}{
		{'A', 1, true},
		{'C', 3, true},
		{'D', 0, false},
		{'a', 10, true},
		{'b', 0, false}, // glyph ID array holds 0
		{'c', 12, true},
		{0x10, 0xffff, true},
		{0x11, 0, false}, // delta wraps to .notdef
		{0x12, 1, true},
		{0xfff0, 0, false},
		{0xfff1, 1, true},
		{0xffff, 0, false}, // terminal segment
		{0x10000, 0, false},
	}
	for _, tt := range tests {
		g, ok := f4.Lookup(tt.code)
		assert.Equal(t, tt.mapped, ok, "code U+%04X", tt.code)
		assert.Equal(t, tt.glyph, g, "code U+%04X", tt.code)
	}
	want := []CMapMapping{
		{First: 0x10, Last: 0x10, Glyph: 0xffff},
		{First: 0x12, Last: 0x12, Glyph: 1},
		{First: 'A', Last: 'C', Glyph: 1},
		{First: 'a', Last: 'a', Glyph: 10},
		{First: 'c', Last: 'c', Glyph: 12},
		{First: 0xfff1, Last: 0xfff2, Glyph: 1},
	}
	if diff := cmp.Diff(want, f4.Mappings()); diff != "" {
		t.Errorf("format 4 mappings differ (-want +got):\n%s", diff)
	}
}

func TestCMapFormat4OddSegCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sub := fonttest.Buf{}.U16(4, 14, 0, 3, 0, 0, 0)
	cmap := parseCMapTable(t, fonttest.CMap(fonttest.Encoding{Platform: 3, Encoding: 1, Subtable: sub}))
	require.Len(t, cmap.Records, 1)
	assert.Error(t, cmap.Records[0].Err)
	assert.Nil(t, cmap.Records[0].Subtable)
	assert.Len(t, cmap.Warnings(), 1)
}

func TestCMapSmallFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	glyphs := make([]uint16, 256)
	glyphs[0x41] = 9
	format2 := fonttest.Buf{}.U16(2, 526+512, 0).Zeros(512).U16(0, 256, 0, 2).U16(glyphs...)
	tests := []struct {
		name     string
		subtable []byte
		format   uint16
		want     []CMapMapping
	}{
		{"format 0", fonttest.CMap0(map[uint8]uint8{'A': 5, 'B': 6}), 0,
			[]CMapMapping{{First: 'A', Last: 'B', Glyph: 5}}},
		{"format 2", format2, 2,
			[]CMapMapping{{First: 'A', Last: 'A', Glyph: 9}}},
		{"format 6", fonttest.CMap6(0x20, 3, 0, 5), 6,
			[]CMapMapping{{First: 0x20, Last: 0x20, Glyph: 3}, {First: 0x22, Last: 0x22, Glyph: 5}}},
		{"format 12", fonttest.CMap12(12, fonttest.Group{Start: 0x1f600, End: 0x1f602, Glyph: 100}), 12,
			[]CMapMapping{{First: 0x1f600, Last: 0x1f602, Glyph: 100}}},
		{"format 13", fonttest.CMap12(13, fonttest.Group{Start: 0, End: 0x10ffff, Glyph: 1}), 13,
			[]CMapMapping{{First: 0, Last: 0x10ffff, Glyph: 1, Same: true}}},
		{"format 14", fonttest.CMap14(), 14, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmap := parseCMapTable(t, fonttest.CMap(fonttest.Encoding{Platform: 0, Encoding: 3, Subtable: tt.subtable}))
			require.NoError(t, cmap.Records[0].Err)
			sub := cmap.Records[0].Subtable
			assert.Equal(t, tt.format, sub.Format())
			if diff := cmp.Diff(tt.want, sub.Mappings()); diff != "" {
				t.Errorf("mappings differ (-want +got):\n%s", diff)
			}
			assert.Empty(t, cmap.Warnings())
		})
	}
}

func TestCMapGroupLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sub := fonttest.CMap12(12,
		fonttest.Group{Start: 0x41, End: 0x43, Glyph: 7},
		fonttest.Group{Start: 0x1f600, End: 0x1f602, Glyph: 100})
	cmap := parseCMapTable(t, fonttest.CMap(fonttest.Encoding{Platform: 3, Encoding: 10, Subtable: sub}))
	f := cmap.Records[0].Subtable
	g, ok := f.Lookup(0x1f601)
	assert.True(t, ok)
	assert.Equal(t, GlyphIndex(101), g)
	_, ok = f.Lookup(0x44)
	assert.False(t, ok)
	//
	last := parseCMapTable(t, fonttest.CMap(fonttest.Encoding{Platform: 0, Encoding: 4,
		Subtable: fonttest.CMap12(13, fonttest.Group{Start: 0x100, End: 0x1ff, Glyph: 3})}))
	g, ok = last.Records[0].Subtable.Lookup(0x1fe)
	assert.True(t, ok)
	assert.Equal(t, GlyphIndex(3), g, "format 13 maps a range to one glyph")
}

func TestCMapUnknownFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cmap := parseCMapTable(t, fonttest.CMap(
		fonttest.Encoding{Platform: 3, Encoding: 1, Subtable: fonttest.Buf{}.U16(99, 8, 0, 0)},
		fonttest.Encoding{Platform: 1, Encoding: 0, Subtable: fonttest.CMap0(map[uint8]uint8{'A': 1})},
	))
	require.Len(t, cmap.Records, 2)
	assert.NoError(t, cmap.Records[0].Err)
	assert.Equal(t, CMapUnknown{Fmt: 99}, cmap.Records[0].Subtable)
	assert.Nil(t, cmap.Records[0].Subtable.Mappings())
	require.Len(t, cmap.Warnings(), 1)
	assert.Contains(t, cmap.Warnings()[0].Issue, "unknown format 99")
	assert.Equal(t, uint16(0), cmap.Records[1].Subtable.Format(), "later subtables are decoded")
}

func TestCMapSharedSubtables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sub := cmapFormat4()
	cmap := parseCMapTable(t, fonttest.CMap(
		fonttest.Encoding{Platform: 0, Encoding: 3, Subtable: sub},
		fonttest.Encoding{Platform: 3, Encoding: 1, Subtable: sub}))
	require.Len(t, cmap.Records, 2)
	assert.Equal(t, cmap.Records[0].Offset, cmap.Records[1].Offset)
	assert.Equal(t, uint16(2), cmap.NumTables)
	f0, _ := cmap.Records[0].Subtable.(CMapFormat4)
	f1, _ := cmap.Records[1].Subtable.(CMapFormat4)
	assert.Equal(t, len(f0.Segments), len(f1.Segments))
}

func TestCMapSubtableOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	b := fonttest.Buf{}.U16(0, 1).U16(3, 1).U32(1000)
	cmap := parseCMapTable(t, b)
	require.Len(t, cmap.Records, 1)
	assert.True(t, errors.Is(cmap.Records[0].Err, ErrOutOfBounds))
	assert.Len(t, cmap.Warnings(), 1)
	_, ok := cmap.Lookup('A')
	assert.False(t, ok)
}

func TestCMapTruncatedRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := ParseCMap(T("cmap"), fonttest.Buf{}.U16(0, 5).U16(3, 1).U32(12))
	assert.True(t, errors.Is(err, ErrTableTooShort))
	_, err = ParseCMap(T("cmap"), []byte{0, 0})
	assert.True(t, errors.Is(err, ErrTableTooShort))
}

func TestCMapUnicodeSubtable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cmap := parseCMapTable(t, fonttest.CMap(
		fonttest.Encoding{Platform: 0, Encoding: 5, Subtable: fonttest.CMap14()},
		fonttest.Encoding{Platform: 3, Encoding: 1, Subtable: cmapFormat4()},
		fonttest.Encoding{Platform: 3, Encoding: 10, Subtable: fonttest.CMap12(12,
			fonttest.Group{Start: 'A', End: 'Z', Glyph: 7})},
	))
	sub := cmap.UnicodeSubtable()
	require.NotNil(t, sub)
	assert.Equal(t, uint16(12), sub.Format(), "full repertoire subtable is preferred")
	g, ok := cmap.Lookup('A')
	assert.True(t, ok)
	assert.Equal(t, GlyphIndex(7), g)
	//
	mac := parseCMapTable(t, fonttest.CMap(
		fonttest.Encoding{Platform: 1, Encoding: 0, Subtable: fonttest.CMap0(map[uint8]uint8{'A': 1})}))
	assert.Nil(t, mac.UnicodeSubtable())
}
