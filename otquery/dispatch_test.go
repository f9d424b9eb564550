package otquery

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontinfo/internal/fonttest"
	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, b []byte) *ot.Font {
	t.Helper()
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	return otf
}

func TestDecodeHandledAndUnhandled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otquery")
	defer teardown()
	//
	otf := parse(t, fonttest.New().
		Add("head", fonttest.Head(1000)).
		Add("zzzz", []byte{1, 2, 3}).
		Add("hmtx", make([]byte, 12)).
		Bytes())
	results := Decode(otf, DefaultRegistry(), DefaultOptions)
	require.Len(t, results, 3)
	//
	head := results[0]
	assert.False(t, head.Skipped)
	require.NoError(t, head.Err)
	assert.Equal(t, "Font header", head.Description)
	assert.NotNil(t, head.Table.Self().AsHead())
	assert.Empty(t, head.Warnings, "builder writes valid checksums")
	//
	assert.True(t, results[1].Skipped)
	assert.Nil(t, results[1].Table)
	assert.Equal(t, ot.T("zzzz"), results[1].Record.Tag)
	//
	require.NoError(t, results[2].Err)
	assert.NotNil(t, results[2].Table.Self().AsGeneric(), "known tables without decoder are generic")
}

func TestDecodeFailureIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otquery")
	defer teardown()
	//
	otf := parse(t, fonttest.New().
		Add("OS/2", fonttest.OS2(3, 96)).WithRecord(16, 1<<16).
		Add("head", fonttest.Head(1000)[:20]).
		Add("maxp", fonttest.MaxP(3)).
		Bytes())
	results := Decode(otf, DefaultRegistry(), DefaultOptions)
	require.Len(t, results, 3)
	//
	var ferr ot.FontError
	require.True(t, errors.As(results[0].Err, &ferr))
	assert.Equal(t, "Bounds", ferr.Section)
	assert.Equal(t, ot.SeverityMajor, ferr.Severity)
	assert.True(t, errors.Is(results[0].Err, ot.ErrTableBounds))
	//
	require.True(t, errors.As(results[1].Err, &ferr))
	assert.Equal(t, "Decode", ferr.Section)
	assert.True(t, errors.Is(results[1].Err, ot.ErrTableTooShort))
	assert.Nil(t, results[1].Table)
	//
	require.NoError(t, results[2].Err)
	assert.Equal(t, uint16(3), results[2].Table.Self().AsMaxP().NumGlyphs)
}

func TestDecodeChecksums(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otquery")
	defer teardown()
	//
	otf := parse(t, fonttest.New().Add("maxp", fonttest.MaxP(3)).WithChecksum(1).Bytes())
	res := Decode(otf, DefaultRegistry(), DefaultOptions)[0]
	require.NoError(t, res.Err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Issue, "checksum mismatch: declared 0x00000001")
	assert.Equal(t, res.Record.Offset, res.Warnings[0].Offset)
	//
	res = Decode(otf, DefaultRegistry(), Options{})[0]
	assert.Empty(t, res.Warnings)
}

func TestDecodeSelectedTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otquery")
	defer teardown()
	//
	otf := parse(t, fonttest.New().
		Add("head", fonttest.Head(1000)).
		Add("maxp", fonttest.MaxP(3)).
		Bytes())
	results := Decode(otf, DefaultRegistry(), Options{Tables: []ot.Tag{ot.T("maxp")}})
	require.Len(t, results, 1)
	assert.Equal(t, ot.T("maxp"), results[0].Record.Tag)
	//
	n := 0
	for range Range(otf, DefaultRegistry(), DefaultOptions) {
		n++
		break
	}
	assert.Equal(t, 1, n)
	assert.Empty(t, Decode(nil, DefaultRegistry(), DefaultOptions))
}

func TestDecodeMisbehavingDecoders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otquery")
	defer teardown()
	//
	reg := DefaultRegistry().With(
		Entry{Tag: ot.T("pnic"), Decoder: DecoderFunc(func(ot.Tag, []byte) (ot.Table, error) {
			panic("boom")
		})},
		Entry{Tag: ot.T("nils"), Decoder: DecoderFunc(func(ot.Tag, []byte) (ot.Table, error) {
			return nil, nil
		})},
	)
	otf := parse(t, fonttest.New().
		Add("pnic", []byte{1, 2, 3, 4}).
		Add("nils", []byte{1, 2, 3, 4}).
		Add("maxp", fonttest.MaxP(3)).
		Bytes())
	results := Decode(otf, reg, DefaultOptions)
	require.Len(t, results, 3)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "decoder panic: boom")
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "decoder returned no table")
	assert.NoError(t, results[2].Err)
}
