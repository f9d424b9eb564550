package main

import (
	"testing"

	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tags := parseTags("head, cvt OS/2,,maxp")
	assert.Equal(t, []ot.Tag{ot.T("head"), ot.T("cvt "), ot.T("OS/2"), ot.T("maxp")}, tags)
	assert.Empty(t, parseTags(""))
}

func TestSetTraceLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontinfo")
	defer teardown()
	//
	tr := tracing.Select("fontinfo")
	assert.True(t, setTraceLevel(tr, "Debug"))
	assert.Equal(t, tracing.LevelDebug, tr.GetTraceLevel())
	assert.True(t, setTraceLevel(tr, "Error"))
	assert.Equal(t, tracing.LevelError, tr.GetTraceLevel())
	assert.False(t, setTraceLevel(tr, "Verbose"))
}
