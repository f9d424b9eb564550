package ot

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// --- CVT table -------------------------------------------------------------

// CvtTable holds the control values referenced by TrueType instructions.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/cvt
type CvtTable struct {
	tableBase
	Values []int16 // in font units
}

// ParseCvt decodes table 'cvt '. A trailing odd byte is ignored with a warning.
func ParseCvt(tag Tag, b []byte) (Table, error) {
	t := &CvtTable{}
	t.init(tag, b, t)
	if len(b)%2 != 0 {
		t.warn("odd table length %d", len(b))
	}
	r := newFieldReader(b, 0)
	t.Values = make([]int16, len(b)/2)
	for i := range t.Values {
		t.Values[i] = r.I16()
	}
	return t, r.err
}

// --- Instruction programs --------------------------------------------------

// ProgramTable is a TrueType instruction program, either the control value
// program ('prep') or the font program ('fpgm'). Instructions are not
// interpreted.
type ProgramTable struct {
	tableBase
	Instructions []byte
}

// ParseProgram decodes table 'prep' or 'fpgm'.
func ParseProgram(tag Tag, b []byte) (Table, error) {
	t := &ProgramTable{}
	t.init(tag, b, t)
	t.Instructions = b
	return t, nil
}

// --- Gasp table ------------------------------------------------------------

// GaspTable describes the preferred rasterization techniques for ranges of
// ppem sizes.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/gasp
type GaspTable struct {
	tableBase
	Version   uint16
	NumRanges uint16
	Ranges    []GaspRange
}

// GaspRange applies the behavior flags to sizes up to and including MaxPPEM.
type GaspRange struct {
	MaxPPEM  uint16
	Behavior uint16
}

var gaspBehaviorNames = []string{
	"GRIDFIT", "DOGRAY", "SYMMETRIC_GRIDFIT", "SYMMETRIC_SMOOTHING",
}

// BehaviorNames returns the names of the flags set for a range.
func (r GaspRange) BehaviorNames() []string {
	return bitNames(r.Behavior, gaspBehaviorNames)
}

// ParseGasp decodes table 'gasp'.
func ParseGasp(tag Tag, b []byte) (Table, error) {
	if len(b) < 4 {
		return nil, errTooShort(tag, len(b), 4)
	}
	t := &GaspTable{}
	t.init(tag, b, t)
	r := newFieldReader(b, 0)
	t.Version = r.U16()
	t.NumRanges = r.U16()
	if end := 4 + 4*int(t.NumRanges); end > len(b) {
		return nil, fmt.Errorf("%w: %d ranges need %d bytes, table has %d",
			ErrTableTooShort, t.NumRanges, end, len(b))
	}
	if t.Version > 1 {
		t.warn("unknown version %d", t.Version)
	}
	t.Ranges = make([]GaspRange, t.NumRanges)
	prev := -1
	for i := range t.Ranges {
		t.Ranges[i] = GaspRange{MaxPPEM: r.U16(), Behavior: r.U16()}
		if int(t.Ranges[i].MaxPPEM) <= prev {
			t.warn("ranges not sorted at range %d", i)
		}
		prev = int(t.Ranges[i].MaxPPEM)
	}
	if t.NumRanges > 0 && t.Ranges[t.NumRanges-1].MaxPPEM != 0xffff {
		t.warn("last range does not end with 0xFFFF")
	}
	return t, r.err
}

// --- Ltag table ------------------------------------------------------------

// LtagTable is Apple's language tag table, which the 'name' table and AAT
// tables refer to by index.
// See https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6ltag.html
type LtagTable struct {
	tableBase
	Version uint32
	Flags   uint32
	Tags    []LangTagRecord
}

// ParseLtag decodes table 'ltag'. Tags are IETF BCP 47 language tags, stored
// as ASCII strings.
func ParseLtag(tag Tag, b []byte) (Table, error) {
	if len(b) < 12 {
		return nil, errTooShort(tag, len(b), 12)
	}
	t := &LtagTable{}
	t.init(tag, b, t)
	seg := binarySegm(b)
	r := newFieldReader(seg, 0)
	t.Version = r.U32()
	t.Flags = r.U32()
	count := r.U32()
	if end, err := arraySize(12, int(count), 4); err != nil || end > len(b) {
		return nil, fmt.Errorf("%w: %d tag ranges exceed table of %d bytes",
			ErrTableTooShort, count, len(b))
	}
	t.Tags = make([]LangTagRecord, 0, count)
	for i := 0; i < int(count); i++ {
		lt := LangTagRecord{Offset: r.U16(), Length: r.U16()}
		raw, err := seg.view(int(lt.Offset), int(lt.Length))
		switch {
		case err != nil:
		case !utf8.Valid(raw):
			err = fmt.Errorf("%w: language tag is not ASCII", ErrUndecodable)
		default:
			lt.Tag = string(raw)
			lt.Language, err = language.Parse(lt.Tag)
		}
		if err != nil {
			lt.Err = err
			t.warn("language tag %d: %v", i, err)
		}
		t.Tags = append(t.Tags, lt)
	}
	return t, r.err
}
