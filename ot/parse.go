package ot

import (
	"fmt"
	"math"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

const (
	headerSize      = 12 // size of the offset table
	tableRecordSize = 16 // size of a table record in the directory
)

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// arraySize returns the byte size of count records of size recsize, starting at
// offset start, or an error if this overflows.
func arraySize(start, count, recsize int) (int, error) {
	n, err := checkedMulInt(count, recsize)
	if err != nil {
		return 0, err
	}
	return checkedAddInt(start, n)
}

// ---------------------------------------------------------------------------

// Parse reads the table directory of an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after Parse returns.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// Parse fails only if the offset table or the table directory is truncated; no
// table can be located without them. All other irregularities, such as unknown
// scaler types or table records pointing outside of the data, are recorded as
// warnings and left to the decoding of individual tables.
func Parse(font []byte) (*Font, error) {
	ec := &errorCollector{}
	src := binarySegm(font)
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := newFieldReader(src, 0)
	h := FontHeader{
		ScalerType:    r.U32(),
		TableCount:    r.U16(),
		SearchRange:   r.U16(),
		EntrySelector: r.U16(),
		RangeShift:    r.U16(),
	}
	if r.err != nil {
		err := fmt.Errorf("%w: font has %d bytes, offset table needs %d",
			ErrTruncatedHeader, len(font), headerSize)
		ec.addError(T(""), "Header", err, SeverityCritical, 0)
		return nil, ec.criticalError()
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.ScalerType, Tag(h.ScalerType).Printable())
	if h.ScalerType == scalerCollection {
		ec.addError(T("ttcf"), "Header", ErrFontCollection, SeverityCritical, 0)
		return nil, ec.criticalError()
	}
	otf := &Font{Binary: font, Header: h}
	if h.Flavour() == "unknown" {
		ec.addWarning(T(""), fmt.Sprintf("unknown scaler type 0x%08x", h.ScalerType), 0)
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	end, err := arraySize(headerSize, int(h.TableCount), tableRecordSize)
	if err != nil || end > len(font) {
		err = fmt.Errorf("%w: directory of %d tables needs %d bytes, font has %d",
			ErrTruncatedDirectory, h.TableCount, end, len(font))
		ec.addError(T(""), "TableRecords", err, SeverityCritical, headerSize)
		return nil, ec.criticalError()
	}
	otf.Tables = make([]TableRecord, 0, h.TableCount)
	var prevTag Tag
	for i := 0; i < int(h.TableCount); i++ {
		pos := headerSize + i*tableRecordSize
		r = newFieldReader(src, pos)
		rec := TableRecord{
			Tag:      r.Tag(),
			Checksum: r.U32(),
			Offset:   r.U32(),
			Length:   r.U32(),
		}
		if r.err != nil { // cannot happen after the size check above
			return nil, errFontFormat("table record entries")
		}
		if rec.Tag < prevTag {
			tracer().Debugf("table directory not sorted at '%s'", rec.Tag.Printable())
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 { // "all tables must begin on four byte boundaries"
			ec.addWarning(rec.Tag, "table offset is not 4-byte aligned", rec.Offset)
		}
		if rec.End() > uint64(len(font)) {
			ec.addWarning(rec.Tag, fmt.Sprintf("table bounds [%d:%d] exceed font size %d",
				rec.Offset, rec.End(), len(font)), rec.Offset)
		}
		otf.Tables = append(otf.Tables, rec)
	}
	tracer().Debugf("font has %d table records", len(otf.Tables))
	otf.warnings = ec.warnings
	return otf, nil
}

// RequiredTables lists the tables required by the OpenType specification for a
// font to function correctly.
var RequiredTables = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
}

// MissingTables returns the required tables which are not present in a font.
// This is informational only; a missing table never stops decoding.
func (otf *Font) MissingTables() []string {
	var missing []string
	for _, tag := range RequiredTables {
		if _, ok := otf.Table(T(tag)); !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}
