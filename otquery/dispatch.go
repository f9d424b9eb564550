package otquery

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/fontinfo/ot"
)

// Options control the decoding of a font's tables.
type Options struct {
	VerifyChecksums bool     // compare table checksums against the directory
	Tables          []ot.Tag // restrict decoding to these tables; all if empty
}

// DefaultOptions verify checksums and decode all tables.
var DefaultOptions = Options{VerifyChecksums: true}

// Result is the outcome of decoding one table record.
//
// Exactly one of the following holds: Skipped is true (no decoder is registered
// for the tag), Err is non-nil (the table could not be decoded), or Table holds
// the decoded table. Warnings may accompany each of them.
type Result struct {
	Record      ot.TableRecord
	Description string // from the registry entry, if any
	Table       ot.Table
	Skipped     bool
	Err         error // an ot.FontError of major severity
	Warnings    []ot.FontWarning
}

// Decode decodes the tables of a font in directory order. A table which fails
// to decode never prevents the decoding of other tables.
func Decode(otf *ot.Font, reg *Registry, opts Options) []Result {
	return slices.Collect(Range(otf, reg, opts))
}

// Range yields the decoding result for each table record of a font, in
// directory order. Tables are decoded lazily, one per iteration step.
func Range(otf *ot.Font, reg *Registry, opts Options) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		if otf == nil {
			return
		}
		for _, rec := range otf.Tables {
			if len(opts.Tables) > 0 && !slices.Contains(opts.Tables, rec.Tag) {
				continue
			}
			if !yield(DecodeTable(otf, rec, reg, opts)) {
				return
			}
		}
	}
}

// DecodeTable decodes a single table record of a font.
func DecodeTable(otf *ot.Font, rec ot.TableRecord, reg *Registry, opts Options) Result {
	res := Result{Record: rec}
	entry, ok := reg.Lookup(rec.Tag)
	if !ok {
		tracer().Infof("table '%s' has no handler", rec.Tag.Printable())
		res.Skipped = true
		return res
	}
	res.Description = entry.Description
	data, err := otf.TableData(rec)
	if err != nil {
		res.Err = tableError(rec, "Bounds", err)
		return res
	}
	if opts.VerifyChecksums {
		if w, ok := ot.VerifyChecksum(rec.Tag, data, rec.Checksum); !ok {
			w.Offset = rec.Offset
			res.Warnings = append(res.Warnings, w)
		}
	}
	table, err := safeDecode(entry.Decoder, rec.Tag, data)
	if err != nil {
		res.Err = tableError(rec, "Decode", err)
		return res
	}
	res.Table = table
	res.Warnings = append(res.Warnings, table.Warnings()...)
	tracer().Debugf("decoded table '%s' with %d warnings", rec.Tag.Printable(), len(res.Warnings))
	return res
}

// safeDecode calls a decoder, turning a panic into an error. Decoders of package
// ot do not panic; decoders registered by clients may.
func safeDecode(dec Decoder, tag ot.Tag, data []byte) (table ot.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("decoder for '%s' panicked: %v", tag.Printable(), r)
			table, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()
	table, err = dec.Decode(tag, data)
	if err == nil && table == nil {
		err = fmt.Errorf("decoder returned no table")
	}
	return
}

func tableError(rec ot.TableRecord, section string, cause error) error {
	return ot.FontError{
		Table:    rec.Tag,
		Section:  section,
		Issue:    cause.Error(),
		Severity: ot.SeverityMajor,
		Offset:   rec.Offset,
		Cause:    cause,
	}
}
