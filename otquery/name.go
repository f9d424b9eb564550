package otquery

import (
	"iter"

	"github.com/npillmayer/fontinfo/ot"
	"golang.org/x/image/font/sfnt"
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
//
// Only Unicode-platform and Windows Unicode entries are yielded, and records
// which could not be decoded are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	names := nameTable(otf)
	return func(yield func(sfnt.NameID, string) bool) {
		if names == nil {
			return
		}
		for _, rec := range names.Records {
			if !isUnicodeName(rec) || rec.Err != nil || rec.Text == "" {
				continue
			}
			if !yield(rec.NameID, rec.Text) {
				return
			}
		}
	}
}

func nameTable(otf *ot.Font) *ot.NameTable {
	if otf == nil {
		return nil
	}
	rec, ok := otf.Table(ot.T("name"))
	if !ok {
		tracer().Debugf("no name table found in font")
		return nil
	}
	res := DecodeTable(otf, rec, DefaultRegistry(), Options{})
	if res.Err != nil {
		tracer().Debugf("name table: %v", res.Err)
		return nil
	}
	return res.Table.Self().AsName()
}

func isUnicodeName(rec ot.NameRecord) bool {
	return rec.PlatformID == ot.PlatformUnicode ||
		(rec.PlatformID == ot.PlatformWindows && (rec.EncodingID == 1 || rec.EncodingID == 10))
}

// FamilyName extracts family and subfamily names from a font's `name` table.
// The first matching entry wins.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(otf *ot.Font) (family, subfamily string) {
	for nameID, value := range NamesRange(otf) {
		switch {
		case nameID == sfnt.NameIDFamily && family == "":
			family = value
		case nameID == sfnt.NameIDSubfamily && subfamily == "":
			subfamily = value
		}
	}
	return
}

// NameInfo returns selected names of a font, keyed by "family", "subfamily",
// "version", "full" and "postscript".
func NameInfo(otf *ot.Font) map[string]string {
	keys := map[sfnt.NameID]string{
		sfnt.NameIDFamily:     "family",
		sfnt.NameIDSubfamily:  "subfamily",
		sfnt.NameIDVersion:    "version",
		sfnt.NameIDFull:       "full",
		sfnt.NameIDPostScript: "postscript",
	}
	info := make(map[string]string)
	for nameID, value := range NamesRange(otf) {
		if key, ok := keys[nameID]; ok {
			if _, seen := info[key]; !seen {
				info[key] = value
			}
		}
	}
	return info
}
