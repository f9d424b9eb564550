package otquery

import (
	"github.com/npillmayer/fontinfo/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontType returns the flavour of a font's outlines, as declared by its scaler
// type, e.g. "TrueType" or "OpenType (CFF)".
func FontType(otf *ot.Font) string {
	if otf == nil {
		return "unknown"
	}
	return otf.Header.Flavour()
}

// table decodes a single table of a font with the default registry, or
// returns nil if the table is missing or broken.
func table(otf *ot.Font, tag string) ot.Table {
	if otf == nil {
		return nil
	}
	rec, ok := otf.Table(ot.T(tag))
	if !ok {
		return nil
	}
	res := DecodeTable(otf, rec, DefaultRegistry(), Options{})
	if res.Err != nil {
		tracer().Debugf("cannot decode table '%s': %v", tag, res.Err)
		return nil
	}
	return res.Table
}

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
	LineGap         sfnt.Units // typographic line gap
}

// FontMetrics retrieves selected metrics of a font. Ascent and descent are
// taken from table 'hhea', falling back to the typographic metrics of table
// 'OS/2' if 'hhea' does not set them.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if t := table(otf, "hhea"); t != nil {
		hhea := t.Self().AsHHea()
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if t := table(otf, "OS/2"); t != nil {
			if typo, ok := t.Self().AsOS2().Typo.Unwrap(); ok {
				tracer().Debugf("using typo metrics of OS/2")
				metrics.Ascent = sfnt.Units(typo.TypoAscender)
				metrics.Descent = sfnt.Units(typo.TypoDescender)
				metrics.LineGap = sfnt.Units(typo.TypoLineGap)
			}
		}
	}
	if t := table(otf, "head"); t != nil {
		metrics.UnitsPerEm = sfnt.Units(t.Self().AsHead().UnitsPerEm)
	}
	return metrics
}

// NumGlyphs returns the number of glyphs declared in table 'maxp', or 0.
func NumGlyphs(otf *ot.Font) int {
	if t := table(otf, "maxp"); t != nil {
		return int(t.Self().AsMaxP().NumGlyphs)
	}
	return 0
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	if t := table(otf, "cmap"); t != nil {
		gid, _ := t.Self().AsCMap().Lookup(codepoint)
		return gid
	}
	return 0
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	t := table(otf, "cmap")
	if t == nil {
		return 0
	}
	sub := t.Self().AsCMap().UnicodeSubtable()
	if sub == nil {
		return 0
	}
	for _, m := range sub.Mappings() {
		switch {
		case m.Same && m.Glyph == gid:
			return rune(m.First)
		case !m.Same && gid >= m.Glyph && uint32(gid-m.Glyph) <= m.Last-m.First:
			return rune(m.First + uint32(gid-m.Glyph))
		}
	}
	return 0
}
