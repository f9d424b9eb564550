package otprint

import (
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/fontinfo/ot"
	"golang.org/x/image/font/sfnt"
)

func hex16(v uint16) string { return fmt.Sprintf("0x%04x", v) }
func hex32(v uint32) string { return fmt.Sprintf("0x%08x", v) }

func flagsWithNames(v uint16, names []string) string {
	if len(names) == 0 {
		return hex16(v)
	}
	return fmt.Sprintf("%s (%s)", hex16(v), strings.Join(names, ", "))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// --- head, hhea, maxp ------------------------------------------------------

func (p *Printer) head(t *ot.HeadTable) {
	p.field("Version", t.Version())
	p.field("Font revision", t.FontRevision)
	p.field("Checksum adjustment", hex32(t.CheckSumAdjustment))
	p.field("Magic number", hex32(t.MagicNumber))
	p.field("Flags", hex16(t.Flags))
	p.field("Units per em", t.UnitsPerEm)
	p.field("Created", t.CreatedTime().Format(time.RFC3339))
	p.field("Modified", t.ModifiedTime().Format(time.RFC3339))
	p.field("Bounding box", fmt.Sprintf("(%d, %d) – (%d, %d)", t.XMin, t.YMin, t.XMax, t.YMax))
	p.field("Mac style", flagsWithNames(t.MacStyle, t.MacStyleNames()))
	p.field("Lowest rec. PPEM", t.LowestRecPPEM)
	p.field("Font direction hint", t.FontDirectionHint)
	p.field("Index to loc format", t.IndexToLocFormat)
	p.field("Glyph data format", t.GlyphDataFormat)
}

func (p *Printer) hhea(t *ot.HHeaTable) {
	p.field("Version", hex32(uint32(t.Version)))
	if t.IsVertical() {
		p.field("Vert. typo ascender", t.Ascender)
		p.field("Vert. typo descender", t.Descender)
		p.field("Vert. typo line gap", t.LineGap)
		p.field("Advance height max", t.AdvanceMax)
		p.field("Min. top side bearing", t.MinLeadingBearing)
		p.field("Min. bottom side bearing", t.MinTrailingBearing)
		p.field("y max extent", t.MaxExtent)
	} else {
		p.field("Ascender", t.Ascender)
		p.field("Descender", t.Descender)
		p.field("Line gap", t.LineGap)
		p.field("Advance width max", t.AdvanceMax)
		p.field("Min. left side bearing", t.MinLeadingBearing)
		p.field("Min. right side bearing", t.MinTrailingBearing)
		p.field("x max extent", t.MaxExtent)
	}
	p.field("Caret slope rise", t.CaretSlopeRise)
	p.field("Caret slope run", t.CaretSlopeRun)
	p.field("Caret offset", t.CaretOffset)
	p.field("Metric data format", t.MetricDataFormat)
	p.field("Number of metrics", t.NumberOfMetrics)
}

func (p *Printer) maxp(t *ot.MaxPTable) {
	p.field("Version", hex32(t.Version))
	p.field("Number of glyphs", t.NumGlyphs)
	prof, ok := t.Profile.Unwrap()
	if !ok {
		return
	}
	p.field("Max. points", prof.MaxPoints)
	p.field("Max. contours", prof.MaxContours)
	p.field("Max. composite points", prof.MaxCompositePoints)
	p.field("Max. composite contours", prof.MaxCompositeContours)
	p.field("Max. zones", prof.MaxZones)
	p.field("Max. twilight points", prof.MaxTwilightPoints)
	p.field("Max. storage", prof.MaxStorage)
	p.field("Max. function defs", prof.MaxFunctionDefs)
	p.field("Max. instruction defs", prof.MaxInstructionDefs)
	p.field("Max. stack elements", prof.MaxStackElements)
	p.field("Max. size of instructions", prof.MaxSizeOfInstructions)
	p.field("Max. component elements", prof.MaxComponentElements)
	p.field("Max. component depth", prof.MaxComponentDepth)
}

// --- OS/2 ------------------------------------------------------------------

func (p *Printer) os2(t *ot.OS2Table) {
	p.field("Version", t.Version)
	p.field("Avg. char width", t.XAvgCharWidth)
	p.field("Weight class", fmt.Sprintf("%d %s", t.WeightClass, t.WeightName()))
	p.field("Width class", fmt.Sprintf("%d %s", t.WidthClass, t.WidthName()))
	p.field("Embedding (fsType)", flagsWithNames(t.FsType, t.EmbeddingNames()))
	p.field("Subscript size", fmt.Sprintf("%d × %d", t.SubscriptXSize, t.SubscriptYSize))
	p.field("Subscript offset", fmt.Sprintf("(%d, %d)", t.SubscriptXOffset, t.SubscriptYOffset))
	p.field("Superscript size", fmt.Sprintf("%d × %d", t.SuperscriptXSize, t.SuperscriptYSize))
	p.field("Superscript offset", fmt.Sprintf("(%d, %d)", t.SuperscriptXOffset, t.SuperscriptYOffset))
	p.field("Strikeout size", t.StrikeoutSize)
	p.field("Strikeout position", t.StrikeoutPosition)
	p.field("Family class", fmt.Sprintf("%d, subclass %d", t.FamilyClass>>8, t.FamilyClass&0xff))
	p.field("Panose", fmt.Sprintf("% x", t.Panose[:]))
	p.field("Unicode ranges", fmt.Sprintf("%08x %08x %08x %08x",
		t.UnicodeRange[0], t.UnicodeRange[1], t.UnicodeRange[2], t.UnicodeRange[3]))
	p.field("Vendor ID", t.VendorID.Printable())
	p.field("Selection", flagsWithNames(t.FsSelection, t.SelectionNames()))
	p.field("First char index", hex16(t.FirstCharIndex))
	p.field("Last char index", hex16(t.LastCharIndex))
	if typo, ok := t.Typo.Unwrap(); ok {
		p.field("Typo ascender", typo.TypoAscender)
		p.field("Typo descender", typo.TypoDescender)
		p.field("Typo line gap", typo.TypoLineGap)
		p.field("Win ascent", typo.WinAscent)
		p.field("Win descent", typo.WinDescent)
	}
	if cp, ok := t.CodePages.Unwrap(); ok {
		p.field("Code page ranges", fmt.Sprintf("%08x %08x", cp.CodePageRange1, cp.CodePageRange2))
	}
	if ext, ok := t.Extended.Unwrap(); ok {
		p.field("x height", ext.XHeight)
		p.field("Cap height", ext.CapHeight)
		p.field("Default char", hex16(ext.DefaultChar))
		p.field("Break char", hex16(ext.BreakChar))
		p.field("Max. context", ext.MaxContext)
	}
	if opt, ok := t.OpticalSize.Unwrap(); ok {
		p.field("Optical point size", fmt.Sprintf("%.2f – %.2f pt",
			float64(opt.LowerOpticalPointSize)/20, float64(opt.UpperOpticalPointSize)/20))
	}
}

// --- post ------------------------------------------------------------------

func (p *Printer) post(t *ot.PostTable) {
	p.field("Version", t.Version)
	p.field("Italic angle", t.ItalicAngle)
	p.field("Underline position", t.UnderlinePosition)
	p.field("Underline thickness", t.UnderlineThickness)
	p.field("Fixed pitch", yesNo(t.IsFixedPitch != 0))
	p.field("Memory Type 42", fmt.Sprintf("%d – %d", t.MinMemType42, t.MaxMemType42))
	p.field("Memory Type 1", fmt.Sprintf("%d – %d", t.MinMemType1, t.MaxMemType1))
	if t.Version != ot.PostVersion2 {
		return
	}
	p.field("Number of glyphs", t.NumGlyphs)
	p.field("Custom names", len(t.CustomNames))
	if t.Padding > 0 {
		p.field("Padding entries", t.Padding)
	}
	p.list(len(t.GlyphNameIndex), func(i int) {
		name, _ := t.GlyphName(ot.GlyphIndex(i))
		p.printf("    glyph %5d: %s", i, name)
	})
}

// --- name ------------------------------------------------------------------

var nameIDLabels = map[sfnt.NameID]string{
	0:  "Copyright",
	1:  "Family",
	2:  "Subfamily",
	3:  "Unique identifier",
	4:  "Full name",
	5:  "Version",
	6:  "PostScript name",
	7:  "Trademark",
	8:  "Manufacturer",
	9:  "Designer",
	10: "Description",
	11: "Vendor URL",
	12: "Designer URL",
	13: "License",
	14: "License URL",
	16: "Typographic family",
	17: "Typographic subfamily",
	18: "Compatible full name",
	19: "Sample text",
	20: "PostScript CID",
	21: "WWS family",
	22: "WWS subfamily",
	23: "Light background palette",
	24: "Dark background palette",
	25: "Variations PostScript prefix",
}

func nameLabel(id sfnt.NameID) string {
	if l, ok := nameIDLabels[id]; ok {
		return l
	}
	return fmt.Sprintf("Name %d", id)
}

func (p *Printer) name(t *ot.NameTable) {
	p.field("Format", t.Format)
	p.field("Count", t.Count)
	p.field("String offset", t.StringOffset)
	p.list(len(t.Records), func(i int) {
		rec := t.Records[i]
		text := rec.Text
		if rec.Err != nil {
			text = fmt.Sprintf("<%v>", rec.Err)
		}
		lang := hex16(rec.LanguageID)
		if lt, ok := t.Language(rec); ok {
			lang = lt.Tag
		}
		p.printf("    [%d,%d,%s] %s (%d): %s", rec.PlatformID, rec.EncodingID, lang,
			nameLabel(rec.NameID), rec.NameID, text)
	})
	if len(t.LangTags) > 0 {
		p.field("Language tags", len(t.LangTags))
		p.list(len(t.LangTags), func(i int) {
			p.printf("    0x%04x: %s", 0x8000+i, langTag(t.LangTags[i]))
		})
	}
}

func langTag(lt ot.LangTagRecord) string {
	if lt.Err != nil {
		return fmt.Sprintf("<%v>", lt.Err)
	}
	return lt.Tag
}

// --- cmap ------------------------------------------------------------------

func (p *Printer) cmap(t *ot.CMapTable) {
	p.field("Version", t.Version)
	p.field("Number of subtables", t.NumTables)
	for i, rec := range t.Records {
		p.printf("  Subtable %d: platform %d, encoding %d, offset %d",
			i, rec.PlatformID, rec.EncodingID, rec.Offset)
		if rec.Err != nil {
			p.printf("    error: %v", rec.Err)
			continue
		}
		p.cmapSubtable(rec.Subtable)
	}
}

func (p *Printer) cmapSubtable(sub ot.CMapSubtable) {
	p.printf("    format %d", sub.Format())
	switch f := sub.(type) {
	case ot.CMapFormat4:
		p.printf("    language %d, %d segments", f.Language, len(f.Segments))
		p.list(len(f.Segments), func(i int) {
			p.printf("    %s", segment(f, f.Segments[i]))
		})
	case ot.CMapGroups:
		p.printf("    language %d, %d groups", f.Language, len(f.Groups))
		p.list(len(f.Groups), func(i int) {
			p.printf("    %s", group(f.Fmt, f.Groups[i]))
		})
	case ot.CMapFormat8:
		p.printf("    language %d, %d groups", f.Language, len(f.Groups))
		p.list(len(f.Groups), func(i int) {
			p.printf("    %s", group(8, f.Groups[i]))
		})
	case ot.CMapFormat2:
		p.printf("    language %d, %d subheaders", f.Language, len(f.SubHeaders))
		p.mappings(sub)
	case ot.CMapFormat14:
		p.printf("    %d variation selector records, not decoded", f.NumVarSelectorRecords)
	case ot.CMapUnknown:
		p.printf("    unsupported format, skipped")
	default:
		p.mappings(sub)
	}
}

func (p *Printer) mappings(sub ot.CMapSubtable) {
	m := sub.Mappings()
	p.list(len(m), func(i int) {
		p.printf("    %s", mapping(m[i]))
	})
}

func mapping(m ot.CMapMapping) string {
	if m.IsSingle() {
		return fmt.Sprintf("U+%04X → glyph %d", m.First, m.Glyph)
	}
	if m.Same {
		return fmt.Sprintf("U+%04X–U+%04X → glyph %d", m.First, m.Last, m.Glyph)
	}
	return fmt.Sprintf("U+%04X–U+%04X → glyphs %d–%d", m.First, m.Last,
		m.Glyph, uint32(m.Glyph)+m.Last-m.First)
}

// segment describes a format 4 segment. A segment with start code equal to its
// end code maps a single glyph.
func segment(f ot.CMapFormat4, s ot.CMapSegment) string {
	if s.IDRangeOffset != 0 {
		if s.Start == s.End {
			g, _ := f.Lookup(uint32(s.Start))
			return fmt.Sprintf("U+%04X → glyph %d (glyph array, delta %d)", s.Start, g, s.IDDelta)
		}
		return fmt.Sprintf("U+%04X–U+%04X → glyph array at %d, delta %d",
			s.Start, s.End, s.IDRangeOffset, s.IDDelta)
	}
	first := uint16(s.Start + uint16(s.IDDelta))
	if s.Start == s.End {
		return fmt.Sprintf("U+%04X → glyph %d (delta %d)", s.Start, first, s.IDDelta)
	}
	last := uint16(s.End + uint16(s.IDDelta))
	return fmt.Sprintf("U+%04X–U+%04X → glyphs %d–%d (delta %d)",
		s.Start, s.End, first, last, s.IDDelta)
}

func group(format uint16, g ot.CMapGroup) string {
	if g.StartCharCode == g.EndCharCode {
		return fmt.Sprintf("U+%04X → glyph %d", g.StartCharCode, g.StartGlyphID)
	}
	if format == 13 {
		return fmt.Sprintf("U+%04X–U+%04X → glyph %d", g.StartCharCode, g.EndCharCode, g.StartGlyphID)
	}
	return fmt.Sprintf("U+%04X–U+%04X → glyphs %d–%d", g.StartCharCode, g.EndCharCode,
		g.StartGlyphID, g.StartGlyphID+g.EndCharCode-g.StartCharCode)
}

// --- TrueType instructions and hinting -------------------------------------

func (p *Printer) cvt(t *ot.CvtTable) {
	p.field("Values", len(t.Values))
	p.list(len(t.Values), func(i int) {
		p.printf("    %5d: %d", i, t.Values[i])
	})
}

func (p *Printer) gasp(t *ot.GaspTable) {
	p.field("Version", t.Version)
	p.field("Number of ranges", t.NumRanges)
	for _, r := range t.Ranges {
		p.printf("    ≤ %5d ppem: %s", r.MaxPPEM, flagsWithNames(r.Behavior, r.BehaviorNames()))
	}
}

func (p *Printer) ltag(t *ot.LtagTable) {
	p.field("Version", t.Version)
	p.field("Flags", hex32(t.Flags))
	p.field("Number of tags", len(t.Tags))
	p.list(len(t.Tags), func(i int) {
		p.printf("    %3d: %s", i, langTag(t.Tags[i]))
	})
}

// --- GSUB, GPOS, GDEF ------------------------------------------------------

func (p *Printer) layout(t *ot.LayoutTable) {
	h := t.Header
	p.field("Version", h.Version())
	p.field("Script list offset", h.ScriptListOffset)
	p.field("Feature list offset", h.FeatureListOffset)
	p.field("Lookup list offset", h.LookupListOffset)
	if h.Minor >= 1 {
		p.field("Feature variations", h.FeatureVariationsOffset)
	}
	p.field("Scripts", len(t.Scripts))
	p.list(len(t.Scripts), func(i int) {
		s := t.Scripts[i]
		def := ""
		if s.HasDefault {
			def = ", default"
		}
		p.printf("    '%s': %d language systems%s", s.Tag.Printable(), s.LangSysCount, def)
	})
	p.field("Features", len(t.Features))
	p.list(len(t.Features), func(i int) {
		f := t.Features[i]
		p.printf("    %3d '%s': %d lookups", i, f.Tag.Printable(), f.LookupCount)
	})
	p.field("Lookups", len(t.Lookups))
	p.list(len(t.Lookups), func(i int) {
		l := t.Lookups[i]
		p.printf("    %3d %s, %d subtables, flags %s", i, t.LookupTypeName(l.Type),
			l.SubTableCount, flagsWithNames(uint16(l.Flag), l.Flag.Names()))
	})
}

func (p *Printer) gdef(t *ot.GDefTable) {
	p.field("Version", fmt.Sprintf("%d.%d", t.Major, t.Minor))
	p.field("Glyph class def", t.GlyphClassDefOffset)
	p.field("Attach list", t.AttachListOffset)
	p.field("Ligature caret list", t.LigCaretListOffset)
	p.field("Mark attach class def", t.MarkAttachClassDefOffset)
	if t.Minor >= 2 {
		p.field("Mark glyph sets def", t.MarkGlyphSetsDefOffset)
	}
	if t.Minor >= 3 {
		p.field("Item variation store", t.ItemVarStoreOffset)
	}
}
