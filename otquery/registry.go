package otquery

import (
	"sort"

	"github.com/npillmayer/fontinfo/ot"
)

// Decoder decodes the bytes of a font table.
type Decoder interface {
	Decode(tag ot.Tag, b []byte) (ot.Table, error)
}

// DecoderFunc adapts a function to the Decoder interface. All ParseXxx functions
// of package ot are DecoderFuncs.
type DecoderFunc func(tag ot.Tag, b []byte) (ot.Table, error)

// Decode calls f(tag, b).
func (f DecoderFunc) Decode(tag ot.Tag, b []byte) (ot.Table, error) {
	return f(tag, b)
}

// Entry registers a decoder for a table tag.
type Entry struct {
	Tag         ot.Tag
	Description string
	Decoder     Decoder
}

// Registry maps table tags to decoders. A registry is immutable once created
// and may be shared between goroutines. Tags are matched exactly, i.e. case
// sensitive and including trailing spaces.
type Registry struct {
	entries map[ot.Tag]Entry
}

// NewRegistry creates a registry from entries. A later entry for a tag replaces
// an earlier one.
func NewRegistry(entries ...Entry) *Registry {
	reg := &Registry{entries: make(map[ot.Tag]Entry, len(entries))}
	for _, e := range entries {
		reg.entries[e.Tag] = e
	}
	return reg
}

// With returns a new registry consisting of the entries of r, extended or
// overridden by entries. r is unchanged.
func (r *Registry) With(entries ...Entry) *Registry {
	ext := &Registry{entries: make(map[ot.Tag]Entry, len(r.entries)+len(entries))}
	for tag, e := range r.entries {
		ext.entries[tag] = e
	}
	for _, e := range entries {
		ext.entries[e.Tag] = e
	}
	return ext
}

// Lookup returns the entry for a tag. Unregistered tags are a normal condition.
func (r *Registry) Lookup(tag ot.Tag) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[tag]
	return e, ok
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Tags returns all registered tags, sorted.
func (r *Registry) Tags() []ot.Tag {
	tags := make([]ot.Tag, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// --- Default registry ------------------------------------------------------

var generic = DecoderFunc(func(tag ot.Tag, b []byte) (ot.Table, error) {
	return ot.NewGenericTable(tag, b), nil
})

func decoded(tag, desc string, f DecoderFunc) Entry {
	return Entry{Tag: ot.T(tag), Description: desc, Decoder: f}
}

func known(tag, desc string) Entry {
	return Entry{Tag: ot.T(tag), Description: desc, Decoder: generic}
}

var defaultRegistry = NewRegistry(
	// required tables
	decoded("cmap", "Character to glyph mapping", ot.ParseCMap),
	decoded("head", "Font header", ot.ParseHead),
	decoded("hhea", "Horizontal header", ot.ParseHHea),
	known("hmtx", "Horizontal metrics"),
	decoded("maxp", "Maximum profile", ot.ParseMaxP),
	decoded("name", "Naming table", ot.ParseName),
	decoded("OS/2", "OS/2 and Windows specific metrics", ot.ParseOS2),
	decoded("post", "PostScript information", ot.ParsePost),
	// TrueType outlines
	decoded("cvt ", "Control Value Table", ot.ParseCvt),
	decoded("fpgm", "Font program", ot.ParseProgram),
	known("glyf", "Glyph data"),
	known("loca", "Index to location"),
	decoded("prep", "Control Value Program", ot.ParseProgram),
	decoded("gasp", "Grid-fitting/Scan-conversion", ot.ParseGasp),
	// CFF outlines
	known("CFF ", "Compact Font Format 1.0"),
	known("CFF2", "Compact Font Format 2.0"),
	known("VORG", "Vertical Origin"),
	// SVG and bitmap glyphs
	known("SVG ", "The SVG (Scalable Vector Graphics) table"),
	known("EBDT", "Embedded bitmap data"),
	known("EBLC", "Embedded bitmap location data"),
	known("EBSC", "Embedded bitmap scaling data"),
	known("CBDT", "Color bitmap data"),
	known("CBLC", "Color bitmap location data"),
	known("sbix", "Standard bitmap graphics"),
	known("COLR", "Color table"),
	known("CPAL", "Color palette table"),
	// advanced typographic tables
	known("BASE", "Baseline data"),
	decoded("GDEF", "Glyph definition data", ot.ParseGDef),
	decoded("GPOS", "Glyph positioning data", ot.ParseLayout),
	decoded("GSUB", "Glyph substitution data", ot.ParseLayout),
	known("JSTF", "Justification data"),
	known("MATH", "Math layout data"),
	// font variations
	known("avar", "Axis variations"),
	known("cvar", "CVT variations"),
	known("fvar", "Font variations"),
	known("gvar", "Glyph variations"),
	known("HVAR", "Horizontal metrics variations"),
	known("MVAR", "Metrics variations"),
	known("STAT", "Style attributes"),
	known("VVAR", "Vertical metrics variations"),
	// other OpenType tables
	known("DSIG", "Digital signature"),
	known("hdmx", "Horizontal device metrics"),
	known("kern", "Kerning"),
	known("LTSH", "Linear threshold data"),
	known("MERG", "Merge"),
	known("meta", "Metadata"),
	known("PCLT", "PCL 5 data"),
	known("VDMX", "Vertical device metrics"),
	decoded("vhea", "Vertical Metrics header", ot.ParseHHea),
	known("vmtx", "Vertical Metrics"),
	// Apple Advanced Typography
	known("acnt", "Accent attachment"),
	known("ankr", "Anchor point"),
	known("bdat", "Bitmap data"),
	known("bhed", "Bitmap font header"),
	known("bloc", "Bitmap location"),
	known("bsln", "Baseline"),
	known("fdsc", "Font descriptors"),
	known("feat", "Layout feature"),
	known("fmtx", "Font metrics"),
	known("fond", "Font family compatibility"),
	known("gcid", "Glyph to CID mapping"),
	known("just", "Justification"),
	known("lcar", "Ligature caret"),
	decoded("ltag", "Language tags", ot.ParseLtag),
	known("mort", "Glyph metamorphosis"),
	known("morx", "Extended glyph metamorphosis"),
	known("opbd", "Optical bounds"),
	known("prop", "Glyph properties"),
	known("trak", "Tracking"),
	known("xref", "Cross-reference"),
	known("Zapf", "Glyph reference"),
	// vendor tables found in the wild
	known("FFTM", "FontForge time stamps"),
	known("TTFA", "ttfautohint parameters"),
	known("Feat", "Graphite features"),
	known("Glat", "Graphite glyph attributes"),
	known("Gloc", "Graphite glyph attribute locations"),
	known("Silf", "Graphite rules"),
	known("Sill", "Graphite language features"),
	known("TSIV", "VOLT source"),
)

// DefaultRegistry returns the registry of all tables known to this package.
// Tables with a field decoder in package ot are decoded, all others are
// represented by an ot.GenericTable.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
