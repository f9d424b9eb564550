package fontload

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'fontinfo'
func tracer() tracing.Trace {
	return tracing.Select("fontinfo")
}

// ScalableFont is a font file read into memory.
//
// SFNT is the view of package sfnt onto the font, if sfnt is able to parse it.
// Package sfnt is far stricter than a table dumper needs to be, so a nil SFNT
// does not mean that the font is unusable.
type ScalableFont struct {
	Fontname string // full name (name ID 4), if SFNT is present
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file. It fails
// only if the file cannot be read.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f := ParseOpenTypeFont(bytez)
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont wraps font data in memory, probing it with package sfnt.
func ParseOpenTypeFont(fbytes []byte) *ScalableFont {
	f := &ScalableFont{Binary: fbytes}
	sf, err := sfnt.Parse(f.Binary)
	if err != nil {
		tracer().Debugf("sfnt cannot parse font: %v", err)
		return f
	}
	f.SFNT = sf
	if f.Fontname, err = sf.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("sfnt cannot read full name: %v", err)
	} else {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f
}
