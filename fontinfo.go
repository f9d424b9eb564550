/*
Package fontinfo dumps the tables of TrueType and OpenType fonts.

A font is read in three steps: package ot locates the tables of a font by
parsing its table directory, package otquery decodes the tables it has a decoder
for, and package otprint renders the decoded tables as text. This package wires
the three together:

	err := fontinfo.DumpFile(os.Stdout, "MyFont.ttf", fontinfo.DefaultOptions())

Only a malformed offset table or table directory aborts a dump. Each table is
decoded independently of all the others, and a table which fails to decode is
reported without affecting its siblings.

# Status

Font collections (*.ttc) are not supported.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

Apple TrueType Reference Manual:
https://developer.apple.com/fonts/TrueType-Reference-Manual/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontinfo

import (
	"fmt"
	"io"

	"github.com/npillmayer/fontinfo/internal/fontload"
	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otprint"
	"github.com/npillmayer/fontinfo/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontinfo'
func tracer() tracing.Trace {
	return tracing.Select("fontinfo")
}

// Options control a dump.
type Options struct {
	Verbose         bool              // print lists in full
	Color           bool              // style output for a terminal
	VerifyChecksums bool              // warn about table checksum mismatches
	Tables          []ot.Tag          // dump only these tables; all if empty
	Registry        *otquery.Registry // otquery.DefaultRegistry() if nil
}

// DefaultOptions verify checksums and leave output plain and truncated.
func DefaultOptions() Options {
	return Options{VerifyChecksums: true}
}

func (o Options) registry() *otquery.Registry {
	if o.Registry == nil {
		return otquery.DefaultRegistry()
	}
	return o.Registry
}

func (o Options) query() otquery.Options {
	return otquery.Options{VerifyChecksums: o.VerifyChecksums, Tables: o.Tables}
}

// Report holds the decoded tables of a font, in directory order.
type Report struct {
	Font    *ot.Font
	Results []otquery.Result
}

// Failed returns the results of tables which could not be decoded.
func (r *Report) Failed() []otquery.Result {
	var failed []otquery.Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Skipped returns the tags of tables without a decoder.
func (r *Report) Skipped() []ot.Tag {
	var tags []ot.Tag
	for _, res := range r.Results {
		if res.Skipped {
			tags = append(tags, res.Record.Tag)
		}
	}
	return tags
}

// Inspect parses a font and decodes its tables. An error is returned only if
// the table directory of the font cannot be read.
func Inspect(data []byte, opts Options) (*Report, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	results := otquery.Decode(otf, opts.registry(), opts.query())
	tracer().Debugf("decoded %d of %d tables", len(results), len(otf.Tables))
	return &Report{Font: otf, Results: results}, nil
}

// Dump prints the directory and the tables of a font to w. Tables are printed
// as soon as they are decoded.
func Dump(w io.Writer, data []byte, opts Options) error {
	otf, err := ot.Parse(data)
	if err != nil {
		return err
	}
	p := printer(w, opts)
	p.Font(otf)
	failed := 0
	for res := range otquery.Range(otf, opts.registry(), opts.query()) {
		if res.Err != nil {
			tracer().Errorf("table '%s': %v", res.Record.Tag.Printable(), res.Err)
			failed++
		}
		p.Result(res)
	}
	tracer().Infof("dumped %d tables, %d failed", len(otf.Tables), failed)
	return nil
}

// DumpFile reads a font file and dumps it to w.
func DumpFile(w io.Writer, path string, opts Options) error {
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return fmt.Errorf("cannot read font: %w", err)
	}
	printer(w, opts).Source(f.Filepath, f.Fontname)
	if err = Dump(w, f.Binary, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func printer(w io.Writer, opts Options) *otprint.Printer {
	return otprint.New(w, otprint.Options{Verbose: opts.Verbose, Color: opts.Color})
}
