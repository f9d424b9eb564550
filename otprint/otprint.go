/*
Package otprint renders decoded font tables as line-oriented text.

Each table is printed as a header line, followed by labeled fields, one per line.
Flags, checksums and versions are printed in hex, counts and metrics in decimal.
Long lists, such as cmap segments or glyph names, are truncated after a limit
unless the printer is verbose.

Styling is done with pterm, if enabled by Options.Color. Clients usually
enable it for terminals only, see IsTerminal.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otprint

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otquery"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// tracer writes to trace with key 'font.otprint'
func tracer() tracing.Trace {
	return tracing.Select("font.otprint")
}

// DefaultTruncate is the number of list entries printed by a non-verbose printer.
const DefaultTruncate = 12

// Options control the output of a printer.
type Options struct {
	Verbose  bool // never truncate lists
	Truncate int  // list entries shown if not verbose; DefaultTruncate if 0
	Color    bool // style output with terminal escape sequences
}

// Printer writes decoded tables to an output stream.
type Printer struct {
	w    io.Writer
	opts Options
}

// New creates a printer for w.
func New(w io.Writer, opts Options) *Printer {
	if opts.Truncate <= 0 {
		opts.Truncate = DefaultTruncate
	}
	return &Printer{w: w, opts: opts}
}

// IsTerminal reports whether f is a terminal. Clients use it to decide on
// Options.Color.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// style applies a pterm color if the printer is configured to use colors.
func (p *Printer) style(c pterm.Color, format string, args ...any) string {
	if p.opts.Color {
		return c.Sprintf(format, args...)
	}
	return fmt.Sprintf(format, args...)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// field prints a labeled value, indented by two spaces.
func (p *Printer) field(label string, value any) {
	fmt.Fprintf(p.w, "  %-24s %v\n", label+":", value)
}

// list prints n entries of a list, or a prefix of them followed by a marker if
// the printer is not verbose.
func (p *Printer) list(n int, entry func(i int)) {
	shown := n
	if !p.opts.Verbose && n > p.opts.Truncate {
		shown = p.opts.Truncate
	}
	for i := 0; i < shown; i++ {
		entry(i)
	}
	if shown < n {
		p.printf("    … %d more (use -v)", n-shown)
	}
}

// --- Font and table records ------------------------------------------------

// Font prints the offset table of a font, together with the warnings found
// while reading the table directory.
func (p *Printer) Font(otf *ot.Font) {
	h := otf.Header
	p.printf("%s", p.style(pterm.Bold, "Font: %s, %d tables", h.Flavour(), h.TableCount))
	p.field("Scaler type", fmt.Sprintf("0x%08x", h.ScalerType))
	p.field("Search range", h.SearchRange)
	p.field("Entry selector", h.EntrySelector)
	p.field("Range shift", h.RangeShift)
	for _, w := range otf.Warnings() {
		p.Warning(w)
	}
	if missing := otf.MissingTables(); len(missing) > 0 {
		p.field("Missing tables", missing)
	}
}

// Source prints the origin of a font. fullName may be empty.
func (p *Printer) Source(path, fullName string) {
	p.printf("%s", p.style(pterm.Bold, "File: %s", path))
	if fullName != "" {
		p.field("Full name", fullName)
	}
}

// Header prints the header line of a table record.
func (p *Printer) Header(rec ot.TableRecord) {
	p.printf("%s", p.style(pterm.Bold, "Table '%s' @ %d (%d bytes, checksum 0x%08x)",
		rec.Tag.Printable(), rec.Offset, rec.Length, rec.Checksum))
}

// Skipped prints the notice for a table without a decoder.
func (p *Printer) Skipped(rec ot.TableRecord) {
	p.printf("Table '%s' has no handler. Ignoring.", rec.Tag.Printable())
}

// Failure prints a table which could not be decoded.
func (p *Printer) Failure(rec ot.TableRecord, err error) {
	var ferr ot.FontError
	if errors.As(err, &ferr) {
		err = ferr.Cause
	}
	p.printf("%s", p.style(pterm.FgYellow, "Table '%s': %v", rec.Tag.Printable(), err))
}

// Warning prints a non-fatal issue.
func (p *Printer) Warning(w ot.FontWarning) {
	p.printf("%s", p.style(pterm.FgYellow, "  warning: %s", w.Issue))
}

// Result prints the outcome of decoding a table record.
func (p *Printer) Result(res otquery.Result) {
	if res.Skipped {
		p.Skipped(res.Record)
		return
	}
	p.Header(res.Record)
	if res.Err != nil {
		p.Failure(res.Record, res.Err)
	} else {
		if res.Description != "" {
			p.field("Description", res.Description)
		}
		p.Table(res.Table)
	}
	for _, w := range res.Warnings {
		p.Warning(w)
	}
}

// Table prints the fields of a decoded table.
func (p *Printer) Table(t ot.Table) {
	switch tbl := t.Self(); {
	case tbl.AsHead() != nil:
		p.head(tbl.AsHead())
	case tbl.AsHHea() != nil:
		p.hhea(tbl.AsHHea())
	case tbl.AsMaxP() != nil:
		p.maxp(tbl.AsMaxP())
	case tbl.AsOS2() != nil:
		p.os2(tbl.AsOS2())
	case tbl.AsPost() != nil:
		p.post(tbl.AsPost())
	case tbl.AsName() != nil:
		p.name(tbl.AsName())
	case tbl.AsCMap() != nil:
		p.cmap(tbl.AsCMap())
	case tbl.AsCvt() != nil:
		p.cvt(tbl.AsCvt())
	case tbl.AsProgram() != nil:
		p.field("Instructions", fmt.Sprintf("%d bytes", len(tbl.AsProgram().Instructions)))
	case tbl.AsGasp() != nil:
		p.gasp(tbl.AsGasp())
	case tbl.AsLtag() != nil:
		p.ltag(tbl.AsLtag())
	case tbl.AsLayout() != nil:
		p.layout(tbl.AsLayout())
	case tbl.AsGDef() != nil:
		p.gdef(tbl.AsGDef())
	case tbl.AsGeneric() != nil:
		p.field("Size", fmt.Sprintf("%d bytes, not decoded", t.Size()))
	default:
		tracer().Infof("no printer for table type %T", t)
		p.field("Size", fmt.Sprintf("%d bytes", t.Size()))
	}
}
