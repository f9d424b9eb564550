package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontinfo"
	"github.com/npillmayer/fontinfo/internal/fontload"
	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otprint"
	"github.com/npillmayer/fontinfo/otquery"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runDumpCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ot-tools [-v] <font-file> [tables...]")
		os.Exit(1)
	}
	opts := fontinfo.DefaultOptions()
	opts.Verbose = mustFlagBool(flags["verbose"], "verbose")
	opts.VerifyChecksums = !mustFlagBool(flags["no-checksum"], "no-checksum")
	opts.Color = otprint.IsTerminal(os.Stdout)
	opts.Tables = parseTags(args["tables"].Value)
	if err := fontinfo.DumpFile(os.Stdout, fontPath, opts); err != nil {
		fatalf("%v", err)
	}
}

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	otf := mustLoadFont(args["font"].Value)
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	names := otquery.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "full", "version", "postscript"} {
		if v := names[key]; v != "" {
			fmt.Printf("%s: %s\n", strings.ToUpper(key[:1])+key[1:], v)
		}
	}
	fmt.Printf("Glyphs: %d\n", otquery.NumGlyphs(otf))
	m := otquery.FontMetrics(otf)
	fmt.Printf("Metrics: upem=%d ascent=%d descent=%d line-gap=%d max-advance=%d\n",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)
	tags := otf.TableTags()
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.Printable())
	}
	fmt.Println()
	if missing := otf.MissingTables(); len(missing) > 0 {
		fmt.Printf("Missing: %s\n", strings.Join(missing, ","))
	}
	for _, w := range otf.Warnings() {
		fmt.Printf("warning: %s\n", w.String())
	}
}

func runTablesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	otf := mustLoadFont(args["font"].Value)
	reg := otquery.DefaultRegistry()
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum", "Description"},
	}
	for _, rec := range otf.Tables {
		desc := "(no handler)"
		if e, ok := reg.Lookup(rec.Tag); ok {
			desc = e.Description
		}
		data = append(data, []string{
			rec.Tag.Printable(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("0x%08x", rec.Checksum),
			desc,
		})
	}
	if !otprint.IsTerminal(os.Stdout) {
		pterm.DisableColor()
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
}

func mustLoadFont(path string) *ot.Font {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		fatalf("cannot parse font %s: %v", path, err)
	}
	tracer().Infof("loaded font %s (%s)", path, f.Fontname)
	return otf
}

// parseTags splits a list of table tags. ot.T pads short tags with spaces, so
// "cvt" selects table 'cvt '.
func parseTags(raw string) []ot.Tag {
	var tags []ot.Tag
	for _, t := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
		if len(t) > 4 {
			fatalf("invalid table tag %q", t)
		}
		tags = append(tags, ot.T(t))
	}
	return tags
}
