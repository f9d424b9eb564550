package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otquery"
	"github.com/pterm/pterm"
)

// printDirectory prints the table records of a font, together with the
// description of their decoders.
func printDirectory(w io.Writer, otf *ot.Font, reg *otquery.Registry) error {
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
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}

// printNames prints the decoded Unicode names of a font, ordered by name ID.
func printNames(w io.Writer, otf *ot.Font) error {
	info := otquery.NameInfo(otf)
	if len(info) == 0 {
		return fmt.Errorf("font has no decodable names")
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	data := [][]string{{"Key", "Name"}}
	for _, k := range keys {
		data = append(data, []string{k, info[k]})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}
