package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "cmap":
		pterm.Info.Println("cmap")
		pterm.Println(`
	The character to glyph index mapping table consists of encoding records,
	each pointing to a subtable:
	+-------------+-------------+-----------------+
	| Platform ID | Encoding ID | Subtable offset |
	+-------------+-------------+-----------------+
	Subtables of formats 0, 2, 4, 6, 8, 10, 12, 13 and 14 are decoded.
	Format 4 segments map ranges of BMP code points either by adding a delta
	or indirectly through a glyph index array.
	Use 'glyph <char>' to look up a character.
	`)
	case "name", "names":
		pterm.Info.Println("name")
		pterm.Println(`
	The naming table holds name records, referencing a shared string storage:
	+----------+----------+----------+---------+--------+--------+
	| Platform | Encoding | Language | Name ID | Length | Offset |
	+----------+----------+----------+---------+--------+--------+
	Strings are decoded according to platform and encoding.
	Use 'names' for the family, subfamily and full name of the font.
	`)
	case "os/2", "os2":
		pterm.Info.Println("OS/2")
		pterm.Println(`
	The OS/2 and Windows metrics table has grown over versions 0 to 5.
	Fields are shown only if both the version and the length of the table
	admit them.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables               list the table directory
	table <tag>          decode and print a table, e.g. 'table head'
	print                print the current table again
	glyph <char>         look up the glyph for a character or U+XXXX
	names                print the names of the font
	verbose [on|off]     print long lists in full
	help [topic]         help for a topic: cmap, name, os/2
	quit                 leave

	Operations may be chained with ';', e.g. 'verbose on; table cmap'.
	`)
	}
}
