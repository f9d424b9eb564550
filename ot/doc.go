/*
Package ot decodes the table directory and the tables of TrueType and OpenType
fonts.

Parse reads the offset table and the table records of a font. It does not decode
any table: tables are decoded on demand by one of the ParseXxx functions, which
all share the signature of a table decoder

	func(tag Tag, b []byte) (Table, error)

where b is the table's byte span as located by its table record. Decoders return
concrete table types (*HeadTable, *CMapTable, …), reachable from the Table
interface through TableSelf:

	os2 := table.Self().AsOS2()

Fonts in the wild often infringe upon the OpenType specification. Decoders of
package ot report such irregularities as warnings attached to the decoded table
and continue decoding wherever the remaining bytes permit. An error is returned
only if a table cannot be decoded at all, e.g. if it is shorter than its fixed
header. All reads are bounds-checked, and reading beyond a table's span yields an
error wrapping ErrOutOfBounds rather than a panic.

Package ot does not interpret outlines, does not execute hinting instructions and
does not check consistency between tables.

# Status

Font collections ('ttcf') and variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
