/*
Package otquery decodes the tables of an OpenType font, as located by package ot,
and answers queries about them.

A Registry maps table tags to decoders. DefaultRegistry knows about the tables of
the OpenType and the Apple TrueType specifications, plus some vendor tables found
in fonts in the wild. Clients may extend it with decoders of their own:

	reg := otquery.DefaultRegistry().With(otquery.Entry{
		Tag:     ot.T("Zapf"),
		Decoder: otquery.DecoderFunc(parseZapf),
	})
	for res := range otquery.Range(otf, reg, otquery.DefaultOptions) {
		…
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.otquery'
func tracer() tracing.Trace {
	return tracing.Select("font.otquery")
}
