package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fontinfo/ot"
	"github.com/npillmayer/fontinfo/otquery"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	return printDirectory(intp.out, intp.font, intp.reg), false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	tag, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: table <tag>"), false
	}
	rec, ok := intp.font.Table(ot.T(tag))
	if !ok {
		return fmt.Errorf("table '%s' not found in font", tag), false
	}
	res := otquery.DecodeTable(intp.font, rec, intp.reg, otquery.DefaultOptions)
	intp.current = &res
	tracer().Infof("setting table: %v", tag)
	intp.printer().Result(res)
	return nil, false
}

func printOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	intp.printer().Result(*intp.current)
	return nil, false
}

func verboseOp(intp *Intp, op *Op) (error, bool) {
	switch strings.ToLower(op.arg) {
	case "":
		intp.verbose = !intp.verbose
	case "on", "true", "1":
		intp.verbose = true
	case "off", "false", "0":
		intp.verbose = false
	default:
		return fmt.Errorf("usage: verbose [on|off]"), false
	}
	fmt.Fprintf(intp.out, "verbose is %v\n", intp.verbose)
	return nil, false
}

// glyphOp looks up the glyph for a character, given either as a single
// character or as a code point in the notation U+0041 or 0x41.
func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: glyph <char>"), false
	}
	r, err := parseCodePoint(arg)
	if err != nil {
		return err, false
	}
	gid := otquery.GlyphIndex(intp.font, r)
	if gid == 0 {
		fmt.Fprintf(intp.out, "U+%04X is not mapped\n", r)
		return nil, false
	}
	fmt.Fprintf(intp.out, "U+%04X → glyph %d\n", r, gid)
	return nil, false
}

func parseCodePoint(s string) (rune, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	hex := s
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || u > utf8.MaxRune {
		return 0, fmt.Errorf("invalid code point %q", s)
	}
	return rune(u), nil
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	return printNames(intp.out, intp.font), false
}
