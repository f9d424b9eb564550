package ot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// --- Name table ------------------------------------------------------------

// NameTable allows multilingual strings to be associated with the OpenType font.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name
//
// All strings are decoded while parsing. A string which cannot be decoded does not
// invalidate the table; its record carries an error instead of text.
type NameTable struct {
	tableBase
	Format       uint16
	Count        uint16
	StringOffset uint16
	Records      []NameRecord
	LangTags     []LangTagRecord // format 1 only
}

// NameRecord is an entry of the name table.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     sfnt.NameID
	Length     uint16
	Offset     uint16 // from start of the string storage
	Text       string // decoded text, valid if Err is nil
	Err        error  // wraps ErrUndecodable or ErrOutOfBounds
}

// LangTagRecord is a language tag of a format 1 name table. Name records with
// a language ID of 0x8000 or above refer to these.
type LangTagRecord struct {
	Length   uint16
	Offset   uint16
	Tag      string       // the tag as stored in the font
	Language language.Tag // parsed BCP 47 tag, valid if Err is nil
	Err      error
}

const (
	nameHeaderSize    = 6
	nameRecordSize    = 12
	langTagRecordSize = 4
)

// ParseName decodes table 'name'.
func ParseName(tag Tag, b []byte) (Table, error) {
	if len(b) < nameHeaderSize {
		return nil, errTooShort(tag, len(b), nameHeaderSize)
	}
	t := &NameTable{}
	t.init(tag, b, t)
	seg := binarySegm(b)
	r := newFieldReader(seg, 0)
	t.Format = r.U16()
	t.Count = r.U16()
	t.StringOffset = r.U16()
	if t.Format > 1 {
		t.warn("unknown format %d, decoding as format 0", t.Format)
	}
	end, err := arraySize(nameHeaderSize, int(t.Count), nameRecordSize)
	if err != nil || end > len(b) {
		return nil, fmt.Errorf("%w: %d name records need %d bytes, table has %d",
			ErrTableTooShort, t.Count, end, len(b))
	}
	storage, err := seg.from(int(t.StringOffset))
	if err != nil {
		t.warn("string storage offset %d outside of table", t.StringOffset)
		storage = nil
	}
	t.Records = make([]NameRecord, 0, t.Count)
	for i := 0; i < int(t.Count); i++ {
		rec := NameRecord{
			PlatformID: r.U16(),
			EncodingID: r.U16(),
			LanguageID: r.U16(),
			NameID:     sfnt.NameID(r.U16()),
			Length:     r.U16(),
			Offset:     r.U16(),
		}
		raw, err := storage.view(int(rec.Offset), int(rec.Length))
		if err != nil {
			rec.Err = err
		} else {
			rec.Text, rec.Err = DecodeNameString(rec.PlatformID, rec.EncodingID, raw)
		}
		if rec.Err != nil {
			t.warn("name record %d (platform %d, encoding %d, name ID %d): %v",
				i, rec.PlatformID, rec.EncodingID, rec.NameID, rec.Err)
		}
		t.Records = append(t.Records, rec)
	}
	if r.err != nil {
		return nil, r.err
	}
	if t.Format == 1 {
		t.parseLangTags(r, storage)
	}
	return t, nil
}

func (t *NameTable) parseLangTags(r *fieldReader, storage binarySegm) {
	count := r.U16()
	if r.err != nil {
		t.warn("format 1 table lacks a language tag count")
		return
	}
	end, err := arraySize(r.pos, int(count), langTagRecordSize)
	if err != nil || end > r.seg.Size() {
		t.warn("%d language tag records exceed table size", count)
		return
	}
	t.LangTags = make([]LangTagRecord, 0, count)
	for i := 0; i < int(count); i++ {
		lt := LangTagRecord{Length: r.U16(), Offset: r.U16()}
		raw, err := storage.view(int(lt.Offset), int(lt.Length))
		if err == nil {
			lt.Tag, err = decodeUTF16(raw)
		}
		if err == nil {
			lt.Language, err = language.Parse(lt.Tag)
		}
		if err != nil {
			lt.Err = err
			t.warn("language tag record %d: %v", i, err)
		}
		t.LangTags = append(t.LangTags, lt)
	}
}

// Language returns the language tag a name record refers to, if its language ID
// points into the language tag records of a format 1 table.
func (t *NameTable) Language(rec NameRecord) (LangTagRecord, bool) {
	if rec.LanguageID < 0x8000 {
		return LangTagRecord{}, false
	}
	inx := int(rec.LanguageID - 0x8000)
	if inx >= len(t.LangTags) {
		return LangTagRecord{}, false
	}
	return t.LangTags[inx], true
}

// --- Text encodings --------------------------------------------------------

// Platform IDs of name records and cmap encoding records.
const (
	PlatformUnicode uint16 = 0
	PlatformMac     uint16 = 1
	PlatformISO     uint16 = 2
	PlatformWindows uint16 = 3
	PlatformCustom  uint16 = 4
)

// nameEncodings maps (platform, encoding) pairs to the text encodings of
// their name strings.
var nameEncodings = map[[2]uint16]encoding.Encoding{
	{PlatformMac, 0}:     charmap.Macintosh,
	{PlatformMac, 1}:     japanese.ShiftJIS,
	{PlatformMac, 2}:     traditionalchinese.Big5,
	{PlatformMac, 3}:     korean.EUCKR,
	{PlatformMac, 25}:    simplifiedchinese.GBK,
	{PlatformISO, 2}:     charmap.ISO8859_1,
	{PlatformWindows, 2}: japanese.ShiftJIS,
	{PlatformWindows, 3}: simplifiedchinese.GBK,
	{PlatformWindows, 4}: traditionalchinese.Big5,
	{PlatformWindows, 5}: korean.EUCKR,
}

// utf16Encodings are the pairs besides platform 0 with UTF-16BE name strings.
var utf16Encodings = map[[2]uint16]bool{
	{PlatformISO, 1}:      true,
	{PlatformWindows, 0}:  true,
	{PlatformWindows, 1}:  true,
	{PlatformWindows, 10}: true,
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// DecodeNameString decodes the bytes of a name string according to the text
// encoding of its platform and encoding IDs. Strings of platform 0 are always
// UTF-16BE.
//
// For (platform, encoding) pairs without a known text encoding, valid UTF-8 is
// passed through; anything else yields an error wrapping ErrUndecodable.
func DecodeNameString(platform, enc uint16, b []byte) (string, error) {
	if platform == PlatformUnicode || utf16Encodings[[2]uint16{platform, enc}] {
		return decodeUTF16(b)
	}
	if platform == PlatformISO && enc == 0 {
		for _, c := range b {
			if c >= 0x80 {
				return "", fmt.Errorf("%w: non-ASCII byte 0x%02x in ASCII string", ErrUndecodable, c)
			}
		}
		return string(b), nil
	}
	e, ok := nameEncodings[[2]uint16{platform, enc}]
	if !ok {
		if utf8.Valid(b) {
			return string(b), nil
		}
		return "", fmt.Errorf("%w: no text encoding for platform %d, encoding %d",
			ErrUndecodable, platform, enc)
	}
	return decodeStrict(e, b)
}

func decodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: UTF-16 string of odd length %d", ErrUndecodable, len(b))
	}
	return decodeStrict(utf16BE, b)
}

// decodeStrict decodes b and rejects any replacement characters the decoder
// substituted for invalid input.
func decodeStrict(e encoding.Encoding, b []byte) (string, error) {
	out, _, err := transform.Bytes(e.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", fmt.Errorf("%w: invalid byte sequence", ErrUndecodable)
	}
	return s, nil
}
