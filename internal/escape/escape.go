// Copyright (C) 2022 spazzylemons. All Rights Reserved.

// Package escape encodes string contents for inclusion in JSON output.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Append appends the JSON quoted form of src to buf, enclosing quotation
// marks included. Invalid UTF-8 in src is written as the escaped
// replacement rune.
func Append(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
				}
			} else if r == '\\' || r == '"' {
				buf = append(buf, '\\', byte(r))
			} else {
				buf = append(buf, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case utf8.RuneError:
			buf = append(buf, `\ufffd`...)
		case ' ': // line separator
			buf = append(buf, `\u2028`...)
		case ' ': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			var rbuf [4]byte
			k := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:k]...)
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}

// Quote returns the JSON quoted form of src.
func Quote(src mem.RO) []byte { return Append(nil, src) }
