// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

// invalidChar is the replacement codepoint substituted for malformed UTF-8
// sequences and unpaired surrogate halves.
const invalidChar = 0xFFFD

// pushCodepoint appends the UTF-8 encoding of cp to the string under
// construction. Codepoints beyond the Unicode range and surrogate halves
// become U+FFFD.
func pushCodepoint(buf buffer[byte], cp int32) {
	if cp > 0x10FFFF || (cp > 0xD7FF && cp < 0xE000) {
		cp = invalidChar
	}
	pushUnchecked(buf, cp)
}

func pushUnchecked(buf buffer[byte], cp int32) {
	switch {
	case cp < 0x80:
		*buf.add() = byte(cp)
	case cp < 0x800:
		*buf.add() = 0xC0 | byte(cp>>6)
		*buf.add() = 0x80 | byte(cp&0x3F)
	case cp < 0x10000:
		*buf.add() = 0xE0 | byte(cp>>12)
		*buf.add() = 0x80 | byte(cp>>6&0x3F)
		*buf.add() = 0x80 | byte(cp&0x3F)
	default:
		*buf.add() = 0xF0 | byte(cp>>18)
		*buf.add() = 0x80 | byte(cp>>12&0x3F)
		*buf.add() = 0x80 | byte(cp>>6&0x3F)
		*buf.add() = 0x80 | byte(cp&0x3F)
	}
}

func pushInvalid(buf buffer[byte]) { pushUnchecked(buf, invalidChar) }

// readUTF8 decodes one codepoint from the input. Unescaped control bytes
// are a syntax error. Malformed sequences decode to U+FFFD: a stray lead or
// continuation byte, a truncated sequence (the non-continuing byte is left
// for the next read), an overlong encoding, or a 5-byte-or-longer form.
func (p *parser) readUTF8() int32 {
	b := p.take()
	if b&0x80 == 0 {
		if b < 0x20 {
			p.failf(ErrSyntax, "unescaped control %q", b)
		}
		return int32(b)
	}
	if b&0x40 == 0 {
		return invalidChar
	}
	cp := int32(b & 0x7F)
	if p.badCont(&cp) {
		return invalidChar
	}
	if b&0x20 == 0 {
		return overlongCheck(cp, 0x7FF, 0x7F)
	}
	if p.badCont(&cp) {
		return invalidChar
	}
	if b&0x10 == 0 {
		return overlongCheck(cp, 0xFFFF, 0x7FF)
	}
	if p.badCont(&cp) {
		return invalidChar
	}
	if b&0x08 == 0 {
		return overlongCheck(cp, 0x1FFFFF, 0xFFFF)
	}
	return invalidChar
}

// badCont accumulates one continuation byte into cp, reporting true if the
// input does not continue the sequence. A non-continuation byte is not
// consumed.
func (p *parser) badCont(cp *int32) bool {
	if p.atEOF() {
		return true
	}
	b := byte(p.cur)
	if b&0xC0 != 0x80 {
		return true
	}
	*cp = *cp<<6 | int32(b&0x3F)
	p.advance()
	return false
}

// overlongCheck masks the lead byte's tag bits out of cp and rejects values
// small enough to have used a shorter encoding.
func overlongCheck(cp, mask, min int32) int32 {
	cp &= mask
	if cp <= min {
		return invalidChar
	}
	return cp
}

// readEscape decodes the single-character escape forms. The \u form is
// handled by utf16Escape.
func (p *parser) readEscape() int32 {
	b := p.take()
	switch b {
	case '"', '\\', '/':
		return int32(b)
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	p.failf(ErrSyntax, "invalid %q after escape", b)
	return 0
}

func (p *parser) hexDigit() int32 {
	b := p.take()
	switch {
	case b >= '0' && b <= '9':
		return int32(b - '0')
	case b >= 'a' && b <= 'f':
		return int32(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int32(b-'A') + 10
	}
	p.failf(ErrSyntax, "not a hex digit: %q", b)
	return 0
}

// utf16Escape decodes one \uXXXX escape. A high surrogate is held in
// pending (-1 when empty) until the next escape; a following low surrogate
// combines with it into one codepoint above U+FFFF. Halves that never pair
// are flushed as U+FFFD.
func (p *parser) utf16Escape(buf buffer[byte], pending *int32) {
	cur := p.hexDigit()<<12 | p.hexDigit()<<8 | p.hexDigit()<<4 | p.hexDigit()
	if cur>>11 != 0x1B {
		// Not a surrogate half.
		if *pending != -1 {
			pushInvalid(buf)
		}
		pushCodepoint(buf, cur)
		*pending = -1
	} else if cur&0x400 != 0 {
		// Low half: combine with a pending high half.
		if *pending != -1 {
			pushCodepoint(buf, *pending|cur&0x3FF)
		} else {
			pushInvalid(buf)
		}
		*pending = -1
	} else {
		// High half: hold until its mate arrives.
		if *pending != -1 {
			pushInvalid(buf)
		}
		*pending = (cur&0x3FF)<<10 | 0x10000
	}
}
