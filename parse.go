// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import (
	"errors"
	"fmt"
	"io"
)

// MaxDepth is the number of levels of value nesting a parse accepts; a
// value nested more deeply fails with ErrTooDeep.
const MaxDepth = 1024

// Sentinel errors classifying the failure modes of Parse. Every error
// returned by Parse matches exactly one of them under errors.Is.
var (
	ErrSyntax      = errors.New("invalid JSON syntax")
	ErrTooDeep     = errors.New("too much nesting")
	ErrOutOfMemory = errors.New("out of memory")
	ErrRead        = errors.New("read error")
)

// A ParseError is the concrete type of errors reported by Parse.
type ParseError struct {
	Offset int   // byte offset in the input where the parse failed
	Err    error // one of ErrSyntax, ErrTooDeep, ErrOutOfMemory, ErrRead

	cause error // underlying detail, if any
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (offset %d): %s", e.Err, e.Offset, e.cause)
	}
	return fmt.Sprintf("%s (offset %d)", e.Err, e.Offset)
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

// A parser holds the state of one Parse call.
type parser struct {
	alloc Allocator
	src   Source
	win   []byte // current source window
	pos   int    // index of the first unread byte in win
	cur   int    // one-byte lookahead, or -1 at end of stream
	off   int    // offset of cur from the start of the stream
	depth int
}

// fail aborts the parse. The panic is recovered in Parse; cause may be nil.
func (p *parser) fail(class, cause error) {
	panic(&ParseError{Offset: p.off, Err: class, cause: cause})
}

func (p *parser) failf(class error, msg string, args ...any) {
	p.fail(class, fmt.Errorf(msg, args...))
}

// grant reports a storage-size change to the allocator, aborting the parse
// if the request is denied.
func (p *parser) grant(oldSize, newSize int) {
	if err := p.alloc.Resize(oldSize, newSize); err != nil {
		p.fail(ErrOutOfMemory, err)
	}
}

func (p *parser) atEOF() bool { return p.cur < 0 }

// advance moves the lookahead to the next input byte, refilling the window
// from the source as needed. At end of stream it is a no-op.
func (p *parser) advance() {
	if p.atEOF() {
		return
	}
	if p.pos == len(p.win) {
		win, err := p.src.Refill()
		if err != nil {
			p.fail(ErrRead, err)
		}
		if len(win) == 0 {
			p.cur = -1
			p.off++
			return
		}
		p.win, p.pos = win, 0
	}
	p.cur = int(p.win[p.pos])
	p.pos++
	p.off++
}

// take consumes and returns the current byte.
func (p *parser) take() byte {
	if p.atEOF() {
		p.failf(ErrSyntax, "unexpected end of input")
	}
	b := byte(p.cur)
	p.advance()
	return b
}

// eat consumes the current byte if it equals b.
func (p *parser) eat(b byte) bool {
	if p.cur == int(b) {
		p.advance()
		return true
	}
	return false
}

// require consumes the current byte, which must equal b.
func (p *parser) require(b byte) {
	if p.cur != int(b) {
		if p.atEOF() {
			p.failf(ErrSyntax, "unexpected end of input, want %q", b)
		}
		p.failf(ErrSyntax, "got %q, want %q", byte(p.cur), b)
	}
	p.advance()
}

// skipWS discards whitespace: space, tab, carriage return, newline.
func (p *parser) skipWS() {
	for {
		switch p.cur {
		case ' ', '\t', '\r', '\n':
			p.advance()
		default:
			return
		}
	}
}

// parseString decodes a string body into out; the opening quote has
// already been consumed. Escapes and multibyte sequences are decoded to
// codepoints and re-encoded as UTF-8 through the buffer.
func (p *parser) parseString(out *[]byte) {
	buf := newBuffer(p, out)
	pending := int32(-1)
	for !p.eat('"') {
		var cp int32
		if p.eat('\\') {
			if p.eat('u') {
				p.utf16Escape(buf, &pending)
				continue
			}
			cp = p.readEscape()
		} else {
			cp = p.readUTF8()
		}
		if pending != -1 {
			pushInvalid(buf)
			pending = -1
		}
		pushCodepoint(buf, cp)
	}
	if pending != -1 {
		pushInvalid(buf)
	}
	buf.finish()
}

// parseArray parses the elements of an array into v; the opening bracket
// has already been consumed.
func (p *parser) parseArray(v *Value) {
	v.kind = Array
	buf := newBuffer(p, &v.arr)
	p.skipWS()
	if p.cur != ']' {
		for {
			p.parseValue(buf.add())
			if !p.eat(',') {
				break
			}
		}
	}
	p.require(']')
	buf.finish()
}

// parseObject parses the members of an object into v; the opening brace
// has already been consumed.
func (p *parser) parseObject(v *Value) {
	v.kind = Object
	buf := newBuffer(p, &v.obj)
	p.skipWS()
	if p.cur != '}' {
		for {
			m := buf.add()
			p.skipWS()
			p.require('"')
			p.parseString(&m.key)
			p.skipWS()
			p.require(':')
			p.parseValue(&m.value)
			if !p.eat(',') {
				break
			}
		}
	}
	p.require('}')
	buf.finish()
}

// parseValue parses one value of any type into v, which must be zero.
// Whitespace is skipped before and after the value, so the caller always
// sees a significant byte in the lookahead.
func (p *parser) parseValue(v *Value) {
	p.depth++
	if p.depth > MaxDepth {
		p.fail(ErrTooDeep, nil)
	}
	p.skipWS()
	if p.cur == '-' || p.isDigit() {
		v.kind = Number
		v.num = p.parseNumber()
	} else {
		switch b := p.take(); b {
		case 't':
			p.require('r')
			p.require('u')
			p.require('e')
			v.kind = Bool
			v.b = true
		case 'f':
			p.require('a')
			p.require('l')
			p.require('s')
			p.require('e')
			v.kind = Bool
		case 'n':
			p.require('u')
			p.require('l')
			p.require('l')
		case '"':
			v.kind = String
			p.parseString(&v.str)
		case '[':
			p.parseArray(v)
		case '{':
			p.parseObject(v)
		default:
			p.failf(ErrSyntax, "unexpected %q", b)
		}
	}
	p.skipWS()
	p.depth--
}

// recoverParseError converts the abrupt exit of a failed parse into its
// error result, first releasing whatever partial tree was built. Panics
// that are not parse failures are re-raised.
func (p *parser) recoverParseError(root *Value, errp *error) {
	if serr := recover(); serr != nil {
		perr, ok := serr.(*ParseError)
		if !ok {
			panic(serr)
		}
		Free(p.alloc, root)
		*errp = perr
	}
}

// Parse reads a single JSON value from src and returns its tree. A nil
// alloc leaves storage to the runtime, unmetered.
//
// The input must contain exactly one value; anything but whitespace after
// it is a syntax error. On failure Parse releases whatever partial tree
// was built and returns nil with a *ParseError, so no tree exists for the
// caller to free.
func Parse(alloc Allocator, src Source) (_ *Value, err error) {
	if alloc == nil {
		alloc = heapAllocator{}
	}
	p := &parser{alloc: alloc, src: src, cur: ' ', off: -1}
	root := new(Value)
	defer p.recoverParseError(root, &err)

	p.parseValue(root)
	if !p.atEOF() {
		p.failf(ErrSyntax, "trailing %q", byte(p.cur))
	}
	return root, nil
}

// ParseBytes parses a single JSON value from data.
func ParseBytes(alloc Allocator, data []byte) (*Value, error) {
	return Parse(alloc, NewBytesSource(data))
}

// ParseString parses a single JSON value from s.
func ParseString(alloc Allocator, s string) (*Value, error) {
	return Parse(alloc, NewBytesSource([]byte(s)))
}

// ParseReader parses a single JSON value from r.
func ParseReader(alloc Allocator, r io.Reader) (*Value, error) {
	return Parse(alloc, NewReaderSource(r))
}

// Free returns every byte of storage reachable from v to alloc and zeroes
// v, leaving it null; freeing it again is a no-op. The allocator must be
// the one the tree was parsed with, or nil for the unmetered default.
// Parse calls Free itself when it fails, so callers only free trees they
// were handed.
func Free(alloc Allocator, v *Value) {
	if v == nil {
		return
	}
	if alloc == nil {
		alloc = heapAllocator{}
	}
	switch v.kind {
	case String:
		alloc.Resize(cap(v.str), 0)
	case Array:
		for i := range v.arr {
			Free(alloc, &v.arr[i])
		}
		alloc.Resize(cap(v.arr)*elemSize[Value](), 0)
	case Object:
		for i := range v.obj {
			m := &v.obj[i]
			alloc.Resize(cap(m.key), 0)
			Free(alloc, &m.value)
		}
		alloc.Resize(cap(v.obj)*elemSize[Member](), 0)
	}
	*v = Value{}
}
