// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import (
	"errors"
	"math"
	"strconv"
)

// maxExp bounds the decimal exponent written to the canonical form. Values
// beyond it are already outside a float64's range, so the clamped text
// still converts to the same zero or infinity.
const maxExp = 999

// A numRec is the fixed-size working record for number conversion. It
// holds one digit more than a float64 can distinguish; digits past that
// shift the exponent without being stored, so neither memory nor
// conversion time depends on how many digits the input numeral carries.
//
// The record denotes 0.digits x 10^exp, negated if neg is set.
type numRec struct {
	neg    bool
	digits [19]byte
	n      int
	exp    int
}

// intDigit records an integer-part digit. Every integer digit raises the
// exponent, stored or not.
func (r *numRec) intDigit(c byte) {
	if r.n < len(r.digits) {
		r.digits[r.n] = c
		r.n++
	}
	r.exp++
}

// fracDigit records a fraction-part digit. Zeros before the first stored
// digit lower the exponent instead; digits past a full record are dropped.
func (r *numRec) fracDigit(c byte) {
	if r.n == 0 && c == '0' {
		r.exp--
		return
	}
	if r.n < len(r.digits) {
		r.digits[r.n] = c
		r.n++
	}
}

// float64 renders the record as canonical scientific notation and converts
// it with strconv. Exponents are clamped to +-maxExp first, so conversion
// saturates to zero or an infinity rather than failing; the range error
// strconv reports for those is the saturation working as intended.
func (r *numRec) float64() float64 {
	if r.n == 0 {
		if r.neg {
			return math.Copysign(0, -1)
		}
		return 0
	}
	sci := r.exp - 1 // exponent with the point after the first digit
	if sci > maxExp {
		sci = maxExp
	} else if sci < -maxExp {
		sci = -maxExp
	}

	var fixed [26]byte // 1 sign, 19 digits, 1 point, "e-999"
	buf := fixed[:0]
	if r.neg {
		buf = append(buf, '-')
	}
	buf = append(buf, r.digits[0])
	if r.n > 1 {
		buf = append(buf, '.')
		buf = append(buf, r.digits[1:r.n]...)
	}
	buf = append(buf, 'e')
	buf = strconv.AppendInt(buf, int64(sci), 10)

	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(err) // the canonical form is well-formed by construction
	}
	return f
}

func (p *parser) isDigit() bool { return p.cur >= '0' && p.cur <= '9' }

// digits consumes a run of one or more decimal digits, passing each to f.
func (p *parser) digits(f func(byte)) {
	if !p.isDigit() {
		if p.atEOF() {
			p.failf(ErrSyntax, "unexpected end of input, want digit")
		}
		p.failf(ErrSyntax, "got %q, want digit", byte(p.cur))
	}
	for p.isDigit() {
		f(byte(p.cur))
		p.advance()
	}
}

// parseNumber consumes one JSON numeral and converts it to a float64. The
// grammar permits a single leading zero only: a numeral like 012 ends
// after the 0, and the stray digits trip the surrounding syntax.
func (p *parser) parseNumber() float64 {
	var rec numRec
	rec.neg = p.eat('-')
	if p.cur == '0' {
		p.advance()
	} else {
		p.digits(rec.intDigit)
	}
	if p.eat('.') {
		p.digits(rec.fracDigit)
	}
	if p.cur == 'e' || p.cur == 'E' {
		p.advance()
		neg := false
		if p.cur == '+' {
			p.advance()
		} else if p.eat('-') {
			neg = true
		}
		e := 0
		p.digits(func(c byte) {
			if e < 10000 {
				e = e*10 + int(c-'0')
			}
		})
		if neg {
			e = -e
		}
		rec.exp += e
	}
	return rec.float64()
}
