// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import (
	"math"
	"strconv"

	"github.com/spazzylemons/cj/internal/escape"

	"go4.org/mem"
)

// AppendJSON appends the JSON encoding of v to buf and returns the extended
// buffer. The encoding is compact, with no whitespace between tokens, and
// parses back to a tree equal to v. Numbers are rendered in the shortest
// form that converts back to the same float64; infinities and NaN have no
// JSON numeral and render as null.
func (v *Value) AppendJSON(buf []byte) []byte {
	switch v.Kind() {
	case Bool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case Number:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return append(buf, "null"...)
		}
		return strconv.AppendFloat(buf, v.num, 'g', -1, 64)
	case String:
		return escape.Append(buf, mem.B(v.str))
	case Array:
		buf = append(buf, '[')
		for i := range v.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = v.arr[i].AppendJSON(buf)
		}
		return append(buf, ']')
	case Object:
		buf = append(buf, '{')
		for i := range v.obj {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = escape.Append(buf, mem.B(v.obj[i].key))
			buf = append(buf, ':')
			buf = v.obj[i].value.AppendJSON(buf)
		}
		return append(buf, '}')
	}
	return append(buf, "null"...)
}

// JSON returns the JSON encoding of v as a string.
func (v *Value) JSON() string { return string(v.AppendJSON(nil)) }

// String renders v as JSON for human consumption.
func (v *Value) String() string { return v.JSON() }
