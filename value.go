// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import (
	"bytes"
	"fmt"
)

// A Kind identifies which JSON type a Value holds.
type Kind byte

// Constants defining the valid Kind values. The zero Kind is Null.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindStr = [...]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// A Value is a single JSON value. The zero Value is null.
//
// A Value returned by Parse exclusively owns all the storage reachable from
// it, and remains valid until it is released with Free. Accessors that
// return byte slices share storage with the tree; the caller must copy the
// contents to retain them past Free.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  []byte
	arr  []Value
	obj  []Member
}

// A Member is a single key-value pair belonging to an object. Keys are raw
// bytes and may contain NUL; objects may contain duplicate keys.
type Member struct {
	key   []byte
	value Value
}

// Key returns the member's key. The slice is owned by the enclosing tree.
func (m *Member) Key() []byte { return m.key }

// Value returns the member's value.
func (m *Member) Value() *Value { return &m.value }

// Kind reports which JSON type v holds. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool { return v.Kind() == Null }

// Bool reports the truth value of a boolean, and false for any other kind.
func (v *Value) Bool() bool { return v.Kind() == Bool && v.b }

// Float64 returns the value of a number, and 0 for any other kind.
func (v *Value) Float64() float64 {
	if v.Kind() != Number {
		return 0
	}
	return v.num
}

// Bytes returns the contents of a string value, and nil for any other kind.
// The slice is owned by the enclosing tree, and may be nil for an empty
// string. Contents may include NUL bytes; the slice length is authoritative.
func (v *Value) Bytes() []byte {
	if v.Kind() != String {
		return nil
	}
	return v.str
}

// Text returns the contents of a string value as a copied string, and ""
// for any other kind.
func (v *Value) Text() string { return string(v.Bytes()) }

// Len reports the number of elements of an array or members of an object,
// and 0 for all other kinds.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Index returns element i of an array value. It panics if v is not an array
// or i is out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != Array {
		panic(fmt.Sprintf("cannot index %v value", v.Kind()))
	}
	return &v.arr[i]
}

// Member returns member i of an object value in source order. It panics if
// v is not an object or i is out of range.
func (v *Value) Member(i int) *Member {
	if v.Kind() != Object {
		panic(fmt.Sprintf("cannot index %v value", v.Kind()))
	}
	return &v.obj[i]
}

// Find returns the first member of an object value with the given key, or
// nil if no member has that key or v is not an object. Later duplicates are
// not consulted.
func (v *Value) Find(key string) *Member {
	if v.Kind() != Object {
		return nil
	}
	for i := range v.obj {
		if string(v.obj[i].key) == key {
			return &v.obj[i]
		}
	}
	return nil
}

// Equal reports whether v and w denote the same JSON value: equal kinds and
// payloads, with array elements and object members compared in order. A nil
// Value is equal to the null value.
func (v *Value) Equal(w *Value) bool {
	if v.Kind() != w.Kind() {
		return false
	}
	if v == nil || w == nil {
		return true // both null
	}
	switch v.kind {
	case Bool:
		return v.b == w.b
	case Number:
		return v.num == w.num
	case String:
		return bytes.Equal(v.str, w.str)
	case Array:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(&w.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.obj) != len(w.obj) {
			return false
		}
		for i := range v.obj {
			if !bytes.Equal(v.obj[i].key, w.obj[i].key) || !v.obj[i].value.Equal(&w.obj[i].value) {
				return false
			}
		}
		return true
	}
	return true // both null
}

// ToValue converts a string, []byte, int, float, bool, or nil into a Value.
// It panics if v does not have one of those types. A *Value is returned
// unchanged. Byte slices are copied, so the result owns its storage.
//
// Values built this way are managed by the garbage collector; they are not
// charged to any Allocator and must not be passed to Free with a metering
// allocator.
func ToValue(v any) *Value {
	switch t := v.(type) {
	case *Value:
		return t
	case nil:
		return &Value{}
	case bool:
		return &Value{kind: Bool, b: t}
	case int:
		return &Value{kind: Number, num: float64(t)}
	case int64:
		return &Value{kind: Number, num: float64(t)}
	case float64:
		return &Value{kind: Number, num: t}
	case string:
		return &Value{kind: String, str: []byte(t)}
	case []byte:
		return &Value{kind: String, str: bytes.Clone(t)}
	}
	panic(fmt.Sprintf("invalid value type %T", v))
}

// Field constructs an object member with the given key and value.
// The value must be a string, []byte, int, float, bool, nil, or *Value.
func Field(key string, value any) Member {
	return Member{key: []byte(key), value: *ToValue(value)}
}

// ArrayOf constructs an array value whose elements are the given items,
// each converted via ToValue.
func ArrayOf[T any](items ...T) *Value {
	arr := make([]Value, len(items))
	for i, item := range items {
		arr[i] = *ToValue(item)
	}
	return &Value{kind: Array, arr: arr}
}

// ObjectOf constructs an object value with the given members in order.
func ObjectOf(members ...Member) *Value {
	return &Value{kind: Object, obj: members}
}
