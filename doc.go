// Copyright (C) 2022 spazzylemons. All Rights Reserved.

// Package cj parses JSON into an in-memory value tree under caller-set
// bounds on memory use and nesting depth.
//
// # Parsing
//
// Parse reads exactly one JSON value from a Source and returns its tree:
//
//	v, err := cj.ParseString(nil, `{"theme": "light", "indent_width": 4}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	fmt.Println(v.Find("theme").Value().Text())
//
// Any input after the value other than whitespace is an error. Errors are
// reported as a *ParseError carrying the byte offset of the failure and one
// of the sentinel errors ErrSyntax, ErrTooDeep, ErrOutOfMemory, or ErrRead:
//
//	if errors.Is(err, cj.ErrSyntax) {
//	   log.Printf("Malformed input: %v", err)
//	}
//
// The convenience wrappers ParseBytes, ParseString, and ParseReader cover
// the common input media. Other media implement the Source interface, which
// delivers input to the parser one window of bytes at a time.
//
// # Bounds
//
// The parser's working memory does not depend on the shape of the input: a
// numeral with ten thousand digits is converted through a fixed-size record,
// and values nested beyond MaxDepth levels are rejected rather than parsed.
//
// Storage retained for the tree itself is metered through an Allocator, a
// single-method capability the parser consults before every growth of the
// tree and after every release. Passing a nil Allocator leaves storage to
// the runtime. A Quota bounds the bytes live at once:
//
//	q := cj.NewQuota(1 << 20) // accept at most 1 MiB of tree
//	v, err := cj.ParseReader(q, input)
//	if errors.Is(err, cj.ErrOutOfMemory) {
//	   log.Print("input too large")
//	}
//
// A tree parsed through a metering allocator is returned to it with Free:
//
//	defer cj.Free(q, v)
//
// With a nil allocator Free is optional; the garbage collector reclaims the
// tree as usual. A failed Parse cleans up after itself, so there is never a
// partial tree for the caller to release.
package cj
