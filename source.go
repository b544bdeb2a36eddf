// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import "io"

// A Source supplies input to the parser as a sequence of byte windows.
//
// Each call to Refill returns the next window of input. The returned slice
// is valid only until the next call; the parser copies out anything it
// needs to keep. An empty window with a nil error marks the end of the
// stream. A non-nil error aborts the parse with ErrRead.
type Source interface {
	Refill() ([]byte, error)
}

// A BytesSource yields an in-memory buffer as a single window, then reports
// end of stream.
type BytesSource struct {
	data []byte
	done bool
}

// NewBytesSource constructs a Source reading from data. The parser does not
// modify data and retains no reference to it after Parse returns.
func NewBytesSource(data []byte) *BytesSource { return &BytesSource{data: data} }

// Refill implements the Source interface.
func (b *BytesSource) Refill() ([]byte, error) {
	if b.done {
		return nil, nil
	}
	b.done = true
	return b.data, nil
}

// A ReaderSource adapts an io.Reader to the Source interface, refilling a
// fixed-size block on each call.
type ReaderSource struct {
	r    io.Reader
	blk  []byte
	herr error // held back from a short read, delivered on the next call
}

// blockSize is the window size used by NewReaderSource.
const blockSize = 4096

// NewReaderSource constructs a Source that reads r in blocks of a default
// size.
func NewReaderSource(r io.Reader) *ReaderSource { return NewReaderSourceSize(r, blockSize) }

// NewReaderSourceSize constructs a Source that reads r in blocks of size
// bytes. It panics if size < 1.
func NewReaderSourceSize(r io.Reader, size int) *ReaderSource {
	if size < 1 {
		panic("block size out of range")
	}
	return &ReaderSource{r: r, blk: make([]byte, size)}
}

// Refill implements the Source interface. A read that returns data together
// with an error yields the data first; the error is reported on the call
// after.
func (rs *ReaderSource) Refill() ([]byte, error) {
	if rs.herr != nil {
		err := rs.herr
		rs.herr = nil
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	for range 100 {
		n, err := rs.r.Read(rs.blk)
		if n > 0 {
			if err != nil {
				rs.herr = err
			}
			return rs.blk[:n], nil
		}
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, io.ErrNoProgress
}
