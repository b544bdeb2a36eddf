// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spazzylemons/cj"
)

func BenchmarkParse(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("encoding/json", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("cj", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for i := 0; i < b.N; i++ {
			v, err := cj.ParseBytes(nil, input)
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			cj.Free(nil, v)
		}
	})
}

func BenchmarkSerialize(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("encoding/json", func(b *testing.B) {
		var v any
		if err := json.Unmarshal(input, &v); err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := json.Marshal(v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("cj", func(b *testing.B) {
		v, err := cj.ParseBytes(nil, input)
		if err != nil {
			b.Fatalf("Unexpected error: %v", err)
		}
		var buf []byte
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			buf = v.AppendJSON(buf[:0])
		}
	})
}
