// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spazzylemons/cj"
)

// TestConformance runs the parser over the corpus in testdata/conform,
// using the JSONTestSuite naming convention: y_ files must parse, n_ files
// must not, i_ files may do either. Accepted files must also survive a
// serialize-reparse round trip.
func TestConformance(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "conform", "*.json"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no corpus files found")
	}

	for _, path := range files {
		name := filepath.Base(path)
		t.Run(strings.TrimSuffix(name, ".json"), func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}

			q := cj.NewQuota(1 << 20)
			v, perr := cj.ParseBytes(q, data)

			switch {
			case strings.HasPrefix(name, "y_"):
				if perr != nil {
					t.Fatalf("Parse: unexpected error: %v", perr)
				}
			case strings.HasPrefix(name, "n_"):
				if perr == nil {
					t.Fatalf("Parse accepted invalid input %#q", data)
				}
			}

			if perr != nil {
				if got := q.Live(); got != 0 {
					t.Errorf("failed parse left %d bytes live", got)
				}
				return
			}

			again, err := cj.ParseString(nil, v.JSON())
			if err != nil {
				t.Errorf("reparse of %#q: %v", v.JSON(), err)
			} else if !v.Equal(again) {
				t.Errorf("round trip changed %#q", data)
			}

			cj.Free(q, v)
			if got := q.Live(); got != 0 {
				t.Errorf("Free left %d bytes live", got)
			}
		})
	}
}
