// Copyright (C) 2022 spazzylemons. All Rights Reserved.

// Program cj-config loads an editor-style JSON config file and prints the
// resulting settings. It demonstrates walking a parsed tree with defaults
// and per-key type checking.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/c2h5oh/datasize"
	"github.com/fatih/color"

	"github.com/spazzylemons/cj"
)

var (
	configFile = kingpin.Arg("config", "Path of the config file to load.").Required().String()
	maxMemory  = kingpin.Flag("max-memory", "Reject configs whose tree exceeds this size (0 = unlimited).").
			Default("0b").String()
)

// A config holds the editor settings the file may override.
type config struct {
	UseTabs     bool
	IndentWidth int
	Rulers      []int
	Theme       string
}

func defaultConfig() *config {
	return &config{IndentWidth: 4, Theme: "default"}
}

// positiveInt extracts a number value that is a whole number >= 1.
func positiveInt(v *cj.Value) (int, bool) {
	f := v.Float64()
	n := int(f)
	return n, v.Kind() == cj.Number && float64(n) == f && n >= 1
}

// load fills c from the members of an object value. Unknown keys are
// ignored; a known key with the wrong type is an error.
func (c *config) load(v *cj.Value) error {
	if v.Kind() != cj.Object {
		return fmt.Errorf("config is %v, want object", v.Kind())
	}
	for i := 0; i < v.Len(); i++ {
		m := v.Member(i)
		val := m.Value()
		switch key := string(m.Key()); key {
		case "use_tabs":
			if val.Kind() != cj.Bool {
				return fmt.Errorf("%s: is %v, want boolean", key, val.Kind())
			}
			c.UseTabs = val.Bool()
		case "indent_width":
			w, ok := positiveInt(val)
			if !ok {
				return fmt.Errorf("%s: want a positive whole number", key)
			}
			c.IndentWidth = w
		case "rulers":
			if val.Kind() != cj.Array {
				return fmt.Errorf("%s: is %v, want array", key, val.Kind())
			}
			rulers := make([]int, val.Len())
			for j := range rulers {
				r, ok := positiveInt(val.Index(j))
				if !ok {
					return fmt.Errorf("%s[%d]: want a positive whole number", key, j)
				}
				rulers[j] = r
			}
			c.Rulers = rulers
		case "theme":
			if val.Kind() != cj.String {
				return fmt.Errorf("%s: is %v, want string", key, val.Kind())
			}
			c.Theme = val.Text()
		}
	}
	return nil
}

func (c *config) print() {
	bold := color.New(color.Bold)
	bold.Print("use tabs: ")
	fmt.Println(c.UseTabs)
	bold.Print("indent width: ")
	fmt.Println(c.IndentWidth)
	bold.Print("rulers:")
	for _, r := range c.Rulers {
		fmt.Printf(" %d", r)
	}
	fmt.Println()
	bold.Print("theme: ")
	fmt.Println(c.Theme)
}

func main() {
	kingpin.Parse()

	var limit datasize.ByteSize
	if err := limit.UnmarshalText([]byte(*maxMemory)); err != nil {
		kingpin.Fatalf("invalid --max-memory: %v", err)
	}

	f, err := os.Open(*configFile)
	if err != nil {
		kingpin.Fatalf("open config: %v", err)
	}
	defer f.Close()

	quota := cj.NewQuota(int(limit.Bytes()))
	v, err := cj.ParseReader(quota, f)
	if err != nil {
		kingpin.Fatalf("parse config: %v", err)
	}
	defer cj.Free(quota, v)

	cfg := defaultConfig()
	if err := cfg.load(v); err != nil {
		kingpin.Fatalf("load config: %v", err)
	}
	cfg.print()
}
