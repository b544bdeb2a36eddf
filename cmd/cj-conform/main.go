// Copyright (C) 2022 spazzylemons. All Rights Reserved.

// Program cj-conform runs the parser over a directory of conformance
// inputs in the JSONTestSuite layout: files named y_*.json must parse,
// n_*.json must be rejected, i_*.json may go either way. Accepted inputs
// are additionally serialized and reparsed to verify the round trip.
//
// Exit status: 0 if every file behaved as its name requires, 1 if any
// mismatched, 2 if any file could not be judged (read failures, memory
// exhaustion).
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/kingpin/v2"
	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/panjf2000/ants/v2"

	"github.com/spazzylemons/cj"
)

var (
	dir       = kingpin.Arg("dir", "Directory of *.json conformance files.").Required().ExistingDir()
	jobs      = kingpin.Flag("jobs", "Number of parallel workers.").Short('j').Default("0").Int()
	maxMemory = kingpin.Flag("max-memory", "Per-file tree size limit (0 = unlimited).").
			Default("0b").String()
	verbose = kingpin.Flag("verbose", "Report every file, not only mismatches.").Short('v').Bool()
)

type outcome int

const (
	outcomePass  outcome = iota // behaved as the file name requires
	outcomeFail                 // accepted an n_ file or rejected a y_ file
	outcomeCrash                // could not be judged
)

type report struct {
	name      string
	outcome   outcome
	detail    string
	highWater int
}

// judge parses one file and classifies the result against its name prefix.
func judge(path string, limit int) report {
	rep := report{name: filepath.Base(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		rep.outcome = outcomeCrash
		rep.detail = err.Error()
		return rep
	}

	quota := cj.NewQuota(limit)
	v, err := cj.ParseBytes(quota, data)
	rep.highWater = quota.HighWater()

	accepted := err == nil
	if accepted {
		// An accepted value must survive serialize-then-reparse.
		again, rerr := cj.ParseString(nil, v.JSON())
		if rerr != nil || !v.Equal(again) {
			cj.Free(quota, v)
			rep.outcome = outcomeFail
			rep.detail = "round trip changed the value"
			return rep
		}
		cj.Free(quota, v)
	} else {
		rep.detail = err.Error()
	}

	switch {
	case errors.Is(err, cj.ErrOutOfMemory) || errors.Is(err, cj.ErrRead):
		rep.outcome = outcomeCrash
	case strings.HasPrefix(rep.name, "y_") && !accepted:
		rep.outcome = outcomeFail
	case strings.HasPrefix(rep.name, "n_") && accepted:
		rep.outcome = outcomeFail
	default:
		rep.outcome = outcomePass
	}
	return rep
}

func main() {
	kingpin.Parse()

	var limit datasize.ByteSize
	if err := limit.UnmarshalText([]byte(*maxMemory)); err != nil {
		kingpin.Fatalf("invalid --max-memory: %v", err)
	}
	workers := *jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		kingpin.Fatalf("list %s: %v", *dir, err)
	}
	if len(files) == 0 {
		kingpin.Fatalf("no *.json files in %s", *dir)
	}
	sort.Strings(files)

	var (
		mu      sync.Mutex
		reports []report
		wg      sync.WaitGroup
	)
	pool, err := ants.NewPoolWithFunc(workers, func(arg any) {
		defer wg.Done()
		rep := judge(arg.(string), int(limit.Bytes()))
		mu.Lock()
		reports = append(reports, rep)
		mu.Unlock()
	})
	if err != nil {
		kingpin.Fatalf("create worker pool: %v", err)
	}
	defer pool.Release()

	for _, path := range files {
		wg.Add(1)
		if err := pool.Invoke(path); err != nil {
			wg.Done()
			kingpin.Fatalf("submit %s: %v", path, err)
		}
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].name < reports[j].name })

	var counts [3]int
	var peak int
	labels := [3]string{
		color.GreenString("pass"),
		color.RedString("FAIL"),
		color.YellowString("crash"),
	}
	for _, rep := range reports {
		counts[rep.outcome]++
		if rep.highWater > peak {
			peak = rep.highWater
		}
		if rep.outcome != outcomePass || *verbose {
			fmt.Printf("%s %s", labels[rep.outcome], rep.name)
			if rep.detail != "" {
				fmt.Printf(": %s", rep.detail)
			}
			fmt.Println()
		}
	}

	bold := color.New(color.Bold)
	bold.Printf("%d files: ", len(reports))
	fmt.Printf("%d pass, %d fail, %d crash; largest tree %s\n",
		counts[outcomePass], counts[outcomeFail], counts[outcomeCrash],
		humanize.IBytes(uint64(peak)))

	switch {
	case counts[outcomeCrash] > 0:
		os.Exit(2)
	case counts[outcomeFail] > 0:
		os.Exit(1)
	}
}
