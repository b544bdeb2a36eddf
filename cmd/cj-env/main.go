// Copyright (C) 2022 spazzylemons. All Rights Reserved.

// Program cj-env parses a JSON object of NAME: value strings and runs a
// command under that environment.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/alecthomas/kingpin/v2"

	"github.com/spazzylemons/cj"
)

var (
	envFile = kingpin.Flag("file", `Read the environment object from this file ("-" for stdin).`).
		Short('f').Default("-").String()
	inherit = kingpin.Flag("inherit", "Start from the current environment instead of an empty one.").
		Short('i').Bool()
	command = kingpin.Arg("command", "Command to run.").Required().String()
	args    = kingpin.Arg("args", "Arguments to the command.").Strings()
)

// environment converts an object of string members into NAME=value pairs.
func environment(v *cj.Value) ([]string, error) {
	if v.Kind() != cj.Object {
		return nil, fmt.Errorf("input is %v, want object", v.Kind())
	}
	env := make([]string, v.Len())
	for i := range env {
		m := v.Member(i)
		val := m.Value()
		if val.Kind() != cj.String {
			return nil, fmt.Errorf("%q: is %v, want string", m.Key(), val.Kind())
		}
		env[i] = fmt.Sprintf("%s=%s", m.Key(), val.Bytes())
	}
	return env, nil
}

func main() {
	kingpin.Parse()

	var in io.Reader = os.Stdin
	if *envFile != "-" {
		f, err := os.Open(*envFile)
		if err != nil {
			kingpin.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	v, err := cj.ParseReader(nil, in)
	if err != nil {
		kingpin.Fatalf("parse environment: %v", err)
	}
	env, err := environment(v)
	if err != nil {
		kingpin.Fatalf("bad environment: %v", err)
	}
	if *inherit {
		env = append(os.Environ(), env...)
	}

	cmd := exec.Command(*command, *args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		kingpin.Fatalf("run %s: %v", *command, err)
	}
}
