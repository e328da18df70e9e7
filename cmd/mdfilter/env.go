package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-mdfilter"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment and the pandoc runner.
type Environment struct {
	Now      func() time.Time
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	LookPath func(string) (string, error)
	Runner   mdfilter.CommandRunner // nil = run pandoc with os/exec
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		LookPath: exec.LookPath,
	}
}
