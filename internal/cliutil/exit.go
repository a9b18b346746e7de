// Package cliutil holds the small CLI-only helpers cmd/*.go shares,
// adapted from the teacher's internal/shared/utils.go.
package cliutil

import (
	"fmt"
	"os"
)

// Exitf prints a formatted message and exits with status 1.
func Exitf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
	os.Exit(1)
}

// Exitln prints its arguments and exits with status 1.
func Exitln(a ...interface{}) {
	fmt.Println(a...)
	os.Exit(1)
}

// Printlnf prints a formatted status line, the non-fatal counterpart to
// Exitf/Exitln.
func Printlnf(format string, a ...interface{}) {
	fmt.Printf(format+"\n", a...)
}
