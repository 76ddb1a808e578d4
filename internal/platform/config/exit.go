package config

import (
	"fmt"
	"io"
	"os"
)

// Exit codes used by habbohub commands.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	exitf(ExitFailure, format, args...)
}

// Usagef reports a command-line mistake and exits with code 2.
func Usagef(format string, args ...any) {
	exitf(ExitUsage, format, args...)
}

func exitf(code int, format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(code)
}
