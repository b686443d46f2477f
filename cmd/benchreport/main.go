// Package main provides benchreport, which turns `go test -bench` output for
// the map benchmarks into a report checked against performance targets.
package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		cmd.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

// exitError carries a non-zero exit code that is not a usage error.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}
