package main

import (
	"os"
)

// main runs the trailcomma command and exits with its status.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
