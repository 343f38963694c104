// Package main is the entry point for the isorun CLI.
// The CLI runs interpreter code snippets in isolated child processes.
package main

import (
	"isorun/cmd/isorun/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
