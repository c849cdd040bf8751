// Package main provides the entry point for the paperquery CLI.
package main

import (
	"os"

	"PaperIndexer/cmd/paperquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
