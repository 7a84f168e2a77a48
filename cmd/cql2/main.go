// Package main provides the CLI entry point for cql2.
package main

import (
	"os"

	"github.com/geocql/cql2/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
