// Package main is the layerlint entrypoint.
package main

import (
	"os"

	"github.com/leapstack-labs/layerlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
