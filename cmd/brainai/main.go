// Package main is the entry point for the brainai CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/brainai/cmd/brainai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
