package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/justsurfingit/gig-builder/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
